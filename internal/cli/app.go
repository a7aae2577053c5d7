package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"medstore/m/domain"
	"medstore/m/internal/catalog"
	"medstore/m/internal/checkout"
	"medstore/m/internal/config"
	"medstore/m/internal/sales"
)

// App is the interactive console surface. All catalog and sale logic lives
// in the services it wraps; the app only prompts, parses and prints.
type App struct {
	catalog *catalog.Service
	engine  *checkout.Engine
	ledger  *sales.Log
	cfg     config.Config
	in      *bufio.Reader
	out     io.Writer
}

func New(catalogSvc *catalog.Service, engine *checkout.Engine, ledger *sales.Log, cfg config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		catalog: catalogSvc,
		engine:  engine,
		ledger:  ledger,
		cfg:     cfg,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run drives the main menu until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out, "\n=== Medical Store Management System ===")
		fmt.Fprintln(a.out, "1. Admin Panel")
		fmt.Fprintln(a.out, "2. Customer Panel")
		fmt.Fprintln(a.out, "0. Exit")

		choice, err := a.readInt("Choice: ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Fprintln(a.out, "Invalid choice.")
			continue
		}

		switch choice {
		case 1:
			if err := a.adminPanel(ctx); err != nil {
				return err
			}
		case 2:
			if err := a.customerPanel(ctx); err != nil {
				return err
			}
		case 0:
			fmt.Fprintln(a.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid choice.")
		}
	}
}

// exitOnEOF turns end-of-input into a clean shutdown; anything else is a
// real failure.
func exitOnEOF(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}

// Input helpers. Parse failures are reported by error; callers re-prompt.

func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) readInt(prompt string) (int64, error) {
	line, err := a.readLine(prompt)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(line, 10, 64)
}

func (a *App) readFloat(prompt string) (float64, error) {
	line, err := a.readLine(prompt)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(line, 64)
}

func (a *App) printMedicine(m domain.Medicine) {
	fmt.Fprintf(a.out, "ID: %d | %s | %s | Price: %.2f | Qty: %d | Exp: %s\n",
		m.ID, m.Name, m.Category, m.Price, m.Quantity, m.Expiry)
}

func (a *App) printCatalog(records []domain.Medicine) {
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No medicines in inventory.")
		return
	}
	for _, m := range records {
		a.printMedicine(m)
	}
}
