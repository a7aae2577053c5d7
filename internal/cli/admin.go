package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"medstore/m/internal/catalog"
)

func (a *App) adminPanel(ctx context.Context) error {
	password, err := a.readLine("\nEnter admin password: ")
	if err != nil {
		return exitOnEOF(err)
	}
	if bcrypt.CompareHashAndPassword(a.cfg.AdminHash, []byte(password)) != nil {
		fmt.Fprintln(a.out, "Incorrect password.")
		return nil
	}

	for {
		fmt.Fprintln(a.out, "\n--- Admin Panel ---")
		fmt.Fprintln(a.out, "1. Add Medicine")
		fmt.Fprintln(a.out, "2. View All Medicines")
		fmt.Fprintln(a.out, "3. Search Medicine by Name")
		fmt.Fprintln(a.out, "4. Update Medicine")
		fmt.Fprintln(a.out, "5. Delete Medicine")
		fmt.Fprintln(a.out, "6. Low Stock Report")
		fmt.Fprintln(a.out, "7. Expiring Soon")
		fmt.Fprintln(a.out, "8. View Transactions")
		fmt.Fprintln(a.out, "0. Back to Main Menu")

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
			err = a.addMedicine()
		case 2:
			err = a.viewAll()
		case 3:
			err = a.searchByName()
		case 4:
			err = a.updateMedicine()
		case 5:
			err = a.deleteMedicine()
		case 6:
			err = a.lowStockReport()
		case 7:
			err = a.expiryReport()
		case 8:
			err = a.viewTransactions(ctx)
		case 0:
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid choice.")
		}
		if err != nil {
			return exitOnEOF(err)
		}
	}
}

func (a *App) addMedicine() error {
	fmt.Fprintln(a.out, "\n--- Add New Medicine ---")
	name, err := a.readLine("Name: ")
	if err != nil {
		return err
	}
	category, err := a.readLine("Category (e.g., Tablet, Syrup, Injection): ")
	if err != nil {
		return err
	}
	price, err := a.readFloat("Price: ")
	if err != nil {
		fmt.Fprintln(a.out, "Invalid price.")
		return nil
	}
	quantity, err := a.readInt("Quantity: ")
	if err != nil {
		fmt.Fprintln(a.out, "Invalid quantity.")
		return nil
	}
	expiry, err := a.readLine("Expiry date (DD/MM/YYYY): ")
	if err != nil {
		return err
	}

	med, err := a.catalog.Add(name, category, price, quantity, expiry)
	if err != nil {
		fmt.Fprintf(a.out, "Unable to add medicine: %v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "\nMedicine added with ID: %d\n", med.ID)
	return nil
}

func (a *App) viewAll() error {
	records, err := a.catalog.List()
	if err != nil {
		fmt.Fprintf(a.out, "Unable to load catalog: %v\n", err)
		return nil
	}
	fmt.Fprintln(a.out, "\n--- Medicine List ---")
	a.printCatalog(records)

	value, err := a.catalog.TotalStockValue()
	if err == nil && len(records) > 0 {
		fmt.Fprintf(a.out, "Total stock value: %.2f\n", value)
	}
	return nil
}

func (a *App) searchByName() error {
	keyword, err := a.readLine("Enter name keyword: ")
	if err != nil {
		return err
	}
	matches, err := a.catalog.SearchByName(keyword)
	if err != nil {
		fmt.Fprintf(a.out, "Search failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "\nSearch results for %q:\n", keyword)
	if len(matches) == 0 {
		fmt.Fprintln(a.out, "No matches found.")
		return nil
	}
	for _, m := range matches {
		a.printMedicine(m)
	}
	return nil
}

func (a *App) updateMedicine() error {
	fmt.Fprintln(a.out, "\n--- Update Medicine ---")
	id, err := a.readInt("Enter medicine ID: ")
	if err != nil {
		fmt.Fprintln(a.out, "Invalid ID.")
		return nil
	}
	current, err := a.catalog.FindByID(id)
	if err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return nil
	}
	fmt.Fprintln(a.out, "Existing record:")
	a.printMedicine(current)
	fmt.Fprintln(a.out, "Leave a field blank to keep its current value.")

	var patch catalog.Patch
	if name, err := a.readLine(fmt.Sprintf("Name [%s]: ", current.Name)); err != nil {
		return err
	} else if name != "" {
		patch.Name = &name
	}
	if category, err := a.readLine(fmt.Sprintf("Category [%s]: ", current.Category)); err != nil {
		return err
	} else if category != "" {
		patch.Category = &category
	}
	if line, err := a.readLine(fmt.Sprintf("Price [%.2f]: ", current.Price)); err != nil {
		return err
	} else if line != "" {
		price, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid price.")
			return nil
		}
		patch.Price = &price
	}
	if line, err := a.readLine(fmt.Sprintf("Quantity [%d]: ", current.Quantity)); err != nil {
		return err
	} else if line != "" {
		quantity, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid quantity.")
			return nil
		}
		patch.Quantity = &quantity
	}
	if expiry, err := a.readLine(fmt.Sprintf("Expiry [%s]: ", current.Expiry)); err != nil {
		return err
	} else if expiry != "" {
		patch.Expiry = &expiry
	}

	updated, err := a.catalog.Update(id, patch)
	if err != nil {
		fmt.Fprintf(a.out, "Unable to update: %v\n", err)
		return nil
	}
	fmt.Fprintln(a.out, "Record updated:")
	a.printMedicine(updated)
	return nil
}

func (a *App) deleteMedicine() error {
	fmt.Fprintln(a.out, "\n--- Delete Medicine ---")
	id, err := a.readInt("Enter medicine ID: ")
	if err != nil {
		fmt.Fprintln(a.out, "Invalid ID.")
		return nil
	}
	if err := a.catalog.Delete(id); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "Medicine with ID %d deleted.\n", id)
	return nil
}

func (a *App) lowStockReport() error {
	low, err := a.catalog.LowStock(a.cfg.LowStockThreshold)
	if err != nil {
		fmt.Fprintf(a.out, "Unable to load catalog: %v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "\n--- Low Stock (<= %d) ---\n", a.cfg.LowStockThreshold)
	if len(low) == 0 {
		fmt.Fprintln(a.out, "No medicines running low.")
		return nil
	}
	for _, m := range low {
		a.printMedicine(m)
	}
	return nil
}

func (a *App) expiryReport() error {
	days, err := a.readInt("Days ahead to check (e.g., 30): ")
	if err != nil || days <= 0 {
		days = 30
	}
	expiring, err := a.catalog.ExpiringSoon(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		fmt.Fprintf(a.out, "Unable to load catalog: %v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "\n--- Expiring Within %d Days ---\n", days)
	if len(expiring) == 0 {
		fmt.Fprintln(a.out, "Nothing expiring in that window.")
		return nil
	}
	for _, m := range expiring {
		a.printMedicine(m)
	}
	return nil
}

func (a *App) viewTransactions(ctx context.Context) error {
	transactions, err := a.ledger.List(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Unable to load transactions: %v\n", err)
		return nil
	}
	fmt.Fprintln(a.out, "\n--- Transaction History ---")
	if len(transactions) == 0 {
		fmt.Fprintln(a.out, "No transactions found.")
		return nil
	}
	for _, t := range transactions {
		customer := t.CustomerName
		if customer == "" {
			customer = "(not provided)"
		}
		fmt.Fprintf(a.out, "#%d | %s | %s | Items: %d | Total: %.2f\n",
			t.ID, t.CreatedAt, customer, len(t.Items), t.Total)
	}
	count, revenue, err := a.ledger.Summary(ctx)
	if err == nil {
		fmt.Fprintf(a.out, "Total transactions: %d | Total sales: %.2f\n", count, revenue)
	}
	return nil
}
