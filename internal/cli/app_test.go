package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"medstore/m/internal/catalog"
	"medstore/m/internal/checkout"
	"medstore/m/internal/config"
	"medstore/m/internal/sales"
	"medstore/m/internal/store"
)

func newTestApp(t *testing.T, script string) (*App, *store.Store, *sales.Log, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.Config{
		TaxRate:           0.05,
		StartID:           1001,
		LowStockThreshold: 5,
		AdminHash:         hash,
	}

	st := store.New(filepath.Join(dir, "medicines.json"), cfg.StartID)
	ledger, err := sales.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ledger.Close() })
	receipt := sales.NewReceiptLog(filepath.Join(dir, "sales_history.txt"))

	catalogSvc := catalog.NewService(st)
	engine := checkout.NewEngine(st, ledger, receipt, cfg.TaxRate)

	out := &bytes.Buffer{}
	app := New(catalogSvc, engine, ledger, cfg, strings.NewReader(script), out)
	return app, st, ledger, out
}

func TestRun_AdminAddThenCustomerCheckout(t *testing.T) {
	script := strings.Join([]string{
		"1",           // admin panel
		"admin123",    // password
		"1",           // add medicine
		"Paracetamol", // name
		"Tablet",      // category
		"10.00",       // price
		"20",          // quantity
		"01/06/2027",  // expiry
		"0",           // back to main menu
		"2",           // customer panel
		"3",           // add to cart
		"1001",        // medicine id
		"2",           // quantity
		"6",           // checkout
		"y",           // proceed
		"Alice",       // customer name
		"0",           // back to main menu
		"0",           // exit
	}, "\n") + "\n"

	app, st, ledger, out := newTestApp(t, script)
	require.NoError(t, app.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Medicine added with ID: 1001")
	assert.Contains(t, text, "Subtotal: 20.00")
	assert.Contains(t, text, "VAT (5%): 1.00")
	assert.Contains(t, text, "Total: 21.00")
	assert.Contains(t, text, "Payment successful.")

	records, err := st.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(18), records[0].Quantity)

	count, revenue, err := ledger.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.InDelta(t, 21.00, revenue, 1e-9)
}

func TestRun_RejectsWrongAdminPassword(t *testing.T) {
	script := "1\nwrong\n0\n"

	app, _, _, out := newTestApp(t, script)
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "Incorrect password.")
	assert.NotContains(t, out.String(), "Admin Panel ---")
}

func TestRun_InvalidMenuChoiceReprompts(t *testing.T) {
	script := "banana\n0\n"

	app, _, _, out := newTestApp(t, script)
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "Invalid choice.")
	assert.Contains(t, out.String(), "Goodbye!")
}
