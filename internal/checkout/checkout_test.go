package checkout

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstore/m/domain"
	"medstore/m/internal/cart"
	"medstore/m/internal/store"
)

type mockLedger struct {
	nextID       int64
	transactions []domain.Transaction
	err          error
}

func (m *mockLedger) Append(_ context.Context, t domain.Transaction) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	t.ID = m.nextID
	m.transactions = append(m.transactions, t)
	return t.ID, nil
}

type mockReceipt struct {
	written []domain.Transaction
	err     error
}

func (m *mockReceipt) Write(t domain.Transaction) error {
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, t)
	return nil
}

func newFixture(t *testing.T) (*Engine, *store.Store, *mockLedger, *mockReceipt) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "medicines.json"), 1001)
	require.NoError(t, st.SaveAll([]domain.Medicine{
		{ID: 1001, Name: "Paracetamol", Category: "Tablet", Price: 10.00, Quantity: 20},
		{ID: 1002, Name: "Cough Syrup", Category: "Syrup", Price: 5.00, Quantity: 8},
	}))
	ledger := &mockLedger{nextID: 5000}
	receipt := &mockReceipt{}
	return NewEngine(st, ledger, receipt, 0.05), st, ledger, receipt
}

func TestReview_ComputesTotalsWithoutMutating(t *testing.T) {
	engine, st, _, _ := newFixture(t)
	c := cart.New()
	require.NoError(t, c.AddItem(domain.Medicine{ID: 1001, Name: "Paracetamol", Price: 10.00, Quantity: 20}, 2))

	review := engine.Review(c)

	assert.Equal(t, StatusReviewing, review.Status)
	assert.InDelta(t, 20.00, review.Subtotal, 1e-9)
	assert.InDelta(t, 1.00, review.Tax, 1e-9)
	assert.InDelta(t, 21.00, review.Total, 1e-9)

	records, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(20), records[0].Quantity)
	assert.Equal(t, 1, c.Len())
}

func TestCheckout_Success(t *testing.T) {
	engine, st, ledger, receipt := newFixture(t)
	c := cart.New()
	require.NoError(t, c.AddItem(domain.Medicine{ID: 1001, Name: "Paracetamol", Price: 10.00, Quantity: 20}, 2))
	require.NoError(t, c.AddItem(domain.Medicine{ID: 1002, Name: "Cough Syrup", Price: 5.00, Quantity: 8}, 1))

	trans, err := engine.Checkout(context.Background(), c, "Alice")
	require.NoError(t, err)

	assert.Equal(t, int64(5001), trans.ID)
	assert.Equal(t, "Alice", trans.CustomerName)
	assert.InDelta(t, 25.00, trans.Subtotal, 1e-9)
	assert.InDelta(t, 1.25, trans.Tax, 1e-9)
	assert.InDelta(t, 26.25, trans.Total, 1e-9)
	require.Len(t, trans.Items, 2)
	assert.NotEmpty(t, trans.CreatedAt)

	records, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(18), records[0].Quantity)
	assert.Equal(t, int64(7), records[1].Quantity)

	require.Len(t, ledger.transactions, 1)
	assert.Len(t, ledger.transactions[0].Items, 2)
	assert.InDelta(t, 26.25, ledger.transactions[0].Total, 1e-9)

	require.Len(t, receipt.written, 1)
	assert.Equal(t, int64(5001), receipt.written[0].ID)

	assert.Equal(t, 0, c.Len())
}

func TestCheckout_RejectsWhenStockDropped(t *testing.T) {
	engine, st, ledger, receipt := newFixture(t)
	c := cart.New()
	require.NoError(t, c.AddItem(domain.Medicine{ID: 1001, Name: "Paracetamol", Price: 10.00, Quantity: 20}, 5))

	// Stock drops behind the cart's back.
	records, err := st.Load()
	require.NoError(t, err)
	records[0].Quantity = 3
	require.NoError(t, st.SaveAll(records))

	_, err = engine.Checkout(context.Background(), c, "")
	require.ErrorIs(t, err, cart.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Paracetamol")

	// Cart intact, catalog untouched, nothing recorded.
	assert.Equal(t, 1, c.Len())
	after, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(3), after[0].Quantity)
	assert.Equal(t, int64(8), after[1].Quantity)
	assert.Empty(t, ledger.transactions)
	assert.Empty(t, receipt.written)
}

func TestCheckout_RejectsWhenMedicineDeleted(t *testing.T) {
	engine, st, _, _ := newFixture(t)
	c := cart.New()
	require.NoError(t, c.AddItem(domain.Medicine{ID: 1001, Name: "Paracetamol", Price: 10.00, Quantity: 20}, 1))

	records, err := st.Load()
	require.NoError(t, err)
	require.NoError(t, st.SaveAll(records[1:]))

	_, err = engine.Checkout(context.Background(), c, "")
	require.ErrorIs(t, err, cart.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "no longer in the catalog")
	assert.Equal(t, 1, c.Len())
}

func TestCheckout_EmptyCart(t *testing.T) {
	engine, _, _, _ := newFixture(t)

	_, err := engine.Checkout(context.Background(), cart.New(), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_LedgerFailureKeepsCart(t *testing.T) {
	engine, _, ledger, receipt := newFixture(t)
	ledger.err = assert.AnError
	c := cart.New()
	require.NoError(t, c.AddItem(domain.Medicine{ID: 1001, Name: "Paracetamol", Price: 10.00, Quantity: 20}, 1))

	_, err := engine.Checkout(context.Background(), c, "")
	require.Error(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Empty(t, receipt.written)
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusCommitted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusOpen.IsTerminal())
	assert.Equal(t, "VALIDATING", StatusValidating.String())
}
