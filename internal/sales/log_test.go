package sales

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstore/m/domain"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func sampleTransaction() domain.Transaction {
	return domain.Transaction{
		CustomerName: "Alice",
		Subtotal:     25.00,
		Tax:          1.25,
		Total:        26.25,
		CreatedAt:    "2026-08-29 10:15:00",
		Items: []domain.TransactionItem{
			{MedicineID: 1001, Name: "Paracetamol", UnitPrice: 10.00, Quantity: 2, Subtotal: 20.00},
			{MedicineID: 1002, Name: "Cough Syrup", UnitPrice: 5.00, Quantity: 1, Subtotal: 5.00},
		},
	}
}

func TestAppend_AssignsMonotonicIDs(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	first, err := l.Append(ctx, sampleTransaction())
	require.NoError(t, err)
	assert.Equal(t, int64(firstTransactionID), first)

	second, err := l.Append(ctx, sampleTransaction())
	require.NoError(t, err)
	assert.Equal(t, first+1, second)
}

func TestList_ReturnsNewestFirstWithItems(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	firstID, err := l.Append(ctx, sampleTransaction())
	require.NoError(t, err)

	second := sampleTransaction()
	second.CustomerName = ""
	second.Items = second.Items[:1]
	secondID, err := l.Append(ctx, second)
	require.NoError(t, err)

	got, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, secondID, got[0].ID)
	assert.Len(t, got[0].Items, 1)
	assert.Equal(t, firstID, got[1].ID)
	require.Len(t, got[1].Items, 2)
	assert.Equal(t, "Paracetamol", got[1].Items[0].Name)
	assert.Equal(t, int64(2), got[1].Items[0].Quantity)
	assert.Equal(t, "Alice", got[1].CustomerName)
}

func TestList_EmptyLedger(t *testing.T) {
	l := openTestLog(t)

	got, err := l.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSummary(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	count, revenue, err := l.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, revenue)

	_, err = l.Append(ctx, sampleTransaction())
	require.NoError(t, err)
	_, err = l.Append(ctx, sampleTransaction())
	require.NoError(t, err)

	count, revenue, err = l.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.InDelta(t, 52.50, revenue, 1e-9)
}

func TestReceiptLog_AppendsBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_history.txt")
	r := NewReceiptLog(path)

	tr := sampleTransaction()
	tr.ID = 5001
	require.NoError(t, r.Write(tr))

	anonymous := sampleTransaction()
	anonymous.ID = 5002
	anonymous.CustomerName = ""
	require.NoError(t, r.Write(anonymous))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "Transaction ID: 5001")
	assert.Contains(t, text, "Customer: Alice")
	assert.Contains(t, text, "Customer: (not provided)")
	assert.Contains(t, text, " - Paracetamol | ID:1001 | Qty:2 | Unit:10.00 | Line:20.00")
	assert.Contains(t, text, "Subtotal: 25.00")
	assert.Contains(t, text, "VAT: 1.25")
	assert.Contains(t, text, "Total: 26.25")
	assert.Equal(t, 2, strings.Count(text, receiptSeparator))
}
