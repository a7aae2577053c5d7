package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medstore/m/domain"
	"medstore/m/internal/cart"
	"medstore/m/internal/store"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// Ledger receives the structured record of a committed checkout.
type Ledger interface {
	Append(ctx context.Context, t domain.Transaction) (int64, error)
}

// ReceiptWriter appends the human-readable receipt of a committed checkout.
type ReceiptWriter interface {
	Write(t domain.Transaction) error
}

// Review is a display-only view of the cart totals; nothing is mutated to
// produce one.
type Review struct {
	Status   Status
	Lines    []domain.CartLine
	Subtotal float64
	Tax      float64
	Total    float64
}

// Engine converts a cart into a stock decrement plus a persisted
// transaction record.
type Engine struct {
	store   *store.Store
	ledger  Ledger
	receipt ReceiptWriter
	taxRate float64
	now     func() time.Time
}

func NewEngine(st *store.Store, ledger Ledger, receipt ReceiptWriter, taxRate float64) *Engine {
	return &Engine{store: st, ledger: ledger, receipt: receipt, taxRate: taxRate, now: time.Now}
}

// Review computes the invoice view of the cart at the configured tax rate.
func (e *Engine) Review(c *cart.Cart) Review {
	return Review{
		Status:   StatusReviewing,
		Lines:    c.Lines(),
		Subtotal: c.Subtotal(),
		Tax:      c.Tax(e.taxRate),
		Total:    c.Total(e.taxRate),
	}
}

// Checkout validates the cart against a fresh catalog snapshot, applies the
// stock decrements in one catalog write, records the transaction in the
// ledger and the receipt log, and clears the cart.
//
// A failed stock check rejects the whole checkout: no stock is mutated and
// the cart is left intact for the customer to adjust. Only storage failures
// come back as unexpected errors.
func (e *Engine) Checkout(ctx context.Context, c *cart.Cart, customerName string) (domain.Transaction, error) {
	if c.Len() == 0 {
		return domain.Transaction{}, ErrEmptyCart
	}

	// Validating: the catalog may have changed since items were added.
	records, err := e.store.Load()
	if err != nil {
		return domain.Transaction{}, err
	}
	byID := make(map[int64]int, len(records))
	for i, m := range records {
		byID[m.ID] = i
	}
	lines := c.Lines()
	for _, line := range lines {
		i, ok := byID[line.MedicineID]
		if !ok {
			return domain.Transaction{}, fmt.Errorf("%w: %s (id %d) is no longer in the catalog",
				cart.ErrInsufficientStock, line.Name, line.MedicineID)
		}
		if records[i].Quantity < line.Quantity {
			return domain.Transaction{}, fmt.Errorf("%w: %s has %d in stock, cart wants %d",
				cart.ErrInsufficientStock, line.Name, records[i].Quantity, line.Quantity)
		}
	}

	// Committed: every decrement lands in one SaveAll.
	for _, line := range lines {
		records[byID[line.MedicineID]].Quantity -= line.Quantity
	}
	if err := e.store.SaveAll(records); err != nil {
		return domain.Transaction{}, err
	}

	subtotal := c.Subtotal()
	tax := c.Tax(e.taxRate)
	trans := domain.Transaction{
		CustomerName: strings.TrimSpace(customerName),
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        subtotal + tax,
		CreatedAt:    e.now().Format("2006-01-02 15:04:05"),
	}
	for _, line := range lines {
		trans.Items = append(trans.Items, domain.TransactionItem{
			MedicineID: line.MedicineID,
			Name:       line.Name,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			Subtotal:   line.LineTotal(),
		})
	}

	id, err := e.ledger.Append(ctx, trans)
	if err != nil {
		return domain.Transaction{}, err
	}
	trans.ID = id
	for i := range trans.Items {
		trans.Items[i].TransactionID = id
	}

	if err := e.receipt.Write(trans); err != nil {
		return domain.Transaction{}, err
	}

	c.Clear()
	return trans, nil
}
