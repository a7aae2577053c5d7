package cart

import (
	"errors"
	"fmt"

	"medstore/m/domain"
)

var (
	ErrItemNotFound      = errors.New("item not in cart")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Cart is one customer session's pending selection. It is never persisted
// and holds at most one line per medicine; lines always have quantity > 0.
type Cart struct {
	lines []domain.CartLine
}

func New() *Cart {
	return &Cart{}
}

// AddItem puts qty units of the medicine in the cart, merging into an
// existing line for the same medicine. The single-call stock check is
// against the record passed in; the full cart is re-validated against a
// fresh catalog snapshot at checkout.
func (c *Cart) AddItem(med domain.Medicine, qty int64) error {
	if qty <= 0 || qty > med.Quantity {
		return fmt.Errorf("%w: %s has %d in stock, requested %d", ErrInsufficientStock, med.Name, med.Quantity, qty)
	}
	for i := range c.lines {
		if c.lines[i].MedicineID == med.ID {
			c.lines[i].Quantity += qty
			return nil
		}
	}
	c.lines = append(c.lines, domain.CartLine{
		MedicineID: med.ID,
		Name:       med.Name,
		UnitPrice:  med.Price,
		Quantity:   qty,
	})
	return nil
}

// RemoveItem takes qty units of the medicine out of the cart. A qty of zero
// or less, or at least the line's quantity, removes the line entirely.
func (c *Cart) RemoveItem(medicineID, qty int64) error {
	for i := range c.lines {
		if c.lines[i].MedicineID != medicineID {
			continue
		}
		if qty <= 0 || qty >= c.lines[i].Quantity {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity -= qty
		}
		return nil
	}
	return fmt.Errorf("%w: medicine id %d", ErrItemNotFound, medicineID)
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Subtotal sums the line totals at their snapshot prices.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.LineTotal()
	}
	return sum
}

// Tax is the VAT due on the cart at the given rate.
func (c *Cart) Tax(rate float64) float64 {
	return c.Subtotal() * rate
}

// Total is subtotal plus tax at the given rate.
func (c *Cart) Total(rate float64) float64 {
	subtotal := c.Subtotal()
	return subtotal + subtotal*rate
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}
