package sales

import (
	"fmt"
	"os"
	"strings"

	"medstore/m/domain"
)

const receiptSeparator = "----------------------------------------"

// ReceiptLog appends one human-readable block per checkout to a text file.
// The file is never rewritten.
type ReceiptLog struct {
	path string
}

func NewReceiptLog(path string) *ReceiptLog {
	return &ReceiptLog{path: path}
}

// Write appends the receipt block for the transaction.
func (r *ReceiptLog) Write(t domain.Transaction) error {
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open receipt log: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	fmt.Fprintf(&b, "Transaction ID: %d\n", t.ID)
	fmt.Fprintf(&b, "Purchase Time: %s\n", t.CreatedAt)
	if t.CustomerName != "" {
		fmt.Fprintf(&b, "Customer: %s\n", t.CustomerName)
	} else {
		b.WriteString("Customer: (not provided)\n")
	}
	b.WriteString("Items:\n")
	for _, item := range t.Items {
		fmt.Fprintf(&b, " - %s | ID:%d | Qty:%d | Unit:%.2f | Line:%.2f\n",
			item.Name, item.MedicineID, item.Quantity, item.UnitPrice, item.Subtotal)
	}
	fmt.Fprintf(&b, "Subtotal: %.2f\n", t.Subtotal)
	fmt.Fprintf(&b, "VAT: %.2f\n", t.Tax)
	fmt.Fprintf(&b, "Total: %.2f\n", t.Total)
	b.WriteString(receiptSeparator + "\n")

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("append receipt: %w", err)
	}
	return nil
}
