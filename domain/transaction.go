package domain

// Transaction is one completed checkout. Rows are written once by the sales
// ledger and never mutated afterwards.
type Transaction struct {
	ID           int64             `db:"id" json:"id"`
	CustomerName string            `db:"customer_name" json:"customer_name,omitempty"`
	Subtotal     float64           `db:"subtotal" json:"subtotal"`
	Tax          float64           `db:"tax" json:"tax"`
	Total        float64           `db:"total" json:"total"`
	CreatedAt    string            `db:"created_at" json:"created_at"`
	Items        []TransactionItem `db:"-" json:"items"`
}

type TransactionItem struct {
	ID            int64   `db:"id" json:"id"`
	TransactionID int64   `db:"transaction_id" json:"transaction_id"`
	MedicineID    int64   `db:"medicine_id" json:"medicine_id"`
	Name          string  `db:"name" json:"name"`
	UnitPrice     float64 `db:"unit_price" json:"unit_price"`
	Quantity      int64   `db:"quantity" json:"quantity"`
	Subtotal      float64 `db:"subtotal" json:"subtotal"`
}
