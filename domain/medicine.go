package domain

// Medicine is one catalog record. Expiry is stored as DD/MM/YYYY text.
type Medicine struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Category string  `db:"category" json:"category"`
	Price    float64 `db:"price" json:"price"`
	Quantity int64   `db:"quantity" json:"quantity"`
	Expiry   string  `db:"expiry" json:"expiry"`
}
