package domain

// CartLine is one entry of a customer's in-progress selection. Name and
// UnitPrice are snapshots taken when the line was added; the catalog record
// may change afterwards, stock is re-checked at checkout.
type CartLine struct {
	MedicineID int64   `json:"medicine_id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int64   `json:"quantity"`
}

// LineTotal is the extended price of the line.
func (l CartLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}
