package models

// CartLine is one menu item plus a quantity, the unit of storage in the cart.
// Catalog fields are carried through unchanged so the client can render the
// line without a second lookup.
type CartLine struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	Quantity int     `json:"quantity"`
}

// CartSnapshot is what every reader of the cart observes: the lines in
// insertion order plus totals recomputed at read time.
type CartSnapshot struct {
	Items       []CartLine `json:"items"`
	ItemCount   int        `json:"item_count"`
	TotalAmount float64    `json:"total_amount"`
}
