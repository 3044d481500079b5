package models

// Product is a read-only catalog record referenced by restock items.
// The session never owns or mutates products; it only holds their identifiers.
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Supplier is a read-only catalog record referenced by restock items.
type Supplier struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
