package models

// RestockItem is a line within a session: one product, one supplier, one
// quantity. It is a value, identified only by ProductID within its session,
// never independently persisted.
type RestockItem struct {
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	Quantity      int    `json:"quantity"`
	SupplierID    string `json:"supplierId"`
	SupplierName  string `json:"supplierName"`
	SupplierEmail string `json:"supplierEmail"`
	Notes         string `json:"notes,omitempty"`
}

// validate checks the structural constraints of a line item. Quantity is
// checked first so its message wins when several fields are bad.
func (i RestockItem) validate() error {
	if err := requirePositive(i.Quantity); err != nil {
		return err
	}
	if err := requireNonEmpty(i.ProductID, "product id"); err != nil {
		return err
	}
	if err := requireNonEmpty(i.ProductName, "product name"); err != nil {
		return err
	}
	if err := requireNonEmpty(i.SupplierID, "supplier id"); err != nil {
		return err
	}
	if err := requireNonEmpty(i.SupplierName, "supplier name"); err != nil {
		return err
	}
	return requireNonEmpty(i.SupplierEmail, "supplier email")
}

// ItemPatch carries a partial update for a line item. Nil fields are left
// unchanged.
type ItemPatch struct {
	Quantity *int
	Notes    *string
}

// SupplierRef identifies a supplier referenced by one or more items.
type SupplierRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
