// Package services contains stateless domain services for the restock bounded
// context. Domain services coordinate the session aggregate with externally
// supplied catalog data; they perform no I/O; callers fetch the lookups.
package services

import (
	"strings"

	restockdomain "github.com/ghuser/restockhub/services/restock/domain"
	"github.com/ghuser/restockhub/services/restock/domain/models"
	"github.com/ghuser/restockhub/services/restock/domain/repositories"
)

// ItemRequest is the user-friendly shape for adding a line to a session:
// names and an email instead of identifiers.
type ItemRequest struct {
	ProductName   string
	Quantity      int
	SupplierName  string
	SupplierEmail string
	Notes         string
}

// AddItemResult pairs the updated session with the item that was added.
type AddItemResult struct {
	Session *models.RestockSession
	Item    models.RestockItem
}

// Summary is a pure projection of a session's derived state, recomputed on
// every call.
type Summary struct {
	TotalItems        int           `json:"totalItems"`
	TotalProducts     int           `json:"totalProducts"`
	SupplierCount     int           `json:"supplierCount"`
	Status            models.Status `json:"status"`
	IsEmpty           bool          `json:"isEmpty"`
	CanGenerateEmails bool          `json:"canGenerateEmails"`
	CanSendEmails     bool          `json:"canSendEmails"`
}

// AddProductToSession builds a RestockItem from known catalog records and
// delegates to the session. Fails when product or supplier is absent.
func AddProductToSession(
	session *models.RestockSession,
	product *models.Product,
	supplier *models.Supplier,
	quantity int,
	notes string,
) (*models.RestockSession, models.RestockItem, error) {
	if product == nil {
		return nil, models.RestockItem{}, restockdomain.ErrProductNotFound
	}
	if supplier == nil {
		return nil, models.RestockItem{}, restockdomain.ErrSupplierNotFound
	}

	item := models.RestockItem{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      quantity,
		SupplierID:    supplier.ID,
		SupplierName:  supplier.Name,
		SupplierEmail: supplier.Email,
		Notes:         notes,
	}

	updated, err := session.AddItem(item)
	if err != nil {
		return nil, models.RestockItem{}, err
	}
	return updated, item, nil
}

// AddItemToSession resolves req against the supplied catalog lists and adds
// the resulting item to the session.
//
// Products match on name and suppliers on email, case-insensitively. When no
// match exists, a fresh identifier is generated and the item proceeds as a
// new, transient product or supplier. The catalog itself is never written
// here.
func AddItemToSession(
	session *models.RestockSession,
	req ItemRequest,
	products []models.Product,
	suppliers []models.Supplier,
	ids repositories.IDGenerator,
) (AddItemResult, error) {
	product := resolveProduct(req.ProductName, products)
	if product == nil {
		product = &models.Product{ID: ids.NewID(), Name: req.ProductName}
	}

	supplier := resolveSupplier(req.SupplierEmail, suppliers)
	if supplier == nil {
		supplier = &models.Supplier{
			ID:    ids.NewID(),
			Name:  req.SupplierName,
			Email: req.SupplierEmail,
		}
	}

	updated, item, err := AddProductToSession(session, product, supplier, req.Quantity, req.Notes)
	if err != nil {
		return AddItemResult{}, err
	}
	return AddItemResult{Session: updated, Item: item}, nil
}

// CalculateSummary projects the session's derived counters and capabilities.
func CalculateSummary(session *models.RestockSession) Summary {
	return Summary{
		TotalItems:        session.TotalQuantity(),
		TotalProducts:     len(session.Items()),
		SupplierCount:     session.UniqueSupplierCount(),
		Status:            session.Status(),
		IsEmpty:           session.IsEmpty(),
		CanGenerateEmails: session.CanGenerateEmails(),
		CanSendEmails:     session.CanSendEmails(),
	}
}

func resolveProduct(name string, products []models.Product) *models.Product {
	for i := range products {
		if strings.EqualFold(products[i].Name, name) {
			return &products[i]
		}
	}
	return nil
}

func resolveSupplier(email string, suppliers []models.Supplier) *models.Supplier {
	for i := range suppliers {
		if strings.EqualFold(suppliers[i].Email, email) {
			return &suppliers[i]
		}
	}
	return nil
}
