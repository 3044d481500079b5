// Package handlers contains the HTTP handlers for the restock API. Each
// handler validates its request body, resolves the authenticated user, calls
// the application service and writes a JSON response.
package handlers

import (
	"time"

	"github.com/ghuser/restockhub/services/restock/domain/models"
)

// ItemResponse is the wire shape of one session line item.
type ItemResponse struct {
	ProductID     string `json:"product_id"     example:"prod-1"`
	ProductName   string `json:"product_name"   example:"Arabica Beans 1kg"`
	Quantity      int    `json:"quantity"       example:"12"`
	SupplierID    string `json:"supplier_id"    example:"sup-1"`
	SupplierName  string `json:"supplier_name"  example:"Beanline Wholesale"`
	SupplierEmail string `json:"supplier_email" example:"orders@beanline.example"`
	Notes         string `json:"notes,omitempty" example:"ask about bulk discount"`
} // @name ItemResponse

// SessionResponse is the wire shape of a restock session.
type SessionResponse struct {
	ID        string         `json:"id"         example:"6b4a9f2e-8c31-42d7-90aa-3f1be2d7c011"`
	UserID    string         `json:"user_id"    example:"usr-42"`
	Name      string         `json:"name"       example:"Restock Session 2026-08-30"`
	Status    string         `json:"status"     example:"draft"`
	Items     []ItemResponse `json:"items"`
	CreatedAt time.Time      `json:"created_at" example:"2026-08-30T10:30:00Z"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
} // @name SessionResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"session not found"`
} // @name ErrorResponse

func toItemResponse(item models.RestockItem) ItemResponse {
	return ItemResponse{
		ProductID:     item.ProductID,
		ProductName:   item.ProductName,
		Quantity:      item.Quantity,
		SupplierID:    item.SupplierID,
		SupplierName:  item.SupplierName,
		SupplierEmail: item.SupplierEmail,
		Notes:         item.Notes,
	}
}

func toSessionResponse(session *models.RestockSession) SessionResponse {
	items := session.Items()
	resp := SessionResponse{
		ID:        session.ID(),
		UserID:    session.UserID(),
		Name:      session.Name(),
		Status:    string(session.Status()),
		Items:     make([]ItemResponse, 0, len(items)),
		CreatedAt: session.CreatedAt(),
		UpdatedAt: session.UpdatedAt(),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	return resp
}
