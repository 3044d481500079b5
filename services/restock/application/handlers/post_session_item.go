package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/pkg/errhttp"
	"github.com/ghuser/restockhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/restockhub/pkg/validator"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
	domainsvcs "github.com/ghuser/restockhub/services/restock/domain/services"
)

// AddItemRequest is the request body for POST /sessions/{sessionID}/items.
// Products and suppliers are matched against the user's catalog by name and
// email; unknown ones are created on the fly.
type AddItemRequest struct {
	ProductName   string `json:"product_name"   validate:"required,max=255" example:"Arabica Beans 1kg"`
	Quantity      int    `json:"quantity"       validate:"required,gt=0"    example:"12"`
	SupplierName  string `json:"supplier_name"  validate:"required,max=255" example:"Beanline Wholesale"`
	SupplierEmail string `json:"supplier_email" validate:"required,email"   example:"orders@beanline.example"`
	Notes         string `json:"notes"          validate:"omitempty,max=1000"`
} // @name AddItemRequest

// AddItemResponse pairs the updated session with the item that was added.
type AddItemResponse struct {
	Session SessionResponse `json:"session"`
	Item    ItemResponse    `json:"item"`
} // @name AddItemResponse

// PostSessionItemHandler handles POST /sessions/{sessionID}/items requests.
type PostSessionItemHandler struct {
	svc *appsvcs.Services
}

// NewPostSessionItemHandler returns a PostSessionItemHandler backed by the given services.
func NewPostSessionItemHandler(svc *appsvcs.Services) *PostSessionItemHandler {
	return &PostSessionItemHandler{svc: svc}
}

// Execute adds a line item to a draft session.
//
//	@Summary		Add item
//	@Description	Adds a product line to a draft restock session
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string			true	"Session ID"
//	@Param			request		body		AddItemRequest	true	"Item to add"
//	@Success		201			{object}	AddItemResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/items [post]
func (h *PostSessionItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[AddItemRequest](w, r)
	if !ok {
		return
	}

	session, item, err := h.svc.Session.AddItem(r.Context(), userID, chi.URLParam(r, "sessionID"), domainsvcs.ItemRequest{
		ProductName:   req.ProductName,
		Quantity:      req.Quantity,
		SupplierName:  req.SupplierName,
		SupplierEmail: req.SupplierEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, AddItemResponse{
		Session: toSessionResponse(session),
		Item:    toItemResponse(item),
	})
}
