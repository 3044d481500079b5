package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/pkg/errhttp"
	"github.com/ghuser/restockhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/restockhub/pkg/validator"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
	"github.com/ghuser/restockhub/services/restock/domain/models"
)

// UpdateItemRequest is the request body for PATCH
// /sessions/{sessionID}/items/{productID}. Absent fields are left unchanged.
type UpdateItemRequest struct {
	Quantity *int    `json:"quantity" validate:"omitempty,gt=0" example:"6"`
	Notes    *string `json:"notes"    validate:"omitempty,max=1000"`
} // @name UpdateItemRequest

// PatchSessionItemHandler handles PATCH /sessions/{sessionID}/items/{productID} requests.
type PatchSessionItemHandler struct {
	svc *appsvcs.Services
}

// NewPatchSessionItemHandler returns a PatchSessionItemHandler backed by the given services.
func NewPatchSessionItemHandler(svc *appsvcs.Services) *PatchSessionItemHandler {
	return &PatchSessionItemHandler{svc: svc}
}

// Execute updates the quantity or notes of one line item.
//
//	@Summary		Update item
//	@Description	Updates quantity and/or notes of one line item in a draft session
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string				true	"Session ID"
//	@Param			productID	path		string				true	"Product ID"
//	@Param			request		body		UpdateItemRequest	true	"Fields to change"
//	@Success		200			{object}	SessionResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/items/{productID} [patch]
func (h *PatchSessionItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	session, err := h.svc.Session.UpdateItem(
		r.Context(),
		userID,
		chi.URLParam(r, "sessionID"),
		chi.URLParam(r, "productID"),
		models.ItemPatch{Quantity: req.Quantity, Notes: req.Notes},
	)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSessionResponse(session))
}
