package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/pkg/errhttp"
	"github.com/ghuser/restockhub/pkg/httpx"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
)

// DeleteSessionItemHandler handles DELETE /sessions/{sessionID}/items/{productID} requests.
type DeleteSessionItemHandler struct {
	svc *appsvcs.Services
}

// NewDeleteSessionItemHandler returns a DeleteSessionItemHandler backed by the given services.
func NewDeleteSessionItemHandler(svc *appsvcs.Services) *DeleteSessionItemHandler {
	return &DeleteSessionItemHandler{svc: svc}
}

// Execute removes one line item. Removing a product that is not in the
// session succeeds and returns the unchanged session.
//
//	@Summary		Remove item
//	@Description	Removes a product line from a draft session
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Param			productID	path		string	true	"Product ID"
//	@Success		200			{object}	SessionResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/items/{productID} [delete]
func (h *DeleteSessionItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	session, err := h.svc.Session.RemoveItem(
		r.Context(),
		userID,
		chi.URLParam(r, "sessionID"),
		chi.URLParam(r, "productID"),
	)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSessionResponse(session))
}
