package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/pkg/errhttp"
	"github.com/ghuser/restockhub/pkg/httpx"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
)

// DeleteSessionHandler handles DELETE /sessions/{sessionID} requests.
type DeleteSessionHandler struct {
	svc *appsvcs.Services
}

// NewDeleteSessionHandler returns a DeleteSessionHandler backed by the given services.
func NewDeleteSessionHandler(svc *appsvcs.Services) *DeleteSessionHandler {
	return &DeleteSessionHandler{svc: svc}
}

// Execute deletes a session.
//
//	@Summary		Delete session
//	@Description	Deletes one restock session owned by the authenticated user
//	@Tags			sessions
//	@Param			sessionID	path	string	true	"Session ID"
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/sessions/{sessionID} [delete]
func (h *DeleteSessionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	if err := h.svc.Session.Delete(r.Context(), userID, chi.URLParam(r, "sessionID")); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
