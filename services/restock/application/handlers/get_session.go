package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/pkg/errhttp"
	"github.com/ghuser/restockhub/pkg/httpx"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
)

// GetSessionHandler handles GET /sessions/{sessionID} requests.
type GetSessionHandler struct {
	svc *appsvcs.Services
}

// NewGetSessionHandler returns a GetSessionHandler backed by the given services.
func NewGetSessionHandler(svc *appsvcs.Services) *GetSessionHandler {
	return &GetSessionHandler{svc: svc}
}

// Execute fetches a single session.
//
//	@Summary		Get session
//	@Description	Fetches one restock session owned by the authenticated user
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Success		200			{object}	SessionResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/sessions/{sessionID} [get]
func (h *GetSessionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	session, err := h.svc.Session.GetByID(r.Context(), userID, chi.URLParam(r, "sessionID"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSessionResponse(session))
}
