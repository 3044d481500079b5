package handlers

import (
	"net/http"

	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/pkg/errhttp"
	"github.com/ghuser/restockhub/pkg/httpx"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
)

// SessionListResponse is returned by the session list endpoint.
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
} // @name SessionListResponse

// GetSessionsHandler handles GET /sessions requests.
type GetSessionsHandler struct {
	svc *appsvcs.Services
}

// NewGetSessionsHandler returns a GetSessionsHandler backed by the given services.
func NewGetSessionsHandler(svc *appsvcs.Services) *GetSessionsHandler {
	return &GetSessionsHandler{svc: svc}
}

// Execute lists the authenticated user's sessions, newest first.
//
//	@Summary		List sessions
//	@Description	Lists all restock sessions owned by the authenticated user
//	@Tags			sessions
//	@Produce		json
//	@Success		200	{object}	SessionListResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/sessions [get]
func (h *GetSessionsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	sessions, err := h.svc.Session.List(r.Context(), userID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := SessionListResponse{Sessions: make([]SessionResponse, 0, len(sessions))}
	for _, session := range sessions {
		resp.Sessions = append(resp.Sessions, toSessionResponse(session))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
