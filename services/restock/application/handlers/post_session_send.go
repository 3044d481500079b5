package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/pkg/errhttp"
	"github.com/ghuser/restockhub/pkg/httpx"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
)

// PostSessionSendHandler handles POST /sessions/{sessionID}/send requests.
type PostSessionSendHandler struct {
	svc *appsvcs.Services
}

// NewPostSessionSendHandler returns a PostSessionSendHandler backed by the given services.
func NewPostSessionSendHandler(svc *appsvcs.Services) *PostSessionSendHandler {
	return &PostSessionSendHandler{svc: svc}
}

// Execute marks a session's generated emails as sent. This is the terminal
// state; a follow-up reminder is scheduled when the worker is configured.
//
//	@Summary		Mark sent
//	@Description	Marks the session's generated supplier emails as sent
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Success		200			{object}	SessionResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/send [post]
func (h *PostSessionSendHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	session, err := h.svc.Session.MarkSent(r.Context(), userID, chi.URLParam(r, "sessionID"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSessionResponse(session))
}
