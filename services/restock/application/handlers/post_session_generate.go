package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/pkg/errhttp"
	"github.com/ghuser/restockhub/pkg/httpx"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
)

// PostSessionGenerateHandler handles POST /sessions/{sessionID}/generate requests.
type PostSessionGenerateHandler struct {
	svc *appsvcs.Services
}

// NewPostSessionGenerateHandler returns a PostSessionGenerateHandler backed by the given services.
func NewPostSessionGenerateHandler(svc *appsvcs.Services) *PostSessionGenerateHandler {
	return &PostSessionGenerateHandler{svc: svc}
}

// Execute moves a non-empty draft session to email_generated.
//
//	@Summary		Generate emails
//	@Description	Marks the session's supplier emails as generated
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Success		200			{object}	SessionResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/generate [post]
func (h *PostSessionGenerateHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	session, err := h.svc.Session.GenerateEmails(r.Context(), userID, chi.URLParam(r, "sessionID"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSessionResponse(session))
}
