package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/pkg/errhttp"
	"github.com/ghuser/restockhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/restockhub/pkg/validator"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
)

// RenameSessionRequest is the request body for PATCH /sessions/{sessionID}/name.
type RenameSessionRequest struct {
	Name string `json:"name" validate:"required,max=255" example:"October coffee order"`
} // @name RenameSessionRequest

// PatchSessionNameHandler handles PATCH /sessions/{sessionID}/name requests.
type PatchSessionNameHandler struct {
	svc *appsvcs.Services
}

// NewPatchSessionNameHandler returns a PatchSessionNameHandler backed by the given services.
func NewPatchSessionNameHandler(svc *appsvcs.Services) *PatchSessionNameHandler {
	return &PatchSessionNameHandler{svc: svc}
}

// Execute renames a session.
//
//	@Summary		Rename session
//	@Description	Sets a new name on a restock session
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string					true	"Session ID"
//	@Param			request		body		RenameSessionRequest	true	"New session name"
//	@Success		200			{object}	SessionResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/name [patch]
func (h *PatchSessionNameHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[RenameSessionRequest](w, r)
	if !ok {
		return
	}

	session, err := h.svc.Session.Rename(r.Context(), userID, chi.URLParam(r, "sessionID"), req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSessionResponse(session))
}
