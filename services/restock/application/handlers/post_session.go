package handlers

import (
	"net/http"

	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/pkg/errhttp"
	"github.com/ghuser/restockhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/restockhub/pkg/validator"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
)

// CreateSessionRequest is the request body for POST /sessions.
// Name is optional; a blank name gets a dated default.
type CreateSessionRequest struct {
	Name string `json:"name" validate:"omitempty,max=255" example:"September coffee order"`
} // @name CreateSessionRequest

// PostSessionHandler handles POST /sessions requests.
type PostSessionHandler struct {
	svc *appsvcs.Services
}

// NewPostSessionHandler returns a PostSessionHandler backed by the given services.
func NewPostSessionHandler(svc *appsvcs.Services) *PostSessionHandler {
	return &PostSessionHandler{svc: svc}
}

// Execute creates a new draft restock session.
//
//	@Summary		Create session
//	@Description	Creates a new draft restock session for the authenticated user
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSessionRequest	true	"Session creation request"
//	@Success		201		{object}	SessionResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/sessions [post]
func (h *PostSessionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateSessionRequest](w, r)
	if !ok {
		return
	}

	session, err := h.svc.Session.Create(r.Context(), userID, req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toSessionResponse(session))
}
