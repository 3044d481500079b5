package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/pkg/errhttp"
	"github.com/ghuser/restockhub/pkg/httpx"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
)

// SummaryResponse is the wire shape of a session summary.
type SummaryResponse struct {
	TotalItems        int    `json:"total_items"         example:"18"`
	TotalProducts     int    `json:"total_products"      example:"3"`
	SupplierCount     int    `json:"supplier_count"      example:"2"`
	Status            string `json:"status"              example:"draft"`
	IsEmpty           bool   `json:"is_empty"            example:"false"`
	CanGenerateEmails bool   `json:"can_generate_emails" example:"true"`
	CanSendEmails     bool   `json:"can_send_emails"     example:"false"`
} // @name SummaryResponse

// GetSessionSummaryHandler handles GET /sessions/{sessionID}/summary requests.
type GetSessionSummaryHandler struct {
	svc *appsvcs.Services
}

// NewGetSessionSummaryHandler returns a GetSessionSummaryHandler backed by the given services.
func NewGetSessionSummaryHandler(svc *appsvcs.Services) *GetSessionSummaryHandler {
	return &GetSessionSummaryHandler{svc: svc}
}

// Execute returns the session's derived counters and capabilities.
//
//	@Summary		Session summary
//	@Description	Returns aggregate counts and lifecycle capabilities for one session
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Success		200			{object}	SummaryResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/summary [get]
func (h *GetSessionSummaryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	summary, err := h.svc.Session.Summary(r.Context(), userID, chi.URLParam(r, "sessionID"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, SummaryResponse{
		TotalItems:        summary.TotalItems,
		TotalProducts:     summary.TotalProducts,
		SupplierCount:     summary.SupplierCount,
		Status:            string(summary.Status),
		IsEmpty:           summary.IsEmpty,
		CanGenerateEmails: summary.CanGenerateEmails,
		CanSendEmails:     summary.CanSendEmails,
	})
}
