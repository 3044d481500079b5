package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	restockdomain "github.com/ghuser/restockhub/services/restock/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrSessionNotFound", restockdomain.ErrSessionNotFound, http.StatusNotFound},
		{"ErrItemNotFound", restockdomain.ErrItemNotFound, http.StatusNotFound},
		{"ErrProductNotFound", restockdomain.ErrProductNotFound, http.StatusNotFound},
		{"ErrSupplierNotFound", restockdomain.ErrSupplierNotFound, http.StatusNotFound},
		{"ErrSessionExists", restockdomain.ErrSessionExists, http.StatusConflict},
		{"ErrDuplicateItem", restockdomain.ErrDuplicateItem, http.StatusConflict},
		{"ErrValidation", restockdomain.ErrValidation, http.StatusUnprocessableEntity},
		{"ErrInvalidTransition", restockdomain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"wrapped ErrSessionNotFound", fmt.Errorf("load session: %w", restockdomain.ErrSessionNotFound), http.StatusNotFound},
		{"wrapped duplicate beats validation", fmt.Errorf("%w: Product A is already in this session", restockdomain.ErrDuplicateItem), http.StatusConflict},
		{"wrapped ErrValidation", fmt.Errorf("%w: Quantity must be greater than zero", restockdomain.ErrValidation), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, restockdomain.ErrSessionNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "session not found" {
		t.Fatalf("unexpected body %v", body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
}
