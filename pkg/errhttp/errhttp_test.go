package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	reorderdomain "github.com/ghuser/restockd/services/reorder/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", reorderdomain.ErrItemNotFound, http.StatusNotFound},
		{"ErrVendorNotFound", reorderdomain.ErrVendorNotFound, http.StatusNotFound},
		{"ErrProfileNotFound", reorderdomain.ErrProfileNotFound, http.StatusNotFound},
		{"ErrOrderNotFound", reorderdomain.ErrOrderNotFound, http.StatusNotFound},
		{"ErrItemAlreadyExists", reorderdomain.ErrItemAlreadyExists, http.StatusConflict},
		{"ErrVendorAlreadyExists", reorderdomain.ErrVendorAlreadyExists, http.StatusConflict},
		{"ErrInvalidReorderSettings", reorderdomain.ErrInvalidReorderSettings, http.StatusUnprocessableEntity},
		{"wrapped ErrItemNotFound", fmt.Errorf("get item: %w", reorderdomain.ErrItemNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidReorderSettings", fmt.Errorf("%w: negative reorder level", reorderdomain.ErrInvalidReorderSettings), http.StatusUnprocessableEntity},
		{"ErrMissingVendor is internal", reorderdomain.ErrMissingVendor, http.StatusInternalServerError},
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
	WriteError(w, reorderdomain.ErrItemNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, reorderdomain.ErrItemNotFound)

	ct := w.Header().Get("Content-Type")
	if !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
}
