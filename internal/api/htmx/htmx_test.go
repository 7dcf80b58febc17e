package htmx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRedirect(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		hx         bool
		wantStatus int
		wantHeader string
	}{
		{"plain get", http.MethodGet, false, http.StatusFound, "Location"},
		{"plain post", http.MethodPost, false, http.StatusSeeOther, "Location"},
		{"htmx post", http.MethodPost, true, http.StatusOK, "HX-Redirect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/peladas/1", nil)
			if tt.hx {
				req.Header.Set("HX-Request", "true")
			}
			recorder := httptest.NewRecorder()

			Redirect(recorder, req, "/login")

			if recorder.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, recorder.Code)
			}
			if got := recorder.Header().Get(tt.wantHeader); got != "/login" {
				t.Fatalf("expected %s=/login, got %q", tt.wantHeader, got)
			}
		})
	}
}

func TestIsRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if IsRequest(req) {
		t.Fatalf("expected plain request")
	}
	req.Header.Set("HX-Request", "TRUE")
	if !IsRequest(req) {
		t.Fatalf("expected htmx request")
	}
}
