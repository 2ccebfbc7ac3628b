package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "valid key reaches handler",
			configured: "journal-secret",
			provided:   "journal-secret",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing key rejected",
			configured: "journal-secret",
			provided:   "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong key rejected",
			configured: "journal-secret",
			provided:   "guess",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty config disables auth",
			configured: "",
			provided:   "",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			handler := APIKeyAuth(tt.configured)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/api/summary", nil)
			if tt.provided != "" {
				req.Header.Set("X-API-Key", tt.provided)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if nextCalled != tt.wantNext {
				t.Errorf("next called = %v, want %v", nextCalled, tt.wantNext)
			}
		})
	}
}

func TestAPIKeyAuth_RejectionEnvelope(t *testing.T) {
	handler := APIKeyAuth("journal-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a key")
	}))

	req := httptest.NewRequest("GET", "/api/phases", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Error.Code != "UNAUTHORIZED" {
		t.Errorf("code = %q, want UNAUTHORIZED", body.Error.Code)
	}
}
