package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flipdeck/flipdeck/internal/core"
)

func TestJSON_EnvelopesSummaryPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]any{
		"totalTrades": 12,
		"winRate":     58.3,
	})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got SuccessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data, ok := got.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T, want object", got.Data)
	}
	if data["totalTrades"] != float64(12) {
		t.Errorf("totalTrades = %v", data["totalTrades"])
	}
	if got.Meta.Timestamp.IsZero() {
		t.Error("meta timestamp not stamped")
	}
}

func TestError_CoreErrorPassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, core.ErrPhaseNotFound)

	var got ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Error.Code != "PHASE_NOT_FOUND" {
		t.Errorf("code = %q, want PHASE_NOT_FOUND", got.Error.Code)
	}
	if got.Error.Message != "phase not found" {
		t.Errorf("message = %q", got.Error.Message)
	}
	if got.Error.Cause != "" {
		t.Errorf("cause should be empty, got %q", got.Error.Cause)
	}
}

func TestError_WrappedCauseSurfaces(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusInternalServerError,
		core.WrapError(core.ErrArchiveFailed, errors.New("bucket unreachable")))

	var got ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Error.Code != "ARCHIVE_FAILED" {
		t.Errorf("code = %q", got.Error.Code)
	}
	if got.Error.Cause != "bucket unreachable" {
		t.Errorf("cause = %q", got.Error.Cause)
	}
}

func TestError_PlainErrorCollapses(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusInternalServerError, errors.New("sql: connection reset"))

	var got ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", got.Error.Code)
	}
	if got.Error.Message == "sql: connection reset" {
		t.Error("internal detail leaked into message")
	}
}
