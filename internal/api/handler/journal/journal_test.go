package journal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	journalpkg "github.com/flipdeck/flipdeck/internal/journal"
	"github.com/flipdeck/flipdeck/internal/risk"
)

type stubSource struct {
	book   *journalpkg.Book
	policy risk.Policy
}

func (s *stubSource) Book() *journalpkg.Book { return s.book }
func (s *stubSource) Policy() risk.Policy    { return s.policy }

func newStub() *stubSource {
	book := journalpkg.NewBook(journalpkg.DefaultSettings())
	book.StartPhase(100, 5, 0, "2024-03-01")
	book.CompleteTrade(1, 1, "2024-03-01", 20)
	book.CompleteTrade(1, 2, "2024-03-02", -10)
	return &stubSource{book: book, policy: risk.Default()}
}

// decodeData unwraps the response envelope's data field into v.
func decodeData(t *testing.T, body []byte, v any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decoding envelope: %v\n%s", err, body)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("decoding data: %v\n%s", err, envelope.Data)
	}
}

func TestHandler_Summary(t *testing.T) {
	h := NewHandler(newStub())

	w := httptest.NewRecorder()
	h.Summary(w, httptest.NewRequest("GET", "/api/summary", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var data struct {
		Metrics struct {
			TotalTrades int     `json:"totalTrades"`
			WinRate     float64 `json:"winRate"`
		} `json:"metrics"`
		DrawdownPercent float64 `json:"drawdownPercent"`
	}
	decodeData(t, w.Body.Bytes(), &data)

	if data.Metrics.TotalTrades != 2 || data.Metrics.WinRate != 50 {
		t.Errorf("metrics = %+v", data.Metrics)
	}
	if data.DrawdownPercent != 10 {
		t.Errorf("drawdownPercent = %v, want 10", data.DrawdownPercent)
	}
}

func TestHandler_Equity_SparseAndDense(t *testing.T) {
	h := NewHandler(newStub())

	w := httptest.NewRecorder()
	h.Equity(w, httptest.NewRequest("GET", "/api/equity", nil))

	var sparse []map[string]any
	decodeData(t, w.Body.Bytes(), &sparse)
	// Anchor plus two trades.
	if len(sparse) != 3 {
		t.Errorf("sparse len = %d, want 3", len(sparse))
	}

	w = httptest.NewRecorder()
	h.Equity(w, httptest.NewRequest("GET", "/api/equity?dense=1", nil))

	var dense []map[string]any
	decodeData(t, w.Body.Bytes(), &dense)
	// Two trade days plus the 7-day buffer.
	if len(dense) != 9 {
		t.Errorf("dense len = %d, want 9", len(dense))
	}
}

func TestHandler_Equity_EmptyJournal(t *testing.T) {
	stub := &stubSource{book: journalpkg.NewBook(journalpkg.DefaultSettings()), policy: risk.Default()}
	h := NewHandler(stub)

	w := httptest.NewRecorder()
	h.Equity(w, httptest.NewRequest("GET", "/api/equity", nil))

	// Empty array, never null.
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}

func TestHandler_Distribution(t *testing.T) {
	h := NewHandler(newStub())

	w := httptest.NewRecorder()
	h.Distribution(w, httptest.NewRequest("GET", "/api/distribution", nil))

	var buckets []struct {
		Risk  string `json:"risk"`
		Count int    `json:"count"`
	}
	decodeData(t, w.Body.Bytes(), &buckets)
	if len(buckets) != 5 {
		t.Errorf("buckets = %d, want 5", len(buckets))
	}
}

func TestHandler_Consistency_FewTrades(t *testing.T) {
	h := NewHandler(newStub())

	w := httptest.NewRecorder()
	h.Consistency(w, httptest.NewRequest("GET", "/api/consistency", nil))

	var data struct {
		Score float64 `json:"score"`
	}
	decodeData(t, w.Body.Bytes(), &data)
	// Under ten completed trades the score floors at zero.
	if data.Score != 0 {
		t.Errorf("score = %v, want 0", data.Score)
	}
}

func TestHandler_Warnings(t *testing.T) {
	stub := newStub()
	// Three straight losses trip the streak rule.
	stub.book.CompleteTrade(1, 3, "2024-03-03", -1)
	stub.book.CompleteTrade(1, 4, "2024-03-04", -1)
	stub.book.CompleteTrade(1, 5, "2024-03-05", -1)
	h := NewHandler(stub)

	w := httptest.NewRecorder()
	h.Warnings(w, httptest.NewRequest("GET", "/api/warnings", nil))

	var warnings []struct {
		Phase    int      `json:"phase"`
		Warnings []string `json:"warnings"`
	}
	decodeData(t, w.Body.Bytes(), &warnings)
	if len(warnings) != 1 || warnings[0].Phase != 1 {
		t.Fatalf("warnings = %+v", warnings)
	}
	found := false
	for _, msg := range warnings[0].Warnings {
		if strings.Contains(msg, "consecutive losses") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a loss streak warning, got %v", warnings[0].Warnings)
	}
}

func TestHandler_Phases(t *testing.T) {
	h := NewHandler(newStub())

	w := httptest.NewRecorder()
	h.Phases(w, httptest.NewRequest("GET", "/api/phases", nil))

	var data struct {
		Current int               `json:"current"`
		Active  []journalpkg.Phase `json:"active"`
	}
	decodeData(t, w.Body.Bytes(), &data)
	if data.Current != 1 || len(data.Active) != 1 {
		t.Errorf("phases = %+v", data)
	}
}

func TestHandler_Goals(t *testing.T) {
	h := NewHandler(newStub())

	w := httptest.NewRecorder()
	h.Goals(w, httptest.NewRequest("GET", "/api/goals", nil))

	var goals []struct {
		PhaseNumber int     `json:"phaseNumber"`
		Target      float64 `json:"target"`
		Progress    float64 `json:"progress"`
	}
	decodeData(t, w.Body.Bytes(), &goals)
	// StartPhase defaults the goal to 2x capital.
	if len(goals) != 1 || goals[0].Target != 200 {
		t.Fatalf("goals = %+v", goals)
	}
	if goals[0].Progress != 55 {
		t.Errorf("progress = %v, want 55 (110 of 200)", goals[0].Progress)
	}
}
