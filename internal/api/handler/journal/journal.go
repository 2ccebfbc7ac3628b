// Package journal exposes the analytics and journal state over HTTP.
package journal

import (
	"net/http"

	"github.com/flipdeck/flipdeck/internal/analytics"
	"github.com/flipdeck/flipdeck/internal/api/response"
	"github.com/flipdeck/flipdeck/internal/journal"
	"github.com/flipdeck/flipdeck/internal/risk"
)

// Source provides the journal state and risk policy the handlers read.
// The app implements this; tests use a stub.
type Source interface {
	Book() *journal.Book
	Policy() risk.Policy
}

// Handler serves the read-only analytics endpoints.
type Handler struct {
	source Source
}

// NewHandler creates the journal API handler.
func NewHandler(source Source) *Handler {
	return &Handler{source: source}
}

// Summary returns the aggregate performance metrics.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	phases := h.source.Book().AllPhases()
	response.JSON(w, http.StatusOK, map[string]any{
		"metrics":          analytics.Calculate(phases),
		"drawdownPercent":  analytics.DrawdownPercentage(phases),
		"consistencyScore": analytics.ConsistencyScore(phases),
	})
}

// Equity returns the equity curve; ?dense=1 selects the day-by-day
// variant.
func (h *Handler) Equity(w http.ResponseWriter, r *http.Request) {
	phases := h.source.Book().AllPhases()

	var curve []analytics.EquityPoint
	if r.URL.Query().Get("dense") == "1" {
		curve = analytics.DailyEquityCurve(phases)
	} else {
		curve = analytics.EquityCurve(phases)
	}
	if curve == nil {
		curve = []analytics.EquityPoint{}
	}
	response.JSON(w, http.StatusOK, curve)
}

// Monthly returns the month-by-month profit buckets.
func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	buckets := analytics.MonthlyPerformance(h.source.Book().AllPhases())
	if buckets == nil {
		buckets = []analytics.MonthlyBucket{}
	}
	response.JSON(w, http.StatusOK, buckets)
}

// Distribution returns the risk-percent histogram.
func (h *Handler) Distribution(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, analytics.RiskDistribution(h.source.Book().AllPhases()))
}

// Consistency returns the 0-100 consistency score on its own.
func (h *Handler) Consistency(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]float64{
		"score": analytics.ConsistencyScore(h.source.Book().AllPhases()),
	})
}

// Patterns returns streaks, time-of-day and weekday breakdowns.
func (h *Handler) Patterns(w http.ResponseWriter, r *http.Request) {
	phases := h.source.Book().AllPhases()
	response.JSON(w, http.StatusOK, map[string]any{
		"patterns": analytics.ScanPatterns(phases),
		"time":     analytics.AnalyzeTime(phases),
	})
}

// Strategies returns the per-strategy performance comparison.
func (h *Handler) Strategies(w http.ResponseWriter, r *http.Request) {
	stats := analytics.StrategyBreakdown(h.source.Book().AllPhases())
	if stats == nil {
		stats = []analytics.StrategyStats{}
	}
	response.JSON(w, http.StatusOK, stats)
}

// Goals returns per-phase goal progress.
func (h *Handler) Goals(w http.ResponseWriter, r *http.Request) {
	goals := analytics.GoalProgress(h.source.Book().AllPhases())
	if goals == nil {
		goals = []analytics.PhaseGoal{}
	}
	response.JSON(w, http.StatusOK, goals)
}

// Phases returns the raw phase documents: historical, active, archived.
func (h *Handler) Phases(w http.ResponseWriter, r *http.Request) {
	book := h.source.Book()
	response.JSON(w, http.StatusOK, map[string]any{
		"current":    book.CurrentPhase,
		"active":     book.Phases,
		"historical": book.HistoricalPhases,
		"archived":   book.ArchivedPhases,
	})
}

// Warnings evaluates the risk policy against every active phase.
func (h *Handler) Warnings(w http.ResponseWriter, r *http.Request) {
	book := h.source.Book()
	policy := h.source.Policy()

	type phaseWarnings struct {
		Phase    int      `json:"phase"`
		Warnings []string `json:"warnings"`
	}
	out := []phaseWarnings{}
	for _, p := range book.Phases {
		if ws := risk.CheckPhase(p, policy); len(ws) > 0 {
			out = append(out, phaseWarnings{Phase: p.Number, Warnings: ws})
		}
	}
	response.JSON(w, http.StatusOK, out)
}
