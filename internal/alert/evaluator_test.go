package alert

import (
	"testing"
	"time"
)

type captureSink struct {
	alerts []Alert
}

func (c *captureSink) Dispatch(a Alert) { c.alerts = append(c.alerts, a) }

// advanceTime shifts the evaluator clock forward.
func (e *Evaluator) advanceTime(d time.Duration) {
	oldNow := e.now
	e.now = func() time.Time {
		return oldNow().Add(d)
	}
}

func TestEvaluator_ForDuration(t *testing.T) {
	sink := &captureSink{}
	eval := NewEvaluator(sink)

	rule := Rule{
		Name:     "drawdown_high",
		Expr:     "drawdown_percent > 10",
		For:      time.Minute,
		Severity: "warning",
		Message:  "Drawdown above 10% of starting capital",
	}

	eval.SetMetrics(map[string]float64{"drawdown_percent": 15})
	eval.Evaluate(rule)

	// First evaluation only starts the pending timer.
	if len(sink.alerts) != 0 {
		t.Errorf("expected no alert on first eval, got %d", len(sink.alerts))
	}

	eval.advanceTime(2 * time.Minute)
	eval.Evaluate(rule)

	if len(sink.alerts) != 1 {
		t.Fatalf("expected 1 alert after the for duration, got %d", len(sink.alerts))
	}
	a := sink.alerts[0]
	if a.Rule != "drawdown_high" || a.Severity != SeverityWarning {
		t.Errorf("alert = %+v", a)
	}
	if a.Metric != "drawdown_percent" || a.Value != 15 {
		t.Errorf("alert should carry the observed value: %+v", a)
	}
}

func TestEvaluator_Cooldown(t *testing.T) {
	sink := &captureSink{}
	eval := NewEvaluator(sink)
	eval.SetCooldown(5 * time.Minute)

	rule := Rule{
		Name:     "loss_streak",
		Expr:     "losing_trades >= 3",
		Severity: "critical",
		Message:  "Three losses in a row",
	}

	eval.SetMetrics(map[string]float64{"losing_trades": 3})
	eval.Evaluate(rule)
	eval.Evaluate(rule)
	eval.Evaluate(rule)

	if len(sink.alerts) != 1 {
		t.Errorf("expected 1 alert inside the cooldown window, got %d", len(sink.alerts))
	}

	eval.advanceTime(6 * time.Minute)
	eval.Evaluate(rule)
	if len(sink.alerts) != 2 {
		t.Errorf("expected refire after cooldown, got %d", len(sink.alerts))
	}
}

func TestEvaluator_PendingClearsOnRecovery(t *testing.T) {
	sink := &captureSink{}
	eval := NewEvaluator(sink)

	rule := Rule{
		Name:     "win_rate_low",
		Expr:     "win_rate < 40",
		For:      time.Minute,
		Severity: "warning",
		Message:  "Win rate below 40%",
	}

	eval.SetMetrics(map[string]float64{"win_rate": 30})
	eval.Evaluate(rule)

	// Metric recovers: pending state must clear.
	eval.SetMetrics(map[string]float64{"win_rate": 55})
	eval.Evaluate(rule)

	eval.advanceTime(2 * time.Minute)
	eval.SetMetrics(map[string]float64{"win_rate": 30})
	eval.Evaluate(rule)

	if len(sink.alerts) != 0 {
		t.Errorf("expected no alert after pending reset, got %d", len(sink.alerts))
	}
}

func TestEvaluator_EvaluateAll(t *testing.T) {
	sink := &captureSink{}
	eval := NewEvaluator(sink)

	rules := []Rule{
		{Name: "dd", Expr: "drawdown_percent > 10", Severity: "critical", Message: "Deep drawdown"},
		{Name: "wr", Expr: "win_rate < 40", Severity: "warning", Message: "Low win rate"},
	}

	// Only the drawdown rule triggers.
	eval.SetMetrics(map[string]float64{"drawdown_percent": 12, "win_rate": 60})
	eval.EvaluateAll(rules)

	if len(sink.alerts) != 1 || sink.alerts[0].Rule != "dd" {
		t.Errorf("expected only the drawdown alert, got %v", sink.alerts)
	}
}

func TestRule_Eval(t *testing.T) {
	tests := []struct {
		expr      string
		metrics   map[string]float64
		triggered bool
	}{
		{"drawdown_percent > 10", map[string]float64{"drawdown_percent": 15}, true},
		{"drawdown_percent > 10", map[string]float64{"drawdown_percent": 5}, false},
		{"win_rate < 40", map[string]float64{"win_rate": 30}, true},
		{"win_rate < 40", map[string]float64{"win_rate": 40}, false},
		{"losing_trades >= 3", map[string]float64{"losing_trades": 3}, true},
		{"consistency_score <= 20", map[string]float64{"consistency_score": 20}, true},
		{"total_trades == 0", map[string]float64{"total_trades": 0}, true},
		{"worst_trade != 0", map[string]float64{"worst_trade": -25}, true},
		{"worst_trade > -50", map[string]float64{"worst_trade": -25}, true},
		{"missing > 0", map[string]float64{}, false},
		{"not an expression", map[string]float64{"x": 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			rule := Rule{Expr: tt.expr}
			if _, _, got := rule.Eval(tt.metrics); got != tt.triggered {
				t.Errorf("Eval(%q, %v) = %v, want %v", tt.expr, tt.metrics, got, tt.triggered)
			}
		})
	}
}

func TestAlert_String(t *testing.T) {
	a := Alert{
		Rule:     "drawdown_high",
		Severity: SeverityWarning,
		Message:  "Drawdown above 10%",
		Metric:   "drawdown_percent",
		Value:    12.5,
	}
	want := "[WARNING] drawdown_high: Drawdown above 10% (drawdown_percent=12.50)"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseSeverity(t *testing.T) {
	if got := ParseSeverity(" CRITICAL "); got != SeverityCritical {
		t.Errorf("ParseSeverity = %v, want critical", got)
	}
	if got := ParseSeverity("bogus"); got != SeverityWarning {
		t.Errorf("unknown severity should default to warning, got %v", got)
	}
}
