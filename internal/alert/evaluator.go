package alert

import (
	"sync"
	"time"
)

// Sink receives fired alerts. The notifier registry implements this.
type Sink interface {
	Dispatch(Alert)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Alert)

func (f SinkFunc) Dispatch(a Alert) { f(a) }

// Evaluator runs rules against the latest metric snapshot. A rule with
// a "for" duration must stay triggered that long before it fires, and a
// fired rule stays quiet for the cooldown window.
type Evaluator struct {
	sinks    []Sink
	metrics  map[string]float64
	cooldown time.Duration

	pending   map[string]time.Time
	lastFired map[string]time.Time

	// Swapped out in tests to advance the clock.
	now func() time.Time

	mu sync.RWMutex
}

// NewEvaluator creates an evaluator firing into the given sinks with a
// 5 minute default cooldown.
func NewEvaluator(sinks ...Sink) *Evaluator {
	return &Evaluator{
		sinks:     sinks,
		metrics:   make(map[string]float64),
		cooldown:  5 * time.Minute,
		pending:   make(map[string]time.Time),
		lastFired: make(map[string]time.Time),
		now:       time.Now,
	}
}

// SetMetrics replaces the metric snapshot rules are evaluated against.
func (e *Evaluator) SetMetrics(metrics map[string]float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.metrics = metrics
}

// SetCooldown sets the per-rule quiet period after firing.
func (e *Evaluator) SetCooldown(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cooldown = d
}

// Evaluate runs one rule and dispatches an alert if it fires.
func (e *Evaluator) Evaluate(rule Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()

	metric, value, triggered := rule.Eval(e.metrics)
	if !triggered {
		delete(e.pending, rule.Name)
		return
	}

	if rule.For > 0 {
		pendingSince, isPending := e.pending[rule.Name]
		if !isPending {
			e.pending[rule.Name] = now
			return
		}
		if now.Sub(pendingSince) < rule.For {
			return
		}
	}

	if last, fired := e.lastFired[rule.Name]; fired && now.Sub(last) < e.cooldown {
		return
	}

	a := Alert{
		Rule:     rule.Name,
		Severity: ParseSeverity(rule.Severity),
		Message:  rule.Message,
		Metric:   metric,
		Value:    value,
		FiredAt:  now,
	}
	for _, s := range e.sinks {
		s.Dispatch(a)
	}

	e.lastFired[rule.Name] = now
	delete(e.pending, rule.Name)
}

// EvaluateAll runs every rule against the current snapshot.
func (e *Evaluator) EvaluateAll(rules []Rule) {
	for _, rule := range rules {
		e.Evaluate(rule)
	}
}
