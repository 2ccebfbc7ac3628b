// Package alert evaluates threshold rules over journal metrics and
// fires structured alerts through registered sinks.
package alert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Severity grades how urgent an alert is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// ParseSeverity normalizes a severity label, defaulting to warning for
// anything unrecognized.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityInfo:
		return SeverityInfo
	case SeverityCritical:
		return SeverityCritical
	default:
		return SeverityWarning
	}
}

// Rule is one threshold check over the metric map. Expr has the form
// "metric op value" with op one of > < >= <= == !=.
type Rule struct {
	Name     string        `mapstructure:"name"`
	Expr     string        `mapstructure:"expr"`
	For      time.Duration `mapstructure:"for"`
	Severity string        `mapstructure:"severity"`
	Message  string        `mapstructure:"message"`
}

// Alert is a fired rule with the observed metric value attached.
type Alert struct {
	Rule     string    `json:"rule"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Metric   string    `json:"metric"`
	Value    float64   `json:"value"`
	FiredAt  time.Time `json:"firedAt"`
}

// String renders the alert the way it reads in a log line or webhook
// fallback text.
func (a Alert) String() string {
	return fmt.Sprintf("[%s] %s: %s (%s=%.2f)",
		strings.ToUpper(string(a.Severity)), a.Rule, a.Message, a.Metric, a.Value)
}

var exprPattern = regexp.MustCompile(`^(\w+)\s*(>=|<=|==|!=|>|<)\s*(-?[\d.]+)$`)

// Eval checks the rule expression against the metric map. It returns
// the metric name and observed value so the fired alert can carry them.
// Malformed expressions and missing metrics never trigger.
func (r *Rule) Eval(metrics map[string]float64) (metric string, value float64, triggered bool) {
	matches := exprPattern.FindStringSubmatch(strings.TrimSpace(r.Expr))
	if len(matches) != 4 {
		return "", 0, false
	}

	metric = matches[1]
	threshold, err := strconv.ParseFloat(matches[3], 64)
	if err != nil {
		return "", 0, false
	}

	value, ok := metrics[metric]
	if !ok {
		return metric, 0, false
	}

	switch matches[2] {
	case ">":
		triggered = value > threshold
	case "<":
		triggered = value < threshold
	case ">=":
		triggered = value >= threshold
	case "<=":
		triggered = value <= threshold
	case "==":
		triggered = value == threshold
	case "!=":
		triggered = value != threshold
	}
	return metric, value, triggered
}
