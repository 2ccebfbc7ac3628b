// internal/journal/calc_test.go
package journal

import (
	"math"
	"testing"
)

func TestRiskedAmount(t *testing.T) {
	if got := RiskedAmount(1000, 2); got != 20 {
		t.Errorf("RiskedAmount(1000, 2) = %f, want 20", got)
	}
	if got := RiskedAmount(0, 5); got != 0 {
		t.Errorf("RiskedAmount(0, 5) = %f, want 0", got)
	}
}

func TestPipsToRisk(t *testing.T) {
	// 0.01 lot has the base pip value of $0.10: $5 risked = 50 pips.
	if got := PipsToRisk(5, 0.01); got != 50 {
		t.Errorf("PipsToRisk(5, 0.01) = %f, want 50", got)
	}
	// 1.0 lot scales pip value to $10: $5 risked = 0.5 pips.
	if got := PipsToRisk(5, 1.0); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("PipsToRisk(5, 1.0) = %f, want 0.5", got)
	}
}

func TestPipsToRisk_ZeroLotSize(t *testing.T) {
	if got := PipsToRisk(5, 0); got != 0 {
		t.Errorf("zero lot size should yield 0 pips, got %f", got)
	}
}

func TestProfitTarget(t *testing.T) {
	if got := ProfitTarget(2, 3); got != 6 {
		t.Errorf("ProfitTarget(2, 3) = %f, want 6", got)
	}
}

func TestOptimalLotSize(t *testing.T) {
	// $1000 at 1% = $10 risk over 20 pips at $0.10/pip = 5 lots.
	if got := OptimalLotSize(1000, 1, 20, 0.10); got != 5 {
		t.Errorf("OptimalLotSize = %f, want 5", got)
	}
	if got := OptimalLotSize(1000, 1, 0, 0.10); got != 0 {
		t.Errorf("zero stop distance should yield 0, got %f", got)
	}
	// Rounded to two decimals.
	if got := OptimalLotSize(100, 1, 3, 0.10); got != 3.33 {
		t.Errorf("OptimalLotSize = %f, want 3.33", got)
	}
}
