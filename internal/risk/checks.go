// internal/risk/checks.go
package risk

import (
	"fmt"

	"github.com/flipdeck/flipdeck/internal/journal"
)

// CheckTrade evaluates a single trade against the policy and returns
// warnings in check order. It never fails; a clean trade yields nil.
func CheckTrade(t journal.Trade, p Policy) []string {
	var warnings []string

	if t.RiskPercent > p.RiskThresholdPercent {
		warnings = append(warnings, fmt.Sprintf("Risk %g%% exceeds %g%% threshold",
			t.RiskPercent, p.RiskThresholdPercent))
	}
	if t.RewardMultiple > 0 && t.RewardMultiple < p.MinRewardMultiple {
		warnings = append(warnings, fmt.Sprintf("Risk-to-reward ratio below %g:1", p.MinRewardMultiple))
	}
	if t.LotSize > p.MaxLotSize {
		warnings = append(warnings, "Large position size detected")
	}
	if p.MaxSLAmount > 0 && t.SLAmount > p.MaxSLAmount {
		warnings = append(warnings, fmt.Sprintf("Stop loss $%.2f above the fixed $%.2f cap",
			t.SLAmount, p.MaxSLAmount))
	}
	if p.MaxDailyTrades > 0 && t.DayTradeNumber > p.MaxDailyTrades {
		warnings = append(warnings, fmt.Sprintf("Trade %d of the day exceeds the %d-trade daily limit",
			t.DayTradeNumber, p.MaxDailyTrades))
	}

	return warnings
}

// CheckPhase evaluates a phase's completed-trade history against the
// policy. Empty or all-incomplete histories yield no warnings.
func CheckPhase(phase journal.Phase, p Policy) []string {
	var warnings []string

	completed := phase.CompletedTrades()
	if len(completed) == 0 {
		return warnings
	}

	// Trailing losses within the recent window, in logged order.
	recent := completed
	if p.LossStreakWindow > 0 && len(recent) > p.LossStreakWindow {
		recent = recent[len(recent)-p.LossStreakWindow:]
	}
	if losses := trailingLosses(recent); p.LossStreakTrigger > 0 && losses >= p.LossStreakTrigger {
		warnings = append(warnings, fmt.Sprintf("%d consecutive losses detected - consider reducing risk", losses))
	}

	var riskSum float64
	for _, t := range completed {
		riskSum += t.RiskPercent
	}
	if avg := riskSum / float64(len(completed)); avg > p.RiskThresholdPercent {
		warnings = append(warnings, fmt.Sprintf("Average risk (%.1f%%) is high - consider reducing position sizes", avg))
	}

	if phase.InitialCapital > 0 {
		ddPct := maxDrawdown(completed) / phase.InitialCapital * 100
		if ddPct > p.DrawdownWarnPct {
			warnings = append(warnings, fmt.Sprintf("Current drawdown (%.1f%%) exceeds %g%%", ddPct, p.DrawdownWarnPct))
		}
	}

	if p.MaxDailyLosses > 0 && phase.DailyLossCount >= p.MaxDailyLosses {
		warnings = append(warnings, fmt.Sprintf("Daily loss limit reached (%d of %d) - stop trading for today",
			phase.DailyLossCount, p.MaxDailyLosses))
	}

	return warnings
}

// trailingLosses counts consecutive losing trades at the end of the slice.
func trailingLosses(trades []journal.Trade) int {
	n := 0
	for i := len(trades) - 1; i >= 0; i-- {
		if trades[i].PL >= 0 {
			break
		}
		n++
	}
	return n
}

// maxDrawdown runs the peak-minus-current scan over cumulative P/L.
func maxDrawdown(trades []journal.Trade) float64 {
	var peak, runningPL, maxDD float64
	for _, t := range trades {
		runningPL += t.PL
		if runningPL > peak {
			peak = runningPL
		}
		if dd := peak - runningPL; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
