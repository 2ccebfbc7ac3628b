// internal/risk/checks_test.go
package risk

import (
	"strings"
	"testing"

	"github.com/flipdeck/flipdeck/internal/journal"
)

func TestCheckTrade_RiskAboveThreshold(t *testing.T) {
	trade := journal.Trade{RiskPercent: 5, LotSize: 0.01}
	warnings := CheckTrade(trade, Default())

	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want exactly 1: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "5%") || !strings.Contains(warnings[0], "3%") {
		t.Errorf("warning should cite 5%% and 3%%: %q", warnings[0])
	}
}

func TestCheckTrade_SubOneRewardAppends(t *testing.T) {
	trade := journal.Trade{RiskPercent: 5, RewardMultiple: 0.5, LotSize: 0.01}
	warnings := CheckTrade(trade, Default())

	if len(warnings) != 2 {
		t.Fatalf("warnings = %d, want 2: %v", len(warnings), warnings)
	}
	// Check order matches declaration order, not severity.
	if !strings.Contains(warnings[1], "reward") {
		t.Errorf("second warning should be the reward check: %q", warnings[1])
	}
}

func TestCheckTrade_ZeroRewardMultipleNotFlagged(t *testing.T) {
	// Unset reward multiple (0) is not a sub-1:1 ratio.
	trade := journal.Trade{RiskPercent: 1, RewardMultiple: 0, LotSize: 0.01}
	if warnings := CheckTrade(trade, Default()); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestCheckTrade_LargePosition(t *testing.T) {
	trade := journal.Trade{RiskPercent: 1, LotSize: 1.5}
	warnings := CheckTrade(trade, Default())

	if len(warnings) != 1 || !strings.Contains(warnings[0], "position size") {
		t.Errorf("expected large position warning, got %v", warnings)
	}
}

func TestCheckTrade_MicroFlipOverlay(t *testing.T) {
	trade := journal.Trade{RiskPercent: 1, LotSize: 0.01, SLAmount: 5, DayTradeNumber: 4}
	warnings := CheckTrade(trade, MicroFlip())

	if len(warnings) != 2 {
		t.Fatalf("warnings = %d, want 2: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "$2.00") {
		t.Errorf("first warning should cite the SL cap: %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "daily limit") {
		t.Errorf("second warning should cite the daily limit: %q", warnings[1])
	}

	// The same trade is clean under the default policy.
	if got := CheckTrade(trade, Default()); len(got) != 0 {
		t.Errorf("default policy should not apply the overlay, got %v", got)
	}
}

func TestCheckPhase_EmptyHistory(t *testing.T) {
	phase := journal.Phase{InitialCapital: 100}
	if warnings := CheckPhase(phase, Default()); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestCheckPhase_ConsecutiveLosses(t *testing.T) {
	phase := journal.Phase{
		InitialCapital: 1000,
		Trades: []journal.Trade{
			{PL: 10, Completed: true, RiskPercent: 1},
			{PL: -1, Completed: true, RiskPercent: 1},
			{PL: -1, Completed: true, RiskPercent: 1},
			{PL: -1, Completed: true, RiskPercent: 1},
		},
	}
	warnings := CheckPhase(phase, Default())

	if len(warnings) != 1 || !strings.Contains(warnings[0], "3 consecutive losses") {
		t.Errorf("expected a 3-loss streak warning, got %v", warnings)
	}
}

func TestCheckPhase_StreakOnlyScansRecentWindow(t *testing.T) {
	// Five old losses followed by five recent wins: window sees no losses.
	var trades []journal.Trade
	for i := 0; i < 5; i++ {
		trades = append(trades, journal.Trade{PL: -1, Completed: true, RiskPercent: 1})
	}
	for i := 0; i < 5; i++ {
		trades = append(trades, journal.Trade{PL: 1, Completed: true, RiskPercent: 1})
	}
	phase := journal.Phase{InitialCapital: 1000, Trades: trades}

	for _, w := range CheckPhase(phase, Default()) {
		if strings.Contains(w, "consecutive") {
			t.Errorf("streak warning should not fire: %q", w)
		}
	}
}

func TestCheckPhase_AverageRisk(t *testing.T) {
	phase := journal.Phase{
		InitialCapital: 1000,
		Trades: []journal.Trade{
			{PL: 1, Completed: true, RiskPercent: 4},
			{PL: 1, Completed: true, RiskPercent: 6},
		},
	}
	warnings := CheckPhase(phase, Default())

	if len(warnings) != 1 || !strings.Contains(warnings[0], "5.0%") {
		t.Errorf("expected an average-risk warning citing 5.0%%, got %v", warnings)
	}
}

func TestCheckPhase_Drawdown(t *testing.T) {
	// Peak +50, trough -100: drawdown 150 = 15% of 1000.
	phase := journal.Phase{
		InitialCapital: 1000,
		Trades: []journal.Trade{
			{PL: 50, Completed: true, RiskPercent: 1},
			{PL: -150, Completed: true, RiskPercent: 1},
		},
	}
	warnings := CheckPhase(phase, Default())

	if len(warnings) != 1 || !strings.Contains(warnings[0], "15.0%") {
		t.Errorf("expected a drawdown warning citing 15.0%%, got %v", warnings)
	}
}

func TestCheckPhase_DailyLossLimit(t *testing.T) {
	phase := journal.Phase{
		InitialCapital: 1000,
		DailyLossCount: 3,
		Trades: []journal.Trade{
			{PL: 1, Completed: true, RiskPercent: 1},
		},
	}
	warnings := CheckPhase(phase, MicroFlip())

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "Daily loss limit") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a daily-loss-limit warning, got %v", warnings)
	}
}

func TestTrailingLosses(t *testing.T) {
	trades := []journal.Trade{{PL: -1}, {PL: 2}, {PL: -1}, {PL: -3}}
	if got := trailingLosses(trades); got != 2 {
		t.Errorf("trailingLosses = %d, want 2", got)
	}
	// Break-even does not extend a losing run.
	trades = []journal.Trade{{PL: -1}, {PL: 0}}
	if got := trailingLosses(trades); got != 0 {
		t.Errorf("trailingLosses = %d, want 0", got)
	}
}
