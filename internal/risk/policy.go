// internal/risk/policy.go
package risk

// Policy holds the thresholds the rule engine checks against. Policies
// are passed explicitly into every check so the same engine serves
// different risk appetites.
type Policy struct {
	// Per-trade limits
	RiskThresholdPercent float64 // warn above this risk % per trade
	MinRewardMultiple    float64 // warn below this reward:risk ratio
	MaxLotSize           float64 // warn above this position size

	// Per-phase limits
	LossStreakWindow  int     // recent completed trades scanned for a streak
	LossStreakTrigger int     // consecutive losses that trigger a warning
	DrawdownWarnPct   float64 // warn when drawdown exceeds this % of capital

	// Micro-flip overlay
	MaxSLAmount    float64 // fixed stop-loss cap in account currency, 0 disables
	MaxDailyTrades int     // same-day trade limit, 0 disables
	MaxDailyLosses int     // same-day loss limit, 0 disables
}

// Default returns the baseline policy: 3% risk warning, 1:1 minimum
// reward, one standard lot, streaks of 3 within the last 5 trades and a
// 10% drawdown alarm.
func Default() Policy {
	return Policy{
		RiskThresholdPercent: 3,
		MinRewardMultiple:    1,
		MaxLotSize:           1,
		LossStreakWindow:     5,
		LossStreakTrigger:    3,
		DrawdownWarnPct:      10,
	}
}

// MicroFlip returns the strict small-account overlay: everything in
// Default plus a fixed $2 stop loss and 3-trades/3-losses daily limits.
func MicroFlip() Policy {
	p := Default()
	p.MaxSLAmount = 2
	p.MaxDailyTrades = 3
	p.MaxDailyLosses = 3
	return p
}
