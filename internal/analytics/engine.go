// internal/analytics/engine.go
package analytics

import (
	"encoding/json"
	"math"

	"github.com/flipdeck/flipdeck/internal/journal"
)

// Metrics is the aggregate performance summary over every completed
// trade in the journal.
type Metrics struct {
	TotalTrades        int     `json:"totalTrades"`
	WinningTrades      int     `json:"winningTrades"`
	LosingTrades       int     `json:"losingTrades"`
	WinRate            float64 `json:"winRate"`
	TotalProfitLoss    float64 `json:"totalProfitLoss"`
	AverageWin         float64 `json:"averageWin"`
	AverageLoss        float64 `json:"averageLoss"`
	ProfitFactor       float64 `json:"-"`
	MaxDrawdown        float64 `json:"maxDrawdown"`
	BestTrade          float64 `json:"bestTrade"`
	WorstTrade         float64 `json:"worstTrade"`
	AverageRiskPercent float64 `json:"averageRiskPercent"`
	TotalRisked        float64 `json:"totalRisked"`
	ReturnOnRisk       float64 `json:"returnOnRisk"`
}

// MarshalJSON renders the infinite profit-factor sentinel as the string
// "inf", since JSON has no encoding for +Inf.
func (m Metrics) MarshalJSON() ([]byte, error) {
	type alias Metrics
	out := struct {
		alias
		ProfitFactor any `json:"profitFactor"`
	}{alias: alias(m)}

	if math.IsInf(m.ProfitFactor, 1) {
		out.ProfitFactor = "inf"
	} else {
		out.ProfitFactor = m.ProfitFactor
	}
	return json.Marshal(out)
}

// completedTrades flattens completed trades across phases in encounter
// order: phases as given, trades as logged.
func completedTrades(phases []journal.Phase) []journal.Trade {
	var out []journal.Trade
	for _, p := range phases {
		for _, t := range p.Trades {
			if t.Completed {
				out = append(out, t)
			}
		}
	}
	return out
}

// datedCompletedTrades flattens completed trades that carry a date and
// sorts them ascending by date. Completed trades without a date are
// excluded from date-keyed aggregations only.
func datedCompletedTrades(phases []journal.Phase) []journal.Trade {
	var out []journal.Trade
	for _, p := range phases {
		for _, t := range p.Trades {
			if t.Completed && t.HasDate() {
				out = append(out, t)
			}
		}
	}
	journal.SortTradesByDate(out)
	return out
}

// startingCapital returns the first phase's initial capital, 0 if none.
func startingCapital(phases []journal.Phase) float64 {
	if len(phases) == 0 {
		return 0
	}
	return phases[0].InitialCapital
}

// maxDrawdownScan runs the single-pass peak-to-trough scan over the
// trades' cumulative balance, seeded at the given starting balance.
func maxDrawdownScan(trades []journal.Trade, seed float64) float64 {
	peak := seed
	running := seed
	var maxDD float64
	for _, t := range trades {
		running += t.PL
		if running > peak {
			peak = running
		}
		if dd := peak - running; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// Calculate computes the aggregate performance metrics over all phases.
// With no completed trades every metric is its identity value; nothing
// here divides by zero or returns NaN.
//
// The drawdown pass deliberately scans trades in encounter order rather
// than date order, matching the numbers the dashboard has always shown.
func Calculate(phases []journal.Phase) Metrics {
	trades := completedTrades(phases)
	if len(trades) == 0 {
		return Metrics{}
	}

	var m Metrics
	m.TotalTrades = len(trades)

	var totalWins, totalLosses, riskSum float64
	for _, t := range trades {
		m.TotalProfitLoss += t.PL
		riskSum += t.RiskPercent
		m.TotalRisked += t.RiskedAmount

		switch {
		case t.PL > 0:
			m.WinningTrades++
			totalWins += t.PL
		case t.PL < 0:
			m.LosingTrades++
			totalLosses += -t.PL
		}

		if t.PL > m.BestTrade {
			m.BestTrade = t.PL
		}
		if t.PL < m.WorstTrade {
			m.WorstTrade = t.PL
		}
	}

	m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
	if m.WinningTrades > 0 {
		m.AverageWin = totalWins / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AverageLoss = totalLosses / float64(m.LosingTrades)
	}

	switch {
	case totalLosses > 0:
		m.ProfitFactor = totalWins / totalLosses
	case totalWins > 0:
		m.ProfitFactor = math.Inf(1)
	}

	m.AverageRiskPercent = riskSum / float64(m.TotalTrades)
	if m.TotalRisked > 0 {
		m.ReturnOnRisk = m.TotalProfitLoss / m.TotalRisked * 100
	}

	m.MaxDrawdown = maxDrawdownScan(trades, startingCapital(phases))

	return m
}

// DrawdownPercentage expresses the maximum drawdown as a percentage of
// the first phase's starting capital.
func DrawdownPercentage(phases []journal.Phase) float64 {
	capital := startingCapital(phases)
	if capital == 0 {
		return 0
	}
	return maxDrawdownScan(completedTrades(phases), capital) / capital * 100
}

// ConsistencyScore is a 0-100 stability proxy from the coefficient of
// variation of per-trade P/L. Fewer than 10 completed trades is not
// enough signal and scores 0.
func ConsistencyScore(phases []journal.Phase) float64 {
	trades := completedTrades(phases)
	if len(trades) < 10 {
		return 0
	}

	var sum float64
	for _, t := range trades {
		sum += t.PL
	}
	mean := sum / float64(len(trades))

	var variance float64
	for _, t := range trades {
		variance += (t.PL - mean) * (t.PL - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(trades)))

	score := 100 - (stdDev/math.Abs(mean))*100
	if math.IsNaN(score) {
		return 0
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
