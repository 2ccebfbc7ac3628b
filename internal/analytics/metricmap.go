// internal/analytics/metricmap.go
package analytics

import "github.com/flipdeck/flipdeck/internal/journal"

// MetricMap flattens the aggregate metrics into a name-to-value map for
// rule expressions. The infinite profit-factor sentinel is passed
// through as +Inf; rules comparing against it behave as expected.
func MetricMap(phases []journal.Phase) map[string]float64 {
	m := Calculate(phases)
	return map[string]float64{
		"total_trades":         float64(m.TotalTrades),
		"winning_trades":       float64(m.WinningTrades),
		"losing_trades":        float64(m.LosingTrades),
		"win_rate":             m.WinRate,
		"total_profit_loss":    m.TotalProfitLoss,
		"average_win":          m.AverageWin,
		"average_loss":         m.AverageLoss,
		"profit_factor":        m.ProfitFactor,
		"max_drawdown":         m.MaxDrawdown,
		"best_trade":           m.BestTrade,
		"worst_trade":          m.WorstTrade,
		"average_risk_percent": m.AverageRiskPercent,
		"total_risked":         m.TotalRisked,
		"return_on_risk":       m.ReturnOnRisk,
		"drawdown_percent":     DrawdownPercentage(phases),
		"consistency_score":    ConsistencyScore(phases),
	}
}
