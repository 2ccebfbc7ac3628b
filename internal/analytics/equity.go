// internal/analytics/equity.go
package analytics

import (
	"github.com/flipdeck/flipdeck/internal/journal"
)

// EquityPoint is one point on the equity curve.
type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

// dailyBufferDays extends the dense curve past the last trade so the
// chart doesn't end exactly on the final data point.
const dailyBufferDays = 7

// EquityCurve returns the sparse curve: one point per completed, dated
// trade in date order, anchored by a leading point at the first trade's
// date holding the starting equity.
func EquityCurve(phases []journal.Phase) []EquityPoint {
	trades := datedCompletedTrades(phases)
	if len(trades) == 0 {
		return nil
	}

	equity := startingCapital(phases)
	curve := make([]EquityPoint, 0, len(trades)+1)
	curve = append(curve, EquityPoint{Date: trades[0].Date, Equity: equity})

	for _, t := range trades {
		equity += t.PL
		curve = append(curve, EquityPoint{Date: t.Date, Equity: equity})
	}
	return curve
}

// DailyEquityCurve returns the dense curve: one point for every calendar
// day from the first trade through the last trade plus a trailing
// buffer, carrying the last known equity flat between trade days.
func DailyEquityCurve(phases []journal.Phase) []EquityPoint {
	sparse := EquityCurve(phases)
	if len(sparse) == 0 {
		return nil
	}

	start := journal.ParseDate(sparse[0].Date)
	end := journal.ParseDate(sparse[len(sparse)-1].Date).AddDate(0, 0, dailyBufferDays)

	var daily []EquityPoint
	equity := sparse[0].Equity
	idx := 0

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(journal.DateLayout)
		for idx < len(sparse) && sparse[idx].Date == dateStr {
			equity = sparse[idx].Equity
			idx++
		}
		daily = append(daily, EquityPoint{Date: dateStr, Equity: equity})
	}
	return daily
}
