// internal/analytics/monthly.go
package analytics

import (
	"sort"

	"github.com/flipdeck/flipdeck/internal/journal"
)

// MonthlyBucket aggregates completed trades for one calendar month.
type MonthlyBucket struct {
	Month   string  `json:"month"` // YYYY-MM
	Profit  float64 `json:"profit"`
	Trades  int     `json:"trades"`
	WinRate float64 `json:"winRate"`
}

// MonthlyPerformance groups completed, dated trades by calendar month.
// Buckets come back ascending by month key; the lexicographic YYYY-MM
// sort is date-correct.
func MonthlyPerformance(phases []journal.Phase) []MonthlyBucket {
	type agg struct {
		profit float64
		trades int
		wins   int
	}
	months := make(map[string]*agg)

	for _, p := range phases {
		for _, t := range p.Trades {
			if !t.Completed {
				continue
			}
			key := journal.MonthKey(t.Date)
			if key == "" {
				continue
			}
			a := months[key]
			if a == nil {
				a = &agg{}
				months[key] = a
			}
			a.profit += t.PL
			a.trades++
			if t.PL > 0 {
				a.wins++
			}
		}
	}

	out := make([]MonthlyBucket, 0, len(months))
	for key, a := range months {
		out = append(out, MonthlyBucket{
			Month:   key,
			Profit:  a.profit,
			Trades:  a.trades,
			WinRate: float64(a.wins) / float64(a.trades) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
