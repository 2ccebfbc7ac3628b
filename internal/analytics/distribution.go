// internal/analytics/distribution.go
package analytics

import (
	"github.com/flipdeck/flipdeck/internal/journal"
)

// RiskBucket is one bar of the risk-percent distribution.
type RiskBucket struct {
	Risk  string `json:"risk"`
	Count int    `json:"count"`
}

// riskBucketLabels lists the five fixed buckets in display order.
var riskBucketLabels = []string{"0-1%", "1-2%", "2-3%", "3-5%", "5%+"}

// RiskDistribution buckets completed trades by risk percent into five
// fixed ascending ranges with inclusive upper bounds: a trade at exactly
// 1% lands in 0-1%. Zero-count buckets are included so the result is
// always five elements in fixed order.
func RiskDistribution(phases []journal.Phase) []RiskBucket {
	counts := make(map[string]int, len(riskBucketLabels))

	for _, t := range completedTrades(phases) {
		switch r := t.RiskPercent; {
		case r <= 1:
			counts["0-1%"]++
		case r <= 2:
			counts["1-2%"]++
		case r <= 3:
			counts["2-3%"]++
		case r <= 5:
			counts["3-5%"]++
		default:
			counts["5%+"]++
		}
	}

	out := make([]RiskBucket, len(riskBucketLabels))
	for i, label := range riskBucketLabels {
		out[i] = RiskBucket{Risk: label, Count: counts[label]}
	}
	return out
}
