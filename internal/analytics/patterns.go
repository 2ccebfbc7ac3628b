// internal/analytics/patterns.go
package analytics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/flipdeck/flipdeck/internal/journal"
)

// Patterns summarizes streak behavior across the full trade history.
type Patterns struct {
	BestWinStreak   int     `json:"bestWinStreak"`
	WorstLossStreak int     `json:"worstLossStreak"`
	RecoveryRate    float64 `json:"recoveryRate"` // % of losses followed by a win
}

// ScanPatterns walks completed, dated trades in date order and extracts
// the best win run, worst loss run, and how often a loss was immediately
// recovered by a win.
func ScanPatterns(phases []journal.Phase) Patterns {
	trades := datedCompletedTrades(phases)

	var p Patterns
	var curWin, curLoss, totalLosses, recovered int
	for i, t := range trades {
		switch {
		case t.PL > 0:
			curWin++
			curLoss = 0
			if curWin > p.BestWinStreak {
				p.BestWinStreak = curWin
			}
			if i > 0 && trades[i-1].PL < 0 {
				recovered++
			}
		case t.PL < 0:
			curLoss++
			curWin = 0
			if curLoss > p.WorstLossStreak {
				p.WorstLossStreak = curLoss
			}
			totalLosses++
		}
	}
	if totalLosses > 0 {
		p.RecoveryRate = float64(recovered) / float64(totalLosses) * 100
	}
	return p
}

// DayStats aggregates trades falling on one weekday.
type DayStats struct {
	Day     string  `json:"day"`
	Trades  int     `json:"trades"`
	Profit  float64 `json:"profit"`
	WinRate float64 `json:"winRate"`
}

// HourStats aggregates trades entered during one clock hour.
type HourStats struct {
	Hour    int     `json:"hour"`
	Trades  int     `json:"trades"`
	Profit  float64 `json:"profit"`
	WinRate float64 `json:"winRate"`
}

// TimeAnalysis holds the per-weekday and per-entry-hour breakdowns.
type TimeAnalysis struct {
	DayOfWeek []DayStats  `json:"dayOfWeek"`
	Hourly    []HourStats `json:"hourly"`
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// AnalyzeTime breaks completed, dated trades down by weekday and by
// entry hour. All seven weekdays are always present, Monday first;
// hours appear only when at least one trade recorded an entry time.
func AnalyzeTime(phases []journal.Phase) TimeAnalysis {
	type agg struct {
		trades int
		profit float64
		wins   int
	}
	days := make(map[time.Weekday]*agg, 7)
	for _, wd := range weekdayOrder {
		days[wd] = &agg{}
	}
	hours := make(map[int]*agg)

	for _, t := range datedCompletedTrades(phases) {
		wd := journal.ParseDate(t.Date).Weekday()
		d := days[wd]
		d.trades++
		d.profit += t.PL
		if t.PL > 0 {
			d.wins++
		}

		if h, ok := entryHour(t.EntryTime); ok {
			a := hours[h]
			if a == nil {
				a = &agg{}
				hours[h] = a
			}
			a.trades++
			a.profit += t.PL
			if t.PL > 0 {
				a.wins++
			}
		}
	}

	var out TimeAnalysis
	for _, wd := range weekdayOrder {
		d := days[wd]
		stats := DayStats{Day: wd.String(), Trades: d.trades, Profit: d.profit}
		if d.trades > 0 {
			stats.WinRate = float64(d.wins) / float64(d.trades) * 100
		}
		out.DayOfWeek = append(out.DayOfWeek, stats)
	}
	for h, a := range hours {
		out.Hourly = append(out.Hourly, HourStats{
			Hour:    h,
			Trades:  a.trades,
			Profit:  a.profit,
			WinRate: float64(a.wins) / float64(a.trades) * 100,
		})
	}
	sort.Slice(out.Hourly, func(i, j int) bool { return out.Hourly[i].Hour < out.Hourly[j].Hour })
	return out
}

// entryHour parses the hour component of an "HH:MM" entry time.
func entryHour(entryTime string) (int, bool) {
	if entryTime == "" {
		return 0, false
	}
	part, _, _ := strings.Cut(entryTime, ":")
	h, err := strconv.Atoi(part)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// StrategyStats aggregates completed trades sharing a strategy label.
type StrategyStats struct {
	Strategy       string  `json:"strategy"`
	Trades         int     `json:"trades"`
	Profit         float64 `json:"profit"`
	WinRate        float64 `json:"winRate"`
	AvgRisk        float64 `json:"avgRisk"`
	ProfitPerTrade float64 `json:"profitPerTrade"`
}

// StrategyBreakdown groups completed trades by strategy label, most
// profitable strategy first. Untagged trades fall into "Unknown".
func StrategyBreakdown(phases []journal.Phase) []StrategyStats {
	type agg struct {
		trades  int
		profit  float64
		wins    int
		riskSum float64
	}
	byStrategy := make(map[string]*agg)

	for _, t := range completedTrades(phases) {
		label := t.Strategy
		if label == "" {
			label = "Unknown"
		}
		a := byStrategy[label]
		if a == nil {
			a = &agg{}
			byStrategy[label] = a
		}
		a.trades++
		a.profit += t.PL
		a.riskSum += t.RiskPercent
		if t.PL > 0 {
			a.wins++
		}
	}

	out := make([]StrategyStats, 0, len(byStrategy))
	for label, a := range byStrategy {
		out = append(out, StrategyStats{
			Strategy:       label,
			Trades:         a.trades,
			Profit:         a.profit,
			WinRate:        float64(a.wins) / float64(a.trades) * 100,
			AvgRisk:        a.riskSum / float64(a.trades),
			ProfitPerTrade: a.profit / float64(a.trades),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Profit > out[j].Profit })
	return out
}

// PhaseGoal reports how far a phase has come toward its balance goal.
type PhaseGoal struct {
	PhaseNumber int     `json:"phaseNumber"`
	Target      float64 `json:"target"`
	Current     float64 `json:"current"`
	Progress    float64 `json:"progress"` // percent, capped at 100
	Completed   bool    `json:"completed"`
}

// GoalProgress returns one entry per phase that carries a goal target,
// comparing the current balance against it. Progress is capped at 100%.
func GoalProgress(phases []journal.Phase) []PhaseGoal {
	var out []PhaseGoal
	for i := range phases {
		p := &phases[i]
		if p.GoalTarget <= 0 {
			continue
		}
		g := PhaseGoal{
			PhaseNumber: p.Number,
			Target:      p.GoalTarget,
			Current:     p.CurrentBalance(),
		}
		g.Progress = g.Current / g.Target * 100
		if g.Progress > 100 {
			g.Progress = 100
		}
		if g.Progress < 0 {
			g.Progress = 0
		}
		g.Completed = g.Current >= g.Target
		out = append(out, g)
	}
	return out
}
