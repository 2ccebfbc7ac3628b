// Package insight asks an LLM to review the journal and turn the raw
// numbers into a coaching write-up.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/flipdeck/flipdeck/internal/analytics"
	"github.com/flipdeck/flipdeck/internal/core"
	"github.com/flipdeck/flipdeck/internal/journal"
	"github.com/flipdeck/flipdeck/internal/llm"
	"github.com/flipdeck/flipdeck/internal/risk"
)

const reviewerSystemPrompt = `You are a trading performance coach reviewing a forex trading journal.
You receive aggregate statistics, never individual account details.
Respond in JSON with the fields:
  "assessment": one-paragraph overall assessment,
  "strengths": array of short strings,
  "risks": array of short strings,
  "suggestions": array of short, actionable strings.
Be direct and specific. Quote the numbers you base each point on.`

// Review is the structured coaching result.
type Review struct {
	Assessment  string   `json:"assessment"`
	Strengths   []string `json:"strengths"`
	Risks       []string `json:"risks"`
	Suggestions []string `json:"suggestions"`
}

// Reviewer builds a metrics digest and asks the provider for a review.
type Reviewer struct {
	llm llm.Provider
}

// NewReviewer creates a reviewer over the given provider.
func NewReviewer(provider llm.Provider) *Reviewer {
	return &Reviewer{llm: provider}
}

// Review summarizes the journal, sends it to the LLM and parses the
// structured response. A provider that answers in plain text instead of
// JSON degrades to an assessment-only review.
func (r *Reviewer) Review(ctx context.Context, book *journal.Book, policy risk.Policy) (*Review, error) {
	digest := BuildDigest(book, policy)

	resp, err := r.llm.Chat(ctx, llm.ChatRequest{
		SystemPrompt: reviewerSystemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: digest},
		},
		MaxTokens:   1024,
		Temperature: 0.3,
		JSONMode:    true,
	})
	if err != nil {
		return nil, core.WrapError(core.ErrLLMFailed, err)
	}

	var review Review
	if err := json.Unmarshal([]byte(resp.Content), &review); err != nil {
		// Plain-text answer: keep it rather than failing the review.
		return &Review{Assessment: strings.TrimSpace(resp.Content)}, nil
	}
	return &review, nil
}

// BuildDigest renders the journal's aggregate state as the prompt body.
func BuildDigest(book *journal.Book, policy risk.Policy) string {
	phases := book.AllPhases()
	m := analytics.Calculate(phases)
	patterns := analytics.ScanPatterns(phases)

	var sb strings.Builder
	sb.WriteString("Trading journal summary:\n\n")

	fmt.Fprintf(&sb, "Completed trades: %d (%d wins, %d losses)\n",
		m.TotalTrades, m.WinningTrades, m.LosingTrades)
	fmt.Fprintf(&sb, "Win rate: %.1f%%\n", m.WinRate)
	fmt.Fprintf(&sb, "Total P/L: %.2f\n", m.TotalProfitLoss)
	if math.IsInf(m.ProfitFactor, 1) {
		sb.WriteString("Profit factor: no losing trades yet\n")
	} else {
		fmt.Fprintf(&sb, "Profit factor: %.2f\n", m.ProfitFactor)
	}
	fmt.Fprintf(&sb, "Average win / loss: %.2f / %.2f\n", m.AverageWin, m.AverageLoss)
	fmt.Fprintf(&sb, "Max drawdown: %.2f (%.1f%% of starting capital)\n",
		m.MaxDrawdown, analytics.DrawdownPercentage(phases))
	fmt.Fprintf(&sb, "Average risk per trade: %.1f%%\n", m.AverageRiskPercent)
	fmt.Fprintf(&sb, "Consistency score: %.0f/100\n", analytics.ConsistencyScore(phases))
	fmt.Fprintf(&sb, "Best win streak: %d, worst loss streak: %d, recovery rate: %.0f%%\n",
		patterns.BestWinStreak, patterns.WorstLossStreak, patterns.RecoveryRate)

	if buckets := analytics.MonthlyPerformance(phases); len(buckets) > 0 {
		sb.WriteString("\nMonthly results:\n")
		for _, b := range buckets {
			fmt.Fprintf(&sb, "  %s: %.2f over %d trades (%.0f%% win rate)\n",
				b.Month, b.Profit, b.Trades, b.WinRate)
		}
	}

	var warnings []string
	for _, p := range phases {
		warnings = append(warnings, risk.CheckPhase(p, policy)...)
	}
	if len(warnings) > 0 {
		sb.WriteString("\nActive risk warnings:\n")
		for _, w := range warnings {
			fmt.Fprintf(&sb, "  - %s\n", w)
		}
	}

	fmt.Fprintf(&sb, "\nRisk policy: warn above %.0f%% risk per trade, %.0f%% drawdown alarm",
		policy.RiskThresholdPercent, policy.DrawdownWarnPct)
	if policy.MaxSLAmount > 0 {
		fmt.Fprintf(&sb, ", fixed $%.0f stop loss, %d trades/day limit",
			policy.MaxSLAmount, policy.MaxDailyTrades)
	}
	sb.WriteString("\n")

	return sb.String()
}
