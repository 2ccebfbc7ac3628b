package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flipdeck/flipdeck/internal/analytics"
	"github.com/flipdeck/flipdeck/internal/app"
	"github.com/flipdeck/flipdeck/internal/risk"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the performance report",
	Long:  "Derive the full analytics suite from the journal and print it.",
	RunE:  runReport,
}

var reportJSON bool

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Emit the report as JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		book := a.Book()
		phases := book.AllPhases()

		if reportJSON {
			report := map[string]any{
				"metrics":          analytics.Calculate(phases),
				"drawdownPercent":  analytics.DrawdownPercentage(phases),
				"consistencyScore": analytics.ConsistencyScore(phases),
				"monthly":          analytics.MonthlyPerformance(phases),
				"distribution":     analytics.RiskDistribution(phases),
				"patterns":         analytics.ScanPatterns(phases),
				"time":             analytics.AnalyzeTime(phases),
				"strategies":       analytics.StrategyBreakdown(phases),
				"goals":            analytics.GoalProgress(phases),
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		m := analytics.Calculate(phases)

		fmt.Println("=== flipdeck report ===")
		fmt.Println()
		fmt.Printf("Trades:        %d (%d W / %d L)\n", m.TotalTrades, m.WinningTrades, m.LosingTrades)
		fmt.Printf("Win rate:      %.1f%%\n", m.WinRate)
		fmt.Printf("Net P/L:       $%+.2f\n", m.TotalProfitLoss)
		if math.IsInf(m.ProfitFactor, 1) {
			fmt.Println("Profit factor: inf (no losing trades)")
		} else {
			fmt.Printf("Profit factor: %.2f\n", m.ProfitFactor)
		}
		fmt.Printf("Avg win/loss:  $%.2f / $%.2f\n", m.AverageWin, m.AverageLoss)
		fmt.Printf("Best/worst:    $%+.2f / $%+.2f\n", m.BestTrade, m.WorstTrade)
		fmt.Printf("Max drawdown:  $%.2f (%.1f%% of capital)\n",
			m.MaxDrawdown, analytics.DrawdownPercentage(phases))
		fmt.Printf("Consistency:   %.0f/100\n", analytics.ConsistencyScore(phases))

		if monthly := analytics.MonthlyPerformance(phases); len(monthly) > 0 {
			fmt.Println("\nMonthly:")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tP/L\tTRADES\tWIN RATE\t")
			for _, b := range monthly {
				fmt.Fprintf(w, "%s\t%+.2f\t%d\t%.1f%%\t\n", b.Month, b.Profit, b.Trades, b.WinRate)
			}
			w.Flush()
		}

		if strategies := analytics.StrategyBreakdown(phases); len(strategies) > 0 {
			fmt.Println("\nStrategies:")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STRATEGY\tTRADES\tP/L\tWIN RATE\t")
			for _, s := range strategies {
				fmt.Fprintf(w, "%s\t%d\t%+.2f\t%.1f%%\t\n", s.Strategy, s.Trades, s.Profit, s.WinRate)
			}
			w.Flush()
		}

		p := analytics.ScanPatterns(phases)
		fmt.Printf("\nStreaks: best %d wins, worst %d losses, recovery %.0f%%\n",
			p.BestWinStreak, p.WorstLossStreak, p.RecoveryRate)

		if goals := analytics.GoalProgress(phases); len(goals) > 0 {
			fmt.Println("\nGoals:")
			for _, g := range goals {
				mark := " "
				if g.Completed {
					mark = "x"
				}
				fmt.Printf("  [%s] phase %d: $%.2f of $%.2f (%.0f%%)\n",
					mark, g.PhaseNumber, g.Current, g.Target, g.Progress)
			}
		}

		warned := false
		for _, phase := range book.Phases {
			if ws := risk.CheckPhase(phase, a.Policy()); len(ws) > 0 {
				if !warned {
					fmt.Println("\nRisk warnings:")
					warned = true
				}
				for _, w := range ws {
					fmt.Printf("  ! phase %d: %s\n", phase.Number, w)
				}
			}
		}

		return nil
	})
}
