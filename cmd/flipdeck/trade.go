package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flipdeck/flipdeck/internal/app"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Trade operations",
}

var tradeLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a completed trade",
	Long:  "Mark a trade slot as completed with its realized profit or loss.",
	RunE:  runTradeLog,
}

var (
	tradePhase int
	tradeSeq   int
	tradeDate  string
	tradePL    float64
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeLogCmd)

	tradeLogCmd.Flags().IntVar(&tradePhase, "phase", 0, "Phase number (default: active phase)")
	tradeLogCmd.Flags().IntVar(&tradeSeq, "trade", 0, "Trade slot number (required)")
	tradeLogCmd.Flags().StringVar(&tradeDate, "date", "", "Trade date YYYY-MM-DD (default: today)")
	tradeLogCmd.Flags().Float64Var(&tradePL, "pl", 0, "Realized profit or loss (required)")
	tradeLogCmd.MarkFlagRequired("trade")
	tradeLogCmd.MarkFlagRequired("pl")
}

func runTradeLog(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		phaseNumber := tradePhase
		if phaseNumber == 0 {
			active, err := a.Book().ActivePhase()
			if err != nil {
				return fmt.Errorf("no active phase, start one first: %w", err)
			}
			phaseNumber = active.Number
		}

		date := tradeDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}

		warnings, err := a.LogTrade(context.Background(), phaseNumber, tradeSeq, date, tradePL)
		if err != nil {
			return fmt.Errorf("logging trade: %w", err)
		}

		phase, err := a.Book().FindPhase(phaseNumber)
		if err != nil {
			return err
		}

		fmt.Printf("Logged trade %d of phase %d: %+.2f\n", tradeSeq, phaseNumber, tradePL)
		fmt.Printf("Balance: $%.2f (stage: %s)\n", phase.CurrentBalance(), phase.WithdrawalStage)

		if len(warnings) > 0 {
			fmt.Println("\nRisk warnings:")
			for _, w := range warnings {
				fmt.Printf("  ! %s\n", w)
			}
		}

		log.Info("trade logged",
			zap.Int("phase", phaseNumber),
			zap.Int("trade", tradeSeq),
			zap.Float64("pl", tradePL),
			zap.Int("warnings", len(warnings)),
		)
		return nil
	})
}
