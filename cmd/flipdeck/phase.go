package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flipdeck/flipdeck/internal/app"
)

var phaseCmd = &cobra.Command{
	Use:   "phase",
	Short: "Phase operations",
	Long:  `Commands for managing flip phases (start, list, archive, withdraw).`,
}

var phaseStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new phase",
	RunE:  runPhaseStart,
}

var phaseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List phases",
	RunE:  runPhaseList,
}

var phaseArchiveCmd = &cobra.Command{
	Use:   "archive [number]",
	Short: "Archive a phase",
	Args:  cobra.ExactArgs(1),
	RunE:  runPhaseArchive,
}

var phaseUnarchiveCmd = &cobra.Command{
	Use:   "unarchive [number]",
	Short: "Reinstate an archived phase",
	Args:  cobra.ExactArgs(1),
	RunE:  runPhaseUnarchive,
}

var phaseDeleteCmd = &cobra.Command{
	Use:   "delete [number]",
	Short: "Delete an active phase",
	Args:  cobra.ExactArgs(1),
	RunE:  runPhaseDelete,
}

var phaseWithdrawCmd = &cobra.Command{
	Use:   "withdraw [number]",
	Short: "Record a withdrawal from a phase",
	Args:  cobra.ExactArgs(1),
	RunE:  runPhaseWithdraw,
}

var (
	phaseCapital    float64
	phaseTrades     int
	phaseGoal       float64
	phaseStartDate  string
	phaseEndDate    string
	withdrawAmount  float64
)

func init() {
	rootCmd.AddCommand(phaseCmd)
	phaseCmd.AddCommand(phaseStartCmd)
	phaseCmd.AddCommand(phaseListCmd)
	phaseCmd.AddCommand(phaseArchiveCmd)
	phaseCmd.AddCommand(phaseUnarchiveCmd)
	phaseCmd.AddCommand(phaseDeleteCmd)
	phaseCmd.AddCommand(phaseWithdrawCmd)

	phaseStartCmd.Flags().Float64Var(&phaseCapital, "capital", 0, "Initial capital (required)")
	phaseStartCmd.Flags().IntVar(&phaseTrades, "trades", 10, "Trade slots in the phase")
	phaseStartCmd.Flags().Float64Var(&phaseGoal, "goal", 0, "Goal balance (default: 2x capital)")
	phaseStartCmd.Flags().StringVar(&phaseStartDate, "date", "", "Start date YYYY-MM-DD (default: today)")
	phaseStartCmd.MarkFlagRequired("capital")

	phaseArchiveCmd.Flags().StringVar(&phaseEndDate, "end-date", "", "End date YYYY-MM-DD (default: today)")

	phaseWithdrawCmd.Flags().Float64Var(&withdrawAmount, "amount", 0, "Amount to withdraw (required)")
	phaseWithdrawCmd.MarkFlagRequired("amount")
}

func parsePhaseNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid phase number %q", arg)
	}
	return n, nil
}

func runPhaseStart(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		if phaseCapital <= 0 {
			return fmt.Errorf("capital must be positive")
		}
		date := phaseStartDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}

		phase, err := a.StartPhase(context.Background(), phaseCapital, phaseTrades, phaseGoal, date)
		if err != nil {
			return fmt.Errorf("starting phase: %w", err)
		}

		fmt.Printf("Started phase %d\n", phase.Number)
		fmt.Printf("  Capital: $%.2f\n", phase.InitialCapital)
		fmt.Printf("  Goal:    $%.2f (%.1fx)\n", phase.GoalTarget, phase.FlipTarget)
		fmt.Printf("  Cycle:   %s\n", phase.CycleType)

		log.Info("phase started", zap.Int("phase", phase.Number), zap.Float64("capital", phase.InitialCapital))
		return nil
	})
}

func runPhaseList(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		book := a.Book()
		if len(book.Phases) == 0 && len(book.ArchivedPhases) == 0 {
			fmt.Println("No phases found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PHASE\tCAPITAL\tBALANCE\tGOAL\tSTAGE\tSTART\tSTATUS\t")
		fmt.Fprintln(w, "-----\t-------\t-------\t----\t-----\t-----\t------\t")

		for _, p := range book.Phases {
			fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%s\t%s\tactive\t\n",
				p.Number, p.InitialCapital, p.CurrentBalance(), p.GoalTarget, p.WithdrawalStage, p.StartDate)
		}
		for _, p := range book.ArchivedPhases {
			fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%s\t%s\tarchived\t\n",
				p.Number, p.InitialCapital, p.CurrentBalance(), p.GoalTarget, p.WithdrawalStage, p.StartDate)
		}
		w.Flush()

		fmt.Printf("\nOffline capital: $%.2f  Flips completed: %d\n",
			book.OfflineCapitalStack, book.TotalFlipsCompleted)
		return nil
	})
}

func runPhaseArchive(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		number, err := parsePhaseNumber(args[0])
		if err != nil {
			return err
		}
		endDate := phaseEndDate
		if endDate == "" {
			endDate = time.Now().Format("2006-01-02")
		}
		if err := a.ArchivePhase(context.Background(), number, endDate); err != nil {
			return fmt.Errorf("archiving phase: %w", err)
		}
		fmt.Printf("Archived phase %d\n", number)
		log.Info("phase archived", zap.Int("phase", number))
		return nil
	})
}

func runPhaseUnarchive(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		number, err := parsePhaseNumber(args[0])
		if err != nil {
			return err
		}
		if err := a.UnarchivePhase(context.Background(), number); err != nil {
			return fmt.Errorf("unarchiving phase: %w", err)
		}
		fmt.Printf("Reinstated phase %d\n", number)
		log.Info("phase unarchived", zap.Int("phase", number))
		return nil
	})
}

func runPhaseDelete(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		number, err := parsePhaseNumber(args[0])
		if err != nil {
			return err
		}
		if err := a.DeletePhase(context.Background(), number); err != nil {
			return fmt.Errorf("deleting phase: %w", err)
		}
		fmt.Printf("Deleted phase %d\n", number)
		log.Info("phase deleted", zap.Int("phase", number))
		return nil
	})
}

func runPhaseWithdraw(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		number, err := parsePhaseNumber(args[0])
		if err != nil {
			return err
		}
		if withdrawAmount <= 0 {
			return fmt.Errorf("amount must be positive")
		}
		if err := a.RecordWithdrawal(context.Background(), number, withdrawAmount); err != nil {
			return fmt.Errorf("recording withdrawal: %w", err)
		}

		book := a.Book()
		fmt.Printf("Withdrew $%.2f from phase %d\n", withdrawAmount, number)
		fmt.Printf("Offline capital: $%.2f\n", book.OfflineCapitalStack)

		log.Info("withdrawal recorded",
			zap.Int("phase", number), zap.Float64("amount", withdrawAmount))
		return nil
	})
}
