package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flipdeck/flipdeck/internal/app"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Snapshot operations",
	Long:  `Commands for archiving and restoring journal snapshots.`,
}

var snapshotCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Archive the current journal state",
	RunE:  runSnapshotCreate,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived snapshots",
	RunE:  runSnapshotList,
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Replace the journal with a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotRestore,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an archived snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotDelete,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotCreateCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotRestoreCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
}

func runSnapshotCreate(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		snap, err := a.Snapshot(context.Background())
		if err != nil {
			return fmt.Errorf("creating snapshot: %w", err)
		}
		fmt.Printf("Created snapshot %s\n", snap.ID)
		fmt.Printf("  Phases: %d  Trades: %d\n", snap.Phases, snap.Trades)
		log.Info("snapshot created", zap.String("id", snap.ID))
		return nil
	})
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		snaps, err := a.ListSnapshots(context.Background())
		if err != nil {
			return fmt.Errorf("listing snapshots: %w", err)
		}
		if len(snaps) == 0 {
			fmt.Println("No snapshots found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tPHASES\tTRADES\t")
		fmt.Fprintln(w, "--\t-------\t------\t------\t")
		for _, s := range snaps {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Phases, s.Trades)
		}
		w.Flush()

		log.Info("snapshots listed", zap.Int("count", len(snaps)))
		return nil
	})
}

func runSnapshotRestore(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		if err := a.RestoreSnapshot(context.Background(), args[0]); err != nil {
			return fmt.Errorf("restoring snapshot: %w", err)
		}
		fmt.Printf("Restored snapshot %s\n", args[0])
		log.Info("snapshot restored", zap.String("id", args[0]))
		return nil
	})
}

func runSnapshotDelete(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		if err := a.DeleteSnapshot(context.Background(), args[0]); err != nil {
			return fmt.Errorf("deleting snapshot: %w", err)
		}
		fmt.Printf("Deleted snapshot %s\n", args[0])
		log.Info("snapshot deleted", zap.String("id", args[0]))
		return nil
	})
}
