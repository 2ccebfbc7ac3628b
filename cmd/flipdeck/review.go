package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flipdeck/flipdeck/internal/app"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Ask the configured LLM for a journal review",
	Long:  "Send a digest of the journal to the configured LLM provider and print its qualitative assessment.",
	RunE:  runReview,
}

var reviewTimeout time.Duration

func init() {
	reviewCmd.Flags().DurationVar(&reviewTimeout, "timeout", 60*time.Second, "Request timeout")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
		defer cancel()

		review, err := a.Review(ctx)
		if err != nil {
			return fmt.Errorf("reviewing journal: %w", err)
		}

		fmt.Println("=== Journal review ===")
		fmt.Println()
		fmt.Println(review.Assessment)

		printSection := func(title string, items []string) {
			if len(items) == 0 {
				return
			}
			fmt.Printf("\n%s:\n", title)
			for _, item := range items {
				fmt.Printf("  - %s\n", item)
			}
		}
		printSection("Strengths", review.Strengths)
		printSection("Risks", review.Risks)
		printSection("Suggestions", review.Suggestions)

		log.Info("journal reviewed")
		return nil
	})
}
