package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flipdeck/flipdeck/internal/app"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal",
	Long:  "Write the journal as CSV (completed trades) or JSON (full document).",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the journal with an exported JSON document",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format: csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		var out io.Writer = os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		var err error
		switch exportFormat {
		case "csv":
			err = a.ExportCSV(out)
		case "json":
			err = a.ExportJSON(out)
		default:
			return fmt.Errorf("unknown format %q (expected csv or json)", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("exporting: %w", err)
		}

		if exportOut != "" {
			fmt.Printf("Exported journal to %s\n", exportOut)
		}
		log.Info("journal exported", zap.String("format", exportFormat))
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening import file: %w", err)
		}
		defer f.Close()

		if err := a.ImportJSON(context.Background(), f); err != nil {
			return fmt.Errorf("importing: %w", err)
		}

		book := a.Book()
		fmt.Printf("Imported journal: %d active, %d archived phases\n",
			len(book.Phases), len(book.ArchivedPhases))
		log.Info("journal imported", zap.String("file", args[0]))
		return nil
	})
}
