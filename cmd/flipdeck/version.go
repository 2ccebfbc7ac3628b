package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Stamped by the release build via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flipdeck %s (%s, %s/%s)\n", Version, GitCommit, runtime.GOOS, runtime.GOARCH)
		fmt.Printf("  built %s with %s\n", BuildTime, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
