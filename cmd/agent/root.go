package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vidnotes/vidnotes-agent/internal/logging"
)

var (
	configPath string
	verbose    bool
	headless   bool
)

// rootCmd starts the agent when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "vidnotes-agent",
	Short: "Take timestamped notes on YouTube videos and export them to PDF",
	Long: `vidnotes-agent serves a local player page for one YouTube video at a time.
Notes are stamped with the playback position and can be exported as a PDF.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		slog.SetDefault(logging.NewLoggerTo(os.Stderr, level))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(configPath, headless, verbose)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local player server and system tray",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(configPath, headless, verbose)
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&headless, "headless", false, "Run without the system tray")

	rootCmd.AddCommand(serveCmd)
}
