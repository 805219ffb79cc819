package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vidnotes/vidnotes-agent/internal/config"
	"github.com/vidnotes/vidnotes-agent/internal/videoref"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <url-or-id>",
	Short: "Print the video ID and thumbnail for a YouTube URL or ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := videoref.Parse(args[0])
		if err != nil {
			return fmt.Errorf("%q: %w", args[0], err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "video_id: %s\n", id)
		fmt.Fprintf(out, "thumbnail: %s\n", videoref.ThumbnailURL(id))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vidnotes-agent",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vidnotes-agent version %s (commit %s, built %s)\n",
			config.Version, config.GitCommit, config.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)
}
