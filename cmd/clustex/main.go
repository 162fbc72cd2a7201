// Package main provides the clustex CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/clustex/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clustex",
	Short: "Structural document clustering",
	Long: `clustex groups text files into buckets of structurally similar documents
without any hand-authored taxonomy: character n-gram TF-IDF vectors plus
density-based clustering under cosine distance.

Run it as an HTTP service (clustex serve) or cluster a directory of files
offline (clustex cluster).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version.Version
}
