package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vc",
		Short: "A content-addressed version control engine",
		Long: `vc is a Git-compatible version control engine: object store, tree
hashing, packfile decoding, and a smart-HTTP clone client.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	// Add commands
	rootCmd.AddCommand(
		newInitCommand(),
		newHashObjectCommand(),
		newCatFileCommand(),
		newLsTreeCommand(),
		newWriteTreeCommand(),
		newCommitTreeCommand(),
		newCloneCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}