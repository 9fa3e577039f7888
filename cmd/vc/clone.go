package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-vc/vc/pkg/vc"
	"github.com/spf13/cobra"
)

func newCloneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone <repository> [directory]",
		Short: "Clone a repository from a Git smart-HTTP remote",
		Long:  "Discovers the remote's branches, takes the last refs/heads/* branch it advertises, fetches its packfile, and checks out the working tree into a new repository",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri := strings.TrimSuffix(args[0], "/")

			targetDir := args[0]
			if len(args) > 1 {
				targetDir = args[1]
			} else {
				targetDir = strings.TrimSuffix(filepath.Base(uri), ".git")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			repo, err := vc.Clone(ctx, uri, targetDir)
			if err != nil {
				return fmt.Errorf("clone failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cloned into %s\n", repo.Path())
			return nil
		},
	}

	return cmd
}
