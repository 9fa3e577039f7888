package main

import (
	"fmt"
	"path/filepath"

	"github.com/go-vc/vc/pkg/vc"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var bare bool
	
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new repository",
		Long:  "Create an empty VCS repository or reinitialize an existing one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			
			// Get absolute path
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to get absolute path: %w", err)
			}
			
			// Initialize repository
			repo, err := vc.Init(absPath)
			if err != nil {
				return fmt.Errorf("failed to initialize repository: %w", err)
			}
			
			// Print success message
			if bare {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty VCS repository in %s\n", repo.VCDir())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty VCS repository in %s\n", filepath.Join(repo.VCDir()))
			}
			
			return nil
		},
	}
	
	cmd.Flags().BoolVar(&bare, "bare", false, "Accepted but has no effect: the repository is created with a .vc directory and the same message either way")
	
	return cmd
}