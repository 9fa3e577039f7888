package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-vc/vc/internal/core/objects"
	"github.com/go-vc/vc/pkg/vc"
	"github.com/spf13/cobra"
)

const (
	defaultAuthorName  = "vc"
	defaultAuthorEmail = "vc@localhost"
)

func newCommitTreeCommand() *cobra.Command {
	var (
		parents []string
		message string
	)

	cmd := &cobra.Command{
		Use:   "commit-tree <tree>",
		Short: "Create a commit object from a tree",
		Long:  "Creates a new commit object from the given tree object and parent commits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := vc.Open(".")
			if err != nil {
				return fmt.Errorf("not in a vcs repository: %w", err)
			}

			treeID, err := objects.NewObjectID(args[0])
			if err != nil {
				return fmt.Errorf("invalid tree ID: %w", err)
			}

			parentIDs := make([]objects.ObjectID, 0, len(parents))
			for _, p := range parents {
				id, err := objects.NewObjectID(p)
				if err != nil {
					return fmt.Errorf("invalid parent ID %q: %w", p, err)
				}
				parentIDs = append(parentIDs, id)
			}

			sig := authorFromEnv()

			commit, err := repo.CreateCommit(treeID, parentIDs, sig, sig, message)
			if err != nil {
				return fmt.Errorf("failed to create commit: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), commit.ID())
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&parents, "parent", "p", nil, "Parent commit ID (may be repeated)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")

	return cmd
}

// authorFromEnv resolves commit identity from VC_AUTHOR_NAME/VC_AUTHOR_EMAIL,
// falling back to a fixed placeholder the way original_source/commit_tree.rs
// hardcodes one, since nothing upstream of the CLI configures identity.
func authorFromEnv() objects.Signature {
	name := os.Getenv("VC_AUTHOR_NAME")
	if name == "" {
		name = defaultAuthorName
	}
	email := os.Getenv("VC_AUTHOR_EMAIL")
	if email == "" {
		email = defaultAuthorEmail
	}

	return objects.Signature{
		Name:  name,
		Email: email,
		When:  time.Now(),
	}
}
