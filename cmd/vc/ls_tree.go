package main

import (
	"fmt"

	"github.com/go-vc/vc/internal/core/objects"
	"github.com/go-vc/vc/pkg/vc"
	"github.com/spf13/cobra"
)

func newLsTreeCommand() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "ls-tree <tree-ish>",
		Short: "List the contents of a tree object",
		Long:  "Reads a tree object and prints one entry filename per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := vc.Open(".")
			if err != nil {
				return fmt.Errorf("not in a vcs repository: %w", err)
			}

			id, err := objects.NewObjectID(args[0])
			if err != nil {
				return fmt.Errorf("invalid object ID: %w", err)
			}

			obj, err := repo.ReadObject(id)
			if err != nil {
				return fmt.Errorf("failed to read object: %w", err)
			}

			tree, ok := obj.(*objects.Tree)
			if !ok {
				return fmt.Errorf("object %s is not a tree", id)
			}

			for _, entry := range tree.Entries() {
				if !long {
					fmt.Fprintln(cmd.OutOrStdout(), entry.Name)
					continue
				}

				kind := "blob"
				if entry.Mode.IsTree() {
					kind = "tree"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%06d %s %s\t%s\n", entry.Mode, kind, entry.ID, entry.Name)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&long, "long", false, "Show mode, type, and object ID alongside each filename")

	return cmd
}
