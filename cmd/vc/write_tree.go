package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-vc/vc/internal/core/objects"
	"github.com/go-vc/vc/internal/core/workdir"
	"github.com/go-vc/vc/pkg/vc"
	"github.com/spf13/cobra"
)

func newWriteTreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write-tree",
		Short: "Create a tree object from the current working directory",
		Long:  "Recursively writes a tree object representing the current working directory and its contents, honoring .gitignore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := vc.Open(".")
			if err != nil {
				return fmt.Errorf("not in a vcs repository: %w", err)
			}

			scanner := workdir.NewScanner(".", repo.VCDir())
			if err := scanner.LoadIgnoreFile(".gitignore"); err != nil {
				return fmt.Errorf("write-tree: loading .gitignore: %w", err)
			}

			files, err := scanner.ScanFiles()
			if err != nil {
				return fmt.Errorf("write-tree: scanning working directory: %w", err)
			}
			files = scanner.FilterIgnored(files)

			root := buildDirTree(files)

			id, err := writeTreeNode(repo, scanner, root)
			if err != nil {
				return err
			}
			if id == nil {
				return fmt.Errorf("write-tree: working directory is empty")
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	return cmd
}

// dirNode is an in-memory directory tree built from the scanner's flat,
// already-filtered file listing, so that writeTreeNode can write one tree
// object per directory level bottom-up.
type dirNode struct {
	files map[string]string // entry name -> full scanner-relative path
	dirs  map[string]*dirNode
}

func newDirNode() *dirNode {
	return &dirNode{files: map[string]string{}, dirs: map[string]*dirNode{}}
}

// buildDirTree groups the scanner's flat file list back into a directory
// hierarchy, since workdir.Scanner.ScanFiles walks the whole working
// directory in one pass rather than level by level.
func buildDirTree(files []workdir.FileInfo) *dirNode {
	root := newDirNode()

	for _, f := range files {
		parts := strings.Split(f.Path, "/")
		node := root
		for i, part := range parts {
			if i == len(parts)-1 {
				node.files[part] = f.Path
				continue
			}
			child, ok := node.dirs[part]
			if !ok {
				child = newDirNode()
				node.dirs[part] = child
			}
			node = child
		}
	}

	return root
}

// writeTreeNode recursively writes one tree object per directory level. An
// empty directory (no files and no non-empty subdirectories) produces no
// tree object, matching write_tree_object's Option<Hash> result.
func writeTreeNode(repo *vc.Repository, scanner *workdir.Scanner, node *dirNode) (*objects.ObjectID, error) {
	names := make([]string, 0, len(node.dirs)+len(node.files))
	for name := range node.dirs {
		names = append(names, name)
	}
	for name := range node.files {
		names = append(names, name)
	}
	sort.Strings(names)

	tree := objects.NewTree()
	for _, name := range names {
		if sub, ok := node.dirs[name]; ok {
			subID, err := writeTreeNode(repo, scanner, sub)
			if err != nil {
				return nil, err
			}
			if subID == nil {
				continue
			}
			if err := tree.AddEntry(objects.ModeTree, name, *subID); err != nil {
				return nil, err
			}
			continue
		}

		path := node.files[name]

		mode, err := scanner.GetFileMode(path)
		if err != nil {
			return nil, fmt.Errorf("write-tree: stat %s: %w", path, err)
		}

		data, err := scanner.GetFileContent(path)
		if err != nil {
			return nil, fmt.Errorf("write-tree: reading %s: %w", path, err)
		}

		blobID, err := repo.HashObject(data, objects.TypeBlob, true)
		if err != nil {
			return nil, fmt.Errorf("write-tree: hashing %s: %w", path, err)
		}

		if err := tree.AddEntry(mode, name, blobID); err != nil {
			return nil, err
		}
	}

	if len(tree.Entries()) == 0 {
		return nil, nil
	}

	if err := repo.WriteObject(tree); err != nil {
		return nil, fmt.Errorf("write-tree: writing tree: %w", err)
	}

	id := tree.ID()
	return &id, nil
}
