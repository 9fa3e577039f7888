// Package checkout materializes a fetched commit's tree onto disk.
//
// Grounded on original_source/checkout.rs: checkout() resolves the commit's
// tree hash and hands off to a recursive process_tree that creates a
// directory per tree entry and writes blob content directly via
// write_blob_to_file. There is no working-tree diffing here — every entry
// in the tree is (re)written, matching a fresh clone rather than a
// checkout of an existing worktree.
package checkout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-vc/vc/internal/core/objects"
	"github.com/go-vc/vc/internal/pack"
)

// Checkout writes the working tree for commitHash under root, reading
// object content from index (the in-memory result of decoding a fetched
// packfile).
func Checkout(root string, index pack.Index, commitHash objects.ObjectID) error {
	commit, ok := index[commitHash]
	if !ok {
		return fmt.Errorf("checkout: commit %s not found among fetched objects", commitHash)
	}

	treeHash, err := objects.CommitTreeHash(commit.Content)
	if err != nil {
		return fmt.Errorf("checkout: reading tree hash from commit %s: %w", commitHash, err)
	}

	return processTree(root, index, treeHash)
}

func processTree(dir string, index pack.Index, treeHash objects.ObjectID) error {
	treeEntry, ok := index[treeHash]
	if !ok {
		return fmt.Errorf("checkout: tree %s not found among fetched objects", treeHash)
	}

	tree, err := objects.ParseTree(treeHash, treeEntry.Content)
	if err != nil {
		return fmt.Errorf("checkout: parsing tree %s: %w", treeHash, err)
	}

	for _, entry := range tree.Entries() {
		entryPath := filepath.Join(dir, entry.Name)

		switch {
		case entry.Mode.IsTree():
			if err := os.MkdirAll(entryPath, 0755); err != nil {
				return fmt.Errorf("checkout: creating directory %s: %w", entryPath, err)
			}
			if err := processTree(entryPath, index, entry.ID); err != nil {
				return err
			}

		case entry.Mode.IsBlob():
			blobEntry, ok := index[entry.ID]
			if !ok {
				return fmt.Errorf("checkout: blob %s not found among fetched objects", entry.ID)
			}
			if err := writeBlobToFile(entryPath, blobEntry.Content); err != nil {
				return err
			}

		default:
			return fmt.Errorf("checkout: entry %s has unsupported mode %d", entry.Name, entry.Mode)
		}
	}

	return nil
}

func writeBlobToFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("checkout: creating parent directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("checkout: writing %s: %w", path, err)
	}
	return nil
}
