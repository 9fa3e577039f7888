package vc

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-vc/vc/internal/checkout"
	"github.com/go-vc/vc/internal/core/objects"
	"github.com/go-vc/vc/internal/core/refs"
	"github.com/go-vc/vc/internal/pack"
	"github.com/go-vc/vc/internal/transport"
)

// Repository represents a content-addressed version control repository.
type Repository struct {
	path    string
	vcDir   string
	storage *objects.Storage
	refs    *refs.RefManager
}

// Init initializes a new repository at the given path
func Init(path string) (*Repository, error) {
	// Create repository directory
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create repository directory: %w", err)
	}

	vcDir := filepath.Join(path, ".vc")

	// Create .vc directory
	if err := os.MkdirAll(vcDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .vc directory: %w", err)
	}

	// Initialize object storage
	storage := objects.NewStorage(vcDir)
	if err := storage.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	// Create other necessary directories
	dirs := []string{"refs/heads", "refs/tags", "hooks", "info"}
	for _, dir := range dirs {
		fullPath := filepath.Join(vcDir, dir)
		if err := os.MkdirAll(fullPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}

	// Create HEAD file
	headPath := filepath.Join(vcDir, "HEAD")
	headContent := "ref: refs/heads/master\n"
	if err := os.WriteFile(headPath, []byte(headContent), 0644); err != nil {
		return nil, fmt.Errorf("failed to create HEAD file: %w", err)
	}

	// Create config file
	configPath := filepath.Join(vcDir, "config")
	configContent := `[core]
	repositoryformatversion = 0
	filemode = true
	bare = false
	logallrefupdates = true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		return nil, fmt.Errorf("failed to create config file: %w", err)
	}

	// Create description file
	descPath := filepath.Join(vcDir, "description")
	descContent := "Unnamed repository; edit this file 'description' to name the repository.\n"
	if err := os.WriteFile(descPath, []byte(descContent), 0644); err != nil {
		return nil, fmt.Errorf("failed to create description file: %w", err)
	}

	return &Repository{
		path:    path,
		vcDir:   vcDir,
		storage: storage,
		refs:    refs.NewRefManager(vcDir),
	}, nil
}

// Open opens an existing repository
func Open(path string) (*Repository, error) {
	// Find .vc directory
	vcDir := filepath.Join(path, ".vc")
	if info, err := os.Stat(vcDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("not a vc repository: %s", path)
	}

	// Verify it's a valid repository
	headPath := filepath.Join(vcDir, "HEAD")
	if _, err := os.Stat(headPath); err != nil {
		return nil, fmt.Errorf("invalid vc repository: missing HEAD")
	}

	storage := objects.NewStorage(vcDir)

	return &Repository{
		path:    path,
		vcDir:   vcDir,
		storage: storage,
		refs:    refs.NewRefManager(vcDir),
	}, nil
}

// Clone fetches a single branch from a Git smart-HTTP remote at uri and
// materializes it as a new repository at targetDir: discover refs, fetch
// the branch tip's packfile, persist every object it contains, check out
// the resulting tree, and point the new repository's HEAD and branch ref
// at the fetched commit. Grounded on original_source/clone.rs's clone(),
// which performs the same steps in the same order.
func Clone(ctx context.Context, uri, targetDir string) (*Repository, error) {
	discovered, err := transport.DiscoverRefs(ctx, nil, uri)
	if err != nil {
		return nil, fmt.Errorf("clone: discovering refs: %w", err)
	}
	if len(discovered) == 0 {
		return nil, fmt.Errorf("clone: remote %s has no refs/heads/* branches", uri)
	}
	branch := discovered[len(discovered)-1]

	packBody, err := transport.FetchPack(ctx, nil, uri, branch.CommitHash)
	if err != nil {
		return nil, fmt.Errorf("clone: fetching packfile: %w", err)
	}

	index, err := pack.Decode(packBody)
	if err != nil {
		return nil, fmt.Errorf("clone: decoding packfile: %w", err)
	}

	repo, err := Init(targetDir)
	if err != nil {
		return nil, fmt.Errorf("clone: initializing repository: %w", err)
	}

	for id, entry := range index {
		if _, err := repo.storage.WriteRaw(entry.Type, entry.Content); err != nil {
			return nil, fmt.Errorf("clone: persisting object %s: %w", id, err)
		}
	}

	if err := checkout.Checkout(repo.path, index, branch.CommitHash); err != nil {
		return nil, fmt.Errorf("clone: checking out working tree: %w", err)
	}

	refName := "refs/heads/" + branch.BranchName
	if err := repo.refs.UpdateRef(refName, branch.CommitHash); err != nil {
		return nil, fmt.Errorf("clone: updating ref %s: %w", refName, err)
	}
	if err := repo.refs.SetHEAD(refName); err != nil {
		return nil, fmt.Errorf("clone: setting HEAD: %w", err)
	}

	return repo, nil
}

// Path returns the repository path
func (r *Repository) Path() string {
	return r.path
}

// VCDir returns the .vc directory path
func (r *Repository) VCDir() string {
	return r.vcDir
}

// Refs returns the repository's reference manager.
func (r *Repository) Refs() *refs.RefManager {
	return r.refs
}

// HashObject hashes data and optionally writes it to the object store
func (r *Repository) HashObject(data []byte, objType objects.ObjectType, write bool) (objects.ObjectID, error) {
	var obj objects.Object
	
	switch objType {
	case objects.TypeBlob:
		obj = objects.NewBlob(data)
	default:
		return objects.ObjectID{}, fmt.Errorf("unsupported object type for hash-object: %s", objType)
	}
	
	if write {
		if err := r.storage.WriteObject(obj); err != nil {
			return objects.ObjectID{}, err
		}
	}
	
	return obj.ID(), nil
}

// HashObjectFromReader hashes data from a reader
func (r *Repository) HashObjectFromReader(reader io.Reader, objType objects.ObjectType, write bool) (objects.ObjectID, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return objects.ObjectID{}, fmt.Errorf("failed to read data: %w", err)
	}
	
	return r.HashObject(data, objType, write)
}

// ReadObject reads an object from the repository
func (r *Repository) ReadObject(id objects.ObjectID) (objects.Object, error) {
	return r.storage.ReadObject(id)
}

// WriteObject writes an object to the repository
func (r *Repository) WriteObject(obj objects.Object) error {
	return r.storage.WriteObject(obj)
}

// HasObject checks if an object exists in the repository
func (r *Repository) HasObject(id objects.ObjectID) bool {
	return r.storage.HasObject(id)
}

// CreateBlob creates a blob from data
func (r *Repository) CreateBlob(data []byte) (*objects.Blob, error) {
	blob := objects.NewBlob(data)
	if err := r.WriteObject(blob); err != nil {
		return nil, err
	}
	return blob, nil
}

// CreateTree creates a tree object
func (r *Repository) CreateTree(entries []objects.TreeEntry) (*objects.Tree, error) {
	tree := objects.NewTree()
	
	for _, entry := range entries {
		if err := tree.AddEntry(entry.Mode, entry.Name, entry.ID); err != nil {
			return nil, err
		}
	}
	
	if err := r.WriteObject(tree); err != nil {
		return nil, err
	}
	
	return tree, nil
}

// CreateCommit creates a commit object
func (r *Repository) CreateCommit(tree objects.ObjectID, parents []objects.ObjectID, author, committer objects.Signature, message string) (*objects.Commit, error) {
	commit := objects.NewCommit(tree, parents, author, committer, message)
	
	if err := r.WriteObject(commit); err != nil {
		return nil, err
	}
	
	return commit, nil
}

// CreateTag creates a tag object
func (r *Repository) CreateTag(object objects.ObjectID, objType objects.ObjectType, tag string, tagger objects.Signature, message string) (*objects.Tag, error) {
	tagObj := objects.NewTag(object, objType, tag, tagger, message)
	
	if err := r.WriteObject(tagObj); err != nil {
		return nil, err
	}
	
	return tagObj, nil
}