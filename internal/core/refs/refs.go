package refs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-vc/vc/internal/core/objects"
)

// RefManager reads and writes the HEAD reference of a repository.
type RefManager struct {
	vcDir string
}

// NewRefManager creates a new reference manager rooted at the given .vc directory.
func NewRefManager(vcDir string) *RefManager {
	return &RefManager{
		vcDir: vcDir,
	}
}

// HEAD returns the object ID HEAD resolves to, along with the ref name it
// points at (empty if HEAD is detached and names an object directly).
func (rm *RefManager) HEAD() (objects.ObjectID, string, error) {
	headPath := filepath.Join(rm.vcDir, "HEAD")
	content, err := os.ReadFile(headPath)
	if err != nil {
		return objects.ObjectID{}, "", fmt.Errorf("failed to read HEAD: %w", err)
	}

	headStr := strings.TrimSpace(string(content))

	if strings.HasPrefix(headStr, "ref: ") {
		refName := strings.TrimPrefix(headStr, "ref: ")
		id, err := rm.readRefFile(refName)
		return id, refName, err
	}

	id, err := objects.NewObjectID(headStr)
	return id, "", err
}

// SetHEAD points HEAD at a branch ref symbolically.
func (rm *RefManager) SetHEAD(refName string) error {
	headPath := filepath.Join(rm.vcDir, "HEAD")
	content := fmt.Sprintf("ref: %s\n", refName)
	return os.WriteFile(headPath, []byte(content), 0644)
}

// SetHEADToCommit points HEAD directly at a commit, bypassing any ref.
func (rm *RefManager) SetHEADToCommit(commitID objects.ObjectID) error {
	headPath := filepath.Join(rm.vcDir, "HEAD")
	content := fmt.Sprintf("%s\n", commitID.String())
	return os.WriteFile(headPath, []byte(content), 0644)
}

// UpdateRef writes a ref file (e.g. refs/heads/master) to point at an object.
// Used by clone to record the fetched branch tip after checkout.
func (rm *RefManager) UpdateRef(refName string, id objects.ObjectID) error {
	refPath := filepath.Join(rm.vcDir, refName)
	if err := os.MkdirAll(filepath.Dir(refPath), 0755); err != nil {
		return fmt.Errorf("failed to create ref directory: %w", err)
	}

	content := fmt.Sprintf("%s\n", id.String())
	return os.WriteFile(refPath, []byte(content), 0644)
}

// readRefFile reads a single ref file and returns the object ID it names.
func (rm *RefManager) readRefFile(refName string) (objects.ObjectID, error) {
	refPath := filepath.Join(rm.vcDir, refName)
	content, err := os.ReadFile(refPath)
	if err != nil {
		return objects.ObjectID{}, err
	}

	refStr := strings.TrimSpace(string(content))
	if strings.HasPrefix(refStr, "ref: ") {
		return rm.readRefFile(strings.TrimPrefix(refStr, "ref: "))
	}

	return objects.NewObjectID(refStr)
}
