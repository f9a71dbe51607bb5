package md2epub

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// stagingDirs is the fixed EPUB directory skeleton.
var stagingDirs = []string{
	"META-INF",
	"OEBPS/Text",
	"OEBPS/Styles",
	"OEBPS/Images",
}

// StagingTree owns the unpacked EPUB directory for a single run. It is
// created fresh per run, written once, and removed after packaging unless
// the run keeps it for manual editing. The path is injected by the caller;
// the library has no well-known global staging location.
type StagingTree struct {
	root string
}

// NewStagingTree creates the EPUB directory skeleton at root. Any
// pre-existing tree at the same path is destroyed first.
func NewStagingTree(root string) (*StagingTree, error) {
	if root == "" {
		return nil, ErrEmptyStagingPath
	}
	if err := os.RemoveAll(root); err != nil {
		return nil, fmt.Errorf("clearing staging directory: %w", err)
	}
	for _, dir := range stagingDirs {
		path := filepath.Join(root, filepath.FromSlash(dir))
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("creating staging directory %s: %w", path, err)
		}
	}
	return &StagingTree{root: root}, nil
}

// Root returns the staging tree's root directory.
func (t *StagingTree) Root() string {
	return t.root
}

// WriteFile writes content at a tree-relative, forward-slash path.
func (t *StagingTree) WriteFile(relPath string, content []byte) error {
	path := filepath.Join(t.root, filepath.FromSlash(relPath))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", relPath, err)
	}
	return nil
}

// CopyFile byte-copies srcPath into the tree at a tree-relative,
// forward-slash path.
func (t *StagingTree) CopyFile(relPath, srcPath string) error {
	src, err := os.Open(srcPath) // #nosec G304 -- source path comes from user configuration
	if err != nil {
		return fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer src.Close()

	path := filepath.Join(t.root, filepath.FromSlash(relPath))
	dst, err := os.Create(path) // #nosec G304 -- destination is inside the staging tree
	if err != nil {
		return fmt.Errorf("creating %s: %w", relPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("copying %s: %w", srcPath, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", relPath, err)
	}
	return nil
}

// Remove deletes the staging tree.
func (t *StagingTree) Remove() error {
	if err := os.RemoveAll(t.root); err != nil {
		return fmt.Errorf("removing staging directory: %w", err)
	}
	return nil
}
