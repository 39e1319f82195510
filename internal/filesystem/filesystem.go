// Package filesystem enumerates the entries under a search root.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sjc08/QuickFileFinder/internal/pathfilter"
	"github.com/sjc08/QuickFileFinder/internal/types"
)

var (
	// ErrRootNotFound is returned when the search root does not exist.
	ErrRootNotFound = errors.New("directory not found")
	// ErrNotDirectory is returned when the search root is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// Service enumerates a directory tree.
type Service struct {
	root       string
	pathFilter *pathfilter.PathFilter
}

// New creates a new Service rooted at root. A nil filter admits every entry.
func New(root string, pf *pathfilter.PathFilter) *Service {
	if pf == nil {
		pf = pathfilter.New(nil)
	}
	return &Service{
		root:       root,
		pathFilter: pf,
	}
}

// CheckRoot verifies that the root exists and is a directory.
func (s *Service) CheckRoot() error {
	info, err := os.Stat(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, s.root)
		}
		return fmt.Errorf("failed to access %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, s.root)
	}
	return nil
}

// Enumerate lists every entry below the root, depth first, with the entries
// of each directory in name order. The root itself is not listed.
//
// A directory that cannot be read is still listed, but its contents are
// absent and warn is called with the cause. Symbolic links are listed and
// never followed. Enumeration stops early only when ctx is cancelled.
func (s *Service) Enumerate(ctx context.Context, warn func(error)) ([]types.Entry, error) {
	if warn == nil {
		warn = func(error) {}
	}
	var entries []types.Entry
	err := s.walk(ctx, s.root, "", &entries, warn)
	return entries, err
}

func (s *Service) walk(ctx context.Context, dirPath, relDir string, out *[]types.Entry, warn func(error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		warn(describeReadError(dirPath, err))
		// os.ReadDir returns what it managed to read before the error
		if len(dirEntries) == 0 {
			return nil
		}
	}

	for _, entry := range dirEntries {
		fullPath := filepath.Join(dirPath, entry.Name())
		relPath := entry.Name()
		if relDir != "" {
			relPath = relDir + "/" + entry.Name()
		}

		if !s.pathFilter.IsAllowed(relPath) {
			continue
		}

		*out = append(*out, types.Entry{
			Path:    fullPath,
			Name:    entry.Name(),
			IsDir:   entry.IsDir(),
			Regular: entry.Type().IsRegular(),
		})

		if entry.IsDir() {
			if err := s.walk(ctx, fullPath, relPath, out, warn); err != nil {
				return err
			}
		}
	}
	return nil
}

func describeReadError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("permission denied: %s", path)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("directory vanished: %s", path)
	default:
		return fmt.Errorf("failed to list directory: %s - %w", path, err)
	}
}

// RelativePath returns path relative to the root using forward slashes.
func (s *Service) RelativePath(path string) string {
	absRoot, err := filepath.Abs(s.root)
	if err != nil {
		return filepath.ToSlash(path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// ResolvePath resolves a path relative to the root and rejects anything that
// escapes it.
func (s *Service) ResolvePath(relativePath string) (string, error) {
	relativePath = strings.TrimSpace(relativePath)
	relativePath = strings.TrimPrefix(relativePath, "/")

	absRoot, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(filepath.Join(absRoot, relativePath))
	if err != nil {
		return "", err
	}

	relPath, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return "", err
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed: %s", relativePath)
	}
	return absPath, nil
}
