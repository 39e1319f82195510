package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sjc08/QuickFileFinder/internal/pathfilter"
	"github.com/sjc08/QuickFileFinder/internal/types"
)

func setupTestTree(t *testing.T) (string, *Service) {
	t.Helper()
	tmpDir := t.TempDir()

	for _, dir := range []string{"a", "a/deep", "b"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
	}
	for _, file := range []string{"a/one.txt", "a/deep/two.json", "b/three.db", "root.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, file), []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}
	return tmpDir, New(tmpDir, nil)
}

func relPaths(svc *Service, entries []types.Entry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = svc.RelativePath(e.Path)
	}
	return paths
}

func TestService_Enumerate(t *testing.T) {
	t.Run("lists all entries depth first in name order", func(t *testing.T) {
		_, svc := setupTestTree(t)

		entries, err := svc.Enumerate(context.Background(), nil)
		if err != nil {
			t.Fatalf("Enumerate() error = %v", err)
		}

		want := []string{"a", "a/deep", "a/deep/two.json", "a/one.txt", "b", "b/three.db", "root.txt"}
		got := relPaths(svc, entries)
		if len(got) != len(want) {
			t.Fatalf("Enumerate() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("classifies directories and regular files", func(t *testing.T) {
		_, svc := setupTestTree(t)

		entries, _ := svc.Enumerate(context.Background(), nil)
		for _, e := range entries {
			if e.IsDir == e.Regular {
				t.Errorf("%s: IsDir = %v, Regular = %v", e.Name, e.IsDir, e.Regular)
			}
		}
	})

	t.Run("empty root", func(t *testing.T) {
		svc := New(t.TempDir(), nil)

		entries, err := svc.Enumerate(context.Background(), nil)
		if err != nil {
			t.Fatalf("Enumerate() error = %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("Enumerate() returned %d entries, want 0", len(entries))
		}
	})

	t.Run("ignored paths are pruned", func(t *testing.T) {
		tmpDir, _ := setupTestTree(t)
		svc := New(tmpDir, pathfilter.New(&types.PathFilterConfig{IgnoredPatterns: []string{"a"}}))

		entries, _ := svc.Enumerate(context.Background(), nil)
		got := relPaths(svc, entries)
		want := []string{"b", "b/three.db", "root.txt"}
		if len(got) != len(want) {
			t.Fatalf("Enumerate() = %v, want %v", got, want)
		}
	})

	t.Run("unreadable directory warns and continues", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced")
		}
		tmpDir, svc := setupTestTree(t)
		locked := filepath.Join(tmpDir, "a")
		if err := os.Chmod(locked, 0o000); err != nil {
			t.Fatalf("chmod: %v", err)
		}
		t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

		var warnings []error
		entries, err := svc.Enumerate(context.Background(), func(err error) {
			warnings = append(warnings, err)
		})
		if err != nil {
			t.Fatalf("Enumerate() error = %v", err)
		}
		if len(warnings) != 1 {
			t.Errorf("got %d warnings, want 1", len(warnings))
		}

		got := relPaths(svc, entries)
		want := []string{"a", "b", "b/three.db", "root.txt"}
		if len(got) != len(want) {
			t.Fatalf("Enumerate() = %v, want %v", got, want)
		}
	})

	t.Run("cancelled context stops enumeration", func(t *testing.T) {
		_, svc := setupTestTree(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.Enumerate(ctx, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Enumerate() error = %v, want context.Canceled", err)
		}
	})

	t.Run("symlinks are listed but not followed", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need privileges on windows")
		}
		tmpDir, svc := setupTestTree(t)
		if err := os.Symlink(tmpDir, filepath.Join(tmpDir, "loop")); err != nil {
			t.Fatalf("symlink: %v", err)
		}

		entries, err := svc.Enumerate(context.Background(), nil)
		if err != nil {
			t.Fatalf("Enumerate() error = %v", err)
		}
		if len(entries) != 8 {
			t.Errorf("Enumerate() returned %d entries, want 8", len(entries))
		}
	})
}

func TestService_CheckRoot(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		if err := New(t.TempDir(), nil).CheckRoot(); err != nil {
			t.Errorf("CheckRoot() error = %v", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		err := New(filepath.Join(t.TempDir(), "missing"), nil).CheckRoot()
		if !errors.Is(err, ErrRootNotFound) {
			t.Errorf("CheckRoot() error = %v, want ErrRootNotFound", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		os.WriteFile(path, []byte("x"), 0o644)

		err := New(path, nil).CheckRoot()
		if !errors.Is(err, ErrNotDirectory) {
			t.Errorf("CheckRoot() error = %v, want ErrNotDirectory", err)
		}
	})
}

func TestService_ResolvePath(t *testing.T) {
	root := t.TempDir()
	svc := New(root, nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty is root", "", false},
		{"nested", "a/b", false},
		{"leading slash", "/a", false},
		{"parent escape", "../outside", true},
		{"hidden escape", "a/../../outside", true},
		{"dotdot prefixed name", "..data", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ResolvePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ResolvePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
