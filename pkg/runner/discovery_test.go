package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/msclfmt/pkg/runner"
)

// createFiles writes each relative path under dir with the given content.
func createFiles(t *testing.T, dir string, content string, paths ...string) {
	t.Helper()

	for _, rel := range paths {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func abs(dir string, rels ...string) []string {
	out := make([]string, 0, len(rels))
	for _, rel := range rels {
		out = append(out, filepath.Join(dir, rel))
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "x = 1", "script.txt")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"script.txt"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := abs(dir, "script.txt")
	if !slices.Equal(files, want) {
		t.Errorf("expected %v, got %v", want, files)
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "x = 1",
		"main.mscl",
		"macros/util.MSC",
		"macros/deep/loop.mscl",
		"notes.txt",
		"src/main.go",
	)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := abs(dir, "macros/deep/loop.mscl", "macros/util.MSC", "main.mscl")
	if !slices.Equal(files, want) {
		t.Errorf("expected %v, got %v", want, files)
	}
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "x = 1", "a.mscl", "b.macro")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".macro"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := abs(dir, "b.macro")
	if !slices.Equal(files, want) {
		t.Errorf("expected %v, got %v", want, files)
	}
}

func TestDiscover_Ignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "x = 1",
		"keep.mscl",
		"generated/out.mscl",
		"macros/skip_me.mscl",
		"macros/keep.mscl",
	)

	tests := []struct {
		name   string
		ignore []string
		want   []string
	}{
		{
			name:   "directory glob",
			ignore: []string{"generated/**"},
			want:   []string{"keep.mscl", "macros/keep.mscl", "macros/skip_me.mscl"},
		},
		{
			name:   "base name glob",
			ignore: []string{"skip_*.mscl"},
			want:   []string{"generated/out.mscl", "keep.mscl", "macros/keep.mscl"},
		},
		{
			name:   "double star prefix",
			ignore: []string{"**/keep.mscl"},
			want:   []string{"generated/out.mscl", "keep.mscl", "macros/skip_me.mscl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir: dir,
				Ignore:     tt.ignore,
			})
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			want := abs(dir, tt.want...)
			if !slices.Equal(files, want) {
				t.Errorf("expected %v, got %v", want, files)
			}
		})
	}
}

func TestDiscover_IgnoredExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "x = 1", "skip.mscl")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"skip.mscl"},
		WorkingDir: dir,
		Ignore:     []string{"skip.mscl"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestDiscover_InvalidIgnorePattern(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Ignore:     []string{"[unclosed"},
	})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	if runner.ValidatePattern("[unclosed") == nil {
		t.Error("ValidatePattern accepted an invalid pattern")
	}
	if err := runner.ValidatePattern("macros/**/*.mscl"); err != nil {
		t.Errorf("ValidatePattern() error = %v", err)
	}
}

func TestDiscover_HiddenAndVendored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "x = 1",
		"main.mscl",
		".hidden.mscl",
		".git/hooks/pre.mscl",
		"vendor/lib.mscl",
		"node_modules/pkg/lib.mscl",
	)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if want := abs(dir, "main.mscl"); !slices.Equal(files, want) {
		t.Errorf("expected %v, got %v", want, files)
	}

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:      dir,
		IncludeVendored: true,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := abs(dir, "main.mscl", "node_modules/pkg/lib.mscl", "vendor/lib.mscl")
	if !slices.Equal(files, want) {
		t.Errorf("expected %v, got %v", want, files)
	}
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "x = 1", "a.mscl", "macros/b.mscl")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".", "a.mscl", "macros", "macros/b.mscl"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := abs(dir, "a.mscl", "macros/b.mscl")
	if !slices.Equal(files, want) {
		t.Errorf("expected %v, got %v", want, files)
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.mscl"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFiles(t, dir, "x = 1", "a.mscl")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := t.TempDir()
	createFiles(t, dir, "x = 1", "main.mscl")
	createFiles(t, target, "x = 1", "linked.mscl")

	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected symlinked directory to be skipped, got %v", files)
	}

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected symlinked directory to be followed, got %v", files)
	}
}
