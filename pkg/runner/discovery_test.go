package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/runner"
)

// inputTree is a mixed set of documents, assets and hidden entries.
var inputTree = map[string]string{
	"index.html":             "<p>home</p>",
	"articles/intro.html":    "<em>intro</em>",
	"articles/legacy.HTM":    "<b>old</b>",
	"articles/drafts/wip.md": "*wip*",
	"notes/todo.txt":         "todo",
	"notes/readme.markdown":  "# notes",
	"notes/.hidden.md":       "hidden",
	".cache/page.html":       "cached",
	"assets/logo.png":        "png",
	"assets/style.css":       "body{}",
}

// relative maps discovered absolute paths back to slash paths under dir.
func relative(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		if !filepath.IsAbs(f) {
			t.Errorf("discovered path %q is not absolute", f)
		}
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel %s: %v", f, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

// resolvedTempDir returns a temporary directory with symlinks in its path
// resolved, so walked link targets compare equal to paths built from it.
func resolvedTempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	return dir
}

func TestDiscover_InputTree(t *testing.T) {
	t.Parallel()

	all := []string{
		"articles/drafts/wip.md",
		"articles/intro.html",
		"articles/legacy.HTM",
		"index.html",
		"notes/readme.markdown",
		"notes/todo.txt",
	}

	tests := []struct {
		name       string
		paths      []string
		extensions []string
		ignore     []string
		want       []string
	}{
		{
			name: "known input formats",
			want: all,
		},
		{
			name:       "extensions narrow the set",
			extensions: []string{".txt", "md"},
			want:       []string{"articles/drafts/wip.md", "notes/todo.txt"},
		},
		{
			name:   "directory glob",
			ignore: []string{"**/drafts/**"},
			want: []string{
				"articles/intro.html",
				"articles/legacy.HTM",
				"index.html",
				"notes/readme.markdown",
				"notes/todo.txt",
			},
		},
		{
			name:   "base name glob is case sensitive",
			ignore: []string{"*.htm*"},
			want: []string{
				"articles/drafts/wip.md",
				"articles/legacy.HTM",
				"notes/readme.markdown",
				"notes/todo.txt",
			},
		},
		{
			name:   "directory name",
			ignore: []string{"notes"},
			want: []string{
				"articles/drafts/wip.md",
				"articles/intro.html",
				"articles/legacy.HTM",
				"index.html",
			},
		},
		{
			name:   "single star stays within a segment",
			ignore: []string{"{articles,notes}/*.{txt,html}"},
			want: []string{
				"articles/drafts/wip.md",
				"articles/legacy.HTM",
				"index.html",
				"notes/readme.markdown",
			},
		},
		{
			name:   "malformed pattern is dropped",
			ignore: []string{"[", "index.html"},
			want: []string{
				"articles/drafts/wip.md",
				"articles/intro.html",
				"articles/legacy.HTM",
				"notes/readme.markdown",
				"notes/todo.txt",
			},
		},
		{
			name:  "explicit hidden directory is walked",
			paths: []string{".cache"},
			want:  []string{".cache/page.html"},
		},
		{
			name:  "explicit hidden file is taken",
			paths: []string{"notes/.hidden.md"},
			want:  []string{"notes/.hidden.md"},
		},
		{
			name:  "explicit file with unknown extension",
			paths: []string{"assets/logo.png"},
			want:  []string{},
		},
		{
			name:   "explicit file still honors ignore",
			paths:  []string{"index.html"},
			ignore: []string{"index.*"},
			want:   []string{},
		},
		{
			name:  "overlapping paths are deduplicated",
			paths: []string{"notes", "notes/todo.txt", "."},
			want:  all,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFiles(t, dir, inputTree)

			cfg := config.NewConfig()
			cfg.Ignore = tt.ignore

			files, err := runner.Discover(context.Background(), runner.Options{
				Paths:        tt.paths,
				WorkingDir:   dir,
				Extensions:   tt.extensions,
				ExcludeGlobs: cfg.Ignore,
			})
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, relative(t, dir, files)); diff != "" {
				t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiscover_AbsolutePathOutsideWorkingDir(t *testing.T) {
	t.Parallel()

	docs := t.TempDir()
	writeFiles(t, docs, map[string]string{"a.txt": "a", "b.md": "b"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{docs},
		WorkingDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if diff := cmp.Diff([]string{"a.txt", "b.md"}, relative(t, docs, files)); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, inputTree)

	if _, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.html"},
		WorkingDir: dir,
	}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing path: expected os.ErrNotExist, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: expected context.Canceled, got %v", err)
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := resolvedTempDir(t)
	shared := resolvedTempDir(t)
	writeFiles(t, dir, map[string]string{"local/page.html": "page"})
	writeFiles(t, shared, map[string]string{"shared.md": "shared", "common.txt": "common"})

	links := map[string]string{
		filepath.Join(dir, "local", "alias.txt"): filepath.Join(shared, "common.txt"),
		filepath.Join(dir, "local", "broken.md"): filepath.Join(shared, "gone.md"),
		filepath.Join(dir, "shared"):             shared,
		filepath.Join(dir, "local", "loop"):      filepath.Join(dir, "local"),
	}
	for link, target := range links {
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
	}

	t.Run("directory links skipped by default", func(t *testing.T) {
		t.Parallel()

		files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		want := []string{"local/alias.txt", "local/page.html"}
		if diff := cmp.Diff(want, relative(t, dir, files)); diff != "" {
			t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("followed links reach targets once", func(t *testing.T) {
		t.Parallel()

		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir:     dir,
			FollowSymlinks: true,
		})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		var local, external []string
		for _, f := range files {
			if rel, err := filepath.Rel(shared, f); err == nil && filepath.IsLocal(rel) {
				external = append(external, filepath.ToSlash(rel))
				continue
			}
			local = append(local, f)
		}

		if diff := cmp.Diff([]string{"common.txt", "shared.md"}, external); diff != "" {
			t.Errorf("shared files mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"local/alias.txt", "local/page.html"}, relative(t, dir, local)); diff != "" {
			t.Errorf("local files mismatch (-want +got):\n%s", diff)
		}
	})
}
