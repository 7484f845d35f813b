package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/richtext/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.html")
		if err := os.WriteFile(path, []byte("<em>x</em>"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != "<em>x</em>" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("expected ErrIsDirectory, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fsutil.ReadFile(ctx, "whatever.md")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/work/docs")
	out := filepath.FromSlash("/work/out")

	tests := []struct {
		name    string
		path    string
		ext     string
		want    string
		wantErr error
	}{
		{
			name: "top level",
			path: "/work/docs/a.md",
			ext:  ".html",
			want: "/work/out/a.html",
		},
		{
			name: "nested",
			path: "/work/docs/guide/b.htm",
			ext:  ".json",
			want: "/work/out/guide/b.json",
		},
		{
			name: "no extension",
			path: "/work/docs/README",
			ext:  ".txt",
			want: "/work/out/README.txt",
		},
		{
			name:    "outside root",
			path:    "/work/other/c.md",
			ext:     ".html",
			wantErr: fsutil.ErrOutsideRoot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fsutil.OutputPath(out, root, filepath.FromSlash(tt.path), tt.ext)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("OutputPath() error = %v", err)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("OutputPath() = %q, want %q", got, filepath.FromSlash(tt.want))
			}
		})
	}
}
