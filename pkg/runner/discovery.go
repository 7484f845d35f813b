package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/richtext/internal/logging"
)

// Discover resolves opts.Paths to the input documents they name. Directories
// are walked recursively; files are taken as given when their extension is a
// known input format. The result holds absolute paths, sorted and without
// duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: extensionSet(opts.effectiveExtensions()),
		ignore:     compileIgnore(ctx, opts.ExcludeGlobs),
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
		walked:     make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := d.visitInput(ctx, input); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// discoverer accumulates input documents across every user-supplied path.
type discoverer struct {
	workDir    string
	extensions map[string]struct{}
	ignore     []glob.Glob
	follow     bool

	seen  map[string]struct{}
	files []string

	// walked holds resolved directory roots so symlink cycles end.
	walked map[string]struct{}
}

func (d *discoverer) visitInput(ctx context.Context, input string) error {
	path := input
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.workDir, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	if !info.IsDir() {
		if d.accepts(path) {
			d.add(path)
		}
		return nil
	}

	if err := d.walk(ctx, path); err != nil {
		return fmt.Errorf("walk directory %s: %w", path, err)
	}
	return nil
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		if _, done := d.walked[resolved]; done {
			return nil
		}
		d.walked[resolved] = struct{}{}

		// WalkDir reports a symlinked root as a single entry.
		if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
			root = resolved
		}
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		switch {
		case entry.IsDir():
			if hidden || d.ignored(path, true) {
				return filepath.SkipDir
			}
			return nil
		case hidden:
			return nil
		case entry.Type()&fs.ModeSymlink != 0:
			return d.visitSymlink(ctx, path)
		}

		if d.accepts(path) {
			d.add(path)
		}
		return nil
	})
}

// visitSymlink accepts a link to a document and walks a link to a directory
// when symlinks are followed. Broken links are skipped.
func (d *discoverer) visitSymlink(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // broken or unreadable links are not inputs
	}

	if !info.IsDir() {
		if d.accepts(path) {
			d.add(path)
		}
		return nil
	}

	if !d.follow || d.ignored(path, true) {
		return nil
	}

	return d.walk(ctx, path)
}

func (d *discoverer) accepts(path string) bool {
	if _, ok := d.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
		return false
	}
	return !d.ignored(path, false)
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

// ignored matches path, relative to the working directory, against the
// ignore globs. The base name is tried as well, and directories also match
// with a trailing slash.
func (d *discoverer) ignored(path string, dir bool) bool {
	if len(d.ignore) == 0 {
		return false
	}

	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	candidates := []string{rel, filepath.Base(rel)}
	if dir {
		candidates = append(candidates, rel+"/")
	}

	for _, g := range d.ignore {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}

func extensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// compileIgnore compiles patterns with '/' as the separator. Malformed
// patterns are logged and dropped; configloader rejects them before a run.
func compileIgnore(ctx context.Context, patterns []string) []glob.Glob {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			logging.FromContext(ctx).Warn("skipping ignore pattern",
				logging.FieldPattern, pattern, logging.FieldError, err)
			continue
		}
		globs = append(globs, g)
	}
	return globs
}
