// Package output renders converted records as HTML, JSON, text or a styled
// tree.
package output

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/record"
)

// Item is a record to render, with the file it came from.
type Item struct {
	Path   string
	Record record.Record
}

// Renderer formats an Item for output.
// Renderers are stateless and only handle presentation logic.
type Renderer interface {
	// Render writes the formatted item to w.
	Render(ctx context.Context, w io.Writer, item Item) error
}

// New creates a Renderer for the specified options. w is only consulted for
// color auto-detection.
//
//nolint:ireturn // Callers choose the renderer by format.
func New(opts Options, w io.Writer) (Renderer, error) {
	format := opts.Format
	if format == "" {
		format = FormatHTML
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, w))

	switch format {
	case FormatHTML:
		return &htmlRenderer{opts: opts, styles: styles}, nil
	case FormatText:
		return &textRenderer{opts: opts, styles: styles}, nil
	case FormatJSON:
		return &jsonRenderer{opts: opts}, nil
	case FormatTree:
		return &treeRenderer{opts: opts, styles: styles}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func writeHeader(w io.Writer, opts Options, styles *pretty.Styles, path string) error {
	if !opts.ShowPath || path == "" {
		return nil
	}
	if _, err := fmt.Fprintln(w, styles.FilePath.Render(path)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}
