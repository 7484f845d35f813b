package output

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/htmlstring"
)

type htmlRenderer struct {
	opts   Options
	styles *pretty.Styles
}

func (r *htmlRenderer) Render(_ context.Context, w io.Writer, item Item) error {
	if err := writeHeader(w, r.opts, r.styles, item.Path); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, htmlstring.ToHTMLString(item.Record, r.opts.MultilineTag)); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

type textRenderer struct {
	opts   Options
	styles *pretty.Styles
}

func (r *textRenderer) Render(_ context.Context, w io.Writer, item Item) error {
	if err := writeHeader(w, r.opts, r.styles, item.Path); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, item.Record.Text); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
