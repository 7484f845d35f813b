package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/richtext/pkg/htmlstring"
	"github.com/yaklabco/richtext/pkg/record"
	"github.com/yaklabco/richtext/pkg/todom"
)

// JSONRecord is the JSON form of a rendered item.
type JSONRecord struct {
	Path      string            `json:"path,omitempty"`
	Text      string            `json:"text"`
	Formats   [][]record.Format `json:"formats"`
	Start     *int              `json:"start,omitempty"`
	End       *int              `json:"end,omitempty"`
	HTML      string            `json:"html"`
	Selection *todom.Selection  `json:"selection,omitempty"`
}

type jsonRenderer struct {
	opts Options
}

func (r *jsonRenderer) Render(_ context.Context, w io.Writer, item Item) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(r.build(item)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *jsonRenderer) build(item Item) JSONRecord {
	value := item.Record

	formats := value.Formats
	if formats == nil {
		formats = [][]record.Format{}
	}

	out := JSONRecord{
		Path:    item.Path,
		Text:    value.Text,
		Formats: formats,
		Start:   value.Start,
		End:     value.End,
		HTML:    htmlstring.ToHTMLString(value, r.opts.MultilineTag),
	}

	if value.HasSelection() {
		_, selection := todom.ToDom(value, r.opts.MultilineTag)
		out.Selection = &selection
	}

	return out
}
