// Package record defines the rich-text value: a plain-text buffer with a
// parallel array of format runs and an optional selection.
//
// Every character slot is one Unicode code point. Formats[i] lists the
// format runs wrapping the i-th rune of Text, outermost first; a nil entry
// means the character carries no formatting. Start and End are rune offsets
// into Text; nil means the selection is not tracked.
//
// Records are values. No function in this module mutates a Record it is
// given, and returned records never share their outer Formats slice with an
// input.
package record

import (
	"slices"
	"unicode/utf8"
)

// MultilineSeparator separates multiline fragments (paragraphs, list items)
// within a single record.
const MultilineSeparator = "\n\n"

// LineBreak is the character rendered as a line-break element.
const LineBreak = '\n'

// ObjectReplacementCharacter stands in for an object format (e.g. an image)
// in the text buffer.
const ObjectReplacementCharacter = '\ufffc'

// Format is a single inline annotation such as emphasis, a link or an image.
type Format struct {
	// Type is the element identity, e.g. "em", "a", "img".
	Type string `json:"type"`

	// Attributes are rendered in slice order.
	Attributes Attributes `json:"attributes,omitempty"`

	// Object marks void elements that do not wrap text.
	Object bool `json:"object,omitempty"`
}

// Record is a span of rich text.
type Record struct {
	Text    string     `json:"text"`
	Formats [][]Format `json:"formats"`
	Start   *int       `json:"start,omitempty"`
	End     *int       `json:"end,omitempty"`
}

// Offset returns a pointer to n, for populating Start and End.
func Offset(n int) *int {
	return &n
}

// New creates a record holding plain text with no formatting.
func New(text string) Record {
	return Record{
		Text:    text,
		Formats: make([][]Format, utf8.RuneCountInString(text)),
	}
}

// Len returns the number of character slots.
func (r Record) Len() int {
	return utf8.RuneCountInString(r.Text)
}

// IsEmpty reports whether the record holds no text.
func (r Record) IsEmpty() bool {
	return r.Text == ""
}

// HasSelection reports whether both selection offsets are tracked.
func (r Record) HasSelection() bool {
	return r.Start != nil && r.End != nil
}

// FormatsAt returns the formats of slot i, or nil when i is past the end of
// Formats.
func (r Record) FormatsAt(i int) []Format {
	if i < 0 || i >= len(r.Formats) {
		return nil
	}
	return r.Formats[i]
}

// WithSelection returns a copy of r with the given selection.
func (r Record) WithSelection(start, end int) Record {
	r.Start = Offset(start)
	r.End = Offset(end)
	return r
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	clone := Record{
		Text:    r.Text,
		Formats: make([][]Format, len(r.Formats)),
	}
	for i, formats := range r.Formats {
		if formats == nil {
			continue
		}
		clone.Formats[i] = make([]Format, len(formats))
		for j, format := range formats {
			clone.Formats[i][j] = format.Clone()
		}
	}
	if r.Start != nil {
		clone.Start = Offset(*r.Start)
	}
	if r.End != nil {
		clone.End = Offset(*r.End)
	}
	return clone
}

// Clone returns a copy of the format with its own attribute slice.
func (f Format) Clone() Format {
	f.Attributes = slices.Clone(f.Attributes)
	return f
}

// Equal reports whether two formats are structurally equal. Attribute order
// is not significant.
func (f Format) Equal(other Format) bool {
	if f.Type != other.Type || f.Object != other.Object {
		return false
	}
	return f.Attributes.Equal(other.Attributes)
}

// FormatsEqual reports whether two format stacks are structurally equal.
func FormatsEqual(a, b []Format) bool {
	return slices.EqualFunc(a, b, Format.Equal)
}

// Equal reports whether two records are structurally equal, including their
// selection. A nil format slot equals an empty one.
func (r Record) Equal(other Record) bool {
	if r.Text != other.Text || !offsetEqual(r.Start, other.Start) || !offsetEqual(r.End, other.End) {
		return false
	}
	length := max(len(r.Formats), len(other.Formats))
	for i := range length {
		if !FormatsEqual(r.FormatsAt(i), other.FormatsAt(i)) {
			return false
		}
	}
	return true
}

func offsetEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Concat joins records end to end. The selection of the inputs is dropped.
func Concat(records ...Record) Record {
	var result Record
	for _, r := range records {
		result.Text += r.Text
		formats := r.Formats
		// Pad short format arrays so slots stay index-aligned with text.
		if missing := r.Len() - len(formats); missing > 0 {
			formats = append(slices.Clone(formats), make([][]Format, missing)...)
		}
		result.Formats = append(result.Formats, formats...)
	}
	if result.Formats == nil {
		result.Formats = [][]Format{}
	}
	return result
}
