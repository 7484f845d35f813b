// Package create builds rich-text records from DOM trees, HTML fragments and
// plain text.
package create

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/richtext/pkg/dom"
	"github.com/yaklabco/richtext/pkg/record"
)

// Options control how a tree is read.
type Options struct {
	// Range is converted into the record's Start and End when set.
	Range *dom.Range

	// MultilineTag makes only direct children of this tag contribute, each
	// as one fragment separated by record.MultilineSeparator.
	MultilineTag string

	// RemoveNode drops an element together with its content.
	RemoveNode func(n *dom.Node) bool

	// UnwrapNode keeps an element's content but not the element as a format.
	UnwrapNode func(n *dom.Node) bool

	// FilterString post-processes every text node.
	FilterString func(s string) string

	// RemoveAttribute drops attributes by name.
	RemoveAttribute func(name string) bool
}

// FromText creates an unformatted record.
func FromText(text string) record.Record {
	return record.New(text)
}

// FromHTML parses source as an HTML fragment and reads it. A Range in opts
// must refer to nodes of the parsed tree, so it is normally only useful with
// FromElement.
func FromHTML(source string, opts Options) (record.Record, error) {
	body, err := dom.ParseHTML(source)
	if err != nil {
		return record.Record{}, fmt.Errorf("create from html: %w", err)
	}
	return FromElement(body, opts), nil
}

// FromElement reads the children of element into a record.
func FromElement(element *dom.Node, opts Options) record.Record {
	if element == nil {
		return record.New("")
	}

	var acc *accumulator
	if opts.MultilineTag == "" {
		acc = fromElement(element, opts.Range, &opts)
	} else {
		acc = fromMultilineElement(element, opts.Range, &opts)
	}

	return acc.record()
}

// accumulator collects text and format slots. len(formats) always equals the
// rune count of text.
type accumulator struct {
	text    strings.Builder
	formats [][]record.Format
	start   *int
	end     *int
}

func (a *accumulator) length() int {
	return len(a.formats)
}

func (a *accumulator) appendText(text string) {
	a.text.WriteString(text)
	a.formats = append(a.formats, make([][]record.Format, utf8.RuneCountInString(text))...)
}

func (a *accumulator) record() record.Record {
	formats := a.formats
	if formats == nil {
		formats = [][]record.Format{}
	}
	return record.Record{
		Text:    a.text.String(),
		Formats: formats,
		Start:   a.start,
		End:     a.end,
	}
}

// partial is the outcome of reading a node, as seen by its parent.
type partial struct {
	length int
	start  *int
	end    *int
}

// accumulateSelection updates the accumulated selection from node. value is
// what node contributed; its own offsets take precedence over the range.
func accumulateSelection(acc *accumulator, node *dom.Node, r *dom.Range, value partial) {
	if r == nil {
		return
	}

	current := acc.length()
	parent := node.Parent

	switch {
	case value.start != nil:
		acc.start = record.Offset(current + *value.start)
	case node == r.StartContainer:
		acc.start = record.Offset(current + r.StartOffset)
	case parent != nil && parent == r.StartContainer && node == parent.ChildAt(r.StartOffset):
		acc.start = record.Offset(current)
	}

	switch {
	case value.end != nil:
		acc.end = record.Offset(current + *value.end)
	case node == r.EndContainer:
		acc.end = record.Offset(current + r.EndOffset)
	case parent != nil && parent == r.EndContainer && node == parent.ChildAt(r.EndOffset-1):
		acc.end = record.Offset(current + value.length)
	case parent != nil && parent == r.EndContainer && node == parent.ChildAt(r.EndOffset):
		acc.end = record.Offset(current)
	}
}

// filterRange translates offsets inside node into offsets of its filtered
// text.
func filterRange(node *dom.Node, r *dom.Range, filter func(string) string) *dom.Range {
	if r == nil {
		return nil
	}

	filtered := *r
	runes := []rune(node.Data)

	if node == r.StartContainer {
		filtered.StartOffset = utf8.RuneCountInString(filter(string(runes[:clamp(r.StartOffset, len(runes))])))
	}
	if node == r.EndContainer {
		filtered.EndOffset = utf8.RuneCountInString(filter(string(runes[:clamp(r.EndOffset, len(runes))])))
	}

	return &filtered
}

func clamp(n, upper int) int {
	return max(0, min(n, upper))
}

//nolint:gochecknoglobals // Stateless replacer is safe for concurrent use.
var sourceLineBreaks = strings.NewReplacer("\r", "", "\n", "")

// filterString removes carriage returns and line feeds, which only format
// the HTML source. Line breaks in content are br elements.
func filterString(opts *Options) func(string) string {
	return func(s string) string {
		s = sourceLineBreaks.Replace(s)
		if opts.FilterString != nil {
			s = opts.FilterString(s)
		}
		return s
	}
}

func fromElement(element *dom.Node, r *dom.Range, opts *Options) *accumulator {
	acc := &accumulator{}

	if !element.HasChildren() {
		accumulateSelection(acc, element, r, partial{})
		return acc
	}

	filter := filterString(opts)

	for node := element.FirstChild; node != nil; node = node.Next {
		if node.IsText() {
			text := filter(node.Data)
			r = filterRange(node, r, filter)
			accumulateSelection(acc, node, r, partial{length: utf8.RuneCountInString(text)})
			acc.appendText(text)
			continue
		}

		if !node.IsElement() {
			continue
		}

		unwrap := opts.UnwrapNode != nil && opts.UnwrapNode(node)

		if (opts.RemoveNode != nil && opts.RemoveNode(node)) || (unwrap && !node.HasChildren()) {
			accumulateSelection(acc, node, r, partial{})
			continue
		}

		if node.Tag == "br" {
			accumulateSelection(acc, node, r, partial{})
			acc.appendText(string(record.LineBreak))
			continue
		}

		var format *record.Format
		if !unwrap {
			format = &record.Format{
				Type:       strings.ToLower(node.Tag),
				Attributes: attributes(node, opts.RemoveAttribute),
			}
		}

		value := fromElement(node, r, opts)
		start := acc.length()

		accumulateSelection(acc, node, r, partial{
			length: value.length(),
			start:  value.start,
			end:    value.end,
		})

		// An element without content is not applied as formatting.
		if value.length() == 0 && format != nil && len(format.Attributes) == 0 {
			continue
		}

		if format != nil && len(format.Attributes) > 0 && value.length() == 0 {
			format.Object = true
			acc.appendText(string(record.ObjectReplacementCharacter))
			acc.formats[start] = []record.Format{*format}
			continue
		}

		acc.text.WriteString(value.text.String())
		for _, nested := range value.formats {
			var slot []record.Format
			if format != nil {
				slot = append(slot, *format)
			}
			slot = append(slot, nested...)
			acc.formats = append(acc.formats, slot)
		}
	}

	return acc
}

func fromMultilineElement(element *dom.Node, r *dom.Range, opts *Options) *accumulator {
	acc := &accumulator{}
	fragments := 0

	for node := element.FirstChild; node != nil; node = node.Next {
		if !node.IsElement() || strings.ToLower(node.Tag) != opts.MultilineTag {
			continue
		}

		value := fromElement(node, r, opts)

		if fragments > 0 {
			acc.appendText(record.MultilineSeparator)
		}
		fragments++

		accumulateSelection(acc, node, r, partial{
			length: value.length(),
			start:  value.start,
			end:    value.end,
		})

		acc.text.WriteString(value.text.String())
		acc.formats = append(acc.formats, value.formats...)
	}

	return acc
}

// attributes returns the element's attributes in source order, without
// removed names. It returns nil when none remain.
func attributes(node *dom.Node, remove func(string) bool) record.Attributes {
	var attrs record.Attributes
	for _, attr := range node.Attr {
		if remove != nil && remove(attr.Key) {
			continue
		}
		attrs = append(attrs, record.Attribute{Name: attr.Key, Value: attr.Val})
	}
	return attrs
}
