package record

import (
	"strings"
	"unicode/utf8"
)

// Split divides the record on every occurrence of separator, like
// strings.Split. Each fragment receives its slice of formats, and the
// selection is redistributed: a fragment containing the start (or end) gets a
// local offset, a fragment the selection spans into is clamped to its own
// boundaries, and a fragment outside the selection carries none.
func (r Record) Split(separator string) []Record {
	substrings := strings.Split(r.Text, separator)

	separatorLen := utf8.RuneCountInString(separator)
	fragments := make([]Record, 0, len(substrings))
	nextStart := 0

	for _, substring := range substrings {
		startIndex := nextStart
		length := utf8.RuneCountInString(substring)
		fragment := Record{
			Text:    substring,
			Formats: r.sliceFormats(startIndex, startIndex+length),
		}
		nextStart += separatorLen + length

		if r.HasSelection() {
			start, end := *r.Start, *r.End

			if start >= startIndex && start < nextStart {
				fragment.Start = Offset(start - startIndex)
			} else if start < startIndex && end > startIndex {
				fragment.Start = Offset(0)
			}

			if end >= startIndex && end < nextStart {
				fragment.End = Offset(end - startIndex)
			} else if start < nextStart && end > nextStart {
				fragment.End = Offset(length)
			}
		}

		fragments = append(fragments, fragment)
	}

	return fragments
}

// SplitAt breaks the record into the part before start and the part from end
// onwards. The second record's selection is collapsed at its beginning.
func (r Record) SplitAt(start, end int) []Record {
	text := []rune(r.Text)

	before := Record{
		Text:    string(text[:start]),
		Formats: r.sliceFormats(0, start),
	}
	after := Record{
		Text:    string(text[end:]),
		Formats: r.sliceFormats(end, len(text)),
		Start:   Offset(0),
		End:     Offset(0),
	}

	return []Record{before, after}
}

// SplitAtSelection breaks the record at its own selection, removing the
// selected content. The record must track a selection.
func (r Record) SplitAtSelection() []Record {
	return r.SplitAt(*r.Start, *r.End)
}

// sliceFormats copies Formats[from:to], tolerating a Formats array shorter
// than the text.
func (r Record) sliceFormats(from, to int) [][]Format {
	formats := make([][]Format, to-from)
	if from < len(r.Formats) {
		copy(formats, r.Formats[from:min(to, len(r.Formats))])
	}
	return formats
}

// Slice returns the record restricted to [from, to). The selection is
// dropped.
func (r Record) Slice(from, to int) Record {
	text := []rune(r.Text)
	return Record{
		Text:    string(text[from:to]),
		Formats: r.sliceFormats(from, to),
	}
}
