package create_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/pkg/create"
	"github.com/yaklabco/richtext/pkg/dom"
	"github.com/yaklabco/richtext/pkg/htmlstring"
	"github.com/yaklabco/richtext/pkg/record"
)

var (
	em     = record.Format{Type: "em"}
	strong = record.Format{Type: "strong"}
	link   = record.Format{Type: "a", Attributes: record.Attributes{{Name: "href", Value: "#"}}}
	img    = record.Format{Type: "img", Attributes: record.Attributes{{Name: "src", Value: ""}}, Object: true}
)

func assertRecord(t *testing.T, want, got record.Record) {
	t.Helper()

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestFromHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want record.Record
	}{
		{
			name: "empty",
			html: "",
			want: record.Record{Formats: [][]record.Format{}},
		},
		{
			name: "plain text",
			html: "test",
			want: record.New("test"),
		},
		{
			name: "formatting",
			html: "<em>test</em>",
			want: record.Record{Text: "test", Formats: [][]record.Format{{em}, {em}, {em}, {em}}},
		},
		{
			name: "nested formatting",
			html: "<em><strong>te</strong>s</em>t",
			want: record.Record{Text: "test", Formats: [][]record.Format{{em, strong}, {em, strong}, {em}, nil}},
		},
		{
			name: "empty tags are dropped",
			html: "a<em></em>b",
			want: record.New("ab"),
		},
		{
			name: "line break",
			html: "te<br>st",
			want: record.New("te\nst"),
		},
		{
			name: "source line breaks are not content",
			html: "te\nst\r\n",
			want: record.New("test"),
		},
		{
			name: "object",
			html: `<a href="#"><img src=""><strong>x</strong></a>`,
			want: record.Record{
				Text:    "\ufffcx",
				Formats: [][]record.Format{{link, img}, {link, strong}},
			},
		},
		{
			name: "emoji counts as one slot",
			html: "<em>🍒</em>",
			want: record.Record{Text: "🍒", Formats: [][]record.Format{{em}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := create.FromHTML(tt.html, create.Options{})
			require.NoError(t, err)

			assertRecord(t, tt.want, got)
		})
	}
}

func TestFromElement_Range(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		html      string
		makeRange func(body *dom.Node) *dom.Range
		start     int
		end       int
	}{
		{
			name: "collapsed in empty element",
			html: "",
			makeRange: func(body *dom.Node) *dom.Range {
				return &dom.Range{StartContainer: body, EndContainer: body}
			},
			start: 0,
			end:   0,
		},
		{
			name: "within text node",
			html: "test",
			makeRange: func(body *dom.Node) *dom.Range {
				return &dom.Range{StartContainer: body.FirstChild, EndContainer: body.FirstChild, EndOffset: 4}
			},
			start: 0,
			end:   4,
		},
		{
			name: "around formatted element",
			html: "<em>test</em>",
			makeRange: func(body *dom.Node) *dom.Range {
				em := body.FirstChild
				return &dom.Range{StartContainer: em, EndContainer: em, EndOffset: 1}
			},
			start: 0,
			end:   4,
		},
		{
			name: "around empty element",
			html: "<em></em>",
			makeRange: func(body *dom.Node) *dom.Range {
				return &dom.Range{StartContainer: body, EndContainer: body, EndOffset: 1}
			},
			start: 0,
			end:   0,
		},
		{
			name: "emoji selected by parent offsets",
			html: "🍒",
			makeRange: func(body *dom.Node) *dom.Range {
				return &dom.Range{StartContainer: body, EndContainer: body, EndOffset: 1}
			},
			start: 0,
			end:   1,
		},
		{
			name: "offsets across formats",
			html: "one <em>two</em> three",
			makeRange: func(body *dom.Node) *dom.Range {
				return &dom.Range{
					StartContainer: body.ChildAt(1).FirstChild,
					StartOffset:    1,
					EndContainer:   body.LastChild,
					EndOffset:      3,
				}
			},
			start: 5,
			end:   10,
		},
		{
			name: "filtered source line breaks shift offsets",
			html: "a\nbc",
			makeRange: func(body *dom.Node) *dom.Range {
				return &dom.Range{StartContainer: body.FirstChild, StartOffset: 3, EndContainer: body.FirstChild, EndOffset: 4}
			},
			start: 2,
			end:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body, err := dom.ParseHTML(tt.html)
			require.NoError(t, err)

			got := create.FromElement(body, create.Options{Range: tt.makeRange(body)})

			require.NotNil(t, got.Start)
			require.NotNil(t, got.End)
			assert.Equal(t, tt.start, *got.Start)
			assert.Equal(t, tt.end, *got.End)
		})
	}
}

func TestFromElement_Multiline(t *testing.T) {
	t.Parallel()

	body, err := dom.ParseHTML("<p>one</p>\n<div>skip</div><p><em>two</em></p>")
	require.NoError(t, err)

	second := body.LastChild.FirstChild.FirstChild
	got := create.FromElement(body, create.Options{
		MultilineTag: "p",
		Range:        &dom.Range{StartContainer: body.FirstChild.FirstChild, StartOffset: 1, EndContainer: second, EndOffset: 2},
	})

	assertRecord(t, record.Record{
		Text:    "one\n\ntwo",
		Formats: [][]record.Format{nil, nil, nil, nil, nil, {em}, {em}, {em}},
		Start:   record.Offset(1),
		End:     record.Offset(7),
	}, got)
}

func TestFromElement_Filters(t *testing.T) {
	t.Parallel()

	body, err := dom.ParseHTML(`<span class="x">a</span><script>x</script><a href="#" data-id="1">b</a>c`)
	require.NoError(t, err)

	got := create.FromElement(body, create.Options{
		RemoveNode:      func(n *dom.Node) bool { return n.Tag == "script" },
		UnwrapNode:      func(n *dom.Node) bool { return n.Tag == "span" },
		RemoveAttribute: func(name string) bool { return strings.HasPrefix(name, "data-") },
		FilterString:    strings.ToUpper,
	})

	assertRecord(t, record.Record{
		Text:    "ABC",
		Formats: [][]record.Format{nil, {link}, nil},
	}, got)
}

func TestFromText(t *testing.T) {
	t.Parallel()

	got := create.FromText("a<b>\n")

	assert.Equal(t, "a<b>\n", got.Text)
	assert.Len(t, got.Formats, 5)
	assert.Nil(t, got.Start)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	sources := []string{
		"test",
		"<em>te</em>st",
		`one <em>two 🍒</em> <a href="#"><img src=""><strong>three</strong></a><img src="">`,
		"a<br>b",
		"a &amp; b &lt;c&gt;",
	}

	for _, source := range sources {
		value, err := create.FromHTML(source, create.Options{})
		require.NoError(t, err)

		assert.Equal(t, source, htmlstring.ToHTMLString(value, ""))
	}
}
