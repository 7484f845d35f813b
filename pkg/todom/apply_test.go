package todom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/pkg/dom"
	"github.com/yaklabco/richtext/pkg/record"
	"github.com/yaklabco/richtext/pkg/todom"
)

func mustParse(t *testing.T, source string) *dom.Node {
	t.Helper()

	body, err := dom.ParseHTML(source)
	require.NoError(t, err)
	return body
}

func TestApplyValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current string
		future  string
		moved   int
	}{
		{name: "clears content", current: "test", future: "", moved: 0},
		{name: "fills empty tree", current: "", future: "test", moved: 1},
		{name: "keeps equal text", current: "test", future: "test", moved: 0},
		{name: "replaces changed text", current: "test", future: "tset", moved: 1},
		{name: "replaces elements", current: "<em>a</em>", future: "<em>a</em>", moved: 1},
		{name: "appends trailing nodes", current: "a", future: "a<br>b", moved: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			current := mustParse(t, tt.current)
			future := mustParse(t, tt.future)

			futureNodes := future.ChildNodes()

			todom.ApplyValue(future, current)

			moved := 0
			for _, node := range futureNodes {
				if node.Parent == current {
					moved++
				}
			}

			assert.Equal(t, tt.future, dom.InnerHTML(current))
			assert.Equal(t, tt.moved, moved)
			assert.False(t, future.HasChildren(), "future should be consumed")
		})
	}
}

func TestApplyValue_PreservesMatchingTextNodes(t *testing.T) {
	t.Parallel()

	current := mustParse(t, "a<em>b</em>c")
	first, last := current.FirstChild, current.LastChild

	todom.ApplyValue(mustParse(t, "a<strong>b</strong>c"), current)

	assert.Equal(t, "a<strong>b</strong>c", dom.InnerHTML(current))
	assert.Same(t, first, current.FirstChild)
	assert.Same(t, last, current.LastChild)
}

func TestApplySelection(t *testing.T) {
	t.Parallel()

	current := mustParse(t, "one <em>two</em>")
	selection := &dom.Selection{}
	selection.AddRange(dom.Range{})
	selection.AddRange(dom.Range{})

	todom.ApplySelection(todom.Selection{StartPath: []int{0, 1}, EndPath: []int{1, 0, 2}}, current, selection)

	require.Equal(t, 1, selection.RangeCount())
	r := selection.RangeAt(0)
	assert.Equal(t, "one ", r.StartContainer.Data)
	assert.Equal(t, 1, r.StartOffset)
	assert.Equal(t, "two", r.EndContainer.Data)
	assert.Equal(t, 2, r.EndOffset)
}

func TestApplySelection_MissingPathsLeaveTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		selection todom.Selection
	}{
		{name: "no paths", selection: todom.Selection{}},
		{name: "start only", selection: todom.Selection{StartPath: []int{0, 1}}},
		{name: "end only", selection: todom.Selection{EndPath: []int{0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			current, _ := todom.RecordToDom(record.New("ab"), "")
			previous := dom.Range{StartContainer: current, EndContainer: current}
			target := &dom.Selection{}
			target.AddRange(previous)

			assert.NotPanics(t, func() {
				todom.ApplySelection(tt.selection, current, target)
			})

			require.Equal(t, 1, target.RangeCount())
			assert.Equal(t, previous, target.RangeAt(0))
		})
	}
}

func TestApply_CaretInsideMultilineSeparator(t *testing.T) {
	t.Parallel()

	value := record.New("one\n\ntwo").WithSelection(4, 4)
	current := dom.NewBody()

	assert.NotPanics(t, func() {
		todom.Apply(value, current, &dom.Selection{}, "p")
	})
	assert.Equal(t, "<p>one</p><p>two</p>", dom.InnerHTML(current))
}

func TestApplySelection_CaretAfterInlineElement(t *testing.T) {
	t.Parallel()

	value := record.Record{
		Text:    "ab",
		Formats: [][]record.Format{{em}, nil},
		Start:   record.Offset(1),
		End:     record.Offset(1),
	}

	doc := dom.NewLiveDocument()
	todom.ApplyDocument(value, doc, "")

	body, ranges := doc.Snapshot()
	assert.Equal(t, "<em>a</em>\ufeffb", dom.InnerHTML(body))

	require.Len(t, ranges, 1)
	assert.Equal(t, "\ufeffb", ranges[0].StartContainer.Data)
	assert.Equal(t, 1, ranges[0].StartOffset)
	assert.Equal(t, 1, ranges[0].EndOffset)
}

func TestApplySelection_CaretAfterLineBreak(t *testing.T) {
	t.Parallel()

	value := record.Record{
		Text:    "a\nb",
		Formats: make([][]record.Format, 3),
		Start:   record.Offset(2),
		End:     record.Offset(2),
	}

	doc := dom.NewLiveDocument()
	todom.ApplyDocument(value, doc, "")

	body, ranges := doc.Snapshot()
	assert.Equal(t, "a<br>b", dom.InnerHTML(body))

	require.Len(t, ranges, 1)
	assert.Equal(t, "b", ranges[0].StartContainer.Data)
	assert.Equal(t, 0, ranges[0].StartOffset)
}

func TestApply(t *testing.T) {
	t.Parallel()

	current := mustParse(t, "stale <strong>content</strong>")
	selection := &dom.Selection{}

	todom.Apply(sampleRecord().WithSelection(5, 12), current, selection, "")

	assert.Equal(t, sampleHTML, dom.InnerHTML(current))

	require.Equal(t, 1, selection.RangeCount())
	r := selection.RangeAt(0)
	assert.Equal(t, "two 🍒", r.StartContainer.Data)
	assert.Equal(t, 1, r.StartOffset)
	assert.Equal(t, "three", r.EndContainer.Data)
	assert.Equal(t, 1, r.EndOffset)
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	doc := dom.NewLiveDocument()
	value := record.Record{
		Text:    "one\n\ntwo",
		Formats: make([][]record.Format, 8),
	}

	todom.ApplyDocument(value, doc, "p")
	first, _ := doc.Snapshot()

	todom.ApplyDocument(value, doc, "p")
	second, ranges := doc.Snapshot()

	assert.Equal(t, "<p>one</p><p>two</p>", dom.InnerHTML(second))
	assert.True(t, first.IsEqualNode(second))
	assert.Empty(t, ranges, "a value without selection leaves the selection alone")
}

func TestApply_DoesNotMutateValue(t *testing.T) {
	t.Parallel()

	value := sampleRecord().WithSelection(0, 3)
	snapshot := value.Clone()

	todom.Apply(value, dom.NewBody(), &dom.Selection{}, "")

	assert.True(t, value.Equal(snapshot))
}
