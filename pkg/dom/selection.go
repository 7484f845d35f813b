package dom

import "sync"

// Range is a pair of boundary points. For text containers the offset counts
// runes; for other containers it counts children.
type Range struct {
	StartContainer *Node
	StartOffset    int
	EndContainer   *Node
	EndOffset      int
}

// Collapsed reports whether the start and end boundary points coincide.
func (r Range) Collapsed() bool {
	return r.StartContainer == r.EndContainer && r.StartOffset == r.EndOffset
}

// Selection is the active selection of a document.
type Selection struct {
	ranges []Range
}

// RemoveAllRanges clears the selection.
func (s *Selection) RemoveAllRanges() {
	s.ranges = nil
}

// AddRange adds a range to the selection.
func (s *Selection) AddRange(r Range) {
	s.ranges = append(s.ranges, r)
}

// RangeCount returns the number of ranges in the selection.
func (s *Selection) RangeCount() int {
	return len(s.ranges)
}

// RangeAt returns the i-th range.
func (s *Selection) RangeAt(i int) Range {
	return s.ranges[i]
}

// Document is a live tree together with its selection. Mutations through
// Update are serialized, so concurrent readers never observe a tree and a
// selection that disagree.
type Document struct {
	mu sync.Mutex

	// Body is the editable root.
	Body *Node

	// Selection is the document's active selection.
	Selection *Selection
}

// NewLiveDocument returns a document with an empty body and selection.
func NewLiveDocument() *Document {
	return &Document{
		Body:      NewBody(),
		Selection: &Selection{},
	}
}

// Update runs fn with exclusive access to the body and selection.
func (d *Document) Update(fn func(body *Node, selection *Selection)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fn(d.Body, d.Selection)
}

// Snapshot returns a deep copy of the body and the current ranges. Range
// containers in the snapshot refer to the live nodes.
func (d *Document) Snapshot() (*Node, []Range) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ranges := make([]Range, d.Selection.RangeCount())
	for i := range ranges {
		ranges[i] = d.Selection.RangeAt(i)
	}
	return d.Body.Clone(true), ranges
}
