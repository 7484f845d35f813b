// Package todom converts rich-text records into DOM-like trees and applies
// them onto live trees.
//
// A record is serialized into a fresh tree together with selection paths:
// child-index sequences from the tree root ending in a character offset.
// Paths survive tree reconstruction, so they are computed on the fresh tree
// and replayed against the live tree after the value has been applied.
package todom

import (
	"slices"

	"github.com/yaklabco/richtext/pkg/dom"
	"github.com/yaklabco/richtext/pkg/record"
)

// Selection holds the selection paths of a serialized record. Both paths
// are nil when the record tracks no selection.
type Selection struct {
	StartPath []int `json:"startPath,omitempty"`
	EndPath   []int `json:"endPath,omitempty"`
}

// IsZero reports whether neither path is set.
func (s Selection) IsZero() bool {
	return s.StartPath == nil && s.EndPath == nil
}

// ToDom serializes value, using the multiline variant when multilineTag is
// set.
func ToDom(value record.Record, multilineTag string) (*dom.Node, Selection) {
	if multilineTag != "" {
		return MultilineRecordToDom(value, multilineTag)
	}
	return RecordToDom(value, "")
}

// RecordToDom builds a tree for value under a detached body element. When
// tag is set, the content is wrapped in an element of that tag.
//
// Consecutive characters sharing leading format runs share the rendered
// elements. Matching is shallow: the innermost open element is compared to
// the next run by type only.
func RecordToDom(value record.Record, tag string) (*dom.Node, Selection) {
	body := dom.NewBody()
	element := body
	if tag != "" {
		element = dom.AppendChild(body, dom.NewElement(tag))
	}

	b := &treeBuilder{root: element}
	pointer := dom.AppendChild(element, dom.NewText(""))

	var selection Selection
	text := []rune(value.Text)

	for i := 0; i <= len(text); i++ {
		formats := value.FormatsAt(i)

		var object *record.Format
		if n := len(formats); n > 0 && formats[n-1].Object {
			object = &formats[n-1]
			formats = formats[:n-1]
		}

		if i < len(text) {
			pointer = b.open(formats)
		}

		atStart := value.Start != nil && *value.Start == i
		atEnd := value.End != nil && *value.End == i

		if atStart || atEnd {
			pointer = b.anchor(pointer)
			path := CreatePathToNode(pointer, body, []int{pointer.Len()})
			if atStart {
				selection.StartPath = path
			}
			if atEnd {
				selection.EndPath = path
			}
		}

		if i == len(text) {
			break
		}

		switch {
		case object != nil:
			pointer = b.appendObject(pointer, *object)
		case text[i] == record.LineBreak:
			parent := pointer.Parent
			dom.AppendChild(parent, dom.NewElement("br"))
			pointer = dom.AppendChild(parent, dom.NewText(""))
		case pointer.IsText():
			pointer.AppendData(string(text[i]))
		default:
			pointer = dom.AppendChild(pointer.Parent, dom.NewText(string(text[i])))
		}
	}

	return body, selection
}

// MultilineRecordToDom splits value on record.MultilineSeparator and wraps
// each fragment in a multilineTag element. The first component of each
// selection path is the fragment index.
func MultilineRecordToDom(value record.Record, multilineTag string) (*dom.Node, Selection) {
	body := dom.NewBody()
	var selection Selection

	for index, fragment := range value.Split(record.MultilineSeparator) {
		tree, fragmentSelection := RecordToDom(fragment, multilineTag)

		if fragmentSelection.StartPath != nil && selection.StartPath == nil {
			selection.StartPath = withFragmentIndex(index, fragmentSelection.StartPath)
		}
		if fragmentSelection.EndPath != nil {
			selection.EndPath = withFragmentIndex(index, fragmentSelection.EndPath)
		}

		dom.AppendChild(body, tree.FirstChild)
	}

	return body, selection
}

func withFragmentIndex(index int, path []int) []int {
	path = slices.Clone(path)
	path[0] = index
	return path
}

// treeBuilder tracks the state shared across characters while a record is
// serialized.
type treeBuilder struct {
	root *dom.Node

	// anchors are text nodes referenced by a selection path. They are never
	// removed, even when left empty.
	anchors []*dom.Node
}

// open walks from the root's last child down the target format stack,
// reusing open elements whose type matches and creating the rest. It returns
// the new insertion pointer.
func (b *treeBuilder) open(formats []record.Format) *dom.Node {
	pointer := b.root.LastChild
	if pointer == nil {
		pointer = dom.AppendChild(b.root, dom.NewText(""))
	}

	for _, format := range formats {
		if pointer.IsElement() && pointer.Tag == format.Type && !format.Object {
			if pointer.LastChild == nil {
				dom.AppendChild(pointer, dom.NewText(""))
			}
			pointer = pointer.LastChild
			continue
		}

		parent := pointer.Parent
		b.removeDangling(pointer)
		element := dom.AppendChild(parent, newElement(format))

		if format.Object {
			pointer = dom.AppendChild(parent, dom.NewText(""))
		} else {
			pointer = dom.AppendChild(element, dom.NewText(""))
		}
	}

	return pointer
}

// appendObject emits a void object element next to pointer and returns an
// empty text pointer following it.
func (b *treeBuilder) appendObject(pointer *dom.Node, format record.Format) *dom.Node {
	parent := pointer.Parent
	b.removeDangling(pointer)
	dom.AppendChild(parent, newElement(format))
	return dom.AppendChild(parent, dom.NewText(""))
}

// anchor guarantees a text pointer for a selection path and protects it from
// removal.
func (b *treeBuilder) anchor(pointer *dom.Node) *dom.Node {
	if !pointer.IsText() {
		pointer = dom.AppendChild(pointer.Parent, dom.NewText(""))
	}
	b.anchors = append(b.anchors, pointer)
	return pointer
}

// removeDangling removes an empty text pointer that is about to be replaced
// by a new element.
func (b *treeBuilder) removeDangling(pointer *dom.Node) {
	if !pointer.IsText() || pointer.Data != "" || slices.Contains(b.anchors, pointer) {
		return
	}
	dom.RemoveChild(pointer.Parent, pointer)
}

func newElement(format record.Format) *dom.Node {
	element := dom.NewElement(format.Type)
	for _, attr := range format.Attributes {
		element.Attr = append(element.Attr, dom.Attribute{Key: attr.Name, Val: attr.Value})
	}
	return element
}

// CreatePathToNode prefixes path with the child indices leading from root
// down to node.
func CreatePathToNode(node, root *dom.Node, path []int) []int {
	for node != nil && node != root {
		path = append([]int{node.Index()}, path...)
		node = node.Parent
	}
	return path
}

// NodeByPath resolves a selection path against root. It returns the node
// addressed by all but the last component, and the last component as the
// offset within that node. An empty path addresses offset 0 of root.
func NodeByPath(root *dom.Node, path []int) (*dom.Node, int) {
	if len(path) == 0 {
		return root, 0
	}

	node := root
	for _, index := range path[:len(path)-1] {
		if node == nil {
			break
		}
		node = node.ChildAt(index)
	}
	return node, path[len(path)-1]
}
