// Package dom provides a small DOM-like tree used as the target of rich-text
// serialization and as the model of a live editable surface.
//
// Both freshly built trees and long-lived "live" trees use the same Node
// type, so the diffing and selection logic works on either.
package dom

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// NodeKind classifies a node.
type NodeKind uint8

// Node kinds.
const (
	KindDocument NodeKind = iota
	KindElement
	KindText
	KindComment
)

// String returns a human-readable name for the kind.
func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Attribute is an element attribute.
type Attribute struct {
	Key string
	Val string
}

// Node is a single node in the tree. Nodes form a doubly linked tree with
// parent, child and sibling pointers.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tag is the lowercase element name for element nodes.
	Tag string

	// Attr holds element attributes in document order.
	Attr []Attribute

	// Data is the character data of text and comment nodes.
	Data string

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node
}

// voidElements are elements that never have children or a closing tag.
//
//nolint:gochecknoglobals // Read-only lookup table.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == KindElement
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n != nil && n.Kind == KindText
}

// IsVoid reports whether n is a void element such as br or img.
func (n *Node) IsVoid() bool {
	return n.IsElement() && voidElements[n.Tag]
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// ChildNodes returns a slice of all direct children.
func (n *Node) ChildNodes() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// ChildAt returns the i-th child, or nil if there is none.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 {
		return nil
	}
	child := n.FirstChild
	for ; child != nil && i > 0; i-- {
		child = child.Next
	}
	return child
}

// Index returns the number of preceding siblings.
func (n *Node) Index() int {
	i := 0
	for sibling := n.Prev; sibling != nil; sibling = sibling.Prev {
		i++
	}
	return i
}

// Len returns the length of the node's character data in runes.
func (n *Node) Len() int {
	return utf8.RuneCountInString(n.Data)
}

// AppendData appends character data to a text node.
func (n *Node) AppendData(data string) {
	n.Data += data
}

// InsertData inserts character data at the given rune offset.
func (n *Node) InsertData(offset int, data string) {
	runes := []rune(n.Data)
	n.Data = string(runes[:offset]) + data + string(runes[offset:])
}

// GetAttribute returns the value of the named attribute.
func (n *Node) GetAttribute(key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttribute sets an attribute, keeping the position of an existing one.
func (n *Node) SetAttribute(key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, Attribute{Key: key, Val: val})
}

// TextContent returns the concatenated text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Kind == KindText {
		return n.Data
	}

	var sb strings.Builder
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(n, func(node *Node) error {
		if node.Kind == KindText {
			sb.WriteString(node.Data)
		}
		return nil
	})
	return sb.String()
}

// Clone returns a detached copy of n. With deep set, descendants are copied
// as well.
func (n *Node) Clone(deep bool) *Node {
	clone := &Node{
		Kind: n.Kind,
		Tag:  n.Tag,
		Attr: slices.Clone(n.Attr),
		Data: n.Data,
	}
	if deep {
		for child := n.FirstChild; child != nil; child = child.Next {
			AppendChild(clone, child.Clone(true))
		}
	}
	return clone
}

// IsEqualNode reports whether two subtrees are structurally equal.
func (n *Node) IsEqualNode(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Tag != other.Tag || n.Data != other.Data {
		return false
	}
	if !slices.Equal(n.Attr, other.Attr) {
		return false
	}

	a, b := n.FirstChild, other.FirstChild
	for ; a != nil && b != nil; a, b = a.Next, b.Next {
		if !a.IsEqualNode(b) {
			return false
		}
	}
	return a == nil && b == nil
}
