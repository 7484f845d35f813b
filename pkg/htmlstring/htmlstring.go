// Package htmlstring serializes rich-text records directly to HTML strings,
// without building a DOM tree.
package htmlstring

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/richtext/pkg/escape"
	"github.com/yaklabco/richtext/pkg/record"
)

// ToHTMLString renders value as HTML. When multilineTag is set, the value is
// split on record.MultilineSeparator and each fragment is wrapped in a
// multilineTag element. Object formats and line breaks render as open tags
// only.
func ToHTMLString(value record.Record, multilineTag string) string {
	if multilineTag == "" {
		return render(build(value))
	}

	var sb strings.Builder
	for _, fragment := range value.Split(record.MultilineSeparator) {
		sb.WriteByte('<')
		sb.WriteString(multilineTag)
		sb.WriteByte('>')
		sb.WriteString(render(build(fragment)))
		sb.WriteString("</")
		sb.WriteString(multilineTag)
		sb.WriteByte('>')
	}
	return sb.String()
}

const noParent = -1

// node is an arena entry. Nodes refer to their parent and children by index,
// so the tree holds no pointer cycles.
type node struct {
	parent   int
	children []int

	// Element fields.
	tag    string
	attrs  record.Attributes
	object bool

	// Text fields.
	isText bool
	text   []byte
}

type tree struct {
	nodes []node
}

func newTree() *tree {
	return &tree{nodes: []node{{parent: noParent}}}
}

func (t *tree) append(parent int, n node) int {
	n.parent = parent
	t.nodes = append(t.nodes, n)
	index := len(t.nodes) - 1
	t.nodes[parent].children = append(t.nodes[parent].children, index)
	return index
}

func (t *tree) appendText(parent int, text string) int {
	return t.append(parent, node{isText: true, text: []byte(text)})
}

func (t *tree) lastChild(index int) int {
	children := t.nodes[index].children
	if len(children) == 0 {
		return noParent
	}
	return children[len(children)-1]
}

// removeIfDangling unlinks index when it is an empty trailing text node.
func (t *tree) removeIfDangling(index int) {
	n := &t.nodes[index]
	if !n.isText || len(n.text) > 0 {
		return
	}
	parent := &t.nodes[n.parent]
	if last := len(parent.children) - 1; last >= 0 && parent.children[last] == index {
		parent.children = parent.children[:last]
	}
}

// build lays out value in an arena, compressing runs the same way the DOM
// serializer does.
func build(value record.Record) *tree {
	t := newTree()
	t.appendText(0, "")

	for i, char := range []rune(value.Text) {
		pointer := t.lastChild(0)
		if pointer == noParent {
			pointer = t.appendText(0, "")
		}

		for _, format := range value.FormatsAt(i) {
			current := &t.nodes[pointer]
			if !current.isText && current.tag == format.Type && !format.Object {
				if t.lastChild(pointer) == noParent {
					t.appendText(pointer, "")
				}
				pointer = t.lastChild(pointer)
				continue
			}

			parent := current.parent
			t.removeIfDangling(pointer)
			element := t.append(parent, node{
				tag:    format.Type,
				attrs:  format.Attributes,
				object: format.Object,
			})

			if format.Object {
				pointer = t.appendText(parent, "")
			} else {
				pointer = t.appendText(element, "")
			}
		}

		formats := value.FormatsAt(i)
		if len(formats) > 0 && formats[len(formats)-1].Object {
			continue
		}

		switch {
		case char == record.LineBreak:
			parent := t.nodes[pointer].parent
			t.append(parent, node{tag: "br", object: true})
			t.appendText(parent, "")
		case t.nodes[pointer].isText:
			t.nodes[pointer].text = utf8.AppendRune(t.nodes[pointer].text, char)
		default:
			t.appendText(t.nodes[pointer].parent, string(char))
		}
	}

	return t
}

func render(t *tree) string {
	var sb strings.Builder
	for _, child := range t.nodes[0].children {
		t.write(&sb, child)
	}
	return sb.String()
}

func (t *tree) write(sb *strings.Builder, index int) {
	n := &t.nodes[index]

	if n.isText {
		sb.WriteString(escape.HTML(string(n.text)))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.tag)
	for _, attr := range n.attrs {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		sb.WriteString(`="`)
		sb.WriteString(escape.Attribute(attr.Value))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')

	if n.object {
		return
	}

	for _, child := range n.children {
		t.write(sb, child)
	}

	sb.WriteString("</")
	sb.WriteString(n.tag)
	sb.WriteByte('>')
}
