package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/richtext/pkg/escape"
)

// ParseHTML parses an HTML fragment in body context and returns a detached
// body element holding the parsed nodes.
func ParseHTML(source string) (*Node, error) {
	bodyContext := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}

	nodes, err := html.ParseFragment(strings.NewReader(source), bodyContext)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}

	body := NewBody()
	for _, n := range nodes {
		if converted := fromHTMLNode(n); converted != nil {
			AppendChild(body, converted)
		}
	}

	return body, nil
}

// fromHTMLNode converts a parsed html.Node subtree. Doctype and other
// non-content nodes are dropped.
func fromHTMLNode(n *html.Node) *Node {
	var node *Node

	switch n.Type {
	case html.TextNode:
		return NewText(n.Data)
	case html.CommentNode:
		return &Node{Kind: KindComment, Data: n.Data}
	case html.ElementNode:
		attrs := make([]Attribute, 0, len(n.Attr))
		for _, attr := range n.Attr {
			attrs = append(attrs, Attribute{Key: attr.Key, Val: attr.Val})
		}
		if len(attrs) == 0 {
			attrs = nil
		}
		node = NewElement(n.Data, attrs...)
	case html.DocumentNode:
		node = NewDocument()
	default:
		return nil
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if converted := fromHTMLNode(child); converted != nil {
			AppendChild(node, converted)
		}
	}

	return node
}

// InnerHTML serializes the children of n.
func InnerHTML(n *Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.Next {
		writeHTML(&sb, child)
	}
	return sb.String()
}

// OuterHTML serializes n and its children.
func OuterHTML(n *Node) string {
	var sb strings.Builder
	writeHTML(&sb, n)
	return sb.String()
}

func writeHTML(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case KindText:
		sb.WriteString(escape.HTML(n.Data))
	case KindComment:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	case KindDocument:
		for child := n.FirstChild; child != nil; child = child.Next {
			writeHTML(sb, child)
		}
	case KindElement:
		sb.WriteByte('<')
		sb.WriteString(n.Tag)
		for _, attr := range n.Attr {
			sb.WriteByte(' ')
			sb.WriteString(attr.Key)
			sb.WriteString(`="`)
			sb.WriteString(escape.Attribute(attr.Val))
			sb.WriteByte('"')
		}
		sb.WriteByte('>')

		if n.IsVoid() {
			return
		}

		for child := n.FirstChild; child != nil; child = child.Next {
			writeHTML(sb, child)
		}

		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteByte('>')
	}
}
