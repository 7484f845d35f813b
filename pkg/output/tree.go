package output

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/dom"
	"github.com/yaklabco/richtext/pkg/todom"
)

const treeIndent = "  "

// Selection markers inserted into text nodes.
const (
	markCaret = "|"
	markStart = "["
	markEnd   = "]"
)

type treeRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// caret is a selection position resolved against the rendered tree.
type caret struct {
	node   *dom.Node
	offset int
	mark   string
}

func (r *treeRenderer) Render(_ context.Context, w io.Writer, item Item) error {
	if err := writeHeader(w, r.opts, r.styles, item.Path); err != nil {
		return err
	}

	root, selection := todom.ToDom(item.Record, r.opts.MultilineTag)
	carets := resolveCarets(root, selection)

	var sb strings.Builder
	depth := -1
	err := dom.WalkWithContext(root,
		func(n *dom.Node) error {
			if n != root {
				r.writeNode(&sb, n, depth, carets)
			}
			depth++
			return nil
		},
		func(*dom.Node) error {
			depth--
			return nil
		},
	)
	if err != nil {
		return fmt.Errorf("walk tree: %w", err)
	}

	if !selection.IsZero() {
		sb.WriteString(r.styles.Path.Render(fmt.Sprintf("selection %s %s",
			formatPath(selection.StartPath), formatPath(selection.EndPath))))
		sb.WriteString("\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}

func resolveCarets(root *dom.Node, selection todom.Selection) []caret {
	if selection.StartPath == nil || selection.EndPath == nil {
		return nil
	}

	startNode, startOffset := todom.NodeByPath(root, selection.StartPath)
	endNode, endOffset := todom.NodeByPath(root, selection.EndPath)

	if startNode == endNode && startOffset == endOffset {
		return []caret{{node: startNode, offset: startOffset, mark: markCaret}}
	}
	return []caret{
		{node: startNode, offset: startOffset, mark: markStart},
		{node: endNode, offset: endOffset, mark: markEnd},
	}
}

// writeNode writes a single node line. Children are written by the caller's
// walk one level deeper.
func (r *treeRenderer) writeNode(sb *strings.Builder, n *dom.Node, depth int, carets []caret) {
	if n.IsText() && n.Data == "" && !hasCaret(n, carets) {
		return
	}

	sb.WriteString(strings.Repeat(treeIndent, depth))

	if n.IsText() {
		sb.WriteString(r.text(n, carets))
		sb.WriteString("\n")
		return
	}

	style := r.styles.Tag
	if n.IsVoid() {
		style = r.styles.Object
	}
	sb.WriteString(style.Render(n.Tag))
	for _, attr := range n.Attr {
		sb.WriteString(" ")
		sb.WriteString(r.styles.AttrName.Render(attr.Key))
		sb.WriteString("=")
		sb.WriteString(r.styles.AttrValue.Render(strconv.Quote(attr.Val)))
	}
	sb.WriteString("\n")
}

func hasCaret(n *dom.Node, carets []caret) bool {
	for _, c := range carets {
		if c.node == n {
			return true
		}
	}
	return false
}

// text renders a text node as a quoted string with selection markers.
func (r *treeRenderer) text(n *dom.Node, carets []caret) string {
	runes := []rune(n.Data)

	var sb strings.Builder
	sb.WriteString(r.styles.Dim.Render(`"`))

	from := 0
	for i := 0; i <= len(runes); i++ {
		for _, c := range carets {
			if c.node != n || c.offset != i {
				continue
			}
			sb.WriteString(r.styles.Text.Render(escapeText(string(runes[from:i]))))
			sb.WriteString(r.styles.Caret.Render(c.mark))
			from = i
		}
	}
	sb.WriteString(r.styles.Text.Render(escapeText(string(runes[from:]))))

	sb.WriteString(r.styles.Dim.Render(`"`))
	return sb.String()
}

// escapeText quotes s like a Go string literal, without the quotes.
func escapeText(s string) string {
	quoted := strconv.Quote(s)
	return quoted[1 : len(quoted)-1]
}

func formatPath(path []int) string {
	parts := make([]string, len(path))
	for i, index := range path {
		parts[i] = strconv.Itoa(index)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
