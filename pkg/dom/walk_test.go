package dom_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/richtext/pkg/dom"
)

func buildTestTree() *dom.Node {
	// body
	//   "one "
	//   em
	//     "two"
	//   a
	//     strong
	//       "three"
	body := dom.NewBody()
	dom.AppendChild(body, dom.NewText("one "))

	em := dom.AppendChild(body, dom.NewElement("em"))
	dom.AppendChild(em, dom.NewText("two"))

	link := dom.AppendChild(body, dom.NewElement("a", dom.Attribute{Key: "href", Val: "#"}))
	strong := dom.AppendChild(link, dom.NewElement("strong"))
	dom.AppendChild(strong, dom.NewText("three"))

	return body
}

func TestWalk(t *testing.T) {
	t.Parallel()

	var visited []string
	err := dom.Walk(buildTestTree(), func(n *dom.Node) error {
		if n.Kind == dom.KindText {
			visited = append(visited, "#"+n.Data)
		} else {
			visited = append(visited, n.Tag)
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	expected := []string{"body", "#one ", "em", "#two", "a", "strong", "#three"}
	if len(visited) != len(expected) {
		t.Fatalf("expected %d nodes, visited %d: %v", len(expected), len(visited), visited)
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("position %d: expected %q, got %q", i, expected[i], visited[i])
		}
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	count := 0

	err := dom.Walk(buildTestTree(), func(n *dom.Node) error {
		count++
		if n.Tag == "em" {
			return stop
		}
		return nil
	})

	if !errors.Is(err, stop) {
		t.Errorf("expected stop error, got %v", err)
	}
	if count != 3 {
		t.Errorf("expected walk to stop after 3 nodes, visited %d", count)
	}
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	depth, maxDepth := 0, 0
	err := dom.WalkWithContext(buildTestTree(),
		func(*dom.Node) error {
			depth++
			maxDepth = max(maxDepth, depth)
			return nil
		},
		func(*dom.Node) error {
			depth--
			return nil
		},
	)

	if err != nil {
		t.Fatalf("WalkWithContext returned error: %v", err)
	}
	if depth != 0 {
		t.Errorf("enter/leave unbalanced, depth %d", depth)
	}
	if maxDepth != 4 {
		t.Errorf("expected max depth 4, got %d", maxDepth)
	}
}

func TestWalkWithContext_LeaveOrder(t *testing.T) {
	t.Parallel()

	var left []string
	err := dom.WalkWithContext(buildTestTree(), nil, func(n *dom.Node) error {
		if n.Kind == dom.KindElement {
			left = append(left, n.Tag)
		}
		return nil
	})

	if err != nil {
		t.Fatalf("WalkWithContext returned error: %v", err)
	}
	if got := strings.Join(left, ","); got != "em,strong,a,body" {
		t.Errorf("unexpected leave order %q", got)
	}
}

func TestWalk_VisitorDetachesNodes(t *testing.T) {
	t.Parallel()

	body := dom.NewBody()
	dom.AppendChild(body, dom.NewText(""))
	dom.AppendChild(body, dom.NewText("a"))
	dom.AppendChild(body, dom.NewText(""))
	dom.AppendChild(body, dom.NewElement("br"))

	visited := 0
	err := dom.Walk(body, func(n *dom.Node) error {
		visited++
		if n.IsText() && n.Data == "" {
			dom.RemoveChild(n.Parent, n)
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if visited != 5 {
		t.Errorf("expected 5 visits, got %d", visited)
	}
	if got := dom.InnerHTML(body); got != "a<br>" || body.ChildCount() != 2 {
		t.Errorf("unexpected tree %q with %d children", got, body.ChildCount())
	}
}

func TestTextContent(t *testing.T) {
	t.Parallel()

	tree := buildTestTree()

	if got := tree.TextContent(); got != "one twothree" {
		t.Errorf("unexpected text content %q", got)
	}
	if got := tree.LastChild.TextContent(); got != "three" {
		t.Errorf("unexpected link text content %q", got)
	}
	if got := dom.NewText("x").TextContent(); got != "x" {
		t.Errorf("unexpected text node content %q", got)
	}
}
