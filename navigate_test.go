package mdpreview

import "testing"

func TestParentOf(t *testing.T) {
	t.Parallel()
	doc := Parse("- a\n  - b\n")
	outer := doc.Children[0]
	item := outer.Children[0]
	inner := item.Children[0]
	nested := inner.Children[0]

	cases := []struct {
		name string
		n    *Node
		want *Node
	}{
		{"root has no parent", doc, nil},
		{"top level list", outer, doc},
		{"item", item, outer},
		{"nested list", inner, item},
		{"nested item", nested, inner},
		{"foreign node", NewLeaf(Token{Kind: TokenText}), nil},
		{"nil node", nil, nil},
	}
	for _, tc := range cases {
		if got := ParentOf(doc, tc.n); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
	if got := ParentOf(nil, item); got != nil {
		t.Fatalf("nil root: got %v", got)
	}
}

func TestAscendWhileStopsAtRoot(t *testing.T) {
	t.Parallel()
	doc := Parse("- a\n  - b\n")
	deepest := doc.Children[0].Children[0].Children[0].Children[0]
	got := ascendWhile(doc, deepest, func(*Node) bool { return true })
	if got != doc {
		t.Fatalf("expected root, got %v", got.Kind)
	}
	got = ascendWhile(doc, deepest, func(n *Node) bool { return n.Kind == NodeListItem })
	if got.Kind != NodeUnorderedList || got.Level != 2 {
		t.Fatalf("expected nested list, got %v level %d", got.Kind, got.Level)
	}
}

func TestReplaceChild(t *testing.T) {
	t.Parallel()
	parent := NewDocument()
	a := parent.append(NewLeaf(Token{Kind: TokenText, Text: "a"}))
	b := parent.append(NewLeaf(Token{Kind: TokenText, Text: "b"}))
	repl := &Node{Kind: NodeFallback}
	if !replaceChild(parent, b, repl) {
		t.Fatalf("replaceChild reported missing child")
	}
	if parent.Children[0] != a || parent.Children[1] != repl {
		t.Fatalf("unexpected children after replace")
	}
	if replaceChild(parent, b, repl) {
		t.Fatalf("replaced a child that is no longer present")
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	t.Parallel()
	doc := Parse("para *em*\n\n- item\n")
	var kinds []NodeKind
	Walk(doc, func(n *Node, depth int) bool {
		kinds = append(kinds, n.Kind)
		return n.Kind != NodeParagraph
	})
	for _, k := range kinds {
		if k == NodeText || k == NodeItalics {
			t.Fatalf("walk descended into a skipped paragraph: %v", kinds)
		}
	}
	if kinds[0] != NodeDocument {
		t.Fatalf("walk did not start at root: %v", kinds)
	}
}
