package mdpreview

// ParentOf returns the parent of n within the tree rooted at root, or nil if
// n is root or not part of the tree. Nodes keep no back-references; the
// search is a depth-first walk from root.
func ParentOf(root, n *Node) *Node {
	if root == nil || n == nil {
		return nil
	}
	for _, child := range root.Children {
		if child == n {
			return root
		}
		if p := ParentOf(child, n); p != nil {
			return p
		}
	}
	return nil
}

// ascendWhile walks up from n while the current node satisfies pred and
// returns the first node that does not. Root is returned when the walk runs
// out of ancestors.
func ascendWhile(root, n *Node, pred func(*Node) bool) *Node {
	cur := n
	for cur != root && pred(cur) {
		p := ParentOf(root, cur)
		if p == nil {
			return root
		}
		cur = p
	}
	return cur
}

// replaceChild swaps old for repl in parent's children.
func replaceChild(parent, old, repl *Node) bool {
	for i, child := range parent.Children {
		if child == old {
			parent.Children[i] = repl
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth-first, passing each node's depth.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}
