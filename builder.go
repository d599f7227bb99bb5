package mdpreview

// Build turns a token stream into a document tree. When root is non-nil the
// tokens are appended after its existing content and nothing already in the
// tree is removed or rewritten.
func Build(tokens []Token, root *Node) *Node {
	b := newBuilder(root)
	b.feed(tokens)
	return b.root
}

// builder is the tree-construction state machine: a root and a cursor, the
// node new content is inserted under. Each transition returns the next cursor.
type builder struct {
	root   *Node
	cursor *Node
}

func newBuilder(root *Node) *builder {
	if root == nil {
		root = NewDocument()
	}
	return &builder{root: root, cursor: root}
}

func (b *builder) feed(tokens []Token) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case TokenText, TokenLiteral, TokenBold, TokenItalics, TokenStrikethrough,
			TokenLink, TokenImage, TokenCode:
			b.cursor = b.addInline(tok)
		case TokenHeader, TokenHorizontalRule, TokenBlockquote, TokenFencedCode:
			b.cursor = b.addBlock(tok)
		case TokenNewline:
			b.cursor = b.addNewline(tok)
		case TokenLineBreak:
			b.cursor = b.addLineBreak(tok)
		case TokenOrderedItem, TokenUnorderedItem:
			b.cursor = b.addListItem(tok)
		case TokenTableRow:
			var skip int
			b.cursor, skip = b.addTableRow(tokens[i:])
			i += skip
		case TokenAlignmentRow:
			b.cursor = b.addAlignmentRow(tok)
		}
	}
}

func (b *builder) parent(n *Node) *Node {
	if p := ParentOf(b.root, n); p != nil {
		return p
	}
	return b.root
}

// leaveTable closes a table or fallback cursor; any token that is not a
// table row ends the table.
func (b *builder) leaveTable(n *Node) *Node {
	if n.Kind == NodeTable || n.Kind == NodeFallback {
		return b.parent(n)
	}
	return n
}

// blockHost returns the node a block-level container attaches to.
func (b *builder) blockHost(n *Node) *Node {
	n = b.leaveTable(n)
	if n.Kind == NodeParagraph {
		n = b.parent(n)
	}
	if n.Kind.IsList() {
		return n.LastChild()
	}
	return n
}

func (b *builder) addInline(tok Token) *Node {
	cur := b.leaveTable(b.cursor)
	if cur.Kind == NodeParagraph {
		cur.append(NewLeaf(tok))
		return cur
	}
	host := cur
	if cur.Kind.IsList() {
		host = cur.LastChild()
	}
	p := host.append(&Node{Kind: NodeParagraph})
	p.append(NewLeaf(tok))
	return p
}

func (b *builder) addBlock(tok Token) *Node {
	cur := b.leaveTable(b.cursor)
	host := cur
	if cur.Kind.IsList() {
		host = cur.LastChild()
	}
	host.append(NewLeaf(tok))
	return cur
}

func closesOnNewline(k NodeKind) bool {
	switch k {
	case NodeParagraph, NodeTable, NodeFallback, NodeListItem:
		return true
	}
	return false
}

// addNewline closes the innermost paragraph, table or item but never a list.
func (b *builder) addNewline(tok Token) *Node {
	cur := b.cursor
	switch {
	case closesOnNewline(cur.Kind):
		return ascendWhile(b.root, cur, func(n *Node) bool { return closesOnNewline(n.Kind) })
	case cur.Kind.IsList():
		return cur
	default:
		cur.append(NewLeaf(tok))
		return cur
	}
}

// addLineBreak closes everything up to the first enclosing non-list block and
// records the break there.
func (b *builder) addLineBreak(tok Token) *Node {
	cur := ascendWhile(b.root, b.cursor, func(n *Node) bool {
		return closesOnNewline(n.Kind) || n.Kind.IsList()
	})
	cur.append(NewLeaf(tok))
	return cur
}

func (b *builder) addListItem(tok Token) *Node {
	cur := b.cursor
	switch cur.Kind {
	case NodeFallback, NodeTable, NodeParagraph:
		cur = b.parent(cur)
	}
	if cur.Kind == NodeListItem {
		cur = b.parent(cur)
	}
	item := NewLeaf(tok)
	if !cur.Kind.IsList() {
		return newList(cur, tok, item)
	}
	switch {
	case tok.Level > cur.Level:
		return newList(cur.LastChild(), tok, item)
	case tok.Level < cur.Level:
		list := b.enclosingList(cur, tok.Level)
		list.append(item)
		return list
	default:
		cur.append(item)
		return cur
	}
}

// enclosingList ascends from list through item/list pairs until it reaches a
// list whose level does not exceed level, or the outermost list of the chain.
func (b *builder) enclosingList(list *Node, level int) *Node {
	for list.Level > level {
		item := ParentOf(b.root, list)
		if item == nil || item.Kind != NodeListItem {
			break
		}
		outer := ParentOf(b.root, item)
		if outer == nil || !outer.Kind.IsList() {
			break
		}
		list = outer
	}
	return list
}

func newList(host *Node, tok Token, item *Node) *Node {
	kind := NodeUnorderedList
	if tok.Kind == TokenOrderedItem {
		kind = NodeOrderedList
	}
	list := host.append(&Node{Kind: kind, Level: tok.Level})
	list.append(item)
	return list
}

// addTableRow handles tokens[0], a table row, and returns the new cursor and
// the number of additional tokens it consumed.
func (b *builder) addTableRow(tokens []Token) (*Node, int) {
	tok := tokens[0]
	cur := b.cursor
	switch cur.Kind {
	case NodeTable:
		if cur.Aligned && cur.Columns == len(tok.Cells) {
			cur.append(NewLeaf(tok))
			return cur, 0
		}
		return b.degrade(cur, tok), 0
	case NodeFallback:
		cur.append(NewLeaf(tok))
		return cur, 0
	}
	host := b.blockHost(cur)
	if isTableStart(tokens) {
		table := host.append(&Node{Kind: NodeTable, Columns: len(tok.Cells), Aligned: true})
		for _, t := range tokens[:3] {
			table.append(NewLeaf(t))
		}
		return table, 2
	}
	fallback := host.append(&Node{Kind: NodeFallback})
	fallback.append(NewLeaf(tok))
	return fallback, 0
}

// isTableStart reports whether tokens open with a header row, an alignment row
// and a body row that all agree on the column count.
func isTableStart(tokens []Token) bool {
	if len(tokens) < 3 {
		return false
	}
	n := len(tokens[0].Cells)
	return n > 0 &&
		tokens[1].Kind == TokenAlignmentRow && len(tokens[1].Alignment) == n &&
		tokens[2].Kind == TokenTableRow && len(tokens[2].Cells) == n
}

func (b *builder) addAlignmentRow(tok Token) *Node {
	cur := b.cursor
	switch cur.Kind {
	case NodeFallback:
		cur.append(NewLeaf(tok))
		return cur
	case NodeTable:
		return b.degrade(cur, tok)
	}
	host := b.blockHost(cur)
	fallback := host.append(&Node{Kind: NodeFallback})
	fallback.append(NewLeaf(tok))
	return fallback
}

// degrade replaces table with a fallback node holding its rows plus tok.
func (b *builder) degrade(table *Node, tok Token) *Node {
	children := make([]*Node, 0, len(table.Children)+1)
	children = append(children, table.Children...)
	children = append(children, NewLeaf(tok))
	fallback := &Node{Kind: NodeFallback, Children: children}
	replaceChild(b.parent(table), table, fallback)
	return fallback
}
