package mdpreview

// Node is an element of the document tree. Leaf nodes carry the token they
// were built from; container nodes carry their own fields.
type Node struct {
	Kind  NodeKind
	Token Token

	// Level is the indentation level of a list.
	Level int
	// Columns is the column count a table's header row fixed.
	Columns int
	// Aligned reports whether a table accepted its alignment row.
	Aligned bool

	Children []*Node
}

// NodeKind tags the variant of a Node.
type NodeKind uint8

const (
	NodeDocument NodeKind = iota
	NodeParagraph
	NodeOrderedList
	NodeUnorderedList
	NodeListItem
	NodeTable
	NodeFallback

	NodeText
	NodeLiteral
	NodeHeader
	NodeHorizontalRule
	NodeBold
	NodeItalics
	NodeStrikethrough
	NodeLineBreak
	NodeNewline
	NodeLink
	NodeImage
	NodeCode
	NodeBlockquote
	NodeFencedCode
	NodeTableRow
	NodeAlignmentRow
)

var nodeKindNames = [...]string{
	NodeDocument:       "document",
	NodeParagraph:      "paragraph",
	NodeOrderedList:    "ordered-list",
	NodeUnorderedList:  "unordered-list",
	NodeListItem:       "list-item",
	NodeTable:          "table",
	NodeFallback:       "fallback",
	NodeText:           "text",
	NodeLiteral:        "literal",
	NodeHeader:         "header",
	NodeHorizontalRule: "horizontal-rule",
	NodeBold:           "bold",
	NodeItalics:        "italics",
	NodeStrikethrough:  "strikethrough",
	NodeLineBreak:      "linebreak",
	NodeNewline:        "newline",
	NodeLink:           "link",
	NodeImage:          "image",
	NodeCode:           "code",
	NodeBlockquote:     "blockquote",
	NodeFencedCode:     "fenced-code",
	NodeTableRow:       "table-row",
	NodeAlignmentRow:   "alignment-row",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// IsList reports whether k is an ordered or unordered list.
func (k NodeKind) IsList() bool {
	return k == NodeOrderedList || k == NodeUnorderedList
}

var tokenNodeKinds = [...]NodeKind{
	TokenText:           NodeText,
	TokenLiteral:        NodeLiteral,
	TokenHeader:         NodeHeader,
	TokenHorizontalRule: NodeHorizontalRule,
	TokenBold:           NodeBold,
	TokenItalics:        NodeItalics,
	TokenStrikethrough:  NodeStrikethrough,
	TokenLineBreak:      NodeLineBreak,
	TokenNewline:        NodeNewline,
	TokenOrderedItem:    NodeListItem,
	TokenUnorderedItem:  NodeListItem,
	TokenLink:           NodeLink,
	TokenImage:          NodeImage,
	TokenCode:           NodeCode,
	TokenBlockquote:     NodeBlockquote,
	TokenFencedCode:     NodeFencedCode,
	TokenTableRow:       NodeTableRow,
	TokenAlignmentRow:   NodeAlignmentRow,
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return &Node{Kind: NodeDocument}
}

// NewLeaf wraps a token in a node of the matching kind.
func NewLeaf(tok Token) *Node {
	return &Node{Kind: tokenNodeKinds[tok.Kind], Token: tok}
}

// LastChild returns the last child of n or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

func (n *Node) append(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}
