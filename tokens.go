package mdpreview

// Token is one lexical unit produced by Tokenize.
//
// Raw always holds the exact source text the token was matched from, so the
// concatenation of Raw over a token stream reproduces the input.
type Token struct {
	Kind TokenKind `json:"kind"`
	Raw  string    `json:"raw"`

	Level    int    `json:"level,omitempty"`
	Text     string `json:"text,omitempty"`
	Href     string `json:"href,omitempty"`
	Title    string `json:"title,omitempty"`
	Language string `json:"language,omitempty"`

	// Cells holds the columns of a table row.
	Cells []Cell `json:"cells,omitempty"`
	// Alignment holds the per-column alignment of an alignment row.
	Alignment []Alignment `json:"alignment,omitempty"`
	// Inline holds the tokenized Text of list items and blockquotes.
	Inline []Token `json:"inline,omitempty"`
}

// Cell is a single table cell: its trimmed text and the tokens of that text.
type Cell struct {
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

// TokenKind tags the variant of a Token.
type TokenKind uint8

const (
	// TokenText is a run of plain paragraph text.
	TokenText TokenKind = iota
	// TokenLiteral is a single literal or escaped character.
	TokenLiteral
	// TokenHeader is an ATX header line.
	TokenHeader
	// TokenHorizontalRule is a line of three or more -, =, _ or *.
	TokenHorizontalRule
	// TokenBold is strong emphasis.
	TokenBold
	// TokenItalics is emphasis.
	TokenItalics
	// TokenStrikethrough is struck-through text.
	TokenStrikethrough
	// TokenLineBreak is a blank line (two consecutive newlines).
	TokenLineBreak
	// TokenNewline is a single newline.
	TokenNewline
	// TokenOrderedItem is an ordered list item line.
	TokenOrderedItem
	// TokenUnorderedItem is an unordered list item line.
	TokenUnorderedItem
	// TokenLink is an inline link or autolink.
	TokenLink
	// TokenImage is an inline image.
	TokenImage
	// TokenCode is an inline code span.
	TokenCode
	// TokenBlockquote is a blockquote line.
	TokenBlockquote
	// TokenFencedCode is a fenced code block.
	TokenFencedCode
	// TokenTableRow is a pipe-separated table row.
	TokenTableRow
	// TokenAlignmentRow is the dash/colon row below a table header.
	TokenAlignmentRow
)

var tokenKindNames = [...]string{
	TokenText:           "text",
	TokenLiteral:        "literal",
	TokenHeader:         "header",
	TokenHorizontalRule: "horizontal-rule",
	TokenBold:           "bold",
	TokenItalics:        "italics",
	TokenStrikethrough:  "strikethrough",
	TokenLineBreak:      "linebreak",
	TokenNewline:        "newline",
	TokenOrderedItem:    "ordered-item",
	TokenUnorderedItem:  "unordered-item",
	TokenLink:           "link",
	TokenImage:          "image",
	TokenCode:           "code",
	TokenBlockquote:     "blockquote",
	TokenFencedCode:     "fenced-code",
	TokenTableRow:       "table-row",
	TokenAlignmentRow:   "alignment-row",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so token dumps carry kind names.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsListItem reports whether k is an ordered or unordered list item.
func (k TokenKind) IsListItem() bool {
	return k == TokenOrderedItem || k == TokenUnorderedItem
}

// Alignment is the text alignment of a table column.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
