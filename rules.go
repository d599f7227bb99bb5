package mdpreview

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Rule pairs a pattern with the constructor of the token it recognizes.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Build   func(m []string) Token
}

// NewRule compiles pattern anchored at the start of the remaining input.
func NewRule(name, pattern string, build func(m []string) Token) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(`^(?:` + pattern + `)`),
		Build:   build,
	}
}

// RuleTable is an ordered, immutable set of rules. Order only breaks ties
// between matches of equal length.
type RuleTable struct {
	rules []Rule
}

// probes are characters the final rule of every table must accept.
var catchAllProbes = []string{"a", " ", "\n", "|", "_", "<", "\\", "\x00", "é", "\xff"}

// NewRuleTable builds a table from rules. The last rule must match any single
// character; a table without such a rule could stall the tokenizer, so this is
// treated as a programming error.
func NewRuleTable(rules ...Rule) *RuleTable {
	if len(rules) == 0 {
		panic("mdpreview: empty rule table")
	}
	last := rules[len(rules)-1]
	for _, probe := range catchAllProbes {
		if loc := last.Pattern.FindStringIndex(probe); loc == nil || loc[1] == 0 {
			panic(fmt.Sprintf("mdpreview: final rule %q does not match %q", last.Name, probe))
		}
	}
	return &RuleTable{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the table's rules in registration order.
func (t *RuleTable) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Len returns the number of rules.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// LiteralRule is the catch-all rule emitting a single character as a literal.
func LiteralRule() Rule {
	return NewRule("literal", `(?s:.)`, literal)
}

var (
	blockOnce  sync.Once
	blockTable *RuleTable
	cellOnce   sync.Once
	cellTable  *RuleTable
)

// BlockRules returns the full block and inline rule set used at document
// level, inside list items and inside blockquotes.
func BlockRules() *RuleTable {
	blockOnce.Do(func() {
		blockTable = NewRuleTable(
			NewRule("header", `(#{1,6})[ \t]+([^\n]*?)\r?(?:\n|$)`, header),
			NewRule("horizontal-rule", `(?:-{3,}|={3,}|_{3,}|\*{3,})\r?(?:\n|$)`, horizontalRule),
			NewRule("bold-star", `\*\*([^*]+|[^*]*\*[^*]*)\*\*`, bold),
			NewRule("bold-underscore", `__([^_]+|[^_]*_[^_]*)__`, bold),
			NewRule("italics-star", `\*([^*]*)\*`, italics),
			NewRule("italics-underscore", `_([^_]*)_`, italics),
			NewRule("strikethrough", `~~([^~]*(?:~[^~]+)?)~~`, strikethrough),
			NewRule("linebreak", `\r?\n\r?\n`, linebreak),
			NewRule("ordered-item", `( *)[0-9]+\.[ \t]+([^\n]*?)\r?(?:\n|$)`, orderedItem),
			NewRule("unordered-item", `( *)[*+-][ \t]+([^\n]*?)\r?(?:\n|$)`, unorderedItem),
			NewRule("link", linkPattern, link),
			NewRule("autolink", autolinkPattern, autolink),
			NewRule("image", `!`+linkPattern, image),
			NewRule("code", codeSpanPattern, code),
			NewRule("blockquote", `>[ \t]+([^\n]*?)\r?(?:\n|$)`, blockquote),
			NewRule("fenced-code", fencedCodePattern, fencedCode),
			NewRule("alignment-row-piped", `\|(?:[ \t]*:?-+:?[ \t]*\|)+[ \t]*\r?(?:\n|$)`, alignmentRow),
			NewRule("alignment-row", `[ \t]*:?-+:?[ \t]*(?:\|[ \t]*:?-+:?[ \t]*)+\|?[ \t]*\r?(?:\n|$)`, alignmentRow),
			NewRule("table-row-piped", `\|(?:[^|\n]+\|)+[ \t]*\r?(?:\n|$)`, tableRow),
			NewRule("table-row", `[^|\r\n]+(?:\|[^|\r\n]+)+\|?\r?(?:\n|$)`, tableRow),
			NewRule("newline", `\r?\n`, newline),
			NewRule("escape", escapePattern, escaped),
			NewRule("special", specialPattern, literal),
			NewRule("text", `[^'"*_~`+"`"+`\[<!|\r\n\\]+`, text),
			LiteralRule(),
		)
	})
	return blockTable
}

// CellRules returns the inline-only rule set used inside table cells.
func CellRules() *RuleTable {
	cellOnce.Do(func() {
		cellTable = NewRuleTable(
			NewRule("bold-star", `\*\*([^*]+|[^*]*\*[^*]*)\*\*`, bold),
			NewRule("bold-underscore", `__([^_]+|[^_]*_[^_]*)__`, bold),
			NewRule("italics-star", `\*([^*]*)\*`, italics),
			NewRule("italics-underscore", `_([^_]*)_`, italics),
			NewRule("strikethrough", `~~([^~]*(?:~[^~]+)?)~~`, strikethrough),
			NewRule("link", linkPattern, link),
			NewRule("autolink", autolinkPattern, autolink),
			NewRule("image", `!`+linkPattern, image),
			NewRule("code", codeSpanPattern, code),
			NewRule("escape", escapePattern, escaped),
			NewRule("special", specialPattern, literal),
			NewRule("text", `[^*_~`+"`"+`\[<!\\]+`, text),
			LiteralRule(),
		)
	})
	return cellTable
}

const (
	linkPattern       = `\[([^\[\]]*)\]\(([^()"']*)(?:\s+(?:"([^"]*)"|'([^']*)'))?\s*\)`
	autolinkPattern   = `<?((?:(?:https?|ftp)://|www\.)[^\s<>]+)>?`
	codeSpanPattern   = "`([^`\\n]+)`"
	fencedCodePattern = "(?s:```([A-Za-z0-9_+#-]*)[ \\t]*\\r?\\n(.*?)\\r?\\n```)"
	escapePattern     = `\\([\\*_{}\[\]()#+\-.!|~<>'"` + "`" + `])`
	specialPattern    = `['"*~` + "`" + `\[!]`
)

func header(m []string) Token {
	return Token{Kind: TokenHeader, Level: len(m[1]), Text: strings.TrimRight(m[2], " \t")}
}

func horizontalRule(m []string) Token {
	return Token{Kind: TokenHorizontalRule}
}

func bold(m []string) Token {
	return Token{Kind: TokenBold, Text: m[1]}
}

func italics(m []string) Token {
	return Token{Kind: TokenItalics, Text: m[1]}
}

func strikethrough(m []string) Token {
	return Token{Kind: TokenStrikethrough, Text: m[1]}
}

func linebreak(m []string) Token {
	return Token{Kind: TokenLineBreak}
}

func newline(m []string) Token {
	return Token{Kind: TokenNewline}
}

func orderedItem(m []string) Token {
	return listItem(TokenOrderedItem, m)
}

func unorderedItem(m []string) Token {
	return listItem(TokenUnorderedItem, m)
}

func listItem(kind TokenKind, m []string) Token {
	return Token{
		Kind:   kind,
		Level:  len(m[1]),
		Text:   m[2],
		Inline: Tokenize(m[2], BlockRules()),
	}
}

func link(m []string) Token {
	return Token{Kind: TokenLink, Text: m[1], Href: strings.TrimSpace(m[2]), Title: m[3] + m[4]}
}

func autolink(m []string) Token {
	return Token{Kind: TokenLink, Text: m[1], Href: m[1]}
}

func image(m []string) Token {
	return Token{Kind: TokenImage, Text: m[1], Href: strings.TrimSpace(m[2]), Title: m[3] + m[4]}
}

func code(m []string) Token {
	return Token{Kind: TokenCode, Text: m[1]}
}

func blockquote(m []string) Token {
	return Token{Kind: TokenBlockquote, Text: m[1], Inline: Tokenize(m[1], BlockRules())}
}

func fencedCode(m []string) Token {
	return Token{Kind: TokenFencedCode, Language: m[1], Text: m[2]}
}

func alignmentRow(m []string) Token {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, m[0])
	var alignment []Alignment
	for _, cell := range strings.Split(compact, "|") {
		if cell == "" {
			continue
		}
		alignment = append(alignment, cellAlignment(cell))
	}
	return Token{Kind: TokenAlignmentRow, Alignment: alignment}
}

func cellAlignment(cell string) Alignment {
	leading := strings.HasPrefix(cell, ":")
	trailing := len(cell) > 1 && strings.HasSuffix(cell, ":")
	switch {
	case leading && trailing:
		return AlignCenter
	case trailing:
		return AlignRight
	default:
		return AlignLeft
	}
}

func tableRow(m []string) Token {
	line := strings.TrimRight(m[0], "\r\n")
	var cells []Cell
	for _, part := range strings.Split(line, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cells = append(cells, Cell{Text: part, Tokens: Tokenize(part, CellRules())})
	}
	return Token{Kind: TokenTableRow, Cells: cells}
}

func escaped(m []string) Token {
	return Token{Kind: TokenLiteral, Text: m[1]}
}

func literal(m []string) Token {
	return Token{Kind: TokenLiteral, Text: m[0]}
}

func text(m []string) Token {
	return Token{Kind: TokenText, Text: m[0]}
}
