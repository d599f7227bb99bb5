package mdpreview

import (
	"strconv"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes &, <, >, " and ' in s.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// HTML renders doc as a complete HTML document: a head carrying the theme
// stylesheet and a link to the highlighting stylesheet, followed by the
// rendered content directly inside the html element.
func HTML(doc *Node, opts ...RenderOption) string {
	w := &htmlWriter{cfg: newRenderConfig(opts)}
	w.node(doc)
	return w.sb.String()
}

// HTMLFragment renders the children of doc without the document wrapper.
func HTMLFragment(doc *Node, opts ...RenderOption) string {
	w := &htmlWriter{cfg: newRenderConfig(opts)}
	if doc != nil {
		w.children(doc)
	}
	return w.sb.String()
}

type htmlWriter struct {
	cfg renderConfig
	sb  strings.Builder
}

// text writes a text position, escaped only when the option is enabled.
func (w *htmlWriter) text(s string) {
	if w.cfg.escapeText {
		s = EscapeHTML(s)
	}
	w.sb.WriteString(s)
}

func (w *htmlWriter) attr(name, value string) {
	w.sb.WriteString(" " + name + `="` + EscapeHTML(value) + `"`)
}

func (w *htmlWriter) wrap(tag, s string) {
	w.sb.WriteString("<" + tag + ">")
	w.text(s)
	w.sb.WriteString("</" + tag + ">")
}

func (w *htmlWriter) children(n *Node) {
	for _, child := range n.Children {
		w.node(child)
	}
}

func (w *htmlWriter) inline(tokens []Token) {
	for _, tok := range tokens {
		w.node(NewLeaf(tok))
	}
}

func (w *htmlWriter) node(n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case NodeDocument:
		w.document(n)
	case NodeParagraph:
		w.sb.WriteString("<p>")
		w.children(n)
		w.sb.WriteString("</p>")
	case NodeOrderedList:
		w.list("ol", n)
	case NodeUnorderedList:
		w.list("ul", n)
	case NodeListItem:
		w.listItem(n)
	case NodeTable:
		w.table(n)
	case NodeFallback:
		for _, row := range n.Children {
			w.text(row.Token.Raw)
		}
	case NodeText, NodeLiteral:
		w.text(n.Token.Text)
	case NodeHeader:
		tag := "h" + strconv.Itoa(clampLevel(n.Token.Level))
		w.wrap(tag, n.Token.Text)
	case NodeHorizontalRule:
		w.sb.WriteString("<hr/>")
	case NodeLineBreak:
		w.sb.WriteString("<br/>")
	case NodeNewline:
		w.sb.WriteString("\n")
	case NodeBold:
		w.wrap("strong", n.Token.Text)
	case NodeItalics:
		w.wrap("em", n.Token.Text)
	case NodeStrikethrough:
		w.wrap("del", n.Token.Text)
	case NodeCode:
		w.wrap("code", n.Token.Text)
	case NodeLink:
		w.sb.WriteString("<a")
		w.attr("href", n.Token.Href)
		w.attr("title", n.Token.Title)
		w.sb.WriteString(">" + EscapeHTML(n.Token.Text) + "</a>")
	case NodeImage:
		w.sb.WriteString("<img")
		w.attr("src", n.Token.Href)
		w.attr("title", n.Token.Title)
		w.attr("alt", n.Token.Text)
		w.sb.WriteString("/>")
	case NodeBlockquote:
		w.sb.WriteString("<blockquote>")
		w.inline(n.Token.Inline)
		w.sb.WriteString("</blockquote>")
	case NodeFencedCode:
		w.fencedCode(n.Token)
	case NodeTableRow, NodeAlignmentRow:
		w.text(n.Token.Raw)
	}
}

func (w *htmlWriter) document(n *Node) {
	w.sb.WriteString(`<html><head><meta charset="utf-8"><style>`)
	w.sb.WriteString(w.cfg.theme.Stylesheet())
	w.sb.WriteString("</style>")
	if w.cfg.highlightCSS != "" {
		w.sb.WriteString(`<link rel="stylesheet"`)
		w.attr("href", w.cfg.highlightCSS)
		w.sb.WriteString(">")
	}
	w.sb.WriteString("</head>")
	w.children(n)
	w.sb.WriteString("</html>")
}

func (w *htmlWriter) list(tag string, n *Node) {
	w.sb.WriteString("<" + tag + ">")
	w.children(n)
	w.sb.WriteString("</" + tag + ">")
}

func (w *htmlWriter) listItem(n *Node) {
	w.sb.WriteString("<li><p>")
	w.inline(n.Token.Inline)
	w.sb.WriteString("</p>")
	w.children(n)
	w.sb.WriteString("</li>")
}

func (w *htmlWriter) fencedCode(tok Token) {
	w.sb.WriteString("<pre><code")
	if tok.Language != "" {
		w.attr("class", "language-"+tok.Language)
	}
	w.sb.WriteString(">")
	if w.cfg.highlighter == nil {
		w.cfg.highlighter = defaultHighlighter(w.cfg.theme)
	}
	out, err := w.cfg.highlighter.Highlight(tok.Language, tok.Text)
	if err != nil {
		out = EscapeHTML(tok.Text)
	}
	w.sb.WriteString(out)
	w.sb.WriteString("</code></pre>")
}

// table renders a table node whose first two children are the header row and
// the alignment row; the builder guarantees at least one body row follows.
func (w *htmlWriter) table(n *Node) {
	if len(n.Children) < 2 {
		for _, row := range n.Children {
			w.text(row.Token.Raw)
		}
		return
	}
	alignment := n.Children[1].Token.Alignment
	w.sb.WriteString("<table><thead>")
	w.row("th", n.Children[0].Token, alignment)
	w.sb.WriteString("</thead><tbody>")
	for _, row := range n.Children[2:] {
		w.row("td", row.Token, alignment)
	}
	w.sb.WriteString("</tbody></table>")
}

func (w *htmlWriter) row(tag string, tok Token, alignment []Alignment) {
	w.sb.WriteString("<tr>")
	for i, cell := range tok.Cells {
		align := AlignLeft
		if i < len(alignment) {
			align = alignment[i]
		}
		w.sb.WriteString("<" + tag + ` style="text-align:` + align.String() + `">`)
		w.inline(cell.Tokens)
		w.sb.WriteString("</" + tag + ">")
	}
	w.sb.WriteString("</tr>")
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	}
	return level
}
