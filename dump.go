package mdpreview

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
)

const dumpKindWidth = 16

// DumpTokens writes one line per token: its kind and a summary of its
// payload. Nested list item, blockquote and cell tokens are indented below
// their owner. Lines wider than width are truncated; width <= 0 disables
// truncation.
func DumpTokens(w io.Writer, tokens []Token, width int) error {
	var b strings.Builder
	dumpTokens(&b, tokens, 0)
	return writeDump(w, b.String(), width)
}

func dumpTokens(b *strings.Builder, tokens []Token, depth uint) {
	for _, tok := range tokens {
		line := padding.String(tok.Kind.String(), dumpKindWidth) + tokenSummary(tok)
		b.WriteString(indent.String(line, depth*2))
		b.WriteByte('\n')
		if len(tok.Inline) > 0 {
			dumpTokens(b, tok.Inline, depth+1)
		}
		for _, cell := range tok.Cells {
			dumpTokens(b, cell.Tokens, depth+1)
		}
	}
}

func tokenSummary(tok Token) string {
	var parts []string
	switch tok.Kind {
	case TokenHeader, TokenOrderedItem, TokenUnorderedItem:
		parts = append(parts, "level="+strconv.Itoa(tok.Level))
	case TokenFencedCode:
		if tok.Language != "" {
			parts = append(parts, "lang="+tok.Language)
		}
	case TokenTableRow:
		parts = append(parts, "cells="+strconv.Itoa(len(tok.Cells)))
	case TokenAlignmentRow:
		aligns := make([]string, len(tok.Alignment))
		for i, a := range tok.Alignment {
			aligns[i] = a.String()
		}
		parts = append(parts, "align="+strings.Join(aligns, ","))
	}
	if tok.Href != "" {
		parts = append(parts, "href="+strconv.Quote(tok.Href))
	}
	if tok.Title != "" {
		parts = append(parts, "title="+strconv.Quote(tok.Title))
	}
	parts = append(parts, strconv.Quote(tok.Raw))
	return strings.Join(parts, " ")
}

// DumpTree writes the tree rooted at n, one node per line, indented by depth.
func DumpTree(w io.Writer, n *Node, width int) error {
	var b strings.Builder
	Walk(n, func(n *Node, depth int) bool {
		b.WriteString(indent.String(padding.String(n.Kind.String(), dumpKindWidth)+nodeSummary(n), uint(depth)*2))
		b.WriteByte('\n')
		return true
	})
	return writeDump(w, b.String(), width)
}

func nodeSummary(n *Node) string {
	switch n.Kind {
	case NodeDocument, NodeParagraph:
		return ""
	case NodeOrderedList, NodeUnorderedList:
		return "level=" + strconv.Itoa(n.Level)
	case NodeTable:
		return fmt.Sprintf("columns=%d aligned=%t", n.Columns, n.Aligned)
	case NodeFallback:
		return "rows=" + strconv.Itoa(len(n.Children))
	}
	return tokenSummary(n.Token)
}

func writeDump(w io.Writer, dump string, width int) error {
	if width > 0 {
		lines := strings.Split(strings.TrimSuffix(dump, "\n"), "\n")
		for i, line := range lines {
			if ansi.PrintableRuneWidth(line) > width {
				lines[i] = truncate.StringWithTail(line, uint(width), "…")
			}
		}
		dump = strings.Join(lines, "\n") + "\n"
	}
	if _, err := io.WriteString(w, dump); err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	return nil
}
