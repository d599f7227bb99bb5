// Package highlight renders fenced code as class-annotated HTML using chroma.
package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter highlights code with a fixed chroma style. Output uses CSS
// classes, so it must be paired with the stylesheet returned by CSS.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New returns a Highlighter for the named chroma style. Unknown names fall
// back to chroma's default style.
func New(styleName string) *Highlighter {
	return &Highlighter{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Highlight renders code. An empty or unknown language is detected from the
// code itself, falling back to plain text.
func (h *Highlighter) Highlight(language, code string) (string, error) {
	lexer := chroma.Coalesce(lexerFor(language, code))
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("highlight: tokenise %s: %w", lexer.Config().Name, err)
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", fmt.Errorf("highlight: format: %w", err)
	}
	return b.String(), nil
}

// CSS returns the stylesheet for the highlighter's style.
func (h *Highlighter) CSS() (string, error) {
	var b strings.Builder
	if err := h.formatter.WriteCSS(&b, h.style); err != nil {
		return "", fmt.Errorf("highlight: css: %w", err)
	}
	return b.String(), nil
}

// StyleName returns the name of the style in use.
func (h *Highlighter) StyleName() string {
	return h.style.Name
}

func lexerFor(language, code string) chroma.Lexer {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return lexer
}

// HasStyle reports whether chroma knows the named style.
func HasStyle(name string) bool {
	for _, n := range styles.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Styles returns the sorted names of all chroma styles.
func Styles() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}
