package mdpreview

import "pkt.systems/mdpreview/internal/highlight"

// Highlighter renders code as highlighted HTML. An empty language asks the
// highlighter to detect it.
type Highlighter interface {
	Highlight(language, code string) (string, error)
}

// HighlighterFunc adapts a function to the Highlighter interface.
type HighlighterFunc func(language, code string) (string, error)

// Highlight calls f(language, code).
func (f HighlighterFunc) Highlight(language, code string) (string, error) {
	return f(language, code)
}

var defaultHighlighter = func(theme Theme) Highlighter {
	return highlight.New(theme.HighlightStyle())
}

// HighlightCSS returns the stylesheet matching the default highlighter output
// for theme.
func HighlightCSS(theme Theme) (string, error) {
	if theme == nil {
		theme = DefaultTheme()
	}
	return highlight.New(theme.HighlightStyle()).CSS()
}
