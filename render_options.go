package mdpreview

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	theme            Theme
	escapeText       bool
	highlighter      Highlighter
	highlightCSS     string
	stripFrontMatter bool
}

// DefaultHighlightStylesheet is the stylesheet href written into the document
// head when none is configured.
const DefaultHighlightStylesheet = "highlight.css"

func applyOptions(opts []RenderOption) renderConfig {
	cfg := renderConfig{highlightCSS: DefaultHighlightStylesheet}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// newRenderConfig applies opts and fills in the theme. The highlighter stays
// nil until the first fenced block asks for it.
func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := applyOptions(opts)
	if cfg.theme == nil {
		cfg.theme = DefaultTheme()
	}
	return cfg
}

// WithTheme selects the page stylesheet and highlight style.
func WithTheme(theme Theme) RenderOption {
	return func(cfg *renderConfig) {
		cfg.theme = theme
	}
}

// WithEscapeText enables HTML escaping of header, paragraph, list, blockquote,
// inline and fallback text. Attribute values are always escaped; without this
// option other text is emitted verbatim and may carry raw markup.
func WithEscapeText(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.escapeText = enabled
	}
}

// WithHighlighter sets the syntax highlighter used for fenced code blocks.
func WithHighlighter(h Highlighter) RenderOption {
	return func(cfg *renderConfig) {
		cfg.highlighter = h
	}
}

// WithHighlightStylesheet sets the href of the highlighting stylesheet linked
// from the document head.
func WithHighlightStylesheet(href string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.highlightCSS = href
	}
}

// WithStripFrontMatter drops a leading YAML, TOML or JSON front matter block
// before tokenizing.
func WithStripFrontMatter(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.stripFrontMatter = enabled
	}
}
