package mdpreview

import (
	"sort"
	"strings"
)

// Palette holds the colors a theme's page stylesheet is built from.
type Palette struct {
	Background string
	Text       string
	Heading    string
	Link       string
	CodeBg     string
	Border     string
	Quote      string
	Muted      string
}

// Theme provides the inline page stylesheet and the name of the chroma style
// used for fenced code.
type Theme interface {
	Name() string
	Stylesheet() string
	HighlightStyle() string
}

type theme struct {
	name       string
	stylesheet string
	highlight  string
}

func (t theme) Name() string           { return t.name }
func (t theme) Stylesheet() string     { return t.stylesheet }
func (t theme) HighlightStyle() string { return t.highlight }

// NewTheme returns a Theme whose stylesheet is generated from p and whose
// code blocks use the named chroma style.
func NewTheme(name string, p Palette, highlightStyle string) Theme {
	return theme{name: name, stylesheet: stylesheet(p), highlight: highlightStyle}
}

const stylesheetTemplate = `body{margin:0 auto;max-width:48em;padding:1em 2em;background:{bg};color:{text};font-family:-apple-system,"Segoe UI",Helvetica,Arial,sans-serif;line-height:1.5}` +
	`h1,h2,h3,h4,h5,h6{color:{heading};line-height:1.25}` +
	`h1,h2{border-bottom:1px solid {border};padding-bottom:.3em}` +
	`a{color:{link}}` +
	`code{background:{codebg};border-radius:3px;padding:.2em .4em;font-family:ui-monospace,Menlo,Consolas,monospace}` +
	`pre{background:{codebg};border-radius:6px;padding:1em;overflow:auto}` +
	`pre code{padding:0;background:none}` +
	`blockquote{margin:0;padding:0 1em;color:{quote};border-left:.25em solid {border}}` +
	`table{border-collapse:collapse}` +
	`th,td{border:1px solid {border};padding:.4em .8em}` +
	`hr{border:0;border-top:1px solid {border}}` +
	`del{color:{muted}}` +
	`img{max-width:100%}`

func stylesheet(p Palette) string {
	return strings.NewReplacer(
		"{bg}", p.Background,
		"{text}", p.Text,
		"{heading}", p.Heading,
		"{link}", p.Link,
		"{codebg}", p.CodeBg,
		"{border}", p.Border,
		"{quote}", p.Quote,
		"{muted}", p.Muted,
	).Replace(stylesheetTemplate)
}

var (
	paletteGithubLight = Palette{Background: "#ffffff", Text: "#1f2328", Heading: "#1f2328", Link: "#0969da", CodeBg: "#f6f8fa", Border: "#d0d7de", Quote: "#656d76", Muted: "#8c959f"}
	paletteGithubDark  = Palette{Background: "#0d1117", Text: "#e6edf3", Heading: "#e6edf3", Link: "#4493f8", CodeBg: "#161b22", Border: "#30363d", Quote: "#8d96a0", Muted: "#6e7681"}
	paletteMonokai     = Palette{Background: "#272822", Text: "#f8f8f2", Heading: "#a6e22e", Link: "#66d9ef", CodeBg: "#3e3d32", Border: "#49483e", Quote: "#75715e", Muted: "#75715e"}
	paletteDracula     = Palette{Background: "#282a36", Text: "#f8f8f2", Heading: "#bd93f9", Link: "#8be9fd", CodeBg: "#44475a", Border: "#6272a4", Quote: "#6272a4", Muted: "#6272a4"}
	paletteNord        = Palette{Background: "#2e3440", Text: "#d8dee9", Heading: "#88c0d0", Link: "#81a1c1", CodeBg: "#3b4252", Border: "#4c566a", Quote: "#a3be8c", Muted: "#4c566a"}
	paletteSolLight    = Palette{Background: "#fdf6e3", Text: "#657b83", Heading: "#268bd2", Link: "#2aa198", CodeBg: "#eee8d5", Border: "#93a1a1", Quote: "#859900", Muted: "#93a1a1"}
	paletteSolDark     = Palette{Background: "#002b36", Text: "#839496", Heading: "#268bd2", Link: "#2aa198", CodeBg: "#073642", Border: "#586e75", Quote: "#859900", Muted: "#586e75"}
	paletteGruvbox     = Palette{Background: "#282828", Text: "#ebdbb2", Heading: "#fabd2f", Link: "#83a598", CodeBg: "#3c3836", Border: "#504945", Quote: "#b8bb26", Muted: "#928374"}
	paletteGruvboxLt   = Palette{Background: "#fbf1c7", Text: "#3c3836", Heading: "#b57614", Link: "#076678", CodeBg: "#ebdbb2", Border: "#d5c4a1", Quote: "#79740e", Muted: "#928374"}
	paletteOneDark     = Palette{Background: "#282c34", Text: "#abb2bf", Heading: "#e06c75", Link: "#61afef", CodeBg: "#2c313a", Border: "#3e4451", Quote: "#98c379", Muted: "#5c6370"}
	paletteCatppuccin  = Palette{Background: "#1e1e2e", Text: "#cdd6f4", Heading: "#cba6f7", Link: "#89b4fa", CodeBg: "#313244", Border: "#45475a", Quote: "#a6e3a1", Muted: "#6c7086"}
)

var builtinThemes = map[string]Theme{
	"default":          NewTheme("default", paletteGithubLight, "github"),
	"github-light":     NewTheme("github-light", paletteGithubLight, "github"),
	"github-dark":      NewTheme("github-dark", paletteGithubDark, "github-dark"),
	"monokai":          NewTheme("monokai", paletteMonokai, "monokai"),
	"dracula":          NewTheme("dracula", paletteDracula, "dracula"),
	"nord":             NewTheme("nord", paletteNord, "nord"),
	"solarized-light":  NewTheme("solarized-light", paletteSolLight, "solarized-light"),
	"solarized-dark":   NewTheme("solarized-dark", paletteSolDark, "solarized-dark"),
	"gruvbox":          NewTheme("gruvbox", paletteGruvbox, "gruvbox"),
	"gruvbox-light":    NewTheme("gruvbox-light", paletteGruvboxLt, "gruvbox-light"),
	"one-dark":         NewTheme("one-dark", paletteOneDark, "onedark"),
	"catppuccin-mocha": NewTheme("catppuccin-mocha", paletteCatppuccin, "catppuccin-mocha"),
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}
