package mdpreview

import (
	"fmt"
	"io"
)

// Compile converts src to a complete HTML document.
func Compile(src string, opts ...RenderOption) string {
	cfg := newRenderConfig(opts)
	w := &htmlWriter{cfg: cfg}
	w.node(buildDocument(src, cfg))
	return w.sb.String()
}

// CompileFragment converts src to HTML without the document wrapper.
func CompileFragment(src string, opts ...RenderOption) string {
	cfg := newRenderConfig(opts)
	w := &htmlWriter{cfg: cfg}
	w.children(buildDocument(src, cfg))
	return w.sb.String()
}

// Parse tokenizes src with the block rules and builds its document tree.
func Parse(src string, opts ...RenderOption) *Node {
	return buildDocument(src, applyOptions(opts))
}

func buildDocument(src string, cfg renderConfig) *Node {
	if cfg.stripFrontMatter {
		src = StripFrontMatter(src)
	}
	return Build(Tokenize(src, BlockRules()), nil)
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Theme   Theme
	Options []RenderOption
}

// Render reads the whole input, validates it and writes the compiled HTML
// document.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	opts := req.Options
	if req.Theme != nil {
		opts = append([]RenderOption{WithTheme(req.Theme)}, opts...)
	}
	if _, err := io.WriteString(req.Writer, Compile(string(src), opts...)); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}
