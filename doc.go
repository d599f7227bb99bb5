// Package mdpreview compiles a small markdown dialect to HTML.
//
// Compilation runs in three passes. A longest-match tokenizer splits the
// source into tokens using an ordered RuleTable, a cursor-driven builder
// assembles the tokens into a document tree, and an emitter writes the tree
// as HTML with a theme stylesheet and chroma-highlighted code blocks.
//
// The dialect covers ATX headers, emphasis, strikethrough, ordered and
// unordered lists nested by indentation, links, autolinks, images, inline and
// fenced code, single-line blockquotes, horizontal rules and pipe tables.
// Table rows that do not form a valid table are re-emitted verbatim.
//
// Text content is not HTML-escaped unless WithEscapeText(true) is given;
// attribute values always are.
//
// Example:
//
//	err := mdpreview.Render(mdpreview.RenderRequest{
//		Reader: strings.NewReader("# Hello\n\nMarkdown in, HTML out.\n"),
//		Writer: os.Stdout,
//		Theme:  mdpreview.DefaultTheme(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Compile, CompileFragment and Parse work on strings; Tokenize and Build
// expose the individual passes.
package mdpreview

//go:generate go run ./cmd/gen-golden
