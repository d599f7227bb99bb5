package mdpreview

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
)

var fakeHighlighter = HighlighterFunc(func(language, code string) (string, error) {
	return "[" + language + ":" + code + "]", nil
})

var failingHighlighter = HighlighterFunc(func(language, code string) (string, error) {
	return "", errors.New("boom")
})

func TestHTMLDocumentWrapper(t *testing.T) {
	t.Parallel()
	got := Compile("# Hello\n")
	want := `<html><head><meta charset="utf-8"><style>` + DefaultTheme().Stylesheet() +
		`</style><link rel="stylesheet" href="highlight.css"></head><h1>Hello</h1></html>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLEmptyInputYieldsBareWrapper(t *testing.T) {
	t.Parallel()
	got := Compile("", WithHighlightStylesheet(""), WithTheme(NewTheme("plain", Palette{}, "github")))
	want := `<html><head><meta charset="utf-8"><style>` + stylesheet(Palette{}) + `</style></head></html>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("empty document mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLFragments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"italics", "*a*_b_", "<p><em>a</em><em>b</em></p>"},
		{"ordered list", "1. A\n2. B", "<ol><li><p>A</p></li><li><p>B</p></li></ol>"},
		{
			"table",
			"a|b\n---|---\n1|2\n",
			`<table><thead><tr><th style="text-align:left">a</th><th style="text-align:left">b</th></tr></thead>` +
				`<tbody><tr><td style="text-align:left">1</td><td style="text-align:left">2</td></tr></tbody></table>`,
		},
		{
			"aligned table",
			"|l|c|r|\n|:-|:-:|-:|\n|1|2|3|\n",
			`<table><thead><tr><th style="text-align:left">l</th><th style="text-align:center">c</th><th style="text-align:right">r</th></tr></thead>` +
				`<tbody><tr><td style="text-align:left">1</td><td style="text-align:center">2</td><td style="text-align:right">3</td></tr></tbody></table>`,
		},
		{"fallback", "a|b\n", "a|b\n"},
		{"fallback with pipes", "|a|b|\n|1|2|\n", "|a|b|\n|1|2|\n"},
		{"paragraphs", "Hello\n\nWorld", "<p>Hello</p><br/><p>World</p>"},
		{"rule", "---\n", "<hr/>"},
		{"inline tags", "**b** ~~s~~ `c`", "<p><strong>b</strong> <del>s</del> <code>c</code></p>"},
		{
			"link attributes are escaped",
			`[a & b](/p?x=1&y=<2> "T")`,
			`<p><a href="/p?x=1&amp;y=&lt;2&gt;" title="T">a &amp; b</a></p>`,
		},
		{
			"autolink",
			"<http://e.com/a?b=1&c=2>",
			`<p><a href="http://e.com/a?b=1&amp;c=2" title="">http://e.com/a?b=1&amp;c=2</a></p>`,
		},
		{"image", "![it's](i.png)", `<p><img src="i.png" title="" alt="it&#39;s"/></p>`},
		{"blockquote", "> q *i*\n", "<blockquote>q <em>i</em></blockquote>"},
		{"nested list", "- a\n  - b\n", "<ul><li><p>a</p><ul><li><p>b</p></li></ul></li></ul>"},
		{"escaped literal", `\*x\*`, "<p>*x*</p>"},
		{"fenced code", "```go\nx\n```", `<pre><code class="language-go">[go:x]</code></pre>`},
		{"fenced code without language", "```\nx\n```", `<pre><code>[:x]</code></pre>`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := CompileFragment(tc.src, WithHighlighter(fakeHighlighter))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("CompileFragment(%q) mismatch (-want +got):\n%s", tc.src, diff)
			}
		})
	}
}

func TestHTMLFallbackIsByteExact(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"a|b\n1|2\n",
		"a | b \n---|---|---\n 1|2\n",
		"|x|y|\n|:-:|\n",
		"a|b\n---|---\n1|2\n1|2|3\n",
	}
	for _, src := range inputs {
		doc := parse(src)
		if len(doc.Children) != 1 || doc.Children[0].Kind != NodeFallback {
			t.Fatalf("%q: expected a single fallback node, got %v", src, childKinds(doc))
		}
		if got := HTMLFragment(doc); got != src {
			t.Fatalf("fallback re-emission mismatch\nwant %q\ngot  %q", src, got)
		}
	}
}

func TestHTMLHighlighterFailureFallsBackToEscapedCode(t *testing.T) {
	t.Parallel()
	got := CompileFragment("```\n<x>\n```", WithHighlighter(failingHighlighter))
	if diff := cmp.Diff("<pre><code>&lt;x&gt;</code></pre>", got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLTextEscaping(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		src      string
		verbatim string
		escaped  string
	}{
		{
			"header",
			"# <script>alert(1)</script>\n",
			"<h1><script>alert(1)</script></h1>",
			"<h1>&lt;script&gt;alert(1)&lt;/script&gt;</h1>",
		},
		{"paragraph", "a <b>", "<p>a <b></p>", "<p>a &lt;b&gt;</p>"},
		{"list item", "- <i>x</i>\n", "<ul><li><p><i>x</i></p></li></ul>", "<ul><li><p>&lt;i&gt;x&lt;/i&gt;</p></li></ul>"},
		{"fallback", "<a|b>\n", "<a|b>\n", "&lt;a|b&gt;\n"},
		{"code span", "`<br>`", "<p><code><br></code></p>", "<p><code>&lt;br&gt;</code></p>"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.verbatim, CompileFragment(tc.src)); diff != "" {
				t.Fatalf("default mode mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.escaped, CompileFragment(tc.src, WithEscapeText(true))); diff != "" {
				t.Fatalf("escape mode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHTMLHeaderLevelIsClamped(t *testing.T) {
	t.Parallel()
	doc := NewDocument()
	doc.append(NewLeaf(Token{Kind: TokenHeader, Level: 9, Text: "deep"}))
	doc.append(NewLeaf(Token{Kind: TokenHeader, Level: 0, Text: "flat"}))
	if got := HTMLFragment(doc); got != "<h6>deep</h6><h1>flat</h1>" {
		t.Fatalf("unexpected headers %q", got)
	}
}

func TestHTMLFragmentOfNil(t *testing.T) {
	t.Parallel()
	if got := HTMLFragment(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestHTMLParsesAsWellFormedDocument(t *testing.T) {
	t.Parallel()
	src := "# Title\nSome *text* and [a link](http://e.com).\n- one\n- two\n  - nested\n\n\na|b\n---|---\n1|2\n"
	root, err := html.Parse(strings.NewReader(Compile(src, WithHighlighter(fakeHighlighter))))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	counts := map[string]int{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			counts[n.Data]++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	want := map[string]int{"h1": 1, "em": 1, "a": 1, "ul": 2, "li": 3, "table": 1, "th": 2, "td": 2, "style": 1, "link": 1}
	for tag, n := range want {
		if counts[tag] != n {
			t.Fatalf("expected %d <%s>, got %d (all: %v)", n, tag, counts[tag], counts)
		}
	}
}

func TestEscapeHTML(t *testing.T) {
	t.Parallel()
	if got := EscapeHTML(`<a href="x">Tom & Jerry's</a>`); got != "&lt;a href=&quot;x&quot;&gt;Tom &amp; Jerry&#39;s&lt;/a&gt;" {
		t.Fatalf("unexpected escape %q", got)
	}
}
