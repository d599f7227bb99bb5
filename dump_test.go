package mdpreview

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func dumpLines(t *testing.T, out *bytes.Buffer) []string {
	t.Helper()
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
}

func TestDumpTokensListsKindsAndRaw(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := DumpTokens(&out, Tokenize("# Hi\n- a\n", BlockRules()), 0); err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := []string{
		`header          level=1 "# Hi\n"`,
		`unordered-item  level=0 "- a\n"`,
		`  text            "a"`,
	}
	if diff := cmp.Diff(want, dumpLines(t, &out)); diff != "" {
		t.Fatalf("token dump mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpTokensSummarizesPayload(t *testing.T) {
	t.Parallel()
	src := "[x](http://e.com \"T\")\n```go\nx\n```\n|a|b|\n|:-|-:|\n"
	var out bytes.Buffer
	if err := DumpTokens(&out, Tokenize(src, BlockRules()), 0); err != nil {
		t.Fatalf("dump: %v", err)
	}
	dump := out.String()
	for _, want := range []string{`href="http://e.com" title="T"`, "lang=go", "cells=2", "align=left,right"} {
		if !strings.Contains(dump, want) {
			t.Fatalf("missing %q in dump:\n%s", want, dump)
		}
	}
}

func TestDumpTreeIndentsByDepth(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := DumpTree(&out, Parse("- a\n  - b\n"), 0); err != nil {
		t.Fatalf("dump: %v", err)
	}
	lines := dumpLines(t, &out)
	prefixes := []string{
		"document",
		"  unordered-list  level=0",
		"    list-item",
		"      unordered-list  level=2",
		"        list-item",
	}
	if len(lines) != len(prefixes) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(prefixes), out.String())
	}
	for i, p := range prefixes {
		if !strings.HasPrefix(lines[i], p) {
			t.Fatalf("line %d = %q, want prefix %q", i, lines[i], p)
		}
	}
}

func TestDumpTreeTableSummary(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := DumpTree(&out, Parse("a|b\n---|---\n1|2\n"), 0); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out.String(), "table           columns=2 aligned=true") {
		t.Fatalf("missing table summary:\n%s", out.String())
	}

	out.Reset()
	if err := DumpTree(&out, Parse("a|b\nc|d\n"), 0); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out.String(), "fallback        rows=2") {
		t.Fatalf("missing fallback summary:\n%s", out.String())
	}
}

func TestDumpTruncatesToWidth(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := DumpTokens(&out, Tokenize("# a fairly long header line\n", BlockRules()), 12); err != nil {
		t.Fatalf("dump: %v", err)
	}
	for _, line := range dumpLines(t, &out) {
		if n := utf8.RuneCountInString(line); n > 12 {
			t.Fatalf("line %q is %d runes wide", line, n)
		}
		if !strings.HasSuffix(line, "…") {
			t.Fatalf("line %q not marked as truncated", line)
		}
	}
}

func TestDumpReportsWriteErrors(t *testing.T) {
	t.Parallel()
	err := DumpTree(failingWriter{}, Parse("x"), 0)
	if err == nil || !strings.HasPrefix(err.Error(), "dump: ") {
		t.Fatalf("unexpected error %v", err)
	}
}
