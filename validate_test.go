package mdpreview

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidateInputRejectsInvalidUTF8(t *testing.T) {
	data := []byte{0xff, 0xfe, 0xfd}
	if err := ValidateInput(data); err != ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestValidateInputRejectsBinary(t *testing.T) {
	data := append([]byte("hello"), 0x00)
	if err := ValidateInput(data); err != ErrBinaryInput {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestValidateInputRejectsControlHeavyInput(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz\x01"), 4)
	if err := ValidateInput(data); err != ErrBinaryInput {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestValidateInputAcceptsText(t *testing.T) {
	inputs := []string{
		"",
		"# Title\n\nSome *text* with tabs\tand\r\nwindows endings.\n",
		"unicode: é ü 日本語 🎉\n",
		"short\x01",
		strings.Repeat("a line of plain text\n", 200),
	}
	for _, in := range inputs {
		if err := ValidateInput([]byte(in)); err != nil {
			t.Fatalf("ValidateInput(%q) = %v", in, err)
		}
	}
}

func TestValidateInputLineEndings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"lf", "# T\n\n- a\n- b\n", nil},
		{"crlf", "# T\r\n\r\n- a\r\n- b\r\n", nil},
		{"trailing cr", "line one\nline two\r", nil},
		{"few stray cr", "a\rb\nc\rd\n", nil},
		{"classic mac", "# T\r\r- a\r- b\r", ErrBareCRLineEndings},
		{"mostly cr", "a\rb\rc\rd\ne\r", ErrBareCRLineEndings},
	}
	for _, tc := range tests {
		if err := ValidateInput([]byte(tc.in)); err != tc.want {
			t.Fatalf("%s: ValidateInput(%q) = %v, want %v", tc.name, tc.in, err, tc.want)
		}
	}
}

func TestRenderRejectsBareCR(t *testing.T) {
	var out bytes.Buffer
	err := Render(RenderRequest{Reader: strings.NewReader("a|b\r---|---\r1|2\r"), Writer: &out})
	if !errors.Is(err, ErrBareCRLineEndings) {
		t.Fatalf("expected ErrBareCRLineEndings, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty output, got %q", out.String())
	}
}

func TestRenderRejectsBinary(t *testing.T) {
	var out bytes.Buffer
	err := Render(RenderRequest{Reader: bytes.NewReader([]byte{0x00, 0x01, 0x02}), Writer: &out})
	if !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty output, got %q", out.String())
	}
}
