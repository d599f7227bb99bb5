package mdpreview

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
	// ErrBareCRLineEndings reports input whose lines end in a lone carriage
	// return. Block rules only recognize LF and CRLF, so such a file would
	// collapse into a single paragraph.
	ErrBareCRLineEndings = errors.New("input uses bare CR line endings")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
	// a couple of stray CRs in otherwise LF text are tolerated
	maxBareCR = 2
)

type inputStats struct {
	total   int
	control int
	lf      int
	bareCR  int
}

// ValidateInput rejects input the block tokenizer cannot sensibly treat as
// markdown: invalid UTF-8, NUL bytes or a high share of control bytes, and
// files that separate lines with bare carriage returns.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	var st inputStats
	for i, b := range src {
		st.total++
		switch {
		case b == 0x00:
			return ErrBinaryInput
		case b == '\n':
			st.lf++
		case b == '\r':
			if i+1 >= len(src) || src[i+1] != '\n' {
				st.bareCR++
			}
		case isControlByte(b):
			st.control++
		}
	}
	if st.total >= minBinarySample && st.control*100 >= st.total*maxControlPct {
		return ErrBinaryInput
	}
	if st.bareCR > maxBareCR && st.bareCR > st.lf {
		return ErrBareCRLineEndings
	}
	return nil
}

func isControlByte(b byte) bool {
	switch {
	case b < 0x09:
		return true
	case b > 0x0D && b < 0x20:
		return true
	case b == 0x7F:
		return true
	}
	return false
}
