package mdpreview

import "strings"

// StripFrontMatter removes a leading front matter block delimited by ---, +++
// or ;;; lines. The block is only removed when its first line looks like
// metadata (key: value, key = value, or a JSON/TOML opener) and a closing
// delimiter exists; otherwise src is returned unchanged.
func StripFrontMatter(src string) string {
	open, next := cutLine(src, 0)
	delim, ok := frontMatterDelimiter(open)
	if !ok {
		return src
	}
	first, next := cutLine(src, next)
	if !frontMatterMetadataLikely(first) {
		return src
	}
	for idx := next; idx < len(src); {
		line, after := cutLine(src, idx)
		if strings.TrimSpace(line) == delim {
			return src[after:]
		}
		idx = after
	}
	return src
}

// cutLine returns the line starting at start without its line ending, and the
// offset just past it.
func cutLine(src string, start int) (string, int) {
	if start >= len(src) {
		return "", len(src)
	}
	i := strings.IndexByte(src[start:], '\n')
	if i < 0 {
		return strings.TrimSuffix(src[start:], "\r"), len(src)
	}
	return strings.TrimSuffix(src[start:start+i], "\r"), start + i + 1
}

func frontMatterDelimiter(line string) (string, bool) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
	switch trimmed {
	case "---", "+++", ";;;":
		return trimmed, true
	}
	return "", false
}

func frontMatterMetadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.Contains(trimmed, ":") || strings.Contains(trimmed, "=")
}
