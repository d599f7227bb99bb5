package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/mdpreview"
)

// goldenModes pairs a golden file suffix with the options it is rendered with.
var goldenModes = []struct {
	suffix string
	opts   []mdpreview.RenderOption
}{
	{suffix: ".golden"},
	{suffix: ".escaped.golden", opts: []mdpreview.RenderOption{mdpreview.WithEscapeText(true)}},
}

func main() {
	root := "testdata"
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no markdown files found under %s", root)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		if err := mdpreview.ValidateInput(src); err != nil {
			fatalf("validate %s: %v", path, err)
		}
		for _, mode := range goldenModes {
			out := mdpreview.CompileFragment(string(src), mode.opts...)
			goldenPath := goldenPath(root, path, mode.suffix)
			if err := os.WriteFile(goldenPath, []byte(out), 0o644); err != nil {
				fatalf("write %s: %v", goldenPath, err)
			}
			fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
		}
	}
}

func goldenPath(root string, mdPath string, suffix string) string {
	rel, err := filepath.Rel(root, mdPath)
	if err != nil {
		rel = mdPath
	}
	name := strings.TrimSuffix(rel, ".md")
	name = strings.ReplaceAll(filepath.ToSlash(name), "/", "__")
	return filepath.Join(root, name+suffix)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
