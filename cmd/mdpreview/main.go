package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdpreview"
	"pkt.systems/mdpreview/internal/cache"
	"pkt.systems/mdpreview/internal/config"
	"pkt.systems/mdpreview/internal/server"
	"pkt.systems/version"
)

const defaultWidth = 100

func init() {
	version.SetDefaultModule("pkt.systems/mdpreview")
}

type options struct {
	themeName        string
	listThemes       bool
	escapeText       bool
	stripFrontMatter bool
	highlightCSS     string
	printCSS         bool
	fragment         bool
	dumpTokens       bool
	dumpTree         bool
	widthFlag        int
	serve            bool
	addr             string
	configPath       string
	outPath          string
	showVersion      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opt options
	flags := pflag.NewFlagSet("mdpreview", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opt.themeName, "theme", "t", "default", "Theme name")
	flags.BoolVar(&opt.listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&opt.escapeText, "escape-text", false, "HTML-escape text content, not only attributes")
	flags.BoolVar(&opt.stripFrontMatter, "strip-front-matter", false, "Drop a leading YAML/TOML/JSON front matter block")
	flags.StringVar(&opt.highlightCSS, "highlight-css", mdpreview.DefaultHighlightStylesheet, "Href of the highlighting stylesheet")
	flags.BoolVar(&opt.printCSS, "print-css", false, "Print the highlighting stylesheet for the theme and exit")
	flags.BoolVar(&opt.fragment, "fragment", false, "Emit the body fragment without the document wrapper")
	flags.BoolVar(&opt.dumpTokens, "tokens", false, "Dump the token stream instead of HTML")
	flags.BoolVar(&opt.dumpTree, "tree", false, "Dump the document tree instead of HTML")
	flags.IntVarP(&opt.widthFlag, "width", "w", 0, "Dump width (0 uses terminal width if available)")
	flags.BoolVar(&opt.serve, "serve", false, "Run the HTTP preview service")
	flags.StringVar(&opt.addr, "addr", "", "Listen address for --serve")
	flags.StringVarP(&opt.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&opt.outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&opt.showVersion, "version", "v", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdpreview [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nIf no input is provided, markdown is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opt.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if opt.listThemes {
		printThemes(stdout)
		return 0
	}

	cfg, err := loadConfig(flags, opt)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "%v\n\n", err)
		printThemes(stderr)
		return 2
	}

	if opt.serve {
		if err := serve(cfg, stderr); err != nil {
			fmt.Fprintf(stderr, "serve: %v\n", err)
			return 1
		}
		return 0
	}

	writer, closeOut, err := resolveOutput(opt.outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	theme, _ := mdpreview.ThemeByName(cfg.Theme)
	if opt.printCSS {
		css, err := mdpreview.HighlightCSS(theme)
		if err != nil {
			fmt.Fprintf(stderr, "highlight css: %v\n", err)
			return 1
		}
		io.WriteString(writer, css)
		return 0
	}

	reader, closer, err := openInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	renderOpts := cfg.RenderOptions()
	switch {
	case opt.dumpTokens || opt.dumpTree || opt.fragment:
		src, err := readSource(reader)
		if err != nil {
			fmt.Fprintf(stderr, "read input: %v\n", err)
			return 1
		}
		if cfg.StripFrontMatter {
			src = mdpreview.StripFrontMatter(src)
		}
		if err := writeDebug(writer, src, opt, renderOpts); err != nil {
			fmt.Fprintf(stderr, "render: %v\n", err)
			return 1
		}
	case isSingleURL(flags.Args()):
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := mdpreview.HTTPRender(ctx, mdpreview.HTTPRenderRequest{
			URL:      strings.TrimSpace(flags.Arg(0)),
			Writer:   writer,
			Theme:    theme,
			Options:  renderOpts,
			MaxBytes: cfg.MaxBodyBytes,
		}); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
	default:
		if err := mdpreview.Render(mdpreview.RenderRequest{
			Reader:  reader,
			Writer:  writer,
			Theme:   theme,
			Options: renderOpts,
		}); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
	}
	return 0
}

// loadConfig layers the environment, the optional YAML file and explicitly
// set flags, in that order.
func loadConfig(flags *pflag.FlagSet, opt options) (config.Config, error) {
	cfg := config.Load()
	if opt.configPath != "" {
		var err error
		cfg, err = config.LoadFile(normalizePath(opt.configPath), cfg)
		if err != nil {
			return cfg, err
		}
	}
	if flags.Changed("theme") {
		cfg.Theme = opt.themeName
	}
	if flags.Changed("escape-text") {
		cfg.EscapeText = opt.escapeText
	}
	if flags.Changed("strip-front-matter") {
		cfg.StripFrontMatter = opt.stripFrontMatter
	}
	if flags.Changed("highlight-css") {
		cfg.HighlightCSS = opt.highlightCSS
	}
	if flags.Changed("addr") {
		cfg.Addr = opt.addr
	}
	return cfg, nil
}

func readSource(r io.Reader) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if err := mdpreview.ValidateInput(src); err != nil {
		return "", err
	}
	return string(src), nil
}

func writeDebug(w io.Writer, src string, opt options, renderOpts []mdpreview.RenderOption) error {
	width := resolveWidth(opt.widthFlag)
	tokens := mdpreview.Tokenize(src, mdpreview.BlockRules())
	switch {
	case opt.dumpTokens:
		return mdpreview.DumpTokens(w, tokens, width)
	case opt.dumpTree:
		return mdpreview.DumpTree(w, mdpreview.Build(tokens, nil), width)
	}
	_, err := io.WriteString(w, mdpreview.HTMLFragment(mdpreview.Build(tokens, nil), renderOpts...))
	return err
}

func serve(cfg config.Config, stderr io.Writer) error {
	log := newLogger(cfg, stderr)

	var store *cache.Store
	if cfg.CachePath != "" {
		var err error
		store, err = cache.Open(normalizePath(cfg.CachePath), cfg.CacheMaxEntries)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	srv, err := server.New(cfg, store, log)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting mdpreview", "addr", cfg.Addr, "theme", cfg.Theme, "cache", cfg.CachePath != "")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(w, handlerOpts))
	}
	return slog.New(slog.NewJSONHandler(w, handlerOpts))
}

func printThemes(w io.Writer) {
	for _, name := range mdpreview.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		if isTerminal(os.Stdin) {
			fmt.Fprintln(os.Stderr, "reading markdown from terminal; end with Ctrl-D")
		}
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func isSingleURL(args []string) bool {
	if len(args) != 1 {
		return false
	}
	u, err := url.Parse(strings.TrimSpace(args[0]))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true
	}
	return false
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
