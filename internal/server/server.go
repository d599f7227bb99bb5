// Package server exposes the compiler as an HTTP preview service.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"pkt.systems/mdpreview"
	"pkt.systems/mdpreview/internal/cache"
	"pkt.systems/mdpreview/internal/config"
)

// Server is the HTTP preview service.
type Server struct {
	router chi.Router
	cfg    config.Config
	opts   []mdpreview.RenderOption
	cache  *cache.Store
	css    string
	log    *slog.Logger
}

// New creates the server. store may be nil to disable caching.
func New(cfg config.Config, store *cache.Store, log *slog.Logger) (*Server, error) {
	theme, ok := mdpreview.ThemeByName(cfg.Theme)
	if !ok {
		return nil, fmt.Errorf("server: unknown theme %q", cfg.Theme)
	}
	css, err := mdpreview.HighlightCSS(theme)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		cfg:   cfg,
		opts:  cfg.RenderOptions(),
		cache: store,
		css:   css,
		log:   log,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/highlight.css", s.handleHighlightCSS)

	r.Route("/api", func(r chi.Router) {
		r.Post("/compile", s.handleCompile)
		r.Post("/fragment", s.handleFragment)
		r.Post("/tokens", s.handleTokens)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	io.WriteString(w, s.css)
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	s.serveHTML(w, r, "document", mdpreview.Compile)
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	s.serveHTML(w, r, "fragment", mdpreview.CompileFragment)
}

func (s *Server) serveHTML(w http.ResponseWriter, r *http.Request, kind string, compile func(string, ...mdpreview.RenderOption) string) {
	src, ok := s.readSource(w, r)
	if !ok {
		return
	}
	key := cache.Key(src, kind, s.cfg.Theme,
		strconv.FormatBool(s.cfg.EscapeText),
		strconv.FormatBool(s.cfg.StripFrontMatter),
		s.cfg.HighlightCSS)
	out, hit := s.lookup(key)
	if !hit {
		out = compile(src, s.opts...)
		s.store(key, out)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Cache", cacheStatus(hit))
	io.WriteString(w, out)
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readSource(w, r)
	if !ok {
		return
	}
	if s.cfg.StripFrontMatter {
		src = mdpreview.StripFrontMatter(src)
	}
	tokens := mdpreview.Tokenize(src, mdpreview.BlockRules())
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"count":  len(tokens),
		"tokens": tokens,
	})
}

func (s *Server) readSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return "", false
		}
		jsonError(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	if err := mdpreview.ValidateInput(body); err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return "", false
	}
	return string(body), true
}

func (s *Server) lookup(key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	out, ok, err := s.cache.Get(key)
	if err != nil {
		s.log.Warn("cache lookup failed", "error", err)
		return "", false
	}
	return out, ok
}

func (s *Server) store(key, out string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(key, out); err != nil {
		s.log.Warn("cache store failed", "error", err)
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
