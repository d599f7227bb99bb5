// Package config loads settings for the mdpreview command and service from
// the environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"pkt.systems/mdpreview"
)

type Config struct {
	Addr string

	// Rendering
	Theme            string
	EscapeText       bool
	StripFrontMatter bool
	HighlightCSS     string

	// Service
	CachePath       string
	CacheMaxEntries int
	MaxBodyBytes    int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Logging
	LogFormat string
	LogLevel  string
}

// fileConfig mirrors Config for YAML decoding; nil fields keep the value
// already loaded.
type fileConfig struct {
	Addr             *string        `yaml:"addr"`
	Theme            *string        `yaml:"theme"`
	EscapeText       *bool          `yaml:"escape_text"`
	StripFrontMatter *bool          `yaml:"strip_front_matter"`
	HighlightCSS     *string        `yaml:"highlight_css"`
	CachePath        *string        `yaml:"cache_path"`
	CacheMaxEntries  *int           `yaml:"cache_max_entries"`
	MaxBodyBytes     *int64         `yaml:"max_body_bytes"`
	ReadTimeout      *time.Duration `yaml:"read_timeout"`
	WriteTimeout     *time.Duration `yaml:"write_timeout"`
	LogFormat        *string        `yaml:"log_format"`
	LogLevel         *string        `yaml:"log_level"`
}

func Load() Config {
	cfg := Config{
		Addr: envOr("MDPREVIEW_ADDR", ":8080"),

		Theme:            envOr("MDPREVIEW_THEME", "default"),
		EscapeText:       envBool("MDPREVIEW_ESCAPE_TEXT", false),
		StripFrontMatter: envBool("MDPREVIEW_STRIP_FRONT_MATTER", false),
		HighlightCSS:     envOr("MDPREVIEW_HIGHLIGHT_CSS", mdpreview.DefaultHighlightStylesheet),

		CachePath:       os.Getenv("MDPREVIEW_CACHE"),
		CacheMaxEntries: int(envInt64("MDPREVIEW_CACHE_MAX_ENTRIES", 1024)),
		MaxBodyBytes:    envInt64("MDPREVIEW_MAX_BODY_BYTES", 4<<20),
		ReadTimeout:     envDuration("MDPREVIEW_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    envDuration("MDPREVIEW_WRITE_TIMEOUT", 30*time.Second),

		LogFormat: envOr("MDPREVIEW_LOG_FORMAT", "json"),
		LogLevel:  envOr("MDPREVIEW_LOG_LEVEL", "info"),
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 4 << 20
	}
	if cfg.CacheMaxEntries <= 0 {
		cfg.CacheMaxEntries = 1024
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}

	return cfg
}

// LoadFile overlays the YAML file at path onto base. Unknown keys are an
// error.
func LoadFile(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Decode(f, base)
}

// Decode overlays YAML read from r onto base.
func Decode(r io.Reader, base Config) (Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("config: decode: %w", err)
	}
	cfg := base
	setString(&cfg.Addr, fc.Addr)
	setString(&cfg.Theme, fc.Theme)
	setBool(&cfg.EscapeText, fc.EscapeText)
	setBool(&cfg.StripFrontMatter, fc.StripFrontMatter)
	setString(&cfg.HighlightCSS, fc.HighlightCSS)
	setString(&cfg.CachePath, fc.CachePath)
	if fc.CacheMaxEntries != nil {
		cfg.CacheMaxEntries = *fc.CacheMaxEntries
	}
	if fc.MaxBodyBytes != nil {
		cfg.MaxBodyBytes = *fc.MaxBodyBytes
	}
	if fc.ReadTimeout != nil {
		cfg.ReadTimeout = *fc.ReadTimeout
	}
	if fc.WriteTimeout != nil {
		cfg.WriteTimeout = *fc.WriteTimeout
	}
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogLevel, fc.LogLevel)
	return cfg, nil
}

func (c Config) Validate() error {
	if _, ok := mdpreview.ThemeByName(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.CacheMaxEntries <= 0 {
		return fmt.Errorf("cache max entries must be positive, got %d", c.CacheMaxEntries)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("log format must be json or text, got %q", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// RenderOptions returns the rendering options the configuration selects.
func (c Config) RenderOptions() []mdpreview.RenderOption {
	theme, ok := mdpreview.ThemeByName(c.Theme)
	if !ok {
		theme = mdpreview.DefaultTheme()
	}
	return []mdpreview.RenderOption{
		mdpreview.WithTheme(theme),
		mdpreview.WithEscapeText(c.EscapeText),
		mdpreview.WithStripFrontMatter(c.StripFrontMatter),
		mdpreview.WithHighlightStylesheet(c.HighlightCSS),
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
