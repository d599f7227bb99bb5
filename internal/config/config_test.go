package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MDPREVIEW_ADDR", "MDPREVIEW_THEME", "MDPREVIEW_ESCAPE_TEXT", "MDPREVIEW_MAX_BODY_BYTES"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
	if cfg.Theme != "default" || cfg.EscapeText {
		t.Fatalf("unexpected render defaults: %+v", cfg)
	}
	if cfg.MaxBodyBytes != 4<<20 {
		t.Fatalf("unexpected max body bytes %d", cfg.MaxBodyBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MDPREVIEW_ADDR", "127.0.0.1:9000")
	t.Setenv("MDPREVIEW_THEME", "nord")
	t.Setenv("MDPREVIEW_ESCAPE_TEXT", "true")
	t.Setenv("MDPREVIEW_READ_TIMEOUT", "3s")
	t.Setenv("MDPREVIEW_MAX_BODY_BYTES", "-1")
	cfg := Load()
	if cfg.Addr != "127.0.0.1:9000" || cfg.Theme != "nord" || !cfg.EscapeText {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.ReadTimeout != 3*time.Second {
		t.Fatalf("unexpected read timeout %v", cfg.ReadTimeout)
	}
	if cfg.MaxBodyBytes != 4<<20 {
		t.Fatalf("non-positive limit should fall back, got %d", cfg.MaxBodyBytes)
	}
}

func TestDecodeOverlaysSetFields(t *testing.T) {
	base := Config{Addr: ":8080", Theme: "default", MaxBodyBytes: 10, ReadTimeout: time.Second, WriteTimeout: time.Second, LogFormat: "json", LogLevel: "info"}
	src := "theme: dracula\nescape_text: true\nwrite_timeout: 5s\ncache_max_entries: 16\n"
	cfg, err := Decode(strings.NewReader(src), base)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Theme != "dracula" || !cfg.EscapeText || cfg.WriteTimeout != 5*time.Second || cfg.CacheMaxEntries != 16 {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	if cfg.Addr != ":8080" || cfg.MaxBodyBytes != 10 {
		t.Fatalf("unset fields changed: %+v", cfg)
	}
}

func TestDecodeEmptyKeepsBase(t *testing.T) {
	base := Load()
	cfg, err := Decode(strings.NewReader(""), base)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg != base {
		t.Fatalf("expected base config, got %+v", cfg)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	if _, err := Decode(strings.NewReader("colour: red\n"), Load()); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdpreview.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9999\"\ncache_path: /tmp/c.db\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path, Load())
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.CachePath != "/tmp/c.db" {
		t.Fatalf("file not applied: %+v", cfg)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), Load()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	good := Config{Theme: "default", CacheMaxEntries: 1, MaxBodyBytes: 1, ReadTimeout: time.Second, WriteTimeout: time.Second, LogFormat: "text", LogLevel: "debug"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
	tests := map[string]func(*Config){
		"theme":  func(c *Config) { c.Theme = "no-such-theme" },
		"limit":  func(c *Config) { c.MaxBodyBytes = 0 },
		"cache":  func(c *Config) { c.CacheMaxEntries = 0 },
		"format": func(c *Config) { c.LogFormat = "xml" },
		"level":  func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range tests {
		cfg := good
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := Config{Theme: "nord", HighlightCSS: "x.css"}
	if n := len(cfg.RenderOptions()); n != 4 {
		t.Fatalf("expected 4 options, got %d", n)
	}
}
