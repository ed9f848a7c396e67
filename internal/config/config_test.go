package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Keywords, DefaultKeywords) {
		t.Fatalf("Keywords = %v, want %v", cfg.Keywords, DefaultKeywords)
	}
	if cfg.Limit != 100 {
		t.Fatalf("Limit = %d, want 100", cfg.Limit)
	}
	if cfg.OutputDir != defaultOutputDir {
		t.Fatalf("OutputDir = %q, want %q", cfg.OutputDir, defaultOutputDir)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("RequestTimeout = %s, want 10s", cfg.RequestTimeout)
	}
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	t.Setenv("TREND_SCOUT_KEYWORDS", "LLM, machine learning ,,Nvidia")
	t.Setenv("TREND_SCOUT_OUTPUT_DIR", "/tmp/ideas")
	t.Setenv("TREND_SCOUT_LIMIT", "30")
	t.Setenv("TREND_SCOUT_HN_BASE_URL", "http://127.0.0.1:9999/v0/")
	t.Setenv("APP_PORT", "1234")
	t.Setenv("APP_BASIC_USER", "user")
	t.Setenv("APP_BASIC_PASS", "pass")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := []string{"LLM", "machine learning", "Nvidia"}
	if !reflect.DeepEqual(cfg.Keywords, want) {
		t.Fatalf("Keywords = %q, want %q", cfg.Keywords, want)
	}
	if cfg.OutputDir != "/tmp/ideas" || cfg.Limit != 30 {
		t.Fatalf("OutputDir/Limit not loaded correctly: %+v", cfg)
	}
	if cfg.HNBaseURL != "http://127.0.0.1:9999/v0" {
		t.Fatalf("HNBaseURL = %q, trailing slash should be trimmed", cfg.HNBaseURL)
	}
	if cfg.AppPort != "1234" {
		t.Fatalf("AppPort = %q, want %q", cfg.AppPort, "1234")
	}
	if cfg.BasicAuthUser != "user" || cfg.BasicAuthPass != "pass" {
		t.Fatalf("BasicAuthUser/Pass not loaded correctly: %+v", cfg)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scout.yaml")
	content := `keywords:
  - Rust
  - WebAssembly
output_dir: notes/ideas
concurrency: 1
request_timeout: 3s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	if !reflect.DeepEqual(cfg.Keywords, []string{"Rust", "WebAssembly"}) {
		t.Fatalf("Keywords = %v", cfg.Keywords)
	}
	if cfg.OutputDir != "notes/ideas" || cfg.Concurrency != 1 || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	// 未在文件中出现的键保持默认值
	if cfg.Limit != 100 {
		t.Fatalf("Limit = %d, want default 100", cfg.Limit)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Keywords:       []string{"AI"},
		OutputDir:      "out",
		Limit:          1,
		Concurrency:    1,
		RequestTimeout: time.Second,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := map[string]func(c *Config){
		"no keywords":      func(c *Config) { c.Keywords = nil },
		"blank output dir": func(c *Config) { c.OutputDir = "  " },
		"zero limit":       func(c *Config) { c.Limit = 0 },
		"zero concurrency": func(c *Config) { c.Concurrency = 0 },
		"zero timeout":     func(c *Config) { c.RequestTimeout = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
