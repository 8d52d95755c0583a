package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Index.Fields) == 0 {
		t.Fatal("default config has no index fields")
	}
	if cfg.Search.Limit <= 0 {
		t.Fatalf("default search limit = %d", cfg.Search.Limit)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("default logging level = %q", cfg.Logging.Level)
	}
	if cfg.Metrics.Enabled {
		t.Fatal("metrics enabled by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
index:
  fields: [title, tags, author]
search:
  limit: 3
logging:
  level: debug
  format: json
metrics:
  enabled: true
  port: 9191
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Index.Fields) != 3 || cfg.Index.Fields[1] != "tags" {
		t.Fatalf("fields = %v", cfg.Index.Fields)
	}
	if cfg.Search.Limit != 3 || cfg.Logging.Level != "debug" || !cfg.Metrics.Enabled || cfg.Metrics.Port != 9191 {
		t.Fatalf("config not applied: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GIANNA_INDEX_FIELDS", "headline,summary")
	t.Setenv("GIANNA_SEARCH_LIMIT", "42")
	t.Setenv("GIANNA_LOGGING_LEVEL", "warn")
	t.Setenv("GIANNA_METRICS_ENABLED", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Index.Fields) != 2 || cfg.Index.Fields[0] != "headline" {
		t.Fatalf("fields = %v", cfg.Index.Fields)
	}
	if cfg.Search.Limit != 42 || cfg.Logging.Level != "warn" || !cfg.Metrics.Enabled {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsEmptyFieldList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("index:\n  fields: []\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for empty field list")
	}
}
