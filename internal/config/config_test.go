package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	// run from an empty dir so no stray workshop.yaml is picked up
	wd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	c, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", c.LogLevel)
	}
	if c.Entrez.QPS != 3 {
		t.Fatalf("expected default qps 3, got %d", c.Entrez.QPS)
	}
	if c.History.Store != "json" {
		t.Fatalf("expected default history store json, got %q", c.History.Store)
	}
}

func TestLoadFile(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "workshop.yaml")
	content := `log-level: debug
entrez:
  qps: 10
  email: student@example.org
history:
  store: sqlite
  path: hist.db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.LogLevel != "debug" || c.Entrez.QPS != 10 || c.Entrez.Email != "student@example.org" {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.History.Store != "sqlite" || c.History.Path != "hist.db" {
		t.Fatalf("history config not applied: %+v", c.History)
	}
	// defaults still fill unset keys
	if c.Entrez.CacheTTLSecs != int64(7*24*3600) {
		t.Fatalf("expected default cache ttl, got %d", c.Entrez.CacheTTLSecs)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	resetViper(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
