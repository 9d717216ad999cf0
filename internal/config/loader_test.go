package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
app:
  name: checkpoint-web
  env: test
  port: 18080

upstream:
  baseUrl: http://127.0.0.1:9000

logger:
  level: info
  format: json
  env: prod
`
	path := writeTempConfig(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Port != 18080 {
		t.Errorf("app.port = %d, want 18080", cfg.App.Port)
	}
	if cfg.Upstream.BaseURL != "http://127.0.0.1:9000" {
		t.Errorf("upstream.baseUrl = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("logger.level = %q", cfg.Logger.Level)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	yaml := `
upstream:
  baseUrl: http://127.0.0.1:9000
`
	path := writeTempConfig(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Port != 8080 {
		t.Errorf("default app.port = %d, want 8080", cfg.App.Port)
	}
	if cfg.Web.TemplatesGlob != "web/templates/*.tmpl" {
		t.Errorf("default web.templatesGlob = %q", cfg.Web.TemplatesGlob)
	}
}

func TestLoad_MissingUpstreamFails(t *testing.T) {
	path := writeTempConfig(t, "app:\n  port: 8080\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for missing upstream.baseUrl")
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
