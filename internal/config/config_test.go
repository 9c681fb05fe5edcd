package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.QueueSize != 100 || cfg.Workers != 5 {
		t.Errorf("QueueSize = %d, Workers = %d, want 100 and 5", cfg.QueueSize, cfg.Workers)
	}
	if cfg.Corrective.Enabled {
		t.Error("Corrective.Enabled = true, want false by default")
	}
	if cfg.Corrective.Model == "" {
		t.Error("Corrective.Model is empty, want a default model")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: "9090"
gcs_bucket: statements
log_level: debug
workers: 2
corrective:
  enabled: true
  model: gemini-2.5-pro
  timeout_seconds: 10
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.GCSBucket != "statements" {
		t.Errorf("GCSBucket = %q, want statements", cfg.GCSBucket)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if !cfg.Corrective.Enabled || cfg.Corrective.Model != "gemini-2.5-pro" {
		t.Errorf("Corrective = %+v, want enabled with gemini-2.5-pro", cfg.Corrective)
	}

	opts := cfg.CorrectiveOptions()
	if opts.Timeout != 10*time.Second {
		t.Errorf("CorrectiveOptions().Timeout = %v, want 10s", opts.Timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"9090\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "7070")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("LLM_ENABLED", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("Port = %q, want env override 7070", cfg.Port)
	}
	if cfg.Corrective.APIKey != "test-key" || !cfg.Corrective.Enabled {
		t.Errorf("Corrective = %+v, want enabled with test-key", cfg.Corrective)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() on missing file error = nil, want error")
	}
}
