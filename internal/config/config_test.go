package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
filesystem:
  allowed_dirs:
    - path: ~/Documents
      permissions: [read, write]
    - path: /tmp/shared
      permissions: [read]
  security_log_dir: ~/.localtoolkit/logs
applescript:
  default_timeout_seconds: 45
debug: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "localtoolkit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExplicitPath(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Filesystem.AllowedDirs) != 2 {
		t.Fatalf("allowed_dirs = %d, want 2", len(cfg.Filesystem.AllowedDirs))
	}
	first := cfg.Filesystem.AllowedDirs[0]
	if first.Path != "~/Documents" || len(first.Permissions) != 2 {
		t.Errorf("first dir = %+v", first)
	}
	if cfg.Filesystem.SecurityLogDir != "~/.localtoolkit/logs" {
		t.Errorf("security_log_dir = %q", cfg.Filesystem.SecurityLogDir)
	}
	if cfg.DefaultTimeout() != 45*time.Second {
		t.Errorf("timeout = %s", cfg.DefaultTimeout())
	}
	if !cfg.Debug {
		t.Error("debug not set")
	}
}

func TestLoadExplicitMissingFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoadEnvPath(t *testing.T) {
	t.Setenv(EnvConfigPath, writeConfig(t, sampleYAML))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppleScript.DefaultTimeoutSeconds != 45 {
		t.Errorf("timeout seconds = %d", cfg.AppleScript.DefaultTimeoutSeconds)
	}
}

func TestLoadEnvPathMissingFallsBack(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "nope.yaml"))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultTimeout() != 30*time.Second {
		t.Errorf("timeout = %s, want default", cfg.DefaultTimeout())
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Filesystem.AllowedDirs) != 0 {
		t.Errorf("expected no allowed dirs by default")
	}
	if cfg.DefaultTimeout() != 30*time.Second {
		t.Errorf("timeout = %s", cfg.DefaultTimeout())
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "filesystem: [not: a: map")); err == nil {
		t.Error("expected parse error")
	}
}
