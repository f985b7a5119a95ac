package opconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetLogDir() != "/var/log/rsmprobe" {
		t.Errorf("expected the default log dir, got %q", cfg.GetLogDir())
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("log_dir: /tmp/logs\nprobe:\n  name: probe1\n  max_concurrency: 8\ndns:\n  timeout: 3\n  retries: 2\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetLogDir() != "/tmp/logs" {
		t.Errorf("expected /tmp/logs, got %q", cfg.GetLogDir())
	}
	if cfg.GetProbeName() != "probe1" {
		t.Errorf("expected probe1, got %q", cfg.GetProbeName())
	}
	if cfg.GetMaxConcurrency() != 8 {
		t.Errorf("expected 8, got %d", cfg.GetMaxConcurrency())
	}
	if cfg.GetDNSTimeout() != 3 || cfg.GetDNSRetries() != 2 {
		t.Errorf("expected dns timeout=3 retries=2, got %d/%d", cfg.GetDNSTimeout(), cfg.GetDNSRetries())
	}
}

func TestApplyIntOverride(t *testing.T) {
	target := 0
	ApplyIntOverride(true, 5, &target, 10)
	if target != 5 {
		t.Errorf("expected a changed positive flag to win, got %d", target)
	}

	target = 0
	ApplyIntOverride(false, 5, &target, 10)
	if target != 10 {
		t.Errorf("expected the default when the flag was not changed, got %d", target)
	}
}

func TestApplyStringOverride(t *testing.T) {
	target := ""
	ApplyStringOverride("explicit", &target, "default")
	if target != "explicit" {
		t.Errorf("expected the explicit CLI value to win, got %q", target)
	}

	target = ""
	ApplyStringOverride("", &target, "default")
	if target != "default" {
		t.Errorf("expected the default when no CLI value was given, got %q", target)
	}
}
