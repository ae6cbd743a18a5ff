package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/gammaconsole/internal/config"
)

func TestApplyOverrides(t *testing.T) {
	base := config.Default()
	base.Follow = []string{"/var/log/a.log"}

	cfg, err := applyOverrides(base, Options{
		Follow:    []string{"/var/log/b.log"},
		Backfill:  0,
		PollEvery: 2 * time.Second,
		SaveDir:   "/tmp/saved",
	})
	if err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
	if len(cfg.Follow) != 2 || cfg.Follow[1] != "/var/log/b.log" {
		t.Fatalf("Follow = %v", cfg.Follow)
	}
	if len(base.Follow) != 1 {
		t.Fatalf("base config mutated: %v", base.Follow)
	}
	if cfg.Backfill != 0 || cfg.PollInterval != 2*time.Second || cfg.SaveDir != "/tmp/saved" {
		t.Fatalf("cfg = %#v", cfg)
	}

	cfg, err = applyOverrides(base, Options{Backfill: -1})
	if err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
	if cfg.Backfill != base.Backfill || cfg.PollInterval != base.PollInterval || cfg.SaveDir != base.SaveDir {
		t.Fatalf("unset overrides changed config: %#v", cfg)
	}
}

func TestApplyOverridesExpandsFollowPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := applyOverrides(config.Default(), Options{Follow: []string{"~/logs/app.log", "rel.log"}, Backfill: -1})
	if err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
	if cfg.Follow[0] != filepath.Join(home, "logs", "app.log") {
		t.Fatalf("Follow[0] = %q, want it under %s", cfg.Follow[0], home)
	}
	if !filepath.IsAbs(cfg.Follow[1]) || filepath.Base(cfg.Follow[1]) != "rel.log" {
		t.Fatalf("Follow[1] = %q, want an absolute path", cfg.Follow[1])
	}
}

func TestDiagnosticLogger(t *testing.T) {
	logger, closeLog, err := newDiagnosticLogger("")
	if err != nil || logger == nil {
		t.Fatalf("nop logger: %v", err)
	}
	closeLog()

	path := filepath.Join(t.TempDir(), "diag.log")
	logger, closeLog, err = newDiagnosticLogger(path)
	if err != nil {
		t.Fatalf("newDiagnosticLogger: %v", err)
	}
	logger.Info("hello diagnostics")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello diagnostics"`) {
		t.Fatalf("diagnostic log = %s", data)
	}

	if _, _, err := newDiagnosticLogger(filepath.Join(path, "nested")); err == nil {
		t.Fatalf("expected error for unusable path")
	}
}
