package main

import (
	"context"
	"testing"
	"time"

	"github.com/five82/gammaconsole/internal/app"
)

func execute(t *testing.T, args ...string) (app.Options, error) {
	t.Helper()
	var got app.Options
	cmd := newRootCmd(func(_ context.Context, opts app.Options) error {
		got = opts
		return nil
	})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return got, err
}

func TestRootCmdDefaults(t *testing.T) {
	opts, err := execute(t)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if opts.Backfill != -1 || opts.PollEvery != 0 || opts.Demo || len(opts.Follow) != 0 {
		t.Fatalf("defaults = %#v", opts)
	}
}

func TestRootCmdFlags(t *testing.T) {
	opts, err := execute(t,
		"--follow", "/var/log/a.log",
		"-f", "/var/log/b.log,/var/log/c.log",
		"--backfill", "50",
		"--poll", "250ms",
		"--demo",
		"--save-dir", "/tmp/out",
		"--config", "/etc/gc.toml",
		"--prefs", "/tmp/prefs.toml",
	)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(opts.Follow) != 3 || opts.Follow[2] != "/var/log/c.log" {
		t.Fatalf("Follow = %v", opts.Follow)
	}
	if opts.Backfill != 50 || opts.PollEvery != 250*time.Millisecond || !opts.Demo {
		t.Fatalf("opts = %#v", opts)
	}
	if opts.SaveDir != "/tmp/out" || opts.ConfigPath != "/etc/gc.toml" || opts.PrefsPath != "/tmp/prefs.toml" {
		t.Fatalf("paths = %#v", opts)
	}
}

func TestRootCmdRejectsBadInput(t *testing.T) {
	if _, err := execute(t, "extra"); err == nil {
		t.Fatalf("positional arguments should be rejected")
	}
	if _, err := execute(t, "--poll", "-1s"); err == nil {
		t.Fatalf("negative poll should be rejected")
	}
}
