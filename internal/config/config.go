package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/gammaconsole/internal/console"
)

// Config captures the console and feeder settings.
type Config struct {
	FullTimestamp bool
	CallerWidth   int
	FontFamily    string
	EscapeMarkup  bool
	SaveDir       string
	DiagnosticLog string // empty disables diagnostics
	Backfill      int
	PollInterval  time.Duration
	Follow        []string
	Palette       console.Palette
}

const (
	defaultConfigPath   = "~/.config/gammaconsole/config.toml"
	defaultSaveDir      = "."
	defaultFontFamily   = "monospace"
	defaultBackfill     = 200
	defaultPollInterval = 500 * time.Millisecond
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		CallerWidth:  console.DefaultCallerWidth,
		FontFamily:   defaultFontFamily,
		SaveDir:      defaultSaveDir,
		Backfill:     defaultBackfill,
		PollInterval: defaultPollInterval,
		Palette:      console.DefaultPalette(),
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		FullTimestamp bool                `toml:"full_timestamp"`
		CallerWidth   int                 `toml:"caller_width"`
		FontFamily    string              `toml:"font_family"`
		EscapeMarkup  bool                `toml:"escape_markup"`
		SaveDir       string              `toml:"save_dir"`
		DiagnosticLog string              `toml:"diagnostic_log"`
		Backfill      *int                `toml:"backfill"`
		PollMillis    int                 `toml:"poll_ms"`
		Follow        []string            `toml:"follow"`
		Palette       console.PaletteSpec `toml:"palette"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.FullTimestamp = raw.FullTimestamp
	cfg.EscapeMarkup = raw.EscapeMarkup
	if raw.CallerWidth > 0 {
		cfg.CallerWidth = raw.CallerWidth
	}
	if font := strings.TrimSpace(raw.FontFamily); font != "" {
		cfg.FontFamily = font
	}
	if dir := strings.TrimSpace(raw.SaveDir); dir != "" {
		cfg.SaveDir = expandOrRaw(dir)
	}
	if diag := strings.TrimSpace(raw.DiagnosticLog); diag != "" {
		cfg.DiagnosticLog = expandOrRaw(diag)
	}
	if raw.Backfill != nil && *raw.Backfill >= 0 {
		cfg.Backfill = *raw.Backfill
	}
	if raw.PollMillis > 0 {
		cfg.PollInterval = time.Duration(raw.PollMillis) * time.Millisecond
	}
	for _, p := range raw.Follow {
		if strings.TrimSpace(p) == "" {
			continue
		}
		cfg.Follow = append(cfg.Follow, expandOrRaw(p))
	}

	palette, err := raw.Palette.Apply(cfg.Palette)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Palette = palette

	return cfg, nil
}

// ExpandPath resolves a leading ~ and makes the path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// expandOrRaw expands path, keeping it unchanged when expansion fails.
func expandOrRaw(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
