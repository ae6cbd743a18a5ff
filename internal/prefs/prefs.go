// Package prefs persists choices made inside the console UI: the chrome theme
// and the timestamp toggle. They live in ~/.config/gammaconsole/prefs.toml,
// apart from the hand-edited config file.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/five82/gammaconsole/internal/config"
)

// Prefs holds user preferences toggled from the UI.
type Prefs struct {
	Theme         string `toml:"theme"`
	FullTimestamp *bool  `toml:"full_timestamp,omitempty"` // nil defers to config
}

const (
	defaultPrefsPath = "~/.config/gammaconsole/prefs.toml"
	defaultTheme     = "Paper"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used before anything was saved.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from path on the OS filesystem. See LoadFs.
func Load(path string) (Prefs, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs reads preferences from path, or the default path when empty. A
// missing file yields Defaults and no error. Any other failure also yields
// Defaults, together with the error so the caller can report it.
func LoadFs(fs afero.Fs, path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), err
	}

	data, err := afero.ReadFile(fs, resolved)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), fmt.Errorf("parse prefs %s: %w", resolved, err)
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	return p, nil
}

// Save writes preferences to path on the OS filesystem. See SaveFs.
func Save(path string, p Prefs) error {
	return SaveFs(afero.NewOsFs(), path, p)
}

// SaveFs writes preferences to path, creating directories as needed.
func SaveFs(fs afero.Fs, path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := afero.WriteFile(fs, resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve prefs path: %w", err)
	}
	return resolved, nil
}
