package console

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds the seven colors the style header is built from.
type Palette struct {
	Background colorful.Color
	Text       colorful.Color
	Border     colorful.Color
	Debug      colorful.Color
	Info       colorful.Color
	Warning    colorful.Color
	Error      colorful.Color
}

// DefaultPalette returns the light palette the console starts with.
func DefaultPalette() Palette {
	return Palette{
		Background: mustHex("#ffffff"),
		Text:       mustHex("#000000"),
		Border:     mustHex("#acacac"),
		Debug:      mustHex("#e1e1e1"),
		Info:       mustHex("#d7ffd7"),
		Warning:    mustHex("#ffffd7"),
		Error:      mustHex("#ffd7d7"),
	}
}

// ForLevel returns the row background for a level. Verbose rows use the console background.
func (p Palette) ForLevel(l Level) colorful.Color {
	switch l {
	case LevelDebug:
		return p.Debug
	case LevelInfo:
		return p.Info
	case LevelWarning:
		return p.Warning
	case LevelError:
		return p.Error
	default:
		return p.Background
	}
}

// PaletteSpec is the hex-string form of a Palette used by config and prefs files.
// Empty fields keep the base color.
type PaletteSpec struct {
	Background string `toml:"background"`
	Text       string `toml:"text"`
	Border     string `toml:"border"`
	Debug      string `toml:"debug"`
	Info       string `toml:"info"`
	Warning    string `toml:"warning"`
	Error      string `toml:"error"`
}

// Apply overlays the non-empty colors of spec onto base.
func (s PaletteSpec) Apply(base Palette) (Palette, error) {
	out := base
	fields := []struct {
		name string
		raw  string
		dst  *colorful.Color
	}{
		{"background", s.Background, &out.Background},
		{"text", s.Text, &out.Text},
		{"border", s.Border, &out.Border},
		{"debug", s.Debug, &out.Debug},
		{"info", s.Info, &out.Info},
		{"warning", s.Warning, &out.Warning},
		{"error", s.Error, &out.Error},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			continue
		}
		c, err := ParseColor(raw)
		if err != nil {
			return base, fmt.Errorf("palette %s: %w", f.name, err)
		}
		*f.dst = c
	}
	return out, nil
}

// ParseColor parses "#rrggbb" (the leading '#' is optional).
func ParseColor(raw string) (colorful.Color, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "#") {
		raw = "#" + raw
	}
	return colorful.Hex(raw)
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Role names one of the seven palette colors.
type Role int

const (
	RoleBackground Role = iota
	RoleText
	RoleBorder
	RoleDebug
	RoleInfo
	RoleWarning
	RoleError
)

func (p *Palette) slot(r Role) *colorful.Color {
	switch r {
	case RoleBackground:
		return &p.Background
	case RoleText:
		return &p.Text
	case RoleBorder:
		return &p.Border
	case RoleDebug:
		return &p.Debug
	case RoleInfo:
		return &p.Info
	case RoleWarning:
		return &p.Warning
	case RoleError:
		return &p.Error
	}
	return nil
}

// Color returns a single palette color; unknown roles yield black.
func (c *Console) Color(r Role) colorful.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slot := c.palette.slot(r); slot != nil {
		return *slot
	}
	return colorful.Color{}
}

// SetColor replaces a single palette color. Like SetPalette it only affects the
// style header written by the next reset.
func (c *Console) SetColor(r Role, col colorful.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slot := c.palette.slot(r); slot != nil {
		*slot = col
	}
}
