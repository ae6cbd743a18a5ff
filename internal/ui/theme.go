package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gammaconsole/internal/console"
)

// Theme defines the chrome colors of the console window and a matching entry
// palette for the console document.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and status bar
	FocusBg    string // Pressed/hovered buttons

	// Border colors
	Border string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// Palette is applied to the console when the theme is selected.
	Palette console.PaletteSpec
}

// ConsolePalette resolves the theme's entry palette over the default one.
func (t Theme) ConsolePalette() console.Palette {
	p, err := t.Palette.Apply(console.DefaultPalette())
	if err != nil {
		return console.DefaultPalette()
	}
	return p
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Button: lipgloss.NewStyle().
			Background(lipgloss.Color(t.FocusBg)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Surface lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	// Components
	Button lipgloss.Style
	Title  lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	"Paper":    paperTheme(),
	"Slate":    slateTheme(),
	"Nightfox": nightfoxTheme(),
}

var themeOrder = []string{"Paper", "Slate", "Nightfox"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return paperTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func paperTheme() Theme {
	// Light chrome around the classic console palette
	return Theme{
		Name: "Paper",

		Background: "#ffffff",
		Surface:    "#eeeeee",
		FocusBg:    "#d6d6d6",

		Border: "#acacac",

		Text:    "#000000",
		Muted:   "#555555",
		Faint:   "#7a7a7a",
		Accent:  "#1f6feb",
		Success: "#1a7f37",
		Warning: "#9a6700",
		Danger:  "#cf222e",

		Palette: console.PaletteSpec{
			Background: "#ffffff",
			Text:       "#000000",
			Border:     "#acacac",
			Debug:      "#e1e1e1",
			Info:       "#d7ffd7",
			Warning:    "#ffffd7",
			Error:      "#ffd7d7",
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		FocusBg:    "#283548", // between slate-800 and slate-700

		Border: "#334155", // slate-700

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500

		Palette: console.PaletteSpec{
			Background: "#0f172a", // slate-900
			Text:       "#f1f5f9", // slate-100
			Border:     "#334155", // slate-700
			Debug:      "#1e293b", // slate-800
			Info:       "#052e16", // green-950
			Warning:    "#422006", // yellow-950
			Error:      "#450a0a", // red-950
		},
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		FocusBg:    "#29394f", // bg3

		Border: "#39506d", // bg4

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red

		Palette: console.PaletteSpec{
			Background: "#192330", // bg1
			Text:       "#cdcecf", // fg1
			Border:     "#39506d", // bg4
			Debug:      "#212e3f", // bg2
			Info:       "#233a35",
			Warning:    "#3d3a26",
			Error:      "#3f2330",
		},
	}
}
