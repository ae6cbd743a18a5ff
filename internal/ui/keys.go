package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// keyMap defines all keyboard bindings for the console.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Console actions (the window buttons)
	Clear         key.Binding
	Save          key.Binding
	FullTimestamp key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme (palette applies after clear)"),
		),

		// Console actions
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear the console"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Save the log as HTML"),
		),
		FullTimestamp: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Toggle full timestamps"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end", "f"),
			key.WithHelp("G/f", "Go to bottom (follow)"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " ", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),
	}
}

// viewportKeyMap maps the console navigation keys onto the viewport.
func (k keyMap) viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		Up:       k.Up,
		Down:     k.Down,
		PageUp:   k.PageUp,
		PageDown: k.PageDown,
		// Half pages and horizontal scrolling stay unbound.
		HalfPageUp:   key.NewBinding(key.WithDisabled()),
		HalfPageDown: key.NewBinding(key.WithDisabled()),
		Left:         key.NewBinding(key.WithDisabled()),
		Right:        key.NewBinding(key.WithDisabled()),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.Save, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Clear, k.Save, k.FullTimestamp},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
