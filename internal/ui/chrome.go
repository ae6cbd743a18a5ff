package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

type button int

const (
	buttonNone button = iota
	buttonClear
	buttonSave
)

// headerButtons are drawn left to right after a one cell margin.
var headerButtons = []struct {
	id    button
	label string
}{
	{buttonClear, "Clear"},
	{buttonSave, "Save"},
}

const appTitle = "Gamma Console"

// buttonAt returns the header button under column x.
func (m Model) buttonAt(x int) button {
	pos := 1
	for _, b := range headerButtons {
		w := len(b.label) + 2 // Button style pads one cell on each side
		if x >= pos && x < pos+w {
			return b.id
		}
		pos += w + 1
	}
	return buttonNone
}

// renderHeader renders the window buttons and title.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := make([]string, 0, len(headerButtons)+1)
	for _, b := range headerButtons {
		parts = append(parts, styles.Button.Render(b.label))
	}
	left := bg.Space() + bg.Join(parts, " ")
	title := bg.Render(appTitle, styles.Title.Background(lipgloss.Color(m.theme.Surface)))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(title) - 1
	if gap < 1 {
		return bg.FillLine(left, m.width)
	}
	return bg.FillLine(left+bg.Spaces(gap)+title, m.width)
}

// renderBody renders the console document viewport.
func (m Model) renderBody() string {
	if len(m.lines) == 0 {
		styles := m.theme.Styles()
		empty := styles.FaintText.Render("Waiting for log entries...")
		return lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, empty)
	}
	return m.viewport.View()
}

// renderStatus renders the bottom status bar.
func (m Model) renderStatus() string {
	styles := m.theme.Styles().Surface
	bg := NewBgStyle(m.theme.Surface)
	withBg := func(s lipgloss.Style) lipgloss.Style {
		return s.Background(lipgloss.Color(m.theme.Surface))
	}
	th := m.theme.Styles()

	parts := []string{
		bg.Render(humanize.Comma(int64(m.stats.entries))+" entries", styles),
	}

	if m.viewport.AtBottom() {
		parts = append(parts, bg.Render("following", withBg(th.SuccessText)))
	} else {
		parts = append(parts, bg.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100), withBg(th.MutedText)))
	}

	if m.stats.fullTimestamp {
		parts = append(parts, bg.Render("full time", withBg(th.MutedText)))
	}

	if m.snapshot.Failing() > 0 {
		var names []string
		for _, src := range m.snapshot.Sources {
			if src.IsFailing() {
				names = append(names, src.Name)
			}
		}
		parts = append(parts, bg.Render("failing: "+strings.Join(names, ", "), withBg(th.DangerText)))
	} else if n := len(m.snapshot.Sources); n > 0 {
		parts = append(parts, bg.Render(humanize.Comma(int64(n))+" sources", withBg(th.MutedText)))
	}

	switch {
	case m.notice != "" && !m.noticeOK:
		parts = append(parts, bg.Render(m.notice, withBg(th.DangerText)))
	case m.notice != "":
		parts = append(parts, bg.Render(m.notice, withBg(th.AccentText)))
	case m.snapshot.LastSaved != "":
		parts = append(parts, bg.Render("saved "+filepath.Base(m.snapshot.LastSaved)+" "+humanize.Time(m.snapshot.LastSavedAt), withBg(th.MutedText)))
	}

	parts = append(parts, bg.Render(m.theme.Name, withBg(th.FaintText)))
	return bg.FillLine(bg.Space()+bg.Join(parts, " · "), m.width)
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	h := m.help
	h.ShowAll = true
	h.Width = m.width
	b.WriteString(h.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Mouse: click [Clear] or [Save] in the header; wheel scrolls."))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
