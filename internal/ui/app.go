package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/gammaconsole/internal/console"
	"github.com/five82/gammaconsole/internal/prefs"
	"github.com/five82/gammaconsole/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Console   *console.Console
	Surface   *Surface
	Store     *state.Store
	Logger    *zap.Logger
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	console   *console.Console
	surface   *Surface
	store     *state.Store
	logger    *zap.Logger
	prefsPath string
	pollTick  time.Duration

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Document state
	viewport viewport.Model
	style    docStyle
	rows     []row
	lines    []string

	// Status state
	stats    consoleStats
	snapshot state.Snapshot
	notice   string
	noticeOK bool
}

// consoleStats is read from the console off the event loop.
type consoleStats struct {
	entries       int
	fullTimestamp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	surface := opts.Surface
	if surface == nil {
		surface = NewSurface(logger)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:       ctx,
		console:   opts.Console,
		surface:   surface,
		store:     opts.Store,
		logger:    logger,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(opts.ThemeName),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.pollTick),
		fetchStatsCmd(m.console, m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		first := !m.ready
		if first {
			m.initViewport()
		}
		m.ready = true
		m.resizeViewport()
		if first {
			// The console only accepts entries once there is a screen to show them on.
			return m, markReadyCmd(m.console)
		}
		return m, nil

	case documentMsg:
		m.applyDocument(msg)
		return m, nil

	case scrollMsg:
		m.viewport.SetYOffset(int(msg))
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchStatsCmd(m.console, m.store), tickCmd(m.pollTick))

	case statsMsg:
		m.stats = msg.stats
		m.snapshot = msg.snapshot
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.notice, m.noticeOK = "save failed: "+msg.err.Error(), false
		} else {
			m.notice, m.noticeOK = "saved "+msg.path, true
		}
		return m, fetchStatsCmd(m.console, m.store)

	case clearedMsg:
		m.notice, m.noticeOK = "console cleared", true
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		return m, clearCmd(m.console)

	case key.Matches(msg, m.keys.Save):
		return m, saveCmd(m.console)

	case key.Matches(msg, m.keys.FullTimestamp):
		full := !m.stats.fullTimestamp
		m.stats.fullTimestamp = full
		return m, setFullTimestampCmd(m.console, m.logger, m.prefsPath, m.theme.Name, full)

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.lines = renderRows(m.rows, m.style, m.viewport.Width)
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		return m, applyThemeCmd(m.console, m.logger, m.prefsPath, m.theme, m.stats.fullTimestamp)

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		m.surface.sync(m.viewport)
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		m.surface.sync(m.viewport)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.surface.sync(m.viewport)
	return m, cmd
}

// handleMouse presses the header buttons and scrolls the body.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Y == 0 && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		switch m.buttonAt(msg.X) {
		case buttonClear:
			return m, clearCmd(m.console)
		case buttonSave:
			return m, saveCmd(m.console)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.surface.sync(m.viewport)
	return m, cmd
}

func (m *Model) initViewport() {
	m.viewport = viewport.New(m.width, max(m.height-2, 1))
	m.viewport.KeyMap = m.keys.viewportKeyMap()
}

// resizeViewport fits the viewport between the header and the status bar.
func (m *Model) resizeViewport() {
	wasBottom := m.viewport.AtBottom()
	widthChanged := m.viewport.Width != m.width

	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-2, 1)
	if widthChanged {
		m.lines = renderRows(m.rows, m.style, m.viewport.Width)
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
	}
	if wasBottom {
		m.viewport.GotoBottom()
	}
	m.surface.sync(m.viewport)
}

// applyDocument folds a document change into the rendered lines.
func (m *Model) applyDocument(msg documentMsg) {
	if msg.reset {
		m.style = msg.style
		m.rows = append(m.rows[:0:0], msg.rows...)
		m.lines = renderRows(m.rows, m.style, m.viewport.Width)
	} else {
		m.rows = append(m.rows, msg.rows...)
		m.lines = append(m.lines, renderRows(msg.rows, m.style, m.viewport.Width)...)
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
}

// Messages

type tickMsg time.Time

type statsMsg struct {
	stats    consoleStats
	snapshot state.Snapshot
}

type savedMsg struct {
	path string
	err  error
}

type clearedMsg struct{}

// Commands
//
// Anything that touches the console runs as a command: the console may be
// blocked delivering a document to this very event loop.

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func markReadyCmd(c *console.Console) tea.Cmd {
	return func() tea.Msg {
		if c != nil {
			c.MarkReady()
		}
		return nil
	}
}

func fetchStatsCmd(c *console.Console, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		var msg statsMsg
		if c != nil {
			msg.stats = consoleStats{entries: c.EntryCount(), fullTimestamp: c.FullTimestamp()}
		}
		if store != nil {
			msg.snapshot = store.Snapshot()
		}
		return msg
	}
}

func clearCmd(c *console.Console) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return nil
		}
		c.Clear()
		return clearedMsg{}
	}
}

// saveCmd saves the console. The store learns about the file through the
// console's OnSave hook, like rollover saves.
func saveCmd(c *console.Console) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return nil
		}
		path, err := c.Save()
		return savedMsg{path: path, err: err}
	}
}

func setFullTimestampCmd(c *console.Console, logger *zap.Logger, prefsPath, themeName string, full bool) tea.Cmd {
	return func() tea.Msg {
		if c != nil {
			c.SetFullTimestamp(full)
		}
		savePrefs(logger, prefsPath, themeName, full)
		return nil
	}
}

func applyThemeCmd(c *console.Console, logger *zap.Logger, prefsPath string, theme Theme, full bool) tea.Cmd {
	return func() tea.Msg {
		if c != nil {
			c.SetPalette(theme.ConsolePalette())
		}
		savePrefs(logger, prefsPath, theme.Name, full)
		return nil
	}
}

func savePrefs(logger *zap.Logger, path, themeName string, full bool) {
	if err := prefs.Save(path, prefs.Prefs{Theme: themeName, FullTimestamp: &full}); err != nil {
		logger.Warn("save prefs", zap.String("path", path), zap.Error(err))
	}
}

// Run starts the Bubble Tea program with the surface attached and blocks until
// the user quits or ctx is cancelled.
func Run(opts Options) error {
	m := New(opts)
	ctx := m.ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	m.surface.Attach(p)
	if opts.Console != nil {
		opts.Console.SetSurface(m.surface)
	}
	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
