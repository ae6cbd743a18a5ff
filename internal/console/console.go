// Package console implements an embeddable HTML logging console: a growing,
// severity-styled markup document with clear, save and automatic rollover.
package console

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	// MaxEntries is the entry count at which the console saves and clears itself.
	MaxEntries = 65536

	// DefaultCallerWidth is the default column width reserved for caller labels.
	DefaultCallerWidth = 30

	defaultFontFamily = "monospace"
)

// Options configure a Console. Zero values select defaults.
type Options struct {
	Surface       Surface
	Logger        *zap.Logger // diagnostics such as failed saves
	Fs            afero.Fs
	SaveDir       string // directory for saved logs, "." when empty
	FullTimestamp bool
	CallerWidth   int
	Palette       *Palette
	FontFamily    string
	EscapeMarkup  bool
	Now           func() time.Time

	// OnSave is told the path of every successful save, manual or rollover.
	// It runs with the console locked and must not call back into it.
	OnSave func(path string)
}

// Console owns the log document. All methods are safe for concurrent use;
// Log blocks until MarkReady has been called.
type Console struct {
	mu      sync.Mutex
	surface Surface
	logger  *zap.Logger
	fs      afero.Fs
	saveDir string
	now     func() time.Time
	onSave  func(path string)

	fullTimestamp bool
	callerWidth   int
	palette       Palette
	fontFamily    string
	escape        bool

	doc   strings.Builder
	count int

	ready     chan struct{}
	readyOnce sync.Once
}

// New creates a console that is not yet ready.
func New(opts Options) *Console {
	c := &Console{
		surface:       opts.Surface,
		logger:        opts.Logger,
		fs:            opts.Fs,
		saveDir:       strings.TrimSpace(opts.SaveDir),
		now:           opts.Now,
		onSave:        opts.OnSave,
		fullTimestamp: opts.FullTimestamp,
		callerWidth:   opts.CallerWidth,
		fontFamily:    strings.TrimSpace(opts.FontFamily),
		escape:        opts.EscapeMarkup,
		palette:       DefaultPalette(),
		ready:         make(chan struct{}),
	}
	if opts.Palette != nil {
		c.palette = *opts.Palette
	}
	if c.surface == nil {
		c.surface = nopSurface{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.saveDir == "" {
		c.saveDir = "."
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.callerWidth <= 0 {
		c.callerWidth = DefaultCallerWidth
	}
	if c.fontFamily == "" {
		c.fontFamily = defaultFontFamily
	}
	return c
}

// SetSurface attaches the presentation surface. A nil surface detaches it.
func (c *Console) SetSurface(s Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s == nil {
		s = nopSurface{}
	}
	c.surface = s
	if c.isReady() {
		s.SetDocument(c.doc.String())
	}
}

// MarkReady opens the readiness gate and renders the initial style header.
// Calls after the first are no-ops.
func (c *Console) MarkReady() {
	c.readyOnce.Do(func() {
		c.mu.Lock()
		c.resetLocked()
		c.mu.Unlock()
		close(c.ready)
		c.logger.Debug("console ready")
	})
}

// Ready reports whether MarkReady has been called.
func (c *Console) Ready() bool {
	return c.isReady()
}

// WaitReady blocks until the console is ready or ctx is done.
func (c *Console) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Console) isReady() bool {
	select {
	case <-c.ready:
		return true
	default:
		return false
	}
}

// Log appends an entry. An empty caller is replaced by the level name. Log waits
// for readiness without a timeout and never reports errors.
func (c *Console) Log(level Level, text, caller string) {
	<-c.ready

	c.mu.Lock()
	defer c.mu.Unlock()

	if caller == "" {
		caller = level.String()
	}
	writeEntry(&c.doc, entry{
		level:     level,
		timestamp: c.timestamp(),
		caller:    caller,
		text:      text,
	}, c.callerWidth, c.escape)
	c.present()

	c.count++
	c.flushIfFull()
}

// Verbose logs text at LevelVerbose.
func (c *Console) Verbose(text string) { c.Log(LevelVerbose, text, "") }

// Debug logs text at LevelDebug.
func (c *Console) Debug(text string) { c.Log(LevelDebug, text, "") }

// Info logs text at LevelInfo.
func (c *Console) Info(text string) { c.Log(LevelInfo, text, "") }

// Warning logs text at LevelWarning.
func (c *Console) Warning(text string) { c.Log(LevelWarning, text, "") }

// Error logs text at LevelError.
func (c *Console) Error(text string) { c.Log(LevelError, text, "") }

// Clear drops every entry, leaving a style header built from the current
// palette. The entry count is kept.
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// present pushes the document to the surface. A view that was at the bottom
// stays pinned to it; any other view keeps its absolute offset.
func (c *Console) present() {
	s := c.surface
	offset := s.ScrollOffset()
	pinned := offset == s.ScrollMax()-s.VisibleExtent()

	s.SetDocument(c.doc.String())

	if pinned {
		s.SetScrollOffset(s.ScrollMax() - s.VisibleExtent())
		return
	}
	s.SetScrollOffset(offset)
}

func (c *Console) flushIfFull() {
	if c.count < MaxEntries {
		return
	}
	c.logger.Info("console rollover", zap.Int("entries", c.count))
	_, _ = c.saveLocked()
	c.resetLocked()
	c.count = 0
}

func (c *Console) resetLocked() {
	c.doc.Reset()
	c.doc.WriteString(styleHeader(c.palette, c.fontFamily))
	c.surface.SetDocument(c.doc.String())
}

func (c *Console) timestamp() string {
	t := c.now()
	if c.fullTimestamp {
		return t.Format(fullTimestampLayout)
	}
	return t.Format(shortTimestampLayout)
}

// EntryCount returns the number of entries logged since the last rollover.
func (c *Console) EntryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Document returns the current markup. It is empty until the console is ready.
func (c *Console) Document() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.String()
}

// FullTimestamp reports whether entries carry the full date and time.
func (c *Console) FullTimestamp() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fullTimestamp
}

// SetFullTimestamp switches the timestamp format for future entries.
func (c *Console) SetFullTimestamp(full bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fullTimestamp = full
}

// CallerWidth returns the caller column width.
func (c *Console) CallerWidth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callerWidth
}

// SetCallerWidth changes the caller column width for future entries.
// Negative widths are treated as zero.
func (c *Console) SetCallerWidth(width int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callerWidth = max(width, 0)
}

// Palette returns the current palette.
func (c *Console) Palette() Palette {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.palette
}

// SetPalette replaces the palette. The document picks it up on the next reset.
func (c *Console) SetPalette(p Palette) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.palette = p
}

// SaveDir returns the directory saved logs are written to.
func (c *Console) SaveDir() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveDir
}
