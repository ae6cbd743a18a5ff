package console

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeSurface counts entry blocks as lines, like a viewport with one row per entry.
type fakeSurface struct {
	doc     string
	offset  int
	visible int
}

func (f *fakeSurface) SetDocument(doc string) {
	f.doc = doc
}
func (f *fakeSurface) ScrollOffset() int       { return f.offset }
func (f *fakeSurface) VisibleExtent() int      { return f.visible }
func (f *fakeSurface) SetScrollOffset(off int) { f.offset = off }
func (f *fakeSurface) ScrollMax() int {
	return max(strings.Count(f.doc, "<div "), f.visible)
}

// docSurface only records the document; it keeps long runs cheap.
type docSurface struct{ doc string }

func (d *docSurface) SetDocument(doc string) { d.doc = doc }
func (d *docSurface) ScrollOffset() int       { return 0 }
func (d *docSurface) ScrollMax() int          { return 0 }
func (d *docSurface) VisibleExtent() int      { return 0 }
func (d *docSurface) SetScrollOffset(int)     {}

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 42_000_000, time.Local)

func newTestConsole(t *testing.T, opts Options) *Console {
	t.Helper()
	if opts.Fs == nil {
		opts.Fs = afero.NewMemMapFs()
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	c := New(opts)
	c.MarkReady()
	return c
}

func entryBlocks(doc string) int {
	return strings.Count(doc, "<div ")
}

func TestLog_CountsEntries(t *testing.T) {
	c := newTestConsole(t, Options{})
	for i := 0; i < 25; i++ {
		c.Log(LevelInfo, "hello", "MAIN")
	}
	if got := c.EntryCount(); got != 25 {
		t.Fatalf("EntryCount = %d, want 25", got)
	}
	if got := entryBlocks(c.Document()); got != 25 {
		t.Fatalf("entry blocks = %d, want 25", got)
	}
}

func TestLog_EntryLayout(t *testing.T) {
	c := newTestConsole(t, Options{CallerWidth: 10})
	c.Log(LevelInfo, "started", "MAIN")

	want := `<div class="info">14:05:07` + strings.Repeat(nbsp, 3) + "MAIN" + strings.Repeat(nbsp, 4) + "started</div>"
	if !strings.HasSuffix(c.Document(), want) {
		t.Fatalf("document tail = %q, want suffix %q", c.Document(), want)
	}
}

func TestLog_DefaultCallerIsLevelName(t *testing.T) {
	c := newTestConsole(t, Options{})
	c.Warning("disk almost full")
	if !strings.Contains(c.Document(), `<div class="warning">`) {
		t.Fatalf("document missing warning block: %q", c.Document())
	}
	if !strings.Contains(c.Document(), nbsp+"WARNING"+nbsp) {
		t.Fatalf("document missing default caller label: %q", c.Document())
	}
}

func TestLog_ConvenienceLevels(t *testing.T) {
	c := newTestConsole(t, Options{})
	c.Verbose("v")
	c.Debug("d")
	c.Info("i")
	c.Warning("w")
	c.Error("e")
	doc := c.Document()
	for _, l := range Levels() {
		if !strings.Contains(doc, `<div class="`+l.Class()+`">`) {
			t.Fatalf("document missing %s block", l.Class())
		}
	}
}

func TestLog_FullTimestamp(t *testing.T) {
	c := newTestConsole(t, Options{})
	c.Info("short")
	c.SetFullTimestamp(true)
	c.Info("full")

	doc := c.Document()
	if !strings.Contains(doc, `<div class="info">14:05:07`) {
		t.Fatalf("short timestamp missing: %q", doc)
	}
	if !strings.Contains(doc, `<div class="info">2024-03-09 14:05:07.042`) {
		t.Fatalf("full timestamp missing: %q", doc)
	}
}

func TestLog_RawMarkupByDefault(t *testing.T) {
	c := newTestConsole(t, Options{})
	c.Info("<b>bold</b>")
	if !strings.Contains(c.Document(), "<b>bold</b>") {
		t.Fatalf("raw markup was altered: %q", c.Document())
	}
}

func TestLog_EscapeMarkup(t *testing.T) {
	c := newTestConsole(t, Options{EscapeMarkup: true, CallerWidth: 10})
	c.Log(LevelError, "<b>", "A&B")

	doc := c.Document()
	if strings.Contains(doc, "<b>") {
		t.Fatalf("markup was not escaped: %q", doc)
	}
	// Padding is computed from the unescaped label length (3, odd).
	want := strings.Repeat(nbsp, 3) + "A&amp;B" + strings.Repeat(nbsp, 3) + "&lt;b&gt;</div>"
	if !strings.HasSuffix(doc, want) {
		t.Fatalf("document tail = %q, want suffix %q", doc, want)
	}
}

func TestLog_BlocksUntilReady(t *testing.T) {
	c := New(Options{Fs: afero.NewMemMapFs()})

	done := make(chan struct{})
	go func() {
		c.Info("early")
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("Log returned before MarkReady")
	case <-time.After(50 * time.Millisecond):
	}
	if c.Document() != "" {
		t.Fatalf("document mutated before ready: %q", c.Document())
	}

	c.MarkReady()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Log did not resume after MarkReady")
	}
	if got := c.EntryCount(); got != 1 {
		t.Fatalf("EntryCount = %d, want 1", got)
	}
}

func TestWaitReady_ContextCancelled(t *testing.T) {
	c := New(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.WaitReady(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("WaitReady = %v, want context.Canceled", err)
	}
	c.MarkReady()
	c.MarkReady()
	if err := c.WaitReady(context.Background()); err != nil {
		t.Fatalf("WaitReady after MarkReady = %v", err)
	}
	if !c.Ready() {
		t.Fatalf("Ready = false after MarkReady")
	}
}

func TestClear_KeepsOneHeaderAndCount(t *testing.T) {
	c := newTestConsole(t, Options{})
	c.Info("a")
	c.Info("b")
	c.Clear()
	c.Clear()

	doc := c.Document()
	if entryBlocks(doc) != 0 {
		t.Fatalf("entry blocks after Clear = %d, want 0", entryBlocks(doc))
	}
	if strings.Count(doc, "<style>") != 1 {
		t.Fatalf("style headers after Clear = %d, want 1", strings.Count(doc, "<style>"))
	}
	if doc != styleHeader(c.Palette(), defaultFontFamily) {
		t.Fatalf("document after Clear = %q, want bare header", doc)
	}
	if got := c.EntryCount(); got != 2 {
		t.Fatalf("EntryCount after Clear = %d, want 2", got)
	}
}

func TestPalette_AppliesOnlyAfterReset(t *testing.T) {
	c := newTestConsole(t, Options{})
	c.Info("a")

	red, _ := ParseColor("#ff0000")
	c.SetColor(RoleInfo, red)
	if strings.Contains(c.Document(), "#ff0000") {
		t.Fatalf("palette change rewrote the existing header")
	}
	if got := c.Color(RoleInfo).Hex(); got != "#ff0000" {
		t.Fatalf("Color(RoleInfo) = %q, want #ff0000", got)
	}

	c.Clear()
	if !strings.Contains(c.Document(), ".info { background-color: #ff0000; }") {
		t.Fatalf("header after Clear missing new info color: %q", c.Document())
	}
}

func TestRollover_SavesClearsAndResetsCount(t *testing.T) {
	fs := afero.NewMemMapFs()
	surface := &docSurface{}
	var reported []string
	c := newTestConsole(t, Options{
		Fs:      fs,
		Surface: surface,
		SaveDir: "logs",
		OnSave:  func(path string) { reported = append(reported, path) },
	})

	for i := 0; i < MaxEntries-1; i++ {
		c.Debug("x")
	}
	if files, _ := afero.ReadDir(fs, "logs"); len(files) != 0 {
		t.Fatalf("saved %d files before the ceiling", len(files))
	}

	c.Info("last")

	files, err := afero.ReadDir(fs, "logs")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("saved files = %d, want 1", len(files))
	}
	saved, err := afero.ReadFile(fs, filepath.Join("logs", files[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(reported) != 1 || reported[0] != filepath.Join("logs", files[0].Name()) {
		t.Fatalf("OnSave paths = %v, want the rollover file", reported)
	}
	if got := entryBlocks(string(saved)); got != MaxEntries {
		t.Fatalf("saved entry blocks = %d, want %d", got, MaxEntries)
	}
	if got := entryBlocks(c.Document()); got != 0 {
		t.Fatalf("entry blocks after rollover = %d, want 0", got)
	}
	if got := c.EntryCount(); got != 0 {
		t.Fatalf("EntryCount after rollover = %d, want 0", got)
	}
	if surface.doc != c.Document() {
		t.Fatalf("surface not updated after rollover")
	}

	c.Info("after")
	if got := entryBlocks(c.Document()); got != 1 {
		t.Fatalf("entry blocks after rollover + 1 = %d, want 1", got)
	}
}

func TestSave_WritesDocumentVerbatim(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := newTestConsole(t, Options{Fs: fs})
	c.Info("one")
	c.Error("two")

	path, err := c.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(".", "2024-03-09_14-05-07.042_log.html"); path != want {
		t.Fatalf("Save path = %q, want %q", path, want)
	}
	got, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != c.Document() {
		t.Fatalf("saved content differs from document")
	}
}

func TestSave_FailureIsLoggedAndKeepsDocument(t *testing.T) {
	zc, logs := observer.New(zapcore.ErrorLevel)
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	called := false
	c := newTestConsole(t, Options{Fs: fs, Logger: zap.New(zc), OnSave: func(string) { called = true }})
	c.Info("kept")
	before := c.Document()

	if _, err := c.Save(); err == nil {
		t.Fatalf("Save on read-only fs returned nil error")
	}
	if c.Document() != before {
		t.Fatalf("document changed after failed save")
	}
	if called {
		t.Fatalf("OnSave called for a failed save")
	}
	if logs.FilterMessage("save console log failed").Len() != 1 {
		t.Fatalf("failed save was not logged: %v", logs.All())
	}

	c.Info("still logging")
	if got := c.EntryCount(); got != 2 {
		t.Fatalf("EntryCount = %d, want 2", got)
	}
}

func TestSave_OsFilesystem(t *testing.T) {
	dir := t.TempDir()
	c := newTestConsole(t, Options{Fs: afero.NewOsFs(), SaveDir: dir})
	c.Info("disk")

	path, err := c.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != c.Document() {
		t.Fatalf("saved content differs from document")
	}
}

func TestScroll_PinnedViewFollowsBottom(t *testing.T) {
	surface := &fakeSurface{visible: 3}
	c := newTestConsole(t, Options{Surface: surface})

	for i := 0; i < 10; i++ {
		c.Info("line")
	}
	if want := 10 - 3; surface.offset != want {
		t.Fatalf("offset = %d, want %d", surface.offset, want)
	}
}

func TestScroll_UnpinnedViewKeepsAbsoluteOffset(t *testing.T) {
	surface := &fakeSurface{visible: 3}
	c := newTestConsole(t, Options{Surface: surface})
	for i := 0; i < 10; i++ {
		c.Info("line")
	}

	surface.offset = 2
	for i := 0; i < 5; i++ {
		c.Info("more")
	}
	if surface.offset != 2 {
		t.Fatalf("offset = %d, want 2", surface.offset)
	}
}

func TestSetSurface_ReceivesCurrentDocument(t *testing.T) {
	c := newTestConsole(t, Options{})
	c.Info("before attach")

	surface := &fakeSurface{}
	c.SetSurface(surface)
	if surface.doc != c.Document() {
		t.Fatalf("surface document = %q, want current document", surface.doc)
	}
}

func TestSetCallerWidth_NegativeClamps(t *testing.T) {
	c := newTestConsole(t, Options{})
	c.SetCallerWidth(-4)
	if got := c.CallerWidth(); got != 0 {
		t.Fatalf("CallerWidth = %d, want 0", got)
	}
}

func TestLog_ConcurrentWriters(t *testing.T) {
	const writers, perWriter = 8, 200

	fs := afero.NewMemMapFs()
	c := newTestConsole(t, Options{Fs: fs, Surface: &docSurface{}})

	run := func(side func(i int)) {
		var wg sync.WaitGroup
		for w := 0; w < writers; w++ {
			wg.Go(func() {
				for i := 0; i < perWriter; i++ {
					c.Log(Levels()[i%len(Levels())], fmt.Sprintf("writer %d line %d", w, i), fmt.Sprintf("W%d", w))
				}
			})
		}
		wg.Go(func() {
			for i := 0; i < 50; i++ {
				side(i)
			}
		})
		wg.Wait()
	}

	// Saves and readers alongside the writers lose nothing.
	run(func(i int) {
		if _, err := c.Save(); err != nil {
			t.Errorf("Save: %v", err)
		}
		_ = c.EntryCount()
		_ = c.Document()
		c.SetFullTimestamp(i%2 == 0)
	})
	if got := c.EntryCount(); got != writers*perWriter {
		t.Fatalf("EntryCount = %d, want %d", got, writers*perWriter)
	}
	if got := entryBlocks(c.Document()); got != writers*perWriter {
		t.Fatalf("entry blocks = %d, want %d", got, writers*perWriter)
	}

	// Clears drop blocks but never the count, and never tear an entry.
	run(func(int) { c.Clear() })
	if got := c.EntryCount(); got != 2*writers*perWriter {
		t.Fatalf("EntryCount = %d, want %d", got, 2*writers*perWriter)
	}
	doc := c.Document()
	if got := entryBlocks(doc); got > writers*perWriter {
		t.Fatalf("entry blocks = %d, more than logged since the first clear", got)
	}
	if !strings.HasPrefix(doc, styleHeader(c.Palette(), defaultFontFamily)) || strings.Count(doc, "<style>") != 1 {
		t.Fatalf("document lost its single header")
	}
	if strings.Count(doc, "<div ") != strings.Count(doc, "</div>") {
		t.Fatalf("document has torn entry blocks")
	}
}
