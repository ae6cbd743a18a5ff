package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/gammaconsole/internal/config"
	"github.com/five82/gammaconsole/internal/console"
	"github.com/five82/gammaconsole/internal/prefs"
	"github.com/five82/gammaconsole/internal/state"
	"github.com/five82/gammaconsole/internal/ui"
)

// Options configure the console application. Zero values defer to the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string   // empty uses ~/.config/gammaconsole/prefs.toml
	Follow     []string // files to follow in addition to the configured ones
	Backfill   int      // negative uses the configured backfill
	PollEvery  time.Duration
	SaveDir    string
	Demo       bool
}

// Run boots the console TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err = applyOverrides(cfg, opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := newDiagnosticLogger(cfg.DiagnosticLog)
	if err != nil {
		return fmt.Errorf("open diagnostic log: %w", err)
	}
	defer closeLog()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs", zap.Error(err))
	}
	fullTimestamp := cfg.FullTimestamp
	if userPrefs.FullTimestamp != nil {
		fullTimestamp = *userPrefs.FullTimestamp
	}

	store := &state.Store{}
	c := console.New(console.Options{
		Logger:        logger.Named("console"),
		Fs:            afero.NewOsFs(),
		SaveDir:       cfg.SaveDir,
		FullTimestamp: fullTimestamp,
		CallerWidth:   cfg.CallerWidth,
		Palette:       &cfg.Palette,
		FontFamily:    cfg.FontFamily,
		EscapeMarkup:  cfg.EscapeMarkup,
		OnSave:        store.RecordSave,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, path := range cfg.Follow {
		f := &Follower{
			Path:     path,
			Backfill: cfg.Backfill,
			Interval: cfg.PollInterval,
			Escape:   !cfg.EscapeMarkup,
			Console:  c,
			Store:    store,
			Logger:   logger.Named("follow"),
		}
		wg.Go(func() { f.Run(ctx) })
	}
	if opts.Demo {
		wg.Go(func() { runDemo(ctx, c, 0) })
	}

	logger.Info("starting console",
		zap.Strings("follow", cfg.Follow),
		zap.Bool("demo", opts.Demo),
		zap.String("save_dir", cfg.SaveDir),
	)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Console:   c,
		Surface:   ui.NewSurface(logger.Named("surface")),
		Store:     store,
		Logger:    logger.Named("ui"),
		PollTick:  time.Second,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})

	cancel()
	wg.Wait()
	return err
}

func applyOverrides(cfg config.Config, opts Options) (config.Config, error) {
	cfg.Follow = append([]string(nil), cfg.Follow...)
	for _, path := range opts.Follow {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return cfg, fmt.Errorf("expand follow path %q: %w", path, err)
		}
		cfg.Follow = append(cfg.Follow, expanded)
	}
	if opts.Backfill >= 0 {
		cfg.Backfill = opts.Backfill
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}
	if opts.SaveDir != "" {
		dir, err := config.ExpandPath(opts.SaveDir)
		if err != nil {
			return cfg, fmt.Errorf("expand save dir: %w", err)
		}
		cfg.SaveDir = dir
	}
	return cfg, nil
}

// newDiagnosticLogger opens a JSON zap logger on path. The terminal belongs to
// the UI, so an empty path yields a no-op logger.
func newDiagnosticLogger(path string) (*zap.Logger, func(), error) {
	if path == "" {
		return zap.NewNop(), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(file), zapcore.DebugLevel)
	logger := zap.New(core)
	return logger, func() {
		_ = logger.Sync()
		_ = file.Close()
	}, nil
}
