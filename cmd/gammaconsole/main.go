package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/gammaconsole/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(app.Run).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gammaconsole: %v\n", err)
		return 1
	}
	return 0
}

// newRootCmd builds the command line. runApp is swapped out in tests.
func newRootCmd(runApp func(context.Context, app.Options) error) *cobra.Command {
	opts := app.Options{Backfill: -1}

	cmd := &cobra.Command{
		Use:   "gammaconsole",
		Short: "Terminal log console with HTML save and rollover",
		Long: `gammaconsole shows log lines as a severity-colored console, following
files as they grow. The console can be cleared or saved as an HTML document at
any time, and saves and clears itself every 65536 entries.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.PollEvery < 0 {
				return errors.New("--poll must not be negative")
			}
			return runApp(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/gammaconsole/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/gammaconsole/prefs.toml)")
	flags.StringSliceVarP(&opts.Follow, "follow", "f", nil, "log file to follow (repeatable)")
	flags.IntVar(&opts.Backfill, "backfill", -1, "lines of existing log to show first (default from config)")
	flags.DurationVar(&opts.PollEvery, "poll", 0, "poll interval for followed files (default from config)")
	flags.BoolVar(&opts.Demo, "demo", false, "emit sample traffic through zap, slog and logrus")
	flags.StringVar(&opts.SaveDir, "save-dir", "", "directory for saved logs (default from config)")

	return cmd
}

