package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/steveyegge/clawboard/internal/config"
	"github.com/steveyegge/clawboard/internal/render"
)

var watchInterval string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Redraw the status board on an interval",
	Long: `Continuously collect and redraw the status board using the terminal's
alternate screen. Ctrl-C restores the normal screen and exits.

A refresh tick never cancels an in-flight collection; ticks that arrive
while a collection is still running are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		collector, cfg, err := buildCollector()
		if err != nil {
			return err
		}

		interval, err := refreshInterval(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Alternate screen, restored on exit.
		fmt.Print("\x1b[?1049h")
		defer fmt.Print("\x1b[?1049l")

		// collecting is the non-reentrancy guard: a new cycle never
		// starts while one is in flight.
		var collecting atomic.Bool

		draw := func() {
			if !collecting.CompareAndSwap(false, true) {
				return
			}
			defer collecting.Store(false)
			snap := collector.Snapshot(ctx)
			fmt.Print("\x1b[2J\x1b[H")
			render.Board(os.Stdout, snap)
		}

		draw()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				draw()
			}
		}
	},
}

func refreshInterval(cfg *config.Config) (time.Duration, error) {
	if watchInterval != "" {
		d, err := time.ParseDuration(watchInterval)
		if err != nil {
			return 0, fmt.Errorf("invalid --interval %q: %w", watchInterval, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("--interval must be positive (got %v)", d)
		}
		return d, nil
	}
	return cfg.Refresh()
}

func init() {
	watchCmd.Flags().StringVarP(&watchInterval, "interval", "i", "", "Refresh interval (e.g. 10s); defaults to the config value")
	rootCmd.AddCommand(watchCmd)
}
