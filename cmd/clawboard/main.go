package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/steveyegge/clawboard/internal/cmdexec"
	"github.com/steveyegge/clawboard/internal/collect"
	"github.com/steveyegge/clawboard/internal/config"
	"github.com/steveyegge/clawboard/internal/render"
)

var (
	cfgPath    string
	toolName   string
	workspaces []string
	jsonOutput bool
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "clawboard",
	Short: "Terminal status board for an agent CLI",
	Long: `clawboard aggregates health signals from the agent CLI and local
filesystem/git state into a single color-coded snapshot: security audit
findings, cron job health, channel and agent counts, active sessions,
gateway reachability, version drift, and git drift across workspaces.

Every signal is best-effort: sources that cannot be reached render as an
explicit "unknown" rather than a blank, a zero, or a crash.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		collector, _, err := buildCollector()
		if err != nil {
			return err
		}
		snap := collector.Snapshot(context.Background())

		if jsonOutput {
			// Machine-readable output is the snapshot itself, no
			// additional transformation.
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		}
		render.Board(os.Stdout, snap)
		return nil
	},
}

// buildCollector loads configuration, applies flag overrides, and wires the
// collector to a real subprocess runner.
func buildCollector() (*collect.Collector, *config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if toolName != "" {
		cfg.Tool = toolName
	}
	if len(workspaces) > 0 {
		cfg.Workspaces = workspaces
	}

	opts := collect.Options{
		Tool:                cfg.Tool,
		Workspaces:          cfg.Workspaces,
		ActiveWindowMinutes: cfg.ActiveWindowMinutes,
		QuickTimeout:        cfg.QuickTimeout(),
		JSONTimeout:         cfg.JSONTimeout(),
	}
	return collect.New(&cmdexec.ProcRunner{}, logger, opts), cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "Path to the board config file")
	rootCmd.PersistentFlags().StringVar(&toolName, "tool", "", "Override the monitored CLI binary name")
	rootCmd.PersistentFlags().StringArrayVarP(&workspaces, "workspace", "w", nil, "Workspace path to inspect for git drift (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the snapshot as JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
