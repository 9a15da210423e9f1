package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stwalsh4118/leadrank/internal/config"
	"github.com/stwalsh4118/leadrank/internal/engine"
	"github.com/stwalsh4118/leadrank/internal/logger"
	"github.com/stwalsh4118/leadrank/internal/matching"
)

const app = "leadctl"

// Actual version can be specified in build command.
var version = "dev"

// cli carries state shared by every subcommand. Each newRootCmd call gets
// its own viper instance so tests do not leak flags into each other.
type cli struct {
	v   *viper.Viper
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), log: logger.Nop()}

	root := &cobra.Command{
		Use:          app,
		Short:        "leadctl scores distressed-property leads and matches them to investors",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			env := "production"
			if c.v.GetBool("verbose") {
				env = "development"
			}
			c.log = logger.NewWithWriter(env, cmd.ErrOrStderr()).WithComponent(app)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolP("verbose", "v", false, "debug logging on stderr")
	pf.Bool("pretty", false, "indent JSON output")
	pf.Int("workers", 0, "batch pool size, 0 means one per CPU")
	pf.Float64("budget-weight", matching.DefaultConfig().BudgetWeight, "weight of budget fit in the match score")
	pf.Float64("strategy-weight", matching.DefaultConfig().StrategyWeight, "weight of strategy overlap in the match score")
	pf.Float64("track-record-cap", matching.DefaultConfig().TrackRecordCap, "maximum track-record bonus")

	// Flag names on the command line, the server's env names underneath.
	bindings := map[string]string{
		"verbose":                "verbose",
		"pretty":                 "pretty",
		"ENGINE_WORKERS":         "workers",
		"MATCH_BUDGET_WEIGHT":    "budget-weight",
		"MATCH_STRATEGY_WEIGHT":  "strategy-weight",
		"MATCH_TRACK_RECORD_CAP": "track-record-cap",
	}
	for key, flag := range bindings {
		if err := c.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding --%s: %v", flag, err))
		}
	}
	c.v.AutomaticEnv()

	root.AddCommand(
		c.parseCmd(),
		c.classifyCmd(),
		c.scoreCmd(),
		c.matchCmd(),
		c.refreshCmd(),
		versionCmd(),
	)
	return root
}

// engine builds an Engine from flags and environment.
func (c *cli) engine() (*engine.Engine, error) {
	cfg := config.EngineConfig{
		Workers:        c.v.GetInt("ENGINE_WORKERS"),
		BudgetWeight:   c.v.GetFloat64("MATCH_BUDGET_WEIGHT"),
		StrategyWeight: c.v.GetFloat64("MATCH_STRATEGY_WEIGHT"),
		TrackRecordCap: c.v.GetFloat64("MATCH_TRACK_RECORD_CAP"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.log.Debug("Engine configured", logger.Fields{
		"workers":         cfg.Workers,
		"budget_weight":   cfg.BudgetWeight,
		"strategy_weight": cfg.StrategyWeight,
	})
	return engine.FromConfig(cfg), nil
}

// writeJSON prints v on the command's stdout.
func (c *cli) writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if c.v.GetBool("pretty") {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// readInput returns the file contents, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("--file is required")
	}
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// isArray reports whether a JSON document is a top-level array.
func isArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}
