package engine

import (
	"github.com/stwalsh4118/leadrank/internal/config"
)

// FromConfig builds an Engine with DefaultConfig, overridden by the
// environment-level tunables in cfg.
func FromConfig(cfg config.EngineConfig) *Engine {
	c := DefaultConfig()
	c.Workers = cfg.Workers
	c.Matching.BudgetWeight = cfg.BudgetWeight
	c.Matching.StrategyWeight = cfg.StrategyWeight
	c.Matching.TrackRecordCap = cfg.TrackRecordCap
	return New(c)
}
