package matching

// Config weights the rank stage. A Matcher copies it at construction.
type Config struct {
	BudgetWeight   float64
	StrategyWeight float64
	// TrackRecordPerDeal points are added per completed deal, up to TrackRecordCap.
	TrackRecordPerDeal float64
	TrackRecordCap     float64
	// CompatibilityThreshold is the sub-score a property needs for a strategy
	// family to count as compatible.
	CompatibilityThreshold int
	// NeutralScore stands in for budget fit or strategy overlap when the
	// investor leaves that preference open.
	NeutralScore float64
}

// DefaultConfig returns the production weights.
func DefaultConfig() Config {
	return Config{
		BudgetWeight:           0.55,
		StrategyWeight:         0.45,
		TrackRecordPerDeal:     0.5,
		TrackRecordCap:         5,
		CompatibilityThreshold: 60,
		NeutralScore:           50,
	}
}
