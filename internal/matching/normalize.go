package matching

import (
	"strings"

	"github.com/stwalsh4118/leadrank/internal/models"
)

var propertyTypeKeywords = []struct {
	propertyType models.PropertyType
	keywords     []string
}{
	{models.PropertyTypeMultifamily, []string{"multi", "duplex", "triplex", "fourplex"}},
	{models.PropertyTypeCondo, []string{"condo"}},
	{models.PropertyTypeSingleFamily, []string{"single", "sfr", "house"}},
	{models.PropertyTypeCommercial, []string{"commercial", "retail"}},
	{models.PropertyTypeAgricultural, []string{"farm", "agricultural"}},
	{models.PropertyTypeLand, []string{"land", "vacant"}},
}

// NormalizePropertyType maps a free-form type label to a PropertyType. An
// exact enum label wins; otherwise the first keyword entry that matches.
// "land" is checked last so "Agricultural Land" stays Agricultural.
// Labels that match no keyword are returned trimmed and unchanged.
func NormalizePropertyType(label string) models.PropertyType {
	trimmed := strings.TrimSpace(label)
	for _, entry := range propertyTypeKeywords {
		if strings.EqualFold(trimmed, string(entry.propertyType)) {
			return entry.propertyType
		}
	}

	lowered := strings.ToLower(trimmed)
	for _, entry := range propertyTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lowered, kw) {
				return entry.propertyType
			}
		}
	}
	return models.PropertyType(trimmed)
}

// StrategyKind groups exit strategies by what they need from a property.
type StrategyKind int

const (
	StrategyUnknown StrategyKind = iota
	// StrategyQuickTurn strategies need a motivated seller.
	StrategyQuickTurn
	// StrategyHold strategies need equity.
	StrategyHold
)

var strategyKinds = map[string]StrategyKind{
	"fix & flip":    StrategyQuickTurn,
	"fix and flip":  StrategyQuickTurn,
	"fix-and-flip":  StrategyQuickTurn,
	"flipper":       StrategyQuickTurn,
	"wholesale":     StrategyQuickTurn,
	"wholesaler":    StrategyQuickTurn,
	"luxury rehab":  StrategyQuickTurn,
	"buy & hold":    StrategyHold,
	"buy and hold":  StrategyHold,
	"brrrr":         StrategyHold,
	"multifamily":   StrategyHold,
	"multi-family":  StrategyHold,
	"rental":        StrategyHold,
	"rentals":       StrategyHold,
	"note buyer":    StrategyHold,
	"note investor": StrategyHold,
}

// KindOf classifies a strategy label, case-insensitively.
func KindOf(strategy string) StrategyKind {
	return strategyKinds[strings.ToLower(strings.TrimSpace(strategy))]
}
