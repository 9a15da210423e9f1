package scoring

import (
	"strings"

	"github.com/stwalsh4118/leadrank/internal/models"
)

// MaxScore caps every sub-score and the total.
const MaxScore = 100

// EquityBand awards Score when the equity ratio is at least MinRatio.
type EquityBand struct {
	MinRatio float64
	Score    int
}

// UrgencyBand awards Score when the auction is at most MaxDays away.
// An empty Label falls back to the "N days until auction" wording.
type UrgencyBand struct {
	MaxDays int
	Score   int
	Label   string
}

// ContactPoints are the additive points per known contact field.
type ContactPoints struct {
	Name     int
	Email    int
	Phone    int
	Address  int
	LinkedIn int
	Facebook int
}

// CityTier awards Bonus when the city contains Keyword.
type CityTier struct {
	Keyword string
	Bonus   int
}

// SizeBand awards Bonus when square footage is strictly above MinSquareFeet.
type SizeBand struct {
	MinSquareFeet int
	Bonus         int
}

// Config holds every threshold the scorer uses. Bands are evaluated in
// slice order and the first match wins, so they must be listed from the
// most to the least favourable.
type Config struct {
	EquityBands    []EquityBand
	EquityFloor    int
	UnknownEquity  int
	UrgencyBands   []UrgencyBand
	UrgencyFloor   int
	UnknownUrgency int
	Contact        ContactPoints
	MarketBase     int
	TypeBonus      map[models.PropertyType]int
	CityTiers      []CityTier
	CityFallback   int
	SizeBands      []SizeBand
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		EquityBands: []EquityBand{
			{MinRatio: 0.50, Score: 100},
			{MinRatio: 0.30, Score: 80},
			{MinRatio: 0.15, Score: 60},
			{MinRatio: 0.05, Score: 40},
		},
		EquityFloor:   20,
		UnknownEquity: 30,
		UrgencyBands: []UrgencyBand{
			{MaxDays: 7, Score: 100, Label: "URGENT: Auction in 1 week"},
			{MaxDays: 14, Score: 80, Label: "HIGH: Auction in 2 weeks"},
			{MaxDays: 30, Score: 60, Label: "MEDIUM: Auction in 1 month"},
			{MaxDays: 60, Score: 40},
		},
		UrgencyFloor:   20,
		UnknownUrgency: 50,
		Contact: ContactPoints{
			Name:     20,
			Email:    25,
			Phone:    25,
			Address:  15,
			LinkedIn: 10,
			Facebook: 5,
		},
		MarketBase: 50,
		TypeBonus: map[models.PropertyType]int{
			models.PropertyTypeMultifamily:  20,
			models.PropertyTypeSingleFamily: 15,
			models.PropertyTypeCondo:        10,
		},
		CityTiers: []CityTier{
			{Keyword: "honolulu", Bonus: 20},
			{Keyword: "kailua", Bonus: 15},
		},
		CityFallback: 10,
		SizeBands: []SizeBand{
			{MinSquareFeet: 2000, Bonus: 10},
			{MinSquareFeet: 1200, Bonus: 5},
		},
	}
}

// clone deep-copies cfg so a Scorer never shares slices or maps with its caller.
func (cfg Config) clone() Config {
	out := cfg
	out.EquityBands = append([]EquityBand(nil), cfg.EquityBands...)
	out.UrgencyBands = append([]UrgencyBand(nil), cfg.UrgencyBands...)
	out.CityTiers = make([]CityTier, len(cfg.CityTiers))
	for i, tier := range cfg.CityTiers {
		out.CityTiers[i] = CityTier{Keyword: strings.ToLower(tier.Keyword), Bonus: tier.Bonus}
	}
	out.SizeBands = append([]SizeBand(nil), cfg.SizeBands...)
	out.TypeBonus = make(map[models.PropertyType]int, len(cfg.TypeBonus))
	for k, v := range cfg.TypeBonus {
		out.TypeBonus[k] = v
	}
	return out
}
