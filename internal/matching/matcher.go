// Package matching pairs investors with a property in two stages: hard
// constraints reject, then soft preferences rank whoever is left.
package matching

import (
	"fmt"
	"strings"

	"github.com/stwalsh4118/leadrank/internal/classify"
	"github.com/stwalsh4118/leadrank/internal/models"
	"github.com/stwalsh4118/leadrank/internal/scoring"
)

// ResultStatus tells whether an investor survived the filter stage.
type ResultStatus string

const (
	StatusAccepted ResultStatus = "accepted"
	StatusRejected ResultStatus = "rejected"
)

// Exit strategies suggested for a property.
const (
	StrategyFixAndFlip = "Fix & Flip"
	StrategyBuyAndHold = "Buy & Hold"
	StrategyBRRRR      = "BRRRR"
)

// MatchResult is the outcome for one investor. Accepted results carry a rank
// and reasons; rejected results carry failures and a zero score.
type MatchResult struct {
	InvestorID        int64        `json:"investor_id"`
	InvestorName      string       `json:"investor_name"`
	Status            ResultStatus `json:"status"`
	Rank              int          `json:"rank,omitempty"`
	Score             float64      `json:"score"`
	Components        Components   `json:"components"`
	Reasons           []string     `json:"reasons,omitempty"`
	Failures          []Failure    `json:"failures,omitempty"`
	SuggestedStrategy string       `json:"suggested_strategy"`
}

// Accepted reports whether the investor passed every hard constraint.
func (r MatchResult) Accepted() bool {
	return r.Status == StatusAccepted
}

// Matcher runs the filter and rank stages. It is safe for concurrent use.
type Matcher struct {
	cfg Config
}

// New returns a Matcher with a copy of cfg.
func New(cfg Config) *Matcher {
	return &Matcher{cfg: cfg}
}

// Default returns a Matcher with DefaultConfig.
func Default() *Matcher {
	return New(DefaultConfig())
}

// Match filters and ranks investors for one property. Accepted investors come
// first in rank order, followed by rejected investors in input order. The
// result is never nil.
func (m *Matcher) Match(p models.Property, cls classify.Classification, score scoring.LeadScore, investors []models.Investor) []MatchResult {
	results := make([]MatchResult, 0, len(investors))
	strategy := SuggestStrategy(p)

	var (
		accepted []models.Investor
		rejected []MatchResult
	)
	for _, inv := range investors {
		verdict := Filter(inv, p, cls.Island)
		if verdict.Accepted {
			accepted = append(accepted, inv)
			continue
		}
		rejected = append(rejected, MatchResult{
			InvestorID:        inv.ID,
			InvestorName:      inv.Name,
			Status:            StatusRejected,
			Failures:          verdict.Failures,
			SuggestedStrategy: strategy,
		})
	}

	for _, r := range m.Rank(p, score, accepted) {
		results = append(results, MatchResult{
			InvestorID:        r.Investor.ID,
			InvestorName:      r.Investor.Name,
			Status:            StatusAccepted,
			Rank:              r.Rank,
			Score:             r.Score,
			Components:        r.Components,
			Reasons:           m.reasons(r.Investor, p, cls, score),
			SuggestedStrategy: strategy,
		})
	}
	return append(results, rejected...)
}

func (m *Matcher) reasons(inv models.Investor, p models.Property, cls classify.Classification, score scoring.LeadScore) []string {
	var reasons []string

	if price, ok := p.Price(); ok {
		if _, _, hasLo, hasHi := bounds(inv); hasLo || hasHi {
			reasons = append(reasons, "Price in range: "+dollars(price))
		}
	}
	if len(inv.PreferredIslands) > 0 {
		reasons = append(reasons, fmt.Sprintf("Location match: %s", cls.Island))
	}
	if len(inv.PropertyTypes) > 0 {
		reasons = append(reasons, fmt.Sprintf("Property type match: %s", NormalizePropertyType(string(p.PropertyType))))
	}

	var fits []string
	for _, s := range inv.Strategies {
		if !isBlank(s) && m.compatible(KindOf(s), score) {
			fits = append(fits, strings.TrimSpace(s))
		}
	}
	if len(fits) > 0 {
		reasons = append(reasons, "Strategy match: "+strings.Join(fits, ", "))
	}

	switch {
	case inv.DealsCompleted == 1:
		reasons = append(reasons, "1 deal completed")
	case inv.DealsCompleted > 1:
		reasons = append(reasons, fmt.Sprintf("%d deals completed", inv.DealsCompleted))
	}
	return reasons
}

// SuggestStrategy proposes an exit strategy from value, type and leverage.
func SuggestStrategy(p models.Property) string {
	value := int64(0)
	if p.EstimatedValue != nil {
		value = *p.EstimatedValue
	}

	switch {
	case value > 800000:
		return StrategyFixAndFlip
	case NormalizePropertyType(string(p.PropertyType)) == models.PropertyTypeMultifamily:
		return StrategyBuyAndHold
	case value > 0 && p.AmountOwed != nil && float64(*p.AmountOwed) < float64(value)*0.7:
		return StrategyBRRRR
	}
	return StrategyBuyAndHold
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
