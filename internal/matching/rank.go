package matching

import (
	"math"
	"sort"

	"github.com/stwalsh4118/leadrank/internal/models"
	"github.com/stwalsh4118/leadrank/internal/scoring"
)

// Components are the soft-preference scores behind a composite score.
type Components struct {
	BudgetFit       float64 `json:"budget_fit"`
	StrategyOverlap float64 `json:"strategy_overlap"`
	TrackRecord     float64 `json:"track_record"`
}

// Ranked is one accepted investor with its position in the ranking.
type Ranked struct {
	Investor   models.Investor
	Index      int
	Rank       int
	Score      float64
	Components Components
}

// Rank orders candidates that already passed Filter. Ties on the composite
// score go to more completed deals, then earlier registration, then input
// position, so the order is stable for identical input.
func (m *Matcher) Rank(p models.Property, score scoring.LeadScore, candidates []models.Investor) []Ranked {
	ranked := make([]Ranked, len(candidates))
	for i, inv := range candidates {
		components := Components{
			BudgetFit:       m.budgetFit(inv, p),
			StrategyOverlap: m.strategyOverlap(inv.Strategies, score),
			TrackRecord:     m.trackRecord(inv.DealsCompleted),
		}
		ranked[i] = Ranked{
			Investor:   inv,
			Index:      i,
			Score:      m.composite(components),
			Components: components,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Investor.DealsCompleted != b.Investor.DealsCompleted {
			return a.Investor.DealsCompleted > b.Investor.DealsCompleted
		}
		ta, tb := a.Investor.RegisteredAt, b.Investor.RegisteredAt
		if !ta.Equal(tb) {
			switch {
			case ta.IsZero():
				return false
			case tb.IsZero():
				return true
			}
			return ta.Before(tb)
		}
		return a.Index < b.Index
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func (m *Matcher) composite(c Components) float64 {
	total := m.cfg.BudgetWeight*c.BudgetFit + m.cfg.StrategyWeight*c.StrategyOverlap + c.TrackRecord
	total = math.Max(0, math.Min(100, total))
	return math.Round(total*100) / 100
}

// budgetFit is 100 at the midpoint of a two-sided budget and falls linearly
// to 0 at either bound.
func (m *Matcher) budgetFit(inv models.Investor, p models.Property) float64 {
	lo, hi, hasLo, hasHi := bounds(inv)
	price, known := p.Price()
	if !hasLo || !hasHi || !known {
		return m.cfg.NeutralScore
	}
	if hi <= lo {
		return 100
	}

	mid := (float64(lo) + float64(hi)) / 2
	halfWidth := (float64(hi) - float64(lo)) / 2
	fit := 100 * (1 - math.Abs(float64(price)-mid)/halfWidth)
	return math.Max(0, math.Min(100, fit))
}

// strategyOverlap is the share of declared strategies the property supports.
func (m *Matcher) strategyOverlap(strategies []string, score scoring.LeadScore) float64 {
	declared, compatible := 0, 0
	for _, s := range strategies {
		if isBlank(s) {
			continue
		}
		declared++
		if m.compatible(KindOf(s), score) {
			compatible++
		}
	}
	if declared == 0 {
		return m.cfg.NeutralScore
	}
	return 100 * float64(compatible) / float64(declared)
}

func (m *Matcher) compatible(kind StrategyKind, score scoring.LeadScore) bool {
	switch kind {
	case StrategyQuickTurn:
		return score.Urgency >= m.cfg.CompatibilityThreshold
	case StrategyHold:
		return score.Equity >= m.cfg.CompatibilityThreshold
	}
	return false
}

func (m *Matcher) trackRecord(deals int) float64 {
	if deals <= 0 {
		return 0
	}
	return math.Min(float64(deals)*m.cfg.TrackRecordPerDeal, m.cfg.TrackRecordCap)
}
