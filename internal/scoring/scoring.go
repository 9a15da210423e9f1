// Package scoring turns a property, its contact and its lead into a 0-100
// priority score with a one-line explanation per component.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/stwalsh4118/leadrank/internal/models"
)

// LeadScore is the derived score for one lead. It has no identity of its own
// and is recomputed on demand.
type LeadScore struct {
	Total     int       `json:"total_score"`
	Equity    int       `json:"equity_score"`
	Urgency   int       `json:"urgency_score"`
	Contact   int       `json:"contact_score"`
	Market    int       `json:"market_score"`
	Breakdown Breakdown `json:"breakdown"`
}

// Breakdown explains each component score in one line.
type Breakdown struct {
	Equity  string `json:"equity"`
	Urgency string `json:"urgency"`
	Contact string `json:"contact"`
	Market  string `json:"market"`
}

// Scorer computes lead scores from an immutable Config. It is safe for
// concurrent use.
type Scorer struct {
	cfg Config
}

// New returns a Scorer using a private copy of cfg.
func New(cfg Config) *Scorer {
	return &Scorer{cfg: cfg.clone()}
}

// Default returns a Scorer with DefaultConfig.
func Default() *Scorer {
	return New(DefaultConfig())
}

// Score combines the four sub-scores into their rounded mean. The lead is
// accepted for symmetry with callers; none of its fields feed the arithmetic.
// Missing inputs degrade to neutral defaults, so Score never fails.
func (s *Scorer) Score(p models.Property, c models.Contact, _ models.Lead) LeadScore {
	equity, equityNote := s.Equity(p)
	urgency, urgencyNote := s.Urgency(p)
	contact, contactNote := s.Contact(c)
	market, marketNote := s.Market(p)

	total := int(math.Round(float64(equity+urgency+contact+market) / 4))

	return LeadScore{
		Total:   total,
		Equity:  equity,
		Urgency: urgency,
		Contact: contact,
		Market:  market,
		Breakdown: Breakdown{
			Equity:  equityNote,
			Urgency: urgencyNote,
			Contact: contactNote,
			Market:  marketNote,
		},
	}
}

// Equity scores the share of value not encumbered by debt.
// A zero AmountOwed is a known value meaning the property is owned free and
// clear, so it earns the top band rather than the unknown-equity default.
func (s *Scorer) Equity(p models.Property) (int, string) {
	if p.EstimatedValue == nil || *p.EstimatedValue <= 0 || p.AmountOwed == nil {
		return s.cfg.UnknownEquity, "Unknown equity position"
	}

	value := *p.EstimatedValue
	equity := value - *p.AmountOwed
	ratio := float64(equity) / float64(value)

	score := s.cfg.EquityFloor
	for _, band := range s.cfg.EquityBands {
		if ratio >= band.MinRatio {
			score = band.Score
			break
		}
	}

	return clamp(score), fmt.Sprintf("%s equity (%d%%)", formatDollars(equity), int(math.Round(ratio*100)))
}

// Urgency scores how soon the property goes to auction.
// Zero days means the auction is today and scores as URGENT; only a nil
// DaysUntilAuction counts as "No auction date set".
func (s *Scorer) Urgency(p models.Property) (int, string) {
	if p.DaysUntilAuction == nil {
		return s.cfg.UnknownUrgency, "No auction date set"
	}

	days := *p.DaysUntilAuction
	lowNote := fmt.Sprintf("LOW: %d days until auction", days)
	for _, band := range s.cfg.UrgencyBands {
		if days <= band.MaxDays {
			if band.Label == "" {
				return clamp(band.Score), lowNote
			}
			return clamp(band.Score), band.Label
		}
	}
	return clamp(s.cfg.UrgencyFloor), lowNote
}

// Contact adds points for each known contact channel, capped at MaxScore.
// The label follows the stored Completeness indicator when enrichment has set
// one, and the computed score otherwise.
func (s *Scorer) Contact(c models.Contact) (int, string) {
	pts := s.cfg.Contact
	score := 0
	for _, f := range []struct {
		value  string
		points int
	}{
		{c.Name, pts.Name},
		{c.Email, pts.Email},
		{c.Phone, pts.Phone},
		{c.Address, pts.Address},
		{c.LinkedInURL, pts.LinkedIn},
		{c.FacebookURL, pts.Facebook},
	} {
		if strings.TrimSpace(f.value) != "" {
			score += f.points
		}
	}
	score = clamp(score)
	if c.Completeness > 0 {
		return score, contactLabel(c.Completeness)
	}
	return score, contactLabel(score)
}

// Market scores desirability from type, city tier and size.
func (s *Scorer) Market(p models.Property) (int, string) {
	score := s.cfg.MarketBase
	score += s.cfg.TypeBonus[p.PropertyType]
	score += s.cityBonus(p.City)
	if p.SquareFeet != nil {
		for _, band := range s.cfg.SizeBands {
			if *p.SquareFeet > band.MinSquareFeet {
				score += band.Bonus
				break
			}
		}
	}

	propertyType := string(p.PropertyType)
	if propertyType == "" {
		propertyType = "Unknown"
	}
	city := strings.TrimSpace(p.City)
	if city == "" {
		city = "Unknown location"
	}

	return clamp(score), fmt.Sprintf("%s in %s", propertyType, city)
}

// cityBonus applies at most one tier; the first matching tier wins.
func (s *Scorer) cityBonus(city string) int {
	lowered := strings.ToLower(city)
	if lowered != "" {
		for _, tier := range s.cfg.CityTiers {
			if strings.Contains(lowered, tier.Keyword) {
				return tier.Bonus
			}
		}
	}
	return s.cfg.CityFallback
}

func contactLabel(score int) string {
	switch {
	case score >= 80:
		return "Complete contact info"
	case score >= 60:
		return "Good contact info"
	case score >= 40:
		return "Partial contact info"
	default:
		return "Limited contact info"
	}
}

func formatDollars(amount int64) string {
	if amount < 0 {
		return "-$" + humanize.Comma(-amount)
	}
	return "$" + humanize.Comma(amount)
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
