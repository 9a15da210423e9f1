package matching

import (
	"fmt"
	"math"
)

// Summary aggregates accepted matches across one or more properties.
type Summary struct {
	TotalMatches      int            `json:"total_matches"`
	MatchesByInvestor map[string]int `json:"matches_by_investor"`
	AverageScore      float64        `json:"average_score"`
}

// Summarize counts accepted results. Investors are keyed as "Name (id)".
func Summarize(results []MatchResult) Summary {
	summary := Summary{MatchesByInvestor: make(map[string]int)}

	total := 0.0
	for _, r := range results {
		if !r.Accepted() {
			continue
		}
		summary.TotalMatches++
		summary.MatchesByInvestor[fmt.Sprintf("%s (%d)", r.InvestorName, r.InvestorID)]++
		total += r.Score
	}

	if summary.TotalMatches > 0 {
		summary.AverageScore = math.Round(total/float64(summary.TotalMatches)*100) / 100
	}
	return summary
}
