package scoring

import (
	"github.com/stwalsh4118/leadrank/internal/models"
)

// Priority buckets a property for follow-up ordering:
// high when the auction is a week out, or a foreclosure within a month;
// medium for other foreclosures and tax liens above $10,000; low otherwise.
func Priority(p models.Property) models.Priority {
	days := -1
	if p.DaysUntilAuction != nil {
		days = *p.DaysUntilAuction
	}
	hasAuction := days >= 0

	switch {
	case hasAuction && days <= 7:
		return models.PriorityHigh
	case p.Status == models.PropertyStatusForeclosure && hasAuction && days <= 30:
		return models.PriorityHigh
	case p.Status == models.PropertyStatusForeclosure:
		return models.PriorityMedium
	case p.Status == models.PropertyStatusTaxDelinquent && p.AmountOwed != nil && *p.AmountOwed > 10000:
		return models.PriorityMedium
	}
	return models.PriorityLow
}
