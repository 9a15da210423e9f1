package outreach

import (
	"time"

	"github.com/google/uuid"

	"github.com/stwalsh4118/leadrank/internal/matching"
)

// Message asks the outreach pipeline to contact one investor about one lead.
type Message struct {
	CreatedAt         time.Time `json:"created_at"`
	DispatchID        string    `json:"dispatch_id"`
	RequestID         string    `json:"request_id,omitempty"`
	InvestorName      string    `json:"investor_name"`
	SuggestedStrategy string    `json:"suggested_strategy"`
	Reasons           []string  `json:"reasons"`
	MatchScore        float64   `json:"match_score"`
	LeadID            int64     `json:"lead_id"`
	PropertyID        int64     `json:"property_id"`
	InvestorID        int64     `json:"investor_id"`
	Rank              int       `json:"rank"`
	LeadScore         int       `json:"lead_score"`
}

// Dispatch groups the messages produced for one lead.
type Dispatch struct {
	ID       string    `json:"dispatch_id"`
	Messages []Message `json:"messages"`
}

// NewDispatch builds one message per accepted match. Rejected results are
// skipped. All messages share a freshly generated dispatch id.
func NewDispatch(leadID, propertyID int64, leadScore int, results []matching.MatchResult, requestID string, now time.Time) Dispatch {
	d := Dispatch{ID: uuid.NewString(), Messages: []Message{}}
	for _, r := range results {
		if !r.Accepted() {
			continue
		}
		d.Messages = append(d.Messages, Message{
			CreatedAt:         now,
			DispatchID:        d.ID,
			RequestID:         requestID,
			InvestorName:      r.InvestorName,
			SuggestedStrategy: r.SuggestedStrategy,
			Reasons:           r.Reasons,
			MatchScore:        r.Score,
			LeadID:            leadID,
			PropertyID:        propertyID,
			InvestorID:        r.InvestorID,
			Rank:              r.Rank,
			LeadScore:         leadScore,
		})
	}
	return d
}
