package models

import (
	"time"
)

// InvestorStatus marks whether an investor is currently buying.
type InvestorStatus string

const (
	InvestorStatusActive   InvestorStatus = "active"
	InvestorStatusInactive InvestorStatus = "inactive"
)

// Investor is a buyer profile. Empty preference sets mean "no restriction";
// a nil or zero budget bound means unbounded on that side.
type Investor struct {
	RegisteredAt     time.Time      `json:"registeredAt"`
	MinBudget        *int64         `json:"minBudget,omitempty"`
	MaxBudget        *int64         `json:"maxBudget,omitempty"`
	Name             string         `json:"name"`
	Email            string         `json:"email,omitempty"`
	Company          string         `json:"company,omitempty"`
	Status           InvestorStatus `json:"status"`
	PreferredIslands []string       `json:"preferredIslands"`
	Strategies       []string       `json:"strategies"`
	PropertyTypes    []string       `json:"propertyTypes"`
	DealsCompleted   int            `json:"dealsCompleted"`
	ID               int64          `json:"id"`
}

// IsActive reports whether the investor is accepting deals.
func (i Investor) IsActive() bool {
	return i.Status == InvestorStatusActive
}
