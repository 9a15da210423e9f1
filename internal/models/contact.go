package models

import (
	"time"
)

// Contact is the owner or occupant reachable for a property.
// Blank strings mean the field is unknown.
type Contact struct {
	CreatedAt   time.Time `json:"createdAt"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	LinkedInURL string    `json:"linkedinUrl,omitempty"`
	FacebookURL string    `json:"facebookUrl,omitempty"`
	// Completeness is the stored 0-100 indicator written by enrichment jobs.
	Completeness int   `json:"contactScore"`
	ID           int64 `json:"id"`
	PropertyID   int64 `json:"propertyId"`
}
