package models

import (
	"time"
)

// LeadStatus is the position of a lead in the outreach pipeline.
type LeadStatus string

const (
	LeadStatusToContact      LeadStatus = "to_contact"
	LeadStatusInConversation LeadStatus = "in_conversation"
	LeadStatusAppointmentSet LeadStatus = "appointment_set"
	LeadStatusFollowUp       LeadStatus = "follow_up"
	LeadStatusClosedWon      LeadStatus = "closed_won"
	LeadStatusClosedLost     LeadStatus = "closed_lost"
)

// Lead links a property to a contact. Its lifecycle fields are context for
// callers and do not feed the scoring arithmetic.
type Lead struct {
	CreatedAt        time.Time  `json:"createdAt"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate,omitempty"`
	Status           LeadStatus `json:"status"`
	Priority         Priority   `json:"priority"`
	ID               int64      `json:"id"`
	PropertyID       int64      `json:"propertyId"`
	ContactID        int64      `json:"contactId"`
}
