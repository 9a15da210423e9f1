package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/leadrank/internal/database"
	"github.com/stwalsh4118/leadrank/internal/models"
)

// LeadRecord is a lead with the property and contact it links.
type LeadRecord struct {
	Lead     models.Lead
	Property models.Property
	Contact  models.Contact
}

// LeadRepository defines the interface for lead data access operations.
type LeadRepository interface {
	// FindByID loads a lead with its property and contact.
	// Returns nil, nil if no lead is found (not an error).
	// A lead without a contact comes back with a zero Contact.
	FindByID(ctx context.Context, id int64) (*LeadRecord, error)
}

type leadRepository struct {
	db *database.Database
}

// NewLeadRepository creates a new instance of LeadRepository.
func NewLeadRepository(db *database.Database) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) FindByID(ctx context.Context, id int64) (*LeadRecord, error) {
	query := `
		SELECT
			l.id,
			l.property_id,
			COALESCE(l.contact_id, 0),
			l.status,
			l.priority,
			l.next_follow_up_date,
			l.created_at,` + propertyColumns + `,
			COALESCE(c.id, 0),
			COALESCE(c.name, ''),
			COALESCE(c.email, ''),
			COALESCE(c.phone, ''),
			COALESCE(c.address, ''),
			COALESCE(c.linkedin_url, ''),
			COALESCE(c.facebook_url, ''),
			COALESCE(c.contact_score, 0),
			c.created_at
		FROM leads l
		JOIN properties p ON p.id = l.property_id
		LEFT JOIN contacts c ON c.id = l.contact_id
		WHERE l.id = $1`

	var rec LeadRecord
	var contactCreated *time.Time

	dest := []any{
		&rec.Lead.ID,
		&rec.Lead.PropertyID,
		&rec.Lead.ContactID,
		&rec.Lead.Status,
		&rec.Lead.Priority,
		&rec.Lead.NextFollowUpDate,
		&rec.Lead.CreatedAt,
	}
	dest = append(dest, propertyDest(&rec.Property)...)
	dest = append(dest,
		&rec.Contact.ID,
		&rec.Contact.Name,
		&rec.Contact.Email,
		&rec.Contact.Phone,
		&rec.Contact.Address,
		&rec.Contact.LinkedInURL,
		&rec.Contact.FacebookURL,
		&rec.Contact.Completeness,
		&contactCreated,
	)

	if err := r.db.Pool.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query lead %d: %w", id, err)
	}

	if contactCreated != nil {
		rec.Contact.CreatedAt = *contactCreated
		rec.Contact.PropertyID = rec.Property.ID
	}
	return &rec, nil
}
