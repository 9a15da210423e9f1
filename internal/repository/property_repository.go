package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/leadrank/internal/database"
	"github.com/stwalsh4118/leadrank/internal/models"
)

// propertyColumns is the select list scanned by scanProperty. Callers alias
// the properties table as p.
const propertyColumns = `
	p.id,
	p.address,
	p.city,
	p.state,
	p.zip_code,
	p.parcel_key,
	p.property_type,
	p.status,
	p.priority,
	p.estimated_value,
	p.amount_owed,
	p.asking_price,
	p.contract_price,
	p.days_until_auction,
	p.square_feet,
	p.created_at,
	p.updated_at`

func propertyDest(p *models.Property) []any {
	return []any{
		&p.ID,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.ParcelKey,
		&p.PropertyType,
		&p.Status,
		&p.Priority,
		&p.EstimatedValue,
		&p.AmountOwed,
		&p.AskingPrice,
		&p.ContractPrice,
		&p.DaysUntilAuction,
		&p.SquareFeet,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}

// PropertyRepository defines property reads and priority writes.
type PropertyRepository interface {
	// ListByStatus returns up to limit properties with one of statuses and an
	// id greater than afterID, ordered by id. Pass the last id seen to page.
	ListByStatus(ctx context.Context, statuses []models.PropertyStatus, afterID int64, limit int) ([]models.Property, error)

	// UpdatePriority stores priority and reports whether the row changed.
	UpdatePriority(ctx context.Context, id int64, priority models.Priority) (bool, error)

	// EscalateUrgentLeads marks leads high priority when their property's
	// auction is at most maxDays away. It returns the number of leads changed.
	EscalateUrgentLeads(ctx context.Context, maxDays int) (int64, error)
}

type propertyRepository struct {
	db *database.Database
}

// NewPropertyRepository creates a new instance of PropertyRepository.
func NewPropertyRepository(db *database.Database) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) ListByStatus(ctx context.Context, statuses []models.PropertyStatus, afterID int64, limit int) ([]models.Property, error) {
	labels := make([]string, len(statuses))
	for i, s := range statuses {
		labels[i] = string(s)
	}

	query := `SELECT` + propertyColumns + `
		FROM properties p
		WHERE p.status = ANY($1) AND p.id > $2
		ORDER BY p.id
		LIMIT $3`

	rows, err := r.db.Pool.Query(ctx, query, labels, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties after id %d: %w", afterID, err)
	}

	properties, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Property, error) {
		var p models.Property
		err := row.Scan(propertyDest(&p)...)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan properties: %w", err)
	}
	return properties, nil
}

func (r *propertyRepository) UpdatePriority(ctx context.Context, id int64, priority models.Priority) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE properties
		SET priority = $2, updated_at = now()
		WHERE id = $1 AND priority <> $2`,
		id, string(priority),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update priority for property %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *propertyRepository) EscalateUrgentLeads(ctx context.Context, maxDays int) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE leads l
		SET priority = 'high'
		FROM properties p
		WHERE p.id = l.property_id
			AND p.days_until_auction IS NOT NULL
			AND p.days_until_auction BETWEEN 0 AND $1
			AND l.priority <> 'high'
			AND l.status NOT IN ('closed_won', 'closed_lost')`,
		maxDays,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to escalate urgent leads: %w", err)
	}
	return tag.RowsAffected(), nil
}
