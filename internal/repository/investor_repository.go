package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/leadrank/internal/database"
	"github.com/stwalsh4118/leadrank/internal/models"
)

// InvestorRepository defines the interface for investor data access operations.
type InvestorRepository interface {
	// List returns up to limit investors ordered by id, active or not.
	// Returns an empty slice when there are none.
	List(ctx context.Context, limit int) ([]models.Investor, error)
}

type investorRepository struct {
	db *database.Database
}

// NewInvestorRepository creates a new instance of InvestorRepository.
func NewInvestorRepository(db *database.Database) InvestorRepository {
	return &investorRepository{db: db}
}

func (r *investorRepository) List(ctx context.Context, limit int) ([]models.Investor, error) {
	query := `
		SELECT
			id,
			name,
			email,
			company,
			status,
			min_budget,
			max_budget,
			preferred_islands,
			strategies,
			property_types,
			deals_completed,
			registered_at
		FROM investors
		ORDER BY id
		LIMIT $1`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list investors: %w", err)
	}

	investors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Investor, error) {
		var inv models.Investor
		err := row.Scan(
			&inv.ID,
			&inv.Name,
			&inv.Email,
			&inv.Company,
			&inv.Status,
			&inv.MinBudget,
			&inv.MaxBudget,
			&inv.PreferredIslands,
			&inv.Strategies,
			&inv.PropertyTypes,
			&inv.DealsCompleted,
			&inv.RegisteredAt,
		)
		return inv, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan investors: %w", err)
	}
	return investors, nil
}
