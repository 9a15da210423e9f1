package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stwalsh4118/leadrank/internal/config"
	"github.com/stwalsh4118/leadrank/internal/database"
	"github.com/stwalsh4118/leadrank/internal/models"
)

func getTestConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		Name:     getEnvOrDefault("DB_NAME", "leadrank"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		PoolMin:  1,
		PoolMax:  4,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupTestDB connects, applies the schema and truncates every table.
func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.NewPostgresPool(ctx, getTestConfig())
	if err != nil {
		t.Skipf("Skipping integration test, database unavailable: %v", err)
	}
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx))
	_, err = db.Pool.Exec(ctx, `TRUNCATE leads, contacts, investors, properties RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return db
}

func insertProperty(t *testing.T, db *database.Database, status models.PropertyStatus, days *int, owed *int64) int64 {
	t.Helper()
	var id int64
	err := db.Pool.QueryRow(context.Background(), `
		INSERT INTO properties (address, city, parcel_key, property_type, status, estimated_value, amount_owed, days_until_auction)
		VALUES ('91-1001 Keaunui Dr, Ewa Beach', 'Ewa Beach', '(1) 9-1-017:045', 'Single Family', $1, 750000, $2, $3)
		RETURNING id`,
		string(status), owed, days,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestLeadRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewLeadRepository(db)

	propertyID := insertProperty(t, db, models.PropertyStatusForeclosure, models.Ptr(12), models.Ptr(int64(300000)))

	var contactID, leadID int64
	require.NoError(t, db.Pool.QueryRow(ctx, `
		INSERT INTO contacts (property_id, name, email, phone) VALUES ($1, 'Leilani Akana', 'la@example.com', '808-555-0199')
		RETURNING id`, propertyID).Scan(&contactID))
	require.NoError(t, db.Pool.QueryRow(ctx, `
		INSERT INTO leads (property_id, contact_id) VALUES ($1, $2) RETURNING id`, propertyID, contactID).Scan(&leadID))

	rec, err := repo.FindByID(ctx, leadID)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, leadID, rec.Lead.ID)
	assert.Equal(t, models.LeadStatusToContact, rec.Lead.Status)
	assert.Equal(t, propertyID, rec.Property.ID)
	assert.Equal(t, models.PropertyTypeSingleFamily, rec.Property.PropertyType)
	require.NotNil(t, rec.Property.DaysUntilAuction)
	assert.Equal(t, 12, *rec.Property.DaysUntilAuction)
	assert.Nil(t, rec.Property.AskingPrice)
	assert.Equal(t, "(1) 9-1-017:045", rec.Property.ParcelText())
	assert.Equal(t, "Leilani Akana", rec.Contact.Name)
	assert.Equal(t, propertyID, rec.Contact.PropertyID)
}

func TestLeadRepository_WithoutContact(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	propertyID := insertProperty(t, db, models.PropertyStatusAuction, nil, nil)
	var leadID int64
	require.NoError(t, db.Pool.QueryRow(ctx, `INSERT INTO leads (property_id) VALUES ($1) RETURNING id`, propertyID).Scan(&leadID))

	rec, err := NewLeadRepository(db).FindByID(ctx, leadID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Zero(t, rec.Lead.ContactID)
	assert.Equal(t, models.Contact{}, rec.Contact)
}

func TestLeadRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)

	rec, err := NewLeadRepository(db).FindByID(context.Background(), 999999)

	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestInvestorRepository_List(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO investors (name, status, min_budget, max_budget, preferred_islands, strategies, property_types, deals_completed)
		VALUES
			('Aloha Capital', 'active', 300000, 900000, '{Oahu,Maui}', '{"Fix & Flip"}', '{"Single Family"}', 12),
			('Quiet Money', 'inactive', NULL, NULL, '{}', '{}', '{}', 0)`)
	require.NoError(t, err)

	investors, err := NewInvestorRepository(db).List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, investors, 2)

	assert.Equal(t, "Aloha Capital", investors[0].Name)
	assert.True(t, investors[0].IsActive())
	assert.Equal(t, []string{"Oahu", "Maui"}, investors[0].PreferredIslands)
	require.NotNil(t, investors[0].MaxBudget)
	assert.Equal(t, int64(900000), *investors[0].MaxBudget)
	assert.Nil(t, investors[1].MinBudget)
	assert.Empty(t, investors[1].Strategies)

	limited, err := NewInvestorRepository(db).List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestInvestorRepository_Empty(t *testing.T) {
	db := setupTestDB(t)

	investors, err := NewInvestorRepository(db).List(context.Background(), 10)

	require.NoError(t, err)
	assert.NotNil(t, investors)
	assert.Empty(t, investors)
}

func TestPropertyRepository_ListAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPropertyRepository(db)

	first := insertProperty(t, db, models.PropertyStatusForeclosure, models.Ptr(5), nil)
	second := insertProperty(t, db, models.PropertyStatusTaxDelinquent, nil, models.Ptr(int64(20000)))
	insertProperty(t, db, "sold", nil, nil)

	page, err := repo.ListByStatus(ctx, models.DistressedStatuses, 0, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first, page[0].ID)

	page, err = repo.ListByStatus(ctx, models.DistressedStatuses, first, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, second, page[0].ID)

	changed, err := repo.UpdatePriority(ctx, first, models.PriorityHigh)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.UpdatePriority(ctx, first, models.PriorityHigh)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestPropertyRepository_EscalateUrgentLeads(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	urgent := insertProperty(t, db, models.PropertyStatusAuction, models.Ptr(1), nil)
	later := insertProperty(t, db, models.PropertyStatusAuction, models.Ptr(20), nil)
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO leads (property_id, status) VALUES ($1, 'to_contact'), ($1, 'closed_lost'), ($2, 'to_contact')`,
		urgent, later)
	require.NoError(t, err)

	n, err := NewPropertyRepository(db).EscalateUrgentLeads(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
