package database

import (
	"context"
	"fmt"
)

// Schema creates the record tables the engine reads. Every statement is
// idempotent so EnsureSchema can run on each start.
const Schema = `
CREATE TABLE IF NOT EXISTS properties (
	id                 BIGSERIAL PRIMARY KEY,
	address            TEXT NOT NULL,
	city               TEXT NOT NULL DEFAULT '',
	state              TEXT NOT NULL DEFAULT 'HI',
	zip_code           TEXT,
	parcel_key         TEXT,
	property_type      TEXT NOT NULL DEFAULT '',
	status             TEXT NOT NULL,
	priority           TEXT NOT NULL DEFAULT 'low',
	estimated_value    BIGINT,
	amount_owed        BIGINT,
	asking_price       BIGINT,
	contract_price     BIGINT,
	days_until_auction INTEGER,
	square_feet        INTEGER,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_properties_status ON properties(status);

CREATE TABLE IF NOT EXISTS contacts (
	id            BIGSERIAL PRIMARY KEY,
	property_id   BIGINT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
	name          TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	address       TEXT NOT NULL DEFAULT '',
	linkedin_url  TEXT NOT NULL DEFAULT '',
	facebook_url  TEXT NOT NULL DEFAULT '',
	contact_score INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS leads (
	id                 BIGSERIAL PRIMARY KEY,
	property_id        BIGINT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
	contact_id         BIGINT REFERENCES contacts(id) ON DELETE SET NULL,
	status             TEXT NOT NULL DEFAULT 'to_contact',
	priority           TEXT NOT NULL DEFAULT 'low',
	next_follow_up_date TIMESTAMPTZ,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS investors (
	id                 BIGSERIAL PRIMARY KEY,
	name               TEXT NOT NULL,
	email              TEXT NOT NULL DEFAULT '',
	company            TEXT NOT NULL DEFAULT '',
	status             TEXT NOT NULL DEFAULT 'active',
	min_budget         BIGINT,
	max_budget         BIGINT,
	preferred_islands  TEXT[] NOT NULL DEFAULT '{}',
	strategies         TEXT[] NOT NULL DEFAULT '{}',
	property_types     TEXT[] NOT NULL DEFAULT '{}',
	deals_completed    INTEGER NOT NULL DEFAULT 0,
	registered_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema applies Schema.
func (db *Database) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
