package postgres

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS owners (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	address   TEXT NOT NULL,
	photo     TEXT NOT NULL DEFAULT '',
	birthday  DATE NOT NULL
);

CREATE TABLE IF NOT EXISTS properties (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	price_amount   DOUBLE PRECISION NOT NULL CHECK (price_amount >= 0),
	price_currency CHAR(3) NOT NULL,
	address        TEXT NOT NULL DEFAULT '',
	city           TEXT NOT NULL DEFAULT '',
	country        TEXT NOT NULL DEFAULT '',
	property_type  TEXT NOT NULL,
	bedrooms       INTEGER NOT NULL DEFAULT 0,
	bathrooms      INTEGER NOT NULL DEFAULT 0,
	area           DOUBLE PRECISION NOT NULL DEFAULT 0,
	area_unit      TEXT NOT NULL DEFAULT '',
	features       TEXT[],
	images         TEXT[],
	status         TEXT NOT NULL,
	owner_id       TEXT NOT NULL DEFAULT '',
	code_internal  TEXT NOT NULL DEFAULT '',
	year           INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_properties_owner_id ON properties (owner_id);
CREATE INDEX IF NOT EXISTS idx_properties_price_amount ON properties (price_amount);

CREATE TABLE IF NOT EXISTS property_images (
	id          TEXT PRIMARY KEY,
	property_id TEXT NOT NULL REFERENCES properties (id) ON DELETE CASCADE,
	file        TEXT NOT NULL,
	enabled     BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE INDEX IF NOT EXISTS idx_property_images_property_id ON property_images (property_id);

CREATE TABLE IF NOT EXISTS property_traces (
	id          TEXT PRIMARY KEY,
	property_id TEXT NOT NULL REFERENCES properties (id) ON DELETE CASCADE,
	date_sale   TIMESTAMPTZ NOT NULL,
	name        TEXT NOT NULL,
	value       DOUBLE PRECISION NOT NULL,
	tax         DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_property_traces_property_id ON property_traces (property_id);
`

// EnsureSchema создает таблицы mock API, если их еще нет.
func (a *PostgresStorageAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("PostgresStorageAdapter: failed to ensure schema: %w", err)
	}
	return nil
}
