package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/port"
)

// Seed создает схему, очищает таблицы и загружает набор данных через COPY.
func (a *PostgresStorageAdapter) Seed(ctx context.Context, data port.Dataset) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresStorageAdapter",
		"method":    "Seed",
	})

	if err := a.EnsureSchema(ctx); err != nil {
		return err
	}

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE property_traces, property_images, properties, owners"); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	ownerRows := make([][]interface{}, 0, len(data.Owners))
	for _, o := range data.Owners {
		ownerRows = append(ownerRows, []interface{}{o.ID, o.Name, o.Address, o.Photo, o.Birthday})
	}
	propertyRows := make([][]interface{}, 0, len(data.Properties))
	for _, p := range data.Properties {
		propertyRows = append(propertyRows, propertyArgs(p))
	}
	imageRows := make([][]interface{}, 0, len(data.Images))
	for _, img := range data.Images {
		imageRows = append(imageRows, []interface{}{img.ID, img.PropertyID, img.File, img.Enabled})
	}
	traceRows := make([][]interface{}, 0, len(data.Traces))
	for _, t := range data.Traces {
		traceRows = append(traceRows, []interface{}{t.ID, t.PropertyID, t.DateSale, t.Name, t.Value, t.Tax})
	}

	copies := []struct {
		table   string
		columns []string
		rows    [][]interface{}
	}{
		{"owners", []string{"id", "name", "address", "photo", "birthday"}, ownerRows},
		{"properties", propertyColumnList, propertyRows},
		{"property_images", []string{"id", "property_id", "file", "enabled"}, imageRows},
		{"property_traces", []string{"id", "property_id", "date_sale", "name", "value", "tax"}, traceRows},
	}
	for _, c := range copies {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows))
		if err != nil {
			return fmt.Errorf("failed to copy to %s: %w", c.table, err)
		}
		logger.Info("Table seeded", port.Fields{"table": c.table, "inserted": n})
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}
