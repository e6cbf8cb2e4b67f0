package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

const uniqueViolation = "23505"

// PostgresStorageAdapter хранит данные mock API в PostgreSQL.
type PostgresStorageAdapter struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var (
	_ port.MockStoragePort = (*PostgresStorageAdapter)(nil)
	_ port.SeederPort      = (*PostgresStorageAdapter)(nil)
)

func NewPostgresStorageAdapter(pool *pgxpool.Pool) (*PostgresStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &PostgresStorageAdapter{pool: pool, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (a *PostgresStorageAdapter) Close(ctx context.Context) error {
	a.pool.Close()
	return nil
}

func wrapNotFound(kind, id string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return fmt.Errorf("PostgresStorageAdapter: failed to load %s %s: %w", kind, id, err)
}

func wrapInsert(kind, id string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s %s already exists: %w", kind, id, domain.ErrInvalidArgument)
	}
	return fmt.Errorf("PostgresStorageAdapter: failed to insert %s: %w", kind, err)
}

func scanProperty(row pgx.Row) (domain.Property, error) {
	var (
		p            domain.Property
		propertyType string
		areaUnit     string
		status       string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price.Amount, &p.Price.Currency,
		&p.Location.Address, &p.Location.City, &p.Location.Country,
		&propertyType, &p.Bedrooms, &p.Bathrooms, &p.Area, &areaUnit, &p.Features, &p.Images,
		&status, &p.OwnerID, &p.CodeInternal, &p.Year, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	if t, err := domain.ParsePropertyType(propertyType); err == nil {
		p.Type = t
	} else {
		p.Type = domain.PropertyType(propertyType)
	}
	p.AreaUnit = domain.AreaUnit(areaUnit)
	p.Status = domain.PropertyStatus(status)
	return p, nil
}

func propertyArgs(p domain.Property) []interface{} {
	return []interface{}{p.ID, p.Name, p.Description, p.Price.Amount, p.Price.Currency,
		p.Location.Address, p.Location.City, p.Location.Country,
		string(p.Type), p.Bedrooms, p.Bathrooms, p.Area, string(p.AreaUnit), p.Features, p.Images,
		string(p.Status), p.OwnerID, p.CodeInternal, p.Year, p.CreatedAt, p.UpdatedAt}
}

// ---- properties ----

func (a *PostgresStorageAdapter) ListProperties(ctx context.Context, filters domain.PropertyFilters, page domain.PageRequest) (*domain.PropertyPage, error) {
	page = page.WithDefaults(domain.DefaultPropertyPageLimit)
	where := propertyWhere(filters)

	var total int
	if err := a.pool.QueryRow(ctx, "SELECT COUNT(*) FROM properties"+where.sql(), where.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to count properties: %w", err)
	}

	args := append(append([]interface{}{}, where.args...), page.Limit, page.Offset())
	query := fmt.Sprintf("SELECT %s FROM properties%s ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d",
		propertyColumns, where.sql(), len(where.args)+1, len(where.args)+2)

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to query properties: %w", err)
	}
	defer rows.Close()

	properties := make([]domain.Property, 0, page.Limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("PostgresStorageAdapter: failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: error during property rows iteration: %w", err)
	}

	return &domain.PropertyPage{
		Properties: properties,
		Pagination: domain.NewPagination(page.Page, page.Limit, total),
	}, nil
}

func (a *PostgresStorageAdapter) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	row := a.pool.QueryRow(ctx, "SELECT "+propertyColumns+" FROM properties WHERE id = $1", id)
	p, err := scanProperty(row)
	if err != nil {
		return nil, wrapNotFound("property", id, err)
	}
	return &p, nil
}

func (a *PostgresStorageAdapter) CreateProperty(ctx context.Context, property domain.Property) (*domain.Property, error) {
	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	now := a.now()
	property.CreatedAt, property.UpdatedAt = now, now

	_, err := a.pool.Exec(ctx, `INSERT INTO properties (`+propertyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		propertyArgs(property)...)
	if err != nil {
		return nil, wrapInsert("property", property.ID, err)
	}
	return &property, nil
}

func (a *PostgresStorageAdapter) UpdateProperty(ctx context.Context, property domain.Property) (*domain.Property, error) {
	property.UpdatedAt = a.now()
	row := a.pool.QueryRow(ctx, `UPDATE properties SET
			name = $2, description = $3, price_amount = $4, price_currency = $5,
			address = $6, city = $7, country = $8, property_type = $9, bedrooms = $10,
			bathrooms = $11, area = $12, area_unit = $13, features = $14, images = $15,
			status = $16, owner_id = $17, code_internal = $18, year = $19, updated_at = $20
		WHERE id = $1
		RETURNING created_at`,
		property.ID, property.Name, property.Description, property.Price.Amount, property.Price.Currency,
		property.Location.Address, property.Location.City, property.Location.Country,
		string(property.Type), property.Bedrooms, property.Bathrooms, property.Area, string(property.AreaUnit),
		property.Features, property.Images, string(property.Status), property.OwnerID, property.CodeInternal,
		property.Year, property.UpdatedAt)
	if err := row.Scan(&property.CreatedAt); err != nil {
		return nil, wrapNotFound("property", property.ID, err)
	}
	return &property, nil
}

// DeleteProperty удаляет объект. Изображения и история удаляются каскадно.
func (a *PostgresStorageAdapter) DeleteProperty(ctx context.Context, id string) error {
	tag, err := a.pool.Exec(ctx, "DELETE FROM properties WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("PostgresStorageAdapter: failed to delete property %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (a *PostgresStorageAdapter) CountPropertiesByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	if err := a.pool.QueryRow(ctx, "SELECT COUNT(*) FROM properties WHERE owner_id = $1", ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("PostgresStorageAdapter: failed to count properties of owner %s: %w", ownerID, err)
	}
	return count, nil
}

// ---- owners ----

func (a *PostgresStorageAdapter) ListOwners(ctx context.Context, filters domain.OwnerFilters, page domain.PageRequest) (*domain.OwnerPage, error) {
	page = page.WithDefaults(domain.DefaultOwnerPageLimit)
	where := ownerWhere(filters)

	var total int
	if err := a.pool.QueryRow(ctx, "SELECT COUNT(*) FROM owners"+where.sql(), where.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to count owners: %w", err)
	}

	args := append(append([]interface{}{}, where.args...), page.Limit, page.Offset())
	query := fmt.Sprintf("SELECT id, name, address, photo, birthday FROM owners%s ORDER BY name ASC, id ASC LIMIT $%d OFFSET $%d",
		where.sql(), len(where.args)+1, len(where.args)+2)

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to query owners: %w", err)
	}
	defer rows.Close()

	owners := make([]domain.Owner, 0, page.Limit)
	for rows.Next() {
		var o domain.Owner
		if err := rows.Scan(&o.ID, &o.Name, &o.Address, &o.Photo, &o.Birthday); err != nil {
			return nil, fmt.Errorf("PostgresStorageAdapter: failed to scan owner: %w", err)
		}
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: error during owner rows iteration: %w", err)
	}

	return &domain.OwnerPage{
		Owners:     owners,
		Pagination: domain.NewPagination(page.Page, page.Limit, total),
	}, nil
}

func (a *PostgresStorageAdapter) GetOwner(ctx context.Context, id string) (*domain.Owner, error) {
	var o domain.Owner
	err := a.pool.QueryRow(ctx, "SELECT id, name, address, photo, birthday FROM owners WHERE id = $1", id).
		Scan(&o.ID, &o.Name, &o.Address, &o.Photo, &o.Birthday)
	if err != nil {
		return nil, wrapNotFound("owner", id, err)
	}
	return &o, nil
}

func (a *PostgresStorageAdapter) CreateOwner(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	if owner.ID == "" {
		owner.ID = uuid.NewString()
	}
	_, err := a.pool.Exec(ctx, "INSERT INTO owners (id, name, address, photo, birthday) VALUES ($1, $2, $3, $4, $5)",
		owner.ID, owner.Name, owner.Address, owner.Photo, owner.Birthday)
	if err != nil {
		return nil, wrapInsert("owner", owner.ID, err)
	}
	return &owner, nil
}

func (a *PostgresStorageAdapter) UpdateOwner(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	tag, err := a.pool.Exec(ctx, "UPDATE owners SET name = $2, address = $3, photo = $4, birthday = $5 WHERE id = $1",
		owner.ID, owner.Name, owner.Address, owner.Photo, owner.Birthday)
	if err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to update owner %s: %w", owner.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("owner %s: %w", owner.ID, domain.ErrNotFound)
	}
	return &owner, nil
}

// DeleteOwner проверяет ссылки и удаляет владельца в одной транзакции.
func (a *PostgresStorageAdapter) DeleteOwner(ctx context.Context, id string) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM owners WHERE id = $1 FOR UPDATE)", id).Scan(&exists); err != nil {
		return fmt.Errorf("PostgresStorageAdapter: failed to lock owner %s: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("owner %s: %w", id, domain.ErrNotFound)
	}

	var count int
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM properties WHERE owner_id = $1", id).Scan(&count); err != nil {
		return fmt.Errorf("PostgresStorageAdapter: failed to count properties of owner %s: %w", id, err)
	}
	if count > 0 {
		return &domain.OwnerHasPropertiesError{OwnerID: id, Count: count}
	}

	if _, err := tx.Exec(ctx, "DELETE FROM owners WHERE id = $1", id); err != nil {
		return fmt.Errorf("PostgresStorageAdapter: failed to delete owner %s: %w", id, err)
	}
	return tx.Commit(ctx)
}

// ---- images ----

func (a *PostgresStorageAdapter) ensureProperty(ctx context.Context, propertyID string) error {
	var exists bool
	if err := a.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1)", propertyID).Scan(&exists); err != nil {
		return fmt.Errorf("PostgresStorageAdapter: failed to check property %s: %w", propertyID, err)
	}
	if !exists {
		return fmt.Errorf("property %s: %w", propertyID, domain.ErrNotFound)
	}
	return nil
}

func (a *PostgresStorageAdapter) ListImages(ctx context.Context, propertyID string, filters domain.ImageFilters) ([]domain.PropertyImage, error) {
	if err := a.ensureProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	query := "SELECT id, property_id, file, enabled FROM property_images WHERE property_id = $1"
	if filters.EnabledOnly {
		query += " AND enabled"
	}
	rows, err := a.pool.Query(ctx, query+" ORDER BY id ASC", propertyID)
	if err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to query images: %w", err)
	}
	defer rows.Close()

	images := make([]domain.PropertyImage, 0)
	for rows.Next() {
		var img domain.PropertyImage
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.File, &img.Enabled); err != nil {
			return nil, fmt.Errorf("PostgresStorageAdapter: failed to scan image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: error during image rows iteration: %w", err)
	}
	return images, nil
}

func (a *PostgresStorageAdapter) GetImage(ctx context.Context, propertyID, imageID string) (*domain.PropertyImage, error) {
	var img domain.PropertyImage
	err := a.pool.QueryRow(ctx, "SELECT id, property_id, file, enabled FROM property_images WHERE id = $1 AND property_id = $2",
		imageID, propertyID).Scan(&img.ID, &img.PropertyID, &img.File, &img.Enabled)
	if err != nil {
		return nil, wrapNotFound("image", imageID, err)
	}
	return &img, nil
}

func (a *PostgresStorageAdapter) CreateImage(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	if err := a.ensureProperty(ctx, image.PropertyID); err != nil {
		return nil, err
	}
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	_, err := a.pool.Exec(ctx, "INSERT INTO property_images (id, property_id, file, enabled) VALUES ($1, $2, $3, $4)",
		image.ID, image.PropertyID, image.File, image.Enabled)
	if err != nil {
		return nil, wrapInsert("image", image.ID, err)
	}
	return &image, nil
}

func (a *PostgresStorageAdapter) UpdateImage(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	tag, err := a.pool.Exec(ctx, "UPDATE property_images SET file = $3, enabled = $4 WHERE id = $1 AND property_id = $2",
		image.ID, image.PropertyID, image.File, image.Enabled)
	if err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to update image %s: %w", image.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("image %s: %w", image.ID, domain.ErrNotFound)
	}
	return &image, nil
}

func (a *PostgresStorageAdapter) DeleteImage(ctx context.Context, propertyID, imageID string) error {
	tag, err := a.pool.Exec(ctx, "DELETE FROM property_images WHERE id = $1 AND property_id = $2", imageID, propertyID)
	if err != nil {
		return fmt.Errorf("PostgresStorageAdapter: failed to delete image %s: %w", imageID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("image %s: %w", imageID, domain.ErrNotFound)
	}
	return nil
}

// ---- traces ----

func (a *PostgresStorageAdapter) ListTraces(ctx context.Context, propertyID string, query domain.TraceQuery) ([]domain.PropertyTrace, error) {
	if err := a.ensureProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	rows, err := a.pool.Query(ctx,
		"SELECT id, property_id, date_sale, name, value, tax FROM property_traces WHERE property_id = $1"+traceOrderBy(query),
		propertyID)
	if err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to query traces: %w", err)
	}
	defer rows.Close()

	traces := make([]domain.PropertyTrace, 0)
	for rows.Next() {
		var t domain.PropertyTrace
		if err := rows.Scan(&t.ID, &t.PropertyID, &t.DateSale, &t.Name, &t.Value, &t.Tax); err != nil {
			return nil, fmt.Errorf("PostgresStorageAdapter: failed to scan trace: %w", err)
		}
		traces = append(traces, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: error during trace rows iteration: %w", err)
	}
	return traces, nil
}

func (a *PostgresStorageAdapter) GetTrace(ctx context.Context, propertyID, traceID string) (*domain.PropertyTrace, error) {
	var t domain.PropertyTrace
	err := a.pool.QueryRow(ctx,
		"SELECT id, property_id, date_sale, name, value, tax FROM property_traces WHERE id = $1 AND property_id = $2",
		traceID, propertyID).Scan(&t.ID, &t.PropertyID, &t.DateSale, &t.Name, &t.Value, &t.Tax)
	if err != nil {
		return nil, wrapNotFound("trace", traceID, err)
	}
	return &t, nil
}

func (a *PostgresStorageAdapter) CreateTrace(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	if err := a.ensureProperty(ctx, trace.PropertyID); err != nil {
		return nil, err
	}
	if trace.ID == "" {
		trace.ID = uuid.NewString()
	}
	_, err := a.pool.Exec(ctx,
		"INSERT INTO property_traces (id, property_id, date_sale, name, value, tax) VALUES ($1, $2, $3, $4, $5, $6)",
		trace.ID, trace.PropertyID, trace.DateSale, trace.Name, trace.Value, trace.Tax)
	if err != nil {
		return nil, wrapInsert("trace", trace.ID, err)
	}
	return &trace, nil
}

func (a *PostgresStorageAdapter) UpdateTrace(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	tag, err := a.pool.Exec(ctx,
		"UPDATE property_traces SET date_sale = $3, name = $4, value = $5, tax = $6 WHERE id = $1 AND property_id = $2",
		trace.ID, trace.PropertyID, trace.DateSale, trace.Name, trace.Value, trace.Tax)
	if err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to update trace %s: %w", trace.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("trace %s: %w", trace.ID, domain.ErrNotFound)
	}
	return &trace, nil
}

func (a *PostgresStorageAdapter) DeleteTrace(ctx context.Context, propertyID, traceID string) error {
	tag, err := a.pool.Exec(ctx, "DELETE FROM property_traces WHERE id = $1 AND property_id = $2", traceID, propertyID)
	if err != nil {
		return fmt.Errorf("PostgresStorageAdapter: failed to delete trace %s: %w", traceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trace %s: %w", traceID, domain.ErrNotFound)
	}
	return nil
}
