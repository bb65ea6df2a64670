// Package postgres implements the reorder domain's persistence interfaces
// against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/restockd/pkg/database"
	domain "github.com/ghuser/restockd/services/reorder/domain"
	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

const pgUniqueViolation = "23505"

// InventoryRepository implements repositories.InventoryRepository against PostgreSQL.
type InventoryRepository struct {
	db *database.Database
}

// NewInventoryRepository returns an InventoryRepository backed by the given pool.
func NewInventoryRepository(db *database.Database) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Save persists a new inventory item.
// Returns ErrItemAlreadyExists on unique constraint violations (org + SKU).
func (r *InventoryRepository) Save(ctx context.Context, item *models.InventoryItem) error {
	const q = `
		INSERT INTO inventory_items
			(id, org_id, name, sku, quantity, reorder_level, unit_cost,
			 auto_reorder_enabled, auto_reorder_quantity, vendor_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.db.DB().ExecContext(ctx, q,
		item.ID, item.OrgID, item.Name, item.SKU, item.Quantity, item.ReorderLevel,
		item.UnitCost, item.AutoReorderEnabled, item.AutoReorderQuantity, item.VendorID,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrItemAlreadyExists
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID retrieves an item by ID scoped to the given org.
// Returns ErrItemNotFound if not found.
func (r *InventoryRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.InventoryItem, error) {
	row := r.db.DB().QueryRowContext(ctx, selectItemColumns+` WHERE id = $1 AND org_id = $2`, id, orgID)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// FindByOrgID retrieves a paginated list of items and total count for the given org.
func (r *InventoryRepository) FindByOrgID(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.InventoryItem, int, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		selectItemColumns+` WHERE org_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`,
		orgID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items, err := collectItems(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory_items WHERE org_id = $1`, orgID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	return items, total, nil
}

// FindAllByOrgID retrieves the full inventory snapshot for the given org in
// creation order. The evaluation tick depends on this ordering being stable.
func (r *InventoryRepository) FindAllByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.InventoryItem, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		selectItemColumns+` WHERE org_id = $1 ORDER BY created_at`, orgID)
	if err != nil {
		return nil, fmt.Errorf("query inventory snapshot: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// UpdateReorderSettings persists the item's replenishment configuration.
func (r *InventoryRepository) UpdateReorderSettings(ctx context.Context, item *models.InventoryItem) error {
	const q = `
		UPDATE inventory_items
		SET auto_reorder_enabled = $3, reorder_level = $4,
		    auto_reorder_quantity = $5, vendor_id = $6, updated_at = $7
		WHERE id = $1 AND org_id = $2`
	res, err := r.db.DB().ExecContext(ctx, q,
		item.ID, item.OrgID, item.AutoReorderEnabled, item.ReorderLevel,
		item.AutoReorderQuantity, item.VendorID, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update reorder settings: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

const selectItemColumns = `
	SELECT id, org_id, name, sku, quantity, reorder_level, unit_cost,
	       auto_reorder_enabled, auto_reorder_quantity, vendor_id, created_at, updated_at
	FROM inventory_items`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := row.Scan(
		&item.ID, &item.OrgID, &item.Name, &item.SKU, &item.Quantity, &item.ReorderLevel,
		&item.UnitCost, &item.AutoReorderEnabled, &item.AutoReorderQuantity, &item.VendorID,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func collectItems(rows *sql.Rows) ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}
