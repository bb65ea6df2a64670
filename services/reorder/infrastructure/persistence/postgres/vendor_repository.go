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
)

// VendorRepository implements repositories.VendorRepository against PostgreSQL.
type VendorRepository struct {
	db *database.Database
}

// NewVendorRepository returns a VendorRepository backed by the given pool.
func NewVendorRepository(db *database.Database) *VendorRepository {
	return &VendorRepository{db: db}
}

// Save persists a new vendor. Returns ErrVendorAlreadyExists on unique
// constraint violations (org + name).
func (r *VendorRepository) Save(ctx context.Context, vendor *models.Vendor) error {
	const q = `
		INSERT INTO vendors (id, org_id, name, email, contact_person, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.db.DB().ExecContext(ctx, q,
		vendor.ID, vendor.OrgID, vendor.Name, vendor.Email, vendor.ContactPerson, vendor.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrVendorAlreadyExists
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID retrieves a vendor by ID scoped to the given org.
// Returns ErrVendorNotFound if not found.
func (r *VendorRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Vendor, error) {
	const q = `
		SELECT id, org_id, name, email, contact_person, created_at
		FROM vendors WHERE id = $1 AND org_id = $2`
	var v models.Vendor
	err := r.db.DB().QueryRowContext(ctx, q, id, orgID).
		Scan(&v.ID, &v.OrgID, &v.Name, &v.Email, &v.ContactPerson, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("query vendor: %w", err)
	}
	return &v, nil
}

// FindAllByOrgID retrieves all vendors for the given org in creation order.
func (r *VendorRepository) FindAllByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.Vendor, error) {
	const q = `
		SELECT id, org_id, name, email, contact_person, created_at
		FROM vendors WHERE org_id = $1 ORDER BY created_at`
	rows, err := r.db.DB().QueryContext(ctx, q, orgID)
	if err != nil {
		return nil, fmt.Errorf("query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.OrgID, &v.Name, &v.Email, &v.ContactPerson, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendors: %w", err)
	}
	return vendors, nil
}
