package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/restockd/pkg/database"
	domain "github.com/ghuser/restockd/services/reorder/domain"
	"github.com/ghuser/restockd/services/reorder/domain/models"
)

// ProfileRepository implements repositories.ProfileRepository against PostgreSQL.
type ProfileRepository struct {
	db *database.Database
}

// NewProfileRepository returns a ProfileRepository backed by the given pool.
func NewProfileRepository(db *database.Database) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByOrgID retrieves the organization profile.
// Returns ErrProfileNotFound if the org has no stored profile.
func (r *ProfileRepository) GetByOrgID(ctx context.Context, orgID uuid.UUID) (*models.OrgProfile, error) {
	const q = `
		SELECT org_id, company_name, auto_reorder_enabled, auto_reorder_notifications, updated_at
		FROM org_profiles WHERE org_id = $1`
	var p models.OrgProfile
	err := r.db.DB().QueryRowContext(ctx, q, orgID).
		Scan(&p.OrgID, &p.CompanyName, &p.AutoReorderEnabled, &p.AutoReorderNotifications, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

// Upsert inserts or replaces the organization profile.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.OrgProfile) error {
	const q = `
		INSERT INTO org_profiles (org_id, company_name, auto_reorder_enabled, auto_reorder_notifications, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (org_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			auto_reorder_enabled = EXCLUDED.auto_reorder_enabled,
			auto_reorder_notifications = EXCLUDED.auto_reorder_notifications,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.db.DB().ExecContext(ctx, q,
		profile.OrgID, profile.CompanyName, profile.AutoReorderEnabled,
		profile.AutoReorderNotifications, profile.UpdatedAt); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// ListAutoReorderEnabled returns org IDs with the auto-reorder kill switch on.
func (r *ProfileRepository) ListAutoReorderEnabled(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT org_id FROM org_profiles WHERE auto_reorder_enabled ORDER BY org_id`)
	if err != nil {
		return nil, fmt.Errorf("query auto-reorder orgs: %w", err)
	}
	defer rows.Close()

	var orgIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan org id: %w", err)
		}
		orgIDs = append(orgIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate org ids: %w", err)
	}
	return orgIDs, nil
}
