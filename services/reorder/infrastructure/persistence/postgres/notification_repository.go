package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/restockd/pkg/database"
	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

// NotificationRepository implements repositories.NotificationRepository against PostgreSQL.
type NotificationRepository struct {
	db *database.Database
}

// NewNotificationRepository returns a NotificationRepository backed by the given pool.
func NewNotificationRepository(db *database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Save persists an in-app notification.
func (r *NotificationRepository) Save(ctx context.Context, n *models.Notification) error {
	const q = `
		INSERT INTO notifications (id, org_id, kind, message, created_at)
		VALUES ($1,$2,$3,$4,$5)`
	if _, err := r.db.DB().ExecContext(ctx, q,
		n.ID, n.OrgID, string(n.Kind), n.Message, n.CreatedAt); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// FindByOrgID retrieves a paginated list of notifications (newest first) and total count.
func (r *NotificationRepository) FindByOrgID(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Notification, int, error) {
	const q = `
		SELECT id, org_id, kind, message, created_at
		FROM notifications WHERE org_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.DB().QueryContext(ctx, q, orgID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var (
			n    models.Notification
			kind string
		)
		if err := rows.Scan(&n.ID, &n.OrgID, &kind, &n.Message, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		n.Kind = models.NotificationKind(kind)
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate notifications: %w", err)
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE org_id = $1`, orgID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	return notifications, total, nil
}
