// Package repositories declares the persistence interfaces for the reorder
// bounded context. The domain layer owns these interfaces; infrastructure
// implements them.
package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/restockd/services/reorder/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// InventoryRepository is the persistence interface for InventoryItem.
type InventoryRepository interface {
	Save(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.InventoryItem, error)

	// FindByOrgID retrieves a paginated list of items for the given org.
	// Returns the items slice and the total count (ignoring pagination).
	FindByOrgID(ctx context.Context, orgID uuid.UUID, opts QueryOpts) ([]*models.InventoryItem, int, error)

	// FindAllByOrgID retrieves the full inventory snapshot for the given org,
	// ordered by creation time. Used by the evaluation tick.
	FindAllByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.InventoryItem, error)

	// UpdateReorderSettings persists the item's replenishment configuration.
	UpdateReorderSettings(ctx context.Context, item *models.InventoryItem) error
}

// VendorRepository is the persistence interface for Vendor.
type VendorRepository interface {
	Save(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Vendor, error)
	FindAllByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.Vendor, error)
}

// ProfileRepository is the persistence interface for OrgProfile.
type ProfileRepository interface {
	GetByOrgID(ctx context.Context, orgID uuid.UUID) (*models.OrgProfile, error)
	Upsert(ctx context.Context, profile *models.OrgProfile) error

	// ListAutoReorderEnabled returns the org IDs whose profile has the
	// auto-reorder kill switch on. The worker tick iterates these.
	ListAutoReorderEnabled(ctx context.Context) ([]uuid.UUID, error)
}

// OrderRepository is the persistence interface for PurchaseOrder. Create
// publishes an OrderCreatedEvent in the same transaction (outbox).
type OrderRepository interface {
	Create(ctx context.Context, order *models.PurchaseOrder) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.PurchaseOrder, error)
	FindByOrgID(ctx context.Context, orgID uuid.UUID, opts QueryOpts) ([]*models.PurchaseOrder, int, error)
}

// NotificationRepository is the persistence interface for in-app notifications.
type NotificationRepository interface {
	Save(ctx context.Context, n *models.Notification) error
	FindByOrgID(ctx context.Context, orgID uuid.UUID, opts QueryOpts) ([]*models.Notification, int, error)
}
