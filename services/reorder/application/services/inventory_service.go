package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/ghuser/restockd/services/reorder/domain"
	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

// InventoryService orchestrates creation and configuration of inventory items.
type InventoryService struct {
	repo    repositories.InventoryRepository
	vendors repositories.VendorRepository
}

// NewInventoryService returns an InventoryService wired with its repositories.
func NewInventoryService(repo repositories.InventoryRepository, vendors repositories.VendorRepository) *InventoryService {
	return &InventoryService{repo: repo, vendors: vendors}
}

// Create validates and persists a new inventory item.
func (s *InventoryService) Create(ctx context.Context, orgID uuid.UUID, name, sku string, quantity int, unitCost decimal.Decimal) (*models.InventoryItem, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidReorderSettings)
	}
	if unitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit cost must not be negative", domain.ErrInvalidReorderSettings)
	}

	item := models.NewInventoryItem(orgID, name, sku, quantity, unitCost)
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// UpdateReorderSettings validates and persists an item's replenishment
// configuration. Enabling auto-reorder requires a positive reorder quantity
// and an existing vendor, so a newly enabled item cannot be permanently
// ineligible by construction.
func (s *InventoryService) UpdateReorderSettings(ctx context.Context, orgID, itemID uuid.UUID, settings models.ReorderSettings) (*models.InventoryItem, error) {
	if settings.ReorderLevel < 0 {
		return nil, fmt.Errorf("%w: reorder level must not be negative", domain.ErrInvalidReorderSettings)
	}
	if settings.AutoReorderEnabled {
		if settings.AutoReorderQuantity <= 0 {
			return nil, fmt.Errorf("%w: auto-reorder quantity must be positive when auto-reorder is enabled", domain.ErrInvalidReorderSettings)
		}
		if !settings.VendorID.Valid {
			return nil, fmt.Errorf("%w: a vendor is required when auto-reorder is enabled", domain.ErrInvalidReorderSettings)
		}
		if _, err := s.vendors.GetByID(ctx, orgID, settings.VendorID.UUID); err != nil {
			return nil, fmt.Errorf("resolve vendor: %w", err)
		}
	}

	item, err := s.repo.GetByID(ctx, orgID, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	item.ApplyReorderSettings(settings)
	if err := s.repo.UpdateReorderSettings(ctx, item); err != nil {
		return nil, fmt.Errorf("update reorder settings: %w", err)
	}
	return item, nil
}

// List returns a paginated slice of items for the org plus total count.
func (s *InventoryService) List(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.InventoryItem, int, error) {
	items, total, err := s.repo.FindByOrgID(ctx, orgID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	return items, total, nil
}
