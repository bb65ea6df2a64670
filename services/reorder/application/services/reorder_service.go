package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/restockd/pkg/logger"
	domain "github.com/ghuser/restockd/services/reorder/domain"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

// ReorderService loads per-org snapshots and feeds them to the Dispatcher.
// One Run call per org per tick; each tick is independent of previous ones.
type ReorderService struct {
	dispatcher *Dispatcher
	inventory  repositories.InventoryRepository
	vendors    repositories.VendorRepository
	profiles   repositories.ProfileRepository
	log        logger.Logger
}

// NewReorderService wires a ReorderService.
func NewReorderService(
	dispatcher *Dispatcher,
	inventory repositories.InventoryRepository,
	vendors repositories.VendorRepository,
	profiles repositories.ProfileRepository,
	log logger.Logger,
) *ReorderService {
	return &ReorderService{
		dispatcher: dispatcher,
		inventory:  inventory,
		vendors:    vendors,
		profiles:   profiles,
		log:        log,
	}
}

// RunOrg evaluates auto-reorder for a single organization. An org without a
// stored profile is treated as having auto-reorder disabled (no-op tick).
func (s *ReorderService) RunOrg(ctx context.Context, orgID uuid.UUID) (TickReport, error) {
	profile, err := s.profiles.GetByOrgID(ctx, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return TickReport{}, nil
		}
		return TickReport{}, fmt.Errorf("load org profile: %w", err)
	}

	items, err := s.inventory.FindAllByOrgID(ctx, orgID)
	if err != nil {
		return TickReport{}, fmt.Errorf("load inventory snapshot: %w", err)
	}

	vendors, err := s.vendors.FindAllByOrgID(ctx, orgID)
	if err != nil {
		return TickReport{}, fmt.Errorf("load vendors: %w", err)
	}

	return s.dispatcher.Run(ctx, Snapshot{
		OrgID:   orgID,
		Items:   items,
		Vendors: vendors,
		Profile: profile,
	}), nil
}

// RunTick evaluates auto-reorder for every org whose profile has the kill
// switch on. A failing org never aborts the remaining orgs.
func (s *ReorderService) RunTick(ctx context.Context) error {
	orgIDs, err := s.profiles.ListAutoReorderEnabled(ctx)
	if err != nil {
		return fmt.Errorf("list auto-reorder orgs: %w", err)
	}

	for _, orgID := range orgIDs {
		if _, err := s.RunOrg(ctx, orgID); err != nil {
			s.log.ErrorContext(ctx, "auto-reorder tick failed for org",
				"org_id", orgID, "error", err)
		}
	}
	return nil
}
