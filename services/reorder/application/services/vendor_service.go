package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

// VendorService orchestrates vendor creation and retrieval.
type VendorService struct {
	repo repositories.VendorRepository
}

// NewVendorService returns a VendorService wired with the given repository.
func NewVendorService(repo repositories.VendorRepository) *VendorService {
	return &VendorService{repo: repo}
}

// Create persists a new vendor.
func (s *VendorService) Create(ctx context.Context, orgID uuid.UUID, name, email, contactPerson string) (*models.Vendor, error) {
	vendor := models.NewVendor(orgID, name, email, contactPerson)
	if err := s.repo.Save(ctx, vendor); err != nil {
		return nil, fmt.Errorf("save vendor: %w", err)
	}
	return vendor, nil
}

// List returns all vendors for the org.
func (s *VendorService) List(ctx context.Context, orgID uuid.UUID) ([]*models.Vendor, error) {
	vendors, err := s.repo.FindAllByOrgID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return vendors, nil
}
