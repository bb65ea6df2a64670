package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/restockd/services/reorder/domain"
	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

// ProfileService manages organization-level replenishment settings.
type ProfileService struct {
	repo repositories.ProfileRepository
}

// NewProfileService returns a ProfileService wired with its repository.
func NewProfileService(repo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the org profile. An org that never stored one gets the zero
// profile back: auto-reorder off, notifications off.
func (s *ProfileService) Get(ctx context.Context, orgID uuid.UUID) (*models.OrgProfile, error) {
	profile, err := s.repo.GetByOrgID(ctx, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return &models.OrgProfile{OrgID: orgID}, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// Update stores the org's replenishment settings, creating the profile on
// first write.
func (s *ProfileService) Update(ctx context.Context, orgID uuid.UUID, companyName string, autoReorder, notifications bool) (*models.OrgProfile, error) {
	profile := &models.OrgProfile{
		OrgID:                    orgID,
		CompanyName:              companyName,
		AutoReorderEnabled:       autoReorder,
		AutoReorderNotifications: notifications,
		UpdatedAt:                time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}
