package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

// NotificationService serves the in-app notification list.
type NotificationService struct {
	repo repositories.NotificationRepository
}

// NewNotificationService returns a NotificationService wired with the given repository.
func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns a paginated slice of notifications for the org plus total count.
func (s *NotificationService) List(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Notification, int, error) {
	notifications, total, err := s.repo.FindByOrgID(ctx, orgID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, total, nil
}
