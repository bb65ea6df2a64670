// Package notify implements the dispatcher's Notifier against the
// notification repository and the event bus.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/restockd/pkg/events"
	domainevents "github.com/ghuser/restockd/services/reorder/domain/events"
	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

// Notifier persists in-app notifications and publishes transient toasts.
type Notifier struct {
	repo repositories.NotificationRepository
	bus  *events.EventBus
}

// New returns a Notifier. A nil bus disables toast publishing (toasts are
// then dropped silently, matching their transient semantics).
func New(repo repositories.NotificationRepository, bus *events.EventBus) *Notifier {
	return &Notifier{repo: repo, bus: bus}
}

// Notify stores an in-app notification entry for the org.
func (n *Notifier) Notify(ctx context.Context, orgID uuid.UUID, kind models.NotificationKind, msg string) error {
	if err := n.repo.Save(ctx, models.NewNotification(orgID, kind, msg)); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	return nil
}

// Toast publishes a transient toast event on the bus.
func (n *Notifier) Toast(ctx context.Context, orgID uuid.UUID, kind models.NotificationKind, msg string) error {
	if n.bus == nil {
		return nil
	}

	payload, err := json.Marshal(domainevents.ToastEvent{
		OrgID:      orgID,
		Kind:       string(kind),
		Message:    msg,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal toast: %w", err)
	}

	if err := n.bus.Publish(ctx, domainevents.TopicToast,
		message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		return fmt.Errorf("publish toast: %w", err)
	}
	return nil
}
