package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind is the severity of an in-app notification.
type NotificationKind string

const (
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
	NotificationWarning NotificationKind = "warning"
	NotificationError   NotificationKind = "error"
)

// Notification is an in-app notification entry for an organization.
type Notification struct {
	ID        uuid.UUID
	OrgID     uuid.UUID
	Kind      NotificationKind
	Message   string
	CreatedAt time.Time
}

// NewNotification constructs a Notification with generated ID and current timestamp.
func NewNotification(orgID uuid.UUID, kind NotificationKind, message string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		OrgID:     orgID,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}
