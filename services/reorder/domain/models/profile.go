package models

import (
	"time"

	"github.com/google/uuid"
)

// OrgProfile holds organization-level settings.
// AutoReorderEnabled is the global kill switch: when false the engine runs no
// per-item logic for the org. AutoReorderNotifications additionally enables
// vendor email dispatch after a successful auto-generated order.
type OrgProfile struct {
	OrgID       uuid.UUID
	CompanyName string

	AutoReorderEnabled       bool
	AutoReorderNotifications bool

	UpdatedAt time.Time
}
