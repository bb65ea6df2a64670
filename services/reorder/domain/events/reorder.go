package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for the reorder bounded context.
const (
	// TopicOrderCreated is published when a purchase order is persisted.
	TopicOrderCreated = "reorder.order.created"

	// TopicToast carries transient toast messages for connected clients.
	// Toast events are broadcast and never persisted.
	TopicToast = "reorder.toast"
)

// OrderCreatedEvent is published after a purchase order is persisted.
// TotalAmount is a decimal string to avoid float rounding on the wire.
type OrderCreatedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	OrderID     uuid.UUID `json:"order_id"`
	OrgID       uuid.UUID `json:"org_id"`
	Number      string    `json:"number"`
	VendorName  string    `json:"vendor_name"`
	ItemID      uuid.UUID `json:"item_id"`
	ItemName    string    `json:"item_name"`
	Quantity    int       `json:"quantity"`
	TotalAmount string    `json:"total_amount"`
	Status      string    `json:"status"`
	AutoCreated bool      `json:"auto_created"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ToastEvent is a transient user-facing message, dropped if nobody is listening.
type ToastEvent struct {
	OrgID      uuid.UUID `json:"org_id"`
	Kind       string    `json:"kind"` // info, success, warning, error
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}
