package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DebounceStore records the last auto-reorder attempt per item and suppresses
// repeat triggers within the cooldown window. Implementations must be safe
// for concurrent use.
//
// The store is injected into the dispatcher so tests can reset it
// deterministically and so a persistent backing (Redis) can replace the
// in-memory map without touching dispatch logic.
type DebounceStore interface {
	// ShouldSkip reports whether a prior attempt for itemID exists within the
	// cooldown window ending at now.
	ShouldSkip(ctx context.Context, itemID uuid.UUID, now time.Time) (bool, error)

	// RecordAttempt unconditionally overwrites the stored attempt timestamp
	// for itemID.
	RecordAttempt(ctx context.Context, itemID uuid.UUID, now time.Time) error
}
