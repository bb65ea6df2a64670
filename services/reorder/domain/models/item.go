package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is the stock-keeping aggregate for this bounded context.
// Quantity is on-hand units; the auto-reorder engine reads ReorderLevel,
// AutoReorderEnabled, AutoReorderQuantity and VendorID to decide whether the
// item qualifies for automatic replenishment.
type InventoryItem struct {
	ID    uuid.UUID
	OrgID uuid.UUID // tenant scope — always filter by this in queries
	Name  string
	SKU   string

	Quantity     int
	ReorderLevel int
	UnitCost     decimal.Decimal

	AutoReorderEnabled  bool
	AutoReorderQuantity int
	VendorID            uuid.NullUUID // unset when no vendor is assigned

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewInventoryItem constructs an InventoryItem with generated ID and current timestamps.
func NewInventoryItem(orgID uuid.UUID, name, sku string, quantity int, unitCost decimal.Decimal) *InventoryItem {
	now := time.Now().UTC()
	return &InventoryItem{
		ID:        uuid.New(),
		OrgID:     orgID,
		Name:      name,
		SKU:       sku,
		Quantity:  quantity,
		UnitCost:  unitCost,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReorderSettings is the mutable auto-reorder configuration of an item.
type ReorderSettings struct {
	AutoReorderEnabled  bool
	ReorderLevel        int
	AutoReorderQuantity int
	VendorID            uuid.NullUUID
}

// ApplyReorderSettings sets the item's replenishment configuration.
func (i *InventoryItem) ApplyReorderSettings(s ReorderSettings) {
	i.AutoReorderEnabled = s.AutoReorderEnabled
	i.ReorderLevel = s.ReorderLevel
	i.AutoReorderQuantity = s.AutoReorderQuantity
	i.VendorID = s.VendorID
	i.UpdatedAt = time.Now().UTC()
}
