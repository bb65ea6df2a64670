package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/restockd/services/reorder/domain"
	"github.com/ghuser/restockd/services/reorder/domain/models"
)

// SynthesizeOrder builds exactly one purchase order for an eligible item and
// its resolved vendor. Quantity and pricing come straight from the item
// record; there is no batching, MOQ rounding, or currency conversion.
// TotalAmount is always AutoReorderQuantity × UnitCost.
//
// Returns ErrMissingVendor if vendor is nil — callers must resolve the
// vendor before synthesizing.
func SynthesizeOrder(item *models.InventoryItem, vendor *models.Vendor, now time.Time) (*models.PurchaseOrder, error) {
	if vendor == nil {
		return nil, fmt.Errorf("synthesize order for item %s: %w", item.ID, domain.ErrMissingVendor)
	}

	today := models.DateOnly(now)
	line := models.OrderLineItem{
		ItemID:    item.ID,
		Name:      item.Name,
		Quantity:  item.AutoReorderQuantity,
		UnitPrice: item.UnitCost,
	}

	return &models.PurchaseOrder{
		ID:               uuid.New(),
		OrgID:            item.OrgID,
		Number:           models.NewOrderNumber(),
		Type:             models.OrderTypePurchase,
		CustomerSupplier: vendor.Name,
		Date:             today,
		DueDate:          today,
		Status:           models.OrderStatusNew,
		Items:            []models.OrderLineItem{line},
		TotalAmount:      line.Subtotal(),
		Notes:            autoOrderNotes(item),
		OrderType:        models.OrderChannelWholesale,
		ShippingMethod:   models.OrderShippingStandard,
		Terms:            models.OrderTermsNet30,
		CreatedAt:        now.UTC(),
	}, nil
}

// autoOrderNotes records provenance so auto-generated orders are
// distinguishable from manual ones.
func autoOrderNotes(item *models.InventoryItem) string {
	return fmt.Sprintf("Auto-generated order: stock for %s (SKU %s) fell to %d, at or below reorder level %d",
		item.Name, item.SKU, item.Quantity, item.ReorderLevel)
}
