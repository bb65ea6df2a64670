// Package services contains stateless domain services for the reorder bounded
// context. Domain services enforce business rules that operate purely on
// domain types and have zero external dependencies beyond stdlib and the
// domain layer.
package services

import (
	"github.com/ghuser/restockd/services/reorder/domain/models"
)

// IsEligible reports whether item qualifies for automatic replenishment.
//
// All of the following must hold:
//   - auto-reorder is enabled on the item
//   - on-hand quantity is at or below the reorder level
//   - the configured reorder quantity is positive
//   - a vendor is assigned
//
// The organization-level kill switch is deliberately NOT checked here; the
// dispatcher checks it once per tick before any per-item logic runs.
func IsEligible(item *models.InventoryItem) bool {
	return item.AutoReorderEnabled &&
		item.Quantity <= item.ReorderLevel &&
		item.AutoReorderQuantity > 0 &&
		item.VendorID.Valid
}

// EligibleItems returns the subset of items qualifying for automatic
// replenishment, preserving input order. Pure function: the input slice is
// not modified.
func EligibleItems(items []*models.InventoryItem) []*models.InventoryItem {
	eligible := make([]*models.InventoryItem, 0, len(items))
	for _, item := range items {
		if IsEligible(item) {
			eligible = append(eligible, item)
		}
	}
	return eligible
}
