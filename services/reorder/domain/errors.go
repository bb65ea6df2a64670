package domain

import "errors"

// Sentinel errors for the reorder domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested inventory item does not exist.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrItemAlreadyExists indicates an item with the same SKU already exists for the org.
	ErrItemAlreadyExists = errors.New("inventory item already exists")

	// ErrVendorNotFound indicates the referenced vendor does not exist.
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrVendorAlreadyExists indicates a vendor with the same name already exists for the org.
	ErrVendorAlreadyExists = errors.New("vendor already exists")

	// ErrProfileNotFound indicates the organization has no stored profile.
	ErrProfileNotFound = errors.New("organization profile not found")

	// ErrOrderNotFound indicates the requested purchase order does not exist.
	ErrOrderNotFound = errors.New("purchase order not found")

	// ErrInvalidReorderSettings indicates item reorder settings violate domain constraints.
	ErrInvalidReorderSettings = errors.New("invalid reorder settings")

	// ErrMissingVendor indicates an order was synthesized without a resolved vendor.
	ErrMissingVendor = errors.New("order requires a resolved vendor")
)
