package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase-order field constants. Auto-generated orders always use these
// defaults; manually created orders may differ in a future revision.
const (
	OrderTypePurchase = "Purchase"

	OrderStatusNew = "New Order"

	OrderChannelWholesale  = "Wholesale"
	OrderShippingStandard  = "Standard"
	OrderTermsNet30        = "Net 30"
	orderNumberPrefix      = "PO-"
	orderNumberRandomChars = 8
)

// OrderLineItem is one line of a purchase order. Auto-generated orders carry
// exactly one line.
type OrderLineItem struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal returns Quantity × UnitPrice.
func (l OrderLineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PurchaseOrder is the order value object submitted to the order store.
// Date and DueDate are date-only (midnight UTC).
type PurchaseOrder struct {
	ID               uuid.UUID
	OrgID            uuid.UUID
	Number           string
	Type             string
	CustomerSupplier string
	Date             time.Time
	DueDate          time.Time
	Status           string
	Items            []OrderLineItem
	TotalAmount      decimal.Decimal
	Notes            string
	OrderType        string
	ShippingMethod   string
	Terms            string
	CreatedAt        time.Time
}

// NewOrderNumber generates a human-readable purchase-order number ("PO-3F2A9C01").
func NewOrderNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return orderNumberPrefix + strings.ToUpper(raw[:orderNumberRandomChars])
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
