package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/ghuser/restockd/services/reorder/domain"
	"github.com/ghuser/restockd/services/reorder/domain/models"
)

func TestSynthesizeOrder(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	vendor := &models.Vendor{
		ID:    uuid.New(),
		OrgID: uuid.New(),
		Name:  "Acme Fasteners",
		Email: "orders@acme.example",
	}
	item := makeItem(func(i *models.InventoryItem) {
		i.UnitCost = decimal.RequireFromString("3.50")
		i.AutoReorderQuantity = 50
		i.VendorID = uuid.NullUUID{UUID: vendor.ID, Valid: true}
	})

	order, err := SynthesizeOrder(item, vendor, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("single line item from item record", func(t *testing.T) {
		if len(order.Items) != 1 {
			t.Fatalf("got %d line items, want 1", len(order.Items))
		}
		line := order.Items[0]
		if line.ItemID != item.ID {
			t.Errorf("line ItemID = %s, want %s", line.ItemID, item.ID)
		}
		if line.Quantity != 50 {
			t.Errorf("line Quantity = %d, want 50", line.Quantity)
		}
		if !line.UnitPrice.Equal(item.UnitCost) {
			t.Errorf("line UnitPrice = %s, want %s", line.UnitPrice, item.UnitCost)
		}
	})

	t.Run("total is exactly quantity times unit cost", func(t *testing.T) {
		want := decimal.RequireFromString("175.00")
		if !order.TotalAmount.Equal(want) {
			t.Errorf("TotalAmount = %s, want %s", order.TotalAmount, want)
		}
	})

	t.Run("dates are date-only from the clock", func(t *testing.T) {
		wantDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		if !order.Date.Equal(wantDate) {
			t.Errorf("Date = %v, want %v", order.Date, wantDate)
		}
		if !order.DueDate.Equal(wantDate) {
			t.Errorf("DueDate = %v, want %v", order.DueDate, wantDate)
		}
	})

	t.Run("fixed defaults", func(t *testing.T) {
		if order.Type != models.OrderTypePurchase {
			t.Errorf("Type = %q, want %q", order.Type, models.OrderTypePurchase)
		}
		if order.Status != models.OrderStatusNew {
			t.Errorf("Status = %q, want %q", order.Status, models.OrderStatusNew)
		}
		if order.OrderType != models.OrderChannelWholesale {
			t.Errorf("OrderType = %q, want %q", order.OrderType, models.OrderChannelWholesale)
		}
		if order.ShippingMethod != models.OrderShippingStandard {
			t.Errorf("ShippingMethod = %q, want %q", order.ShippingMethod, models.OrderShippingStandard)
		}
		if order.Terms != models.OrderTermsNet30 {
			t.Errorf("Terms = %q, want %q", order.Terms, models.OrderTermsNet30)
		}
	})

	t.Run("vendor name and org scope", func(t *testing.T) {
		if order.CustomerSupplier != vendor.Name {
			t.Errorf("CustomerSupplier = %q, want %q", order.CustomerSupplier, vendor.Name)
		}
		if order.OrgID != item.OrgID {
			t.Errorf("OrgID = %s, want %s", order.OrgID, item.OrgID)
		}
	})

	t.Run("order number and provenance notes", func(t *testing.T) {
		if !strings.HasPrefix(order.Number, "PO-") {
			t.Errorf("Number = %q, want PO- prefix", order.Number)
		}
		if !strings.Contains(order.Notes, "Auto-generated") {
			t.Errorf("Notes = %q, want auto-generation provenance", order.Notes)
		}
		if !strings.Contains(order.Notes, item.SKU) {
			t.Errorf("Notes = %q, want SKU %q mentioned", order.Notes, item.SKU)
		}
	})
}

func TestSynthesizeOrder_FractionalCost(t *testing.T) {
	vendor := &models.Vendor{ID: uuid.New(), Name: "Acme"}
	item := makeItem(func(i *models.InventoryItem) {
		i.UnitCost = decimal.RequireFromString("0.10")
		i.AutoReorderQuantity = 3
	})

	order, err := SynthesizeOrder(item, vendor, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3 × 0.10 must be exactly 0.30, not a float approximation.
	if order.TotalAmount.String() != "0.30" {
		t.Fatalf("TotalAmount = %s, want 0.30", order.TotalAmount)
	}
}

func TestSynthesizeOrder_NilVendor(t *testing.T) {
	item := makeItem(nil)

	_, err := SynthesizeOrder(item, nil, time.Now())
	if !errors.Is(err, domain.ErrMissingVendor) {
		t.Fatalf("error = %v, want ErrMissingVendor", err)
	}
}

func TestSynthesizeOrder_UniqueNumbers(t *testing.T) {
	vendor := &models.Vendor{ID: uuid.New(), Name: "Acme"}
	item := makeItem(nil)

	seen := make(map[string]bool)
	for range 100 {
		order, err := SynthesizeOrder(item, vendor, time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[order.Number] {
			t.Fatalf("duplicate order number %q", order.Number)
		}
		seen[order.Number] = true
	}
}
