package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/restockd/pkg/cache"
	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

type readOrderRepo struct {
	orders   map[uuid.UUID]*models.PurchaseOrder
	getCalls int
}

func (f *readOrderRepo) Create(context.Context, *models.PurchaseOrder) error {
	return errors.New("not implemented")
}

func (f *readOrderRepo) GetByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (*models.PurchaseOrder, error) {
	f.getCalls++
	order, ok := f.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	return order, nil
}

func (f *readOrderRepo) FindByOrgID(context.Context, uuid.UUID, repositories.QueryOpts) ([]*models.PurchaseOrder, int, error) {
	return nil, 0, errors.New("not implemented")
}

// memOrderCache is an in-memory OrderCache. Writes are reported on the set
// channel so tests can observe the asynchronous write-back.
type memOrderCache struct {
	entries map[uuid.UUID]*pkgcache.CachedOrder
	getErr  error
	set     chan *pkgcache.CachedOrder
}

func newMemOrderCache() *memOrderCache {
	return &memOrderCache{
		entries: make(map[uuid.UUID]*pkgcache.CachedOrder),
		set:     make(chan *pkgcache.CachedOrder, 4),
	}
}

func (c *memOrderCache) Get(_ context.Context, _ uuid.UUID, orderID uuid.UUID) (*pkgcache.CachedOrder, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	entry, ok := c.entries[orderID]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return entry, nil
}

func (c *memOrderCache) Set(_ context.Context, order *pkgcache.CachedOrder) error {
	c.entries[order.ID] = order
	c.set <- order
	return nil
}

func (c *memOrderCache) awaitSet(t *testing.T) *pkgcache.CachedOrder {
	t.Helper()
	select {
	case entry := <-c.set:
		return entry
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cache write-back")
		return nil
	}
}

func storedOrder(orgID uuid.UUID) *models.PurchaseOrder {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	return &models.PurchaseOrder{
		ID:               uuid.New(),
		OrgID:            orgID,
		Number:           "PO-3F2A9C01",
		Type:             models.OrderTypePurchase,
		CustomerSupplier: "Acme Fasteners",
		Date:             models.DateOnly(now),
		DueDate:          models.DateOnly(now),
		Status:           models.OrderStatusNew,
		Items: []models.OrderLineItem{{
			ItemID:    uuid.New(),
			Name:      "M4 Hex Bolt",
			Quantity:  50,
			UnitPrice: decimal.RequireFromString("3.50"),
		}},
		TotalAmount:    decimal.RequireFromString("175.00"),
		Notes:          "Auto-generated by inventory auto-reorder",
		OrderType:      models.OrderChannelWholesale,
		ShippingMethod: models.OrderShippingStandard,
		Terms:          models.OrderTermsNet30,
		CreatedAt:      now,
	}
}

// assertFullOrder checks the fields a summary cache entry cannot carry.
func assertFullOrder(t *testing.T, got, want *models.PurchaseOrder) {
	t.Helper()
	if len(got.Items) != len(want.Items) {
		t.Fatalf("items = %d, want %d", len(got.Items), len(want.Items))
	}
	if got.Items[0].Name != want.Items[0].Name || got.Items[0].Quantity != want.Items[0].Quantity {
		t.Errorf("line item = %+v, want %+v", got.Items[0], want.Items[0])
	}
	if !got.Items[0].UnitPrice.Equal(want.Items[0].UnitPrice) {
		t.Errorf("unit price = %s, want %s", got.Items[0].UnitPrice, want.Items[0].UnitPrice)
	}
	if !got.Date.Equal(want.Date) || !got.DueDate.Equal(want.DueDate) {
		t.Errorf("dates = %v/%v, want %v/%v", got.Date, got.DueDate, want.Date, want.DueDate)
	}
	if got.Notes != want.Notes || got.OrderType != want.OrderType ||
		got.ShippingMethod != want.ShippingMethod || got.Terms != want.Terms {
		t.Errorf("detail fields = %q/%q/%q/%q, want %q/%q/%q/%q",
			got.Notes, got.OrderType, got.ShippingMethod, got.Terms,
			want.Notes, want.OrderType, want.ShippingMethod, want.Terms)
	}
	if !got.TotalAmount.Equal(want.TotalAmount) {
		t.Errorf("total = %s, want %s", got.TotalAmount, want.TotalAmount)
	}
}

func TestOrderGetByID_SummaryEntryFallsThroughToPostgres(t *testing.T) {
	orgID := uuid.New()
	order := storedOrder(orgID)
	repo := &readOrderRepo{orders: map[uuid.UUID]*models.PurchaseOrder{order.ID: order}}
	orderCache := newMemOrderCache()

	// The entry an order.created subscriber warms: summary fields only.
	orderCache.entries[order.ID] = &pkgcache.CachedOrder{
		ID:          order.ID,
		OrgID:       orgID,
		Number:      order.Number,
		VendorName:  order.CustomerSupplier,
		Status:      order.Status,
		TotalAmount: order.TotalAmount.String(),
		CreatedAt:   order.CreatedAt,
	}

	svc := NewOrderService(repo, orderCache)
	got, err := svc.GetByID(context.Background(), orgID, order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if repo.getCalls != 1 {
		t.Errorf("postgres reads = %d, want 1", repo.getCalls)
	}
	assertFullOrder(t, got, order)

	// The write-back upgrades the summary entry to a complete one.
	upgraded := orderCache.awaitSet(t)
	if !upgraded.Detail {
		t.Error("write-back entry is still a summary")
	}
	if upgraded.ItemsJSON == "" {
		t.Error("write-back entry has no line items payload")
	}
}

func TestOrderGetByID_CompleteEntryServedFromCache(t *testing.T) {
	orgID := uuid.New()
	order := storedOrder(orgID)
	repo := &readOrderRepo{orders: map[uuid.UUID]*models.PurchaseOrder{}} // empty: cache must answer
	orderCache := newMemOrderCache()

	entry, err := orderToCached(order)
	if err != nil {
		t.Fatalf("orderToCached: %v", err)
	}
	orderCache.entries[order.ID] = entry

	svc := NewOrderService(repo, orderCache)
	got, err := svc.GetByID(context.Background(), orgID, order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if repo.getCalls != 0 {
		t.Errorf("postgres reads = %d, want 0", repo.getCalls)
	}
	assertFullOrder(t, got, order)
}

func TestOrderGetByID_CacheFailureFallsThroughToPostgres(t *testing.T) {
	orgID := uuid.New()
	order := storedOrder(orgID)
	repo := &readOrderRepo{orders: map[uuid.UUID]*models.PurchaseOrder{order.ID: order}}
	orderCache := newMemOrderCache()
	orderCache.getErr = errors.New("connection refused")

	svc := NewOrderService(repo, orderCache)
	got, err := svc.GetByID(context.Background(), orgID, order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	assertFullOrder(t, got, order)
}

func TestOrderGetByID_CorruptCompleteEntryFallsThroughToPostgres(t *testing.T) {
	orgID := uuid.New()
	order := storedOrder(orgID)
	repo := &readOrderRepo{orders: map[uuid.UUID]*models.PurchaseOrder{order.ID: order}}
	orderCache := newMemOrderCache()

	entry, err := orderToCached(order)
	if err != nil {
		t.Fatalf("orderToCached: %v", err)
	}
	entry.TotalAmount = "not-a-decimal"
	orderCache.entries[order.ID] = entry

	svc := NewOrderService(repo, orderCache)
	got, err := svc.GetByID(context.Background(), orgID, order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if repo.getCalls != 1 {
		t.Errorf("postgres reads = %d, want 1", repo.getCalls)
	}
	assertFullOrder(t, got, order)
}

func TestOrderGetByID_NoCache(t *testing.T) {
	orgID := uuid.New()
	order := storedOrder(orgID)
	repo := &readOrderRepo{orders: map[uuid.UUID]*models.PurchaseOrder{order.ID: order}}

	svc := NewOrderService(repo, nil)
	got, err := svc.GetByID(context.Background(), orgID, order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	assertFullOrder(t, got, order)
}

func TestOrderCachedRoundTrip(t *testing.T) {
	order := storedOrder(uuid.New())
	entry, err := orderToCached(order)
	if err != nil {
		t.Fatalf("orderToCached: %v", err)
	}
	got, err := cachedToOrder(entry)
	if err != nil {
		t.Fatalf("cachedToOrder: %v", err)
	}
	assertFullOrder(t, got, order)
	if got.Number != order.Number || got.CustomerSupplier != order.CustomerSupplier ||
		got.Type != order.Type || got.Status != order.Status {
		t.Errorf("summary fields = %q/%q/%q/%q, want %q/%q/%q/%q",
			got.Number, got.CustomerSupplier, got.Type, got.Status,
			order.Number, order.CustomerSupplier, order.Type, order.Status)
	}
}
