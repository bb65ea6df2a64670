package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/restockd/pkg/cache"
	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

// OrderCache is the read-model cache consumed by OrderService.
// Satisfied by *pkg/cache.OrderCache.
type OrderCache interface {
	Get(ctx context.Context, orgID, orderID uuid.UUID) (*pkgcache.CachedOrder, error)
	Set(ctx context.Context, order *pkgcache.CachedOrder) error
}

// OrderService serves purchase-order reads. Single-order reads go through a
// Redis read-model cache warmed by the worker's order.created subscriber.
type OrderService struct {
	repo  repositories.OrderRepository
	cache OrderCache
}

// NewOrderService returns an OrderService wired with the given repository and cache.
func NewOrderService(repo repositories.OrderRepository, orderCache OrderCache) *OrderService {
	return &OrderService{repo: repo, cache: orderCache}
}

// GetByID retrieves a purchase order using a read-through cache pattern:
//  1. Check Redis: a complete cached entry is returned as-is.
//  2. On a miss, a cache error, or a summary-only entry (the event
//     subscriber warms summaries that carry no line items), query Postgres.
//  3. Asynchronously write the full order back, upgrading summary entries.
//
// The cache is never load-bearing: anything it cannot serve faithfully
// falls through to Postgres.
func (s *OrderService) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.PurchaseOrder, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, orgID, id); err == nil && cached.Detail {
			if order, convErr := cachedToOrder(cached); convErr == nil {
				return order, nil
			}
		}
	}

	order, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if s.cache != nil {
		if cached, convErr := orderToCached(order); convErr == nil {
			go func() {
				_ = s.cache.Set(context.Background(), cached)
			}()
		}
	}

	return order, nil
}

// List returns a paginated slice of purchase orders for the org plus total count.
func (s *OrderService) List(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.PurchaseOrder, int, error) {
	orders, total, err := s.repo.FindByOrgID(ctx, orgID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// cachedToOrder rebuilds a full purchase order from a complete cache entry.
// Callers must check CachedOrder.Detail first; summary entries lack items
// and dates and cannot be rebuilt.
func cachedToOrder(c *pkgcache.CachedOrder) (*models.PurchaseOrder, error) {
	total, err := decimal.NewFromString(c.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("parse cached total: %w", err)
	}

	var items []models.OrderLineItem
	if err := json.Unmarshal([]byte(c.ItemsJSON), &items); err != nil {
		return nil, fmt.Errorf("decode cached line items: %w", err)
	}

	return &models.PurchaseOrder{
		ID:               c.ID,
		OrgID:            c.OrgID,
		Number:           c.Number,
		Type:             c.Type,
		CustomerSupplier: c.VendorName,
		Date:             c.Date,
		DueDate:          c.DueDate,
		Status:           c.Status,
		Items:            items,
		TotalAmount:      total,
		Notes:            c.Notes,
		OrderType:        c.OrderType,
		ShippingMethod:   c.ShippingMethod,
		Terms:            c.Terms,
		CreatedAt:        c.CreatedAt,
	}, nil
}

// orderToCached builds a complete cache entry carrying the full order payload.
func orderToCached(o *models.PurchaseOrder) (*pkgcache.CachedOrder, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}

	return &pkgcache.CachedOrder{
		ID:             o.ID,
		OrgID:          o.OrgID,
		Number:         o.Number,
		VendorName:     o.CustomerSupplier,
		Status:         o.Status,
		TotalAmount:    o.TotalAmount.String(),
		CreatedAt:      o.CreatedAt,
		Detail:         true,
		Type:           o.Type,
		Date:           o.Date,
		DueDate:        o.DueDate,
		Notes:          o.Notes,
		OrderType:      o.OrderType,
		ShippingMethod: o.ShippingMethod,
		Terms:          o.Terms,
		ItemsJSON:      string(items),
	}, nil
}
