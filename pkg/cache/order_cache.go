package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// OrderCacheTTL is the time-to-live for cached purchase orders.
	OrderCacheTTL = 24 * time.Hour

	orderCacheKeyPrefix = "order"
)

// CachedOrder is the denormalized purchase order stored in Redis.
// TotalAmount is a decimal string to avoid float rounding in the cache.
//
// Entries come in two shapes. Event subscribers warm summaries (Detail
// false, detail fields empty) because the event payload carries no line
// items; a detail read from Postgres writes a complete entry (Detail true).
// Readers must not serve a summary entry where a complete order is expected.
type CachedOrder struct {
	ID          uuid.UUID `json:"id"`
	OrgID       uuid.UUID `json:"org_id"`
	Number      string    `json:"number"`
	VendorName  string    `json:"vendor_name"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`

	Detail         bool      `json:"detail"`
	Type           string    `json:"type,omitempty"`
	Date           time.Time `json:"date,omitzero"`
	DueDate        time.Time `json:"due_date,omitzero"`
	Notes          string    `json:"notes,omitempty"`
	OrderType      string    `json:"order_type,omitempty"`
	ShippingMethod string    `json:"shipping_method,omitempty"`
	Terms          string    `json:"terms,omitempty"`
	ItemsJSON      string    `json:"items,omitempty"` // line items, JSON-encoded by the caller
}

// OrderCache provides structured read/write operations for order cache entries.
// Keys are scoped by orgID to prevent cross-tenant data leakage.
// Key format: "order:{orgID}:{orderID}"
type OrderCache struct {
	client *RedisClient
}

// NewOrderCache creates a new OrderCache backed by the given RedisClient.
func NewOrderCache(r *RedisClient) *OrderCache {
	return &OrderCache{client: r}
}

// Get retrieves a cached order by org + order ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *OrderCache) Get(ctx context.Context, orgID, orderID uuid.UUID) (*CachedOrder, error) {
	key := c.key(orgID, orderID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	oid, err := uuid.Parse(vals["org_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse org_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	order := &CachedOrder{
		ID:          id,
		OrgID:       oid,
		Number:      vals["number"],
		VendorName:  vals["vendor_name"],
		Status:      vals["status"],
		TotalAmount: vals["total_amount"],
		CreatedAt:   createdAt,
	}

	if vals["detail"] == "1" {
		date, err := time.Parse(time.RFC3339Nano, vals["date"])
		if err != nil {
			return nil, fmt.Errorf("cache parse date: %w", err)
		}
		dueDate, err := time.Parse(time.RFC3339Nano, vals["due_date"])
		if err != nil {
			return nil, fmt.Errorf("cache parse due_date: %w", err)
		}
		order.Detail = true
		order.Type = vals["type"]
		order.Date = date
		order.DueDate = dueDate
		order.Notes = vals["notes"]
		order.OrderType = vals["order_type"]
		order.ShippingMethod = vals["shipping_method"]
		order.Terms = vals["terms"]
		order.ItemsJSON = vals["items"]
	}

	return order, nil
}

// Set writes a cached order as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
// Summary writes never downgrade an existing complete entry.
func (c *OrderCache) Set(ctx context.Context, order *CachedOrder) error {
	key := c.key(order.OrgID, order.ID)

	if !order.Detail {
		existing, err := c.client.Client().HGet(ctx, key, "detail").Result()
		if err == nil && existing == "1" {
			return nil
		}
	}

	detail := "0"
	if order.Detail {
		detail = "1"
	}
	fields := []interface{}{
		"id", order.ID.String(),
		"org_id", order.OrgID.String(),
		"number", order.Number,
		"vendor_name", order.VendorName,
		"status", order.Status,
		"total_amount", order.TotalAmount,
		"created_at", order.CreatedAt.UTC().Format(time.RFC3339Nano),
		"detail", detail,
	}
	if order.Detail {
		fields = append(fields,
			"type", order.Type,
			"date", order.Date.UTC().Format(time.RFC3339Nano),
			"due_date", order.DueDate.UTC().Format(time.RFC3339Nano),
			"notes", order.Notes,
			"order_type", order.OrderType,
			"shipping_method", order.ShippingMethod,
			"terms", order.Terms,
			"items", order.ItemsJSON,
		)
	}

	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key, fields...)
	pipe.Expire(ctx, key, OrderCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached order.
func (c *OrderCache) Delete(ctx context.Context, orgID, orderID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(orgID, orderID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

/// key builds the Redis key: "order:{orgID}:{orderID}"
func (c *OrderCache) key(orgID, orderID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", orderCacheKeyPrefix, orgID, orderID)
}
