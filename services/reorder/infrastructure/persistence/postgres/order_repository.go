package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/restockd/pkg/database"
	"github.com/ghuser/restockd/pkg/events"
	domain "github.com/ghuser/restockd/services/reorder/domain"
	domainevents "github.com/ghuser/restockd/services/reorder/domain/events"
	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

// OrderRepository implements repositories.OrderRepository against PostgreSQL.
// Create publishes an OrderCreatedEvent within the same transaction as the
// insert, so an order row and its event are committed or rolled back together.
type OrderRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewOrderRepository returns an OrderRepository backed by the given pool and
// event bus. A nil bus disables event publishing (tests, migrations).
func NewOrderRepository(db *database.Database, bus *events.EventBus) *OrderRepository {
	return &OrderRepository{db: db, bus: bus}
}

// Create persists a purchase order and publishes its created event.
func (r *OrderRepository) Create(ctx context.Context, order *models.PurchaseOrder) error {
	lineItems, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
			INSERT INTO purchase_orders
				(id, org_id, number, type, customer_supplier, date, due_date, status,
				 items, total_amount, notes, order_type, shipping_method, terms, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
		if _, err := tx.ExecContext(ctx, q,
			order.ID, order.OrgID, order.Number, order.Type, order.CustomerSupplier,
			order.Date, order.DueDate, order.Status, lineItems, order.TotalAmount,
			order.Notes, order.OrderType, order.ShippingMethod, order.Terms, order.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, order); err != nil {
				return fmt.Errorf("publish order created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a purchase order by ID scoped to the given org.
// Returns ErrOrderNotFound if not found.
func (r *OrderRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.PurchaseOrder, error) {
	row := r.db.DB().QueryRowContext(ctx,
		selectOrderColumns+` WHERE id = $1 AND org_id = $2`, id, orgID)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order: %w", err)
	}
	return order, nil
}

// FindByOrgID retrieves a paginated list of orders (newest first) and total count.
func (r *OrderRepository) FindByOrgID(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.PurchaseOrder, int, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		selectOrderColumns+` WHERE org_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		orgID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.PurchaseOrder
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM purchase_orders WHERE org_id = $1`, orgID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	return orders, total, nil
}

func (r *OrderRepository) publishCreated(tx *sql.Tx, order *models.PurchaseOrder) error {
	event := domainevents.OrderCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		OrderID:     order.ID,
		OrgID:       order.OrgID,
		Number:      order.Number,
		VendorName:  order.CustomerSupplier,
		Status:      order.Status,
		TotalAmount: order.TotalAmount.String(),
		AutoCreated: true,
		OccurredAt:  order.CreatedAt,
	}
	if len(order.Items) > 0 {
		event.ItemID = order.Items[0].ItemID
		event.ItemName = order.Items[0].Name
		event.Quantity = order.Items[0].Quantity
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicOrderCreated, msg)
}

const selectOrderColumns = `
	SELECT id, org_id, number, type, customer_supplier, date, due_date, status,
	       items, total_amount, notes, order_type, shipping_method, terms, created_at
	FROM purchase_orders`

func scanOrder(row rowScanner) (*models.PurchaseOrder, error) {
	var (
		order     models.PurchaseOrder
		lineItems []byte
	)
	err := row.Scan(
		&order.ID, &order.OrgID, &order.Number, &order.Type, &order.CustomerSupplier,
		&order.Date, &order.DueDate, &order.Status, &lineItems, &order.TotalAmount,
		&order.Notes, &order.OrderType, &order.ShippingMethod, &order.Terms, &order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lineItems, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal line items: %w", err)
	}
	return &order, nil
}
