package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/restockd/pkg/logger"
	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
	domainsvcs "github.com/ghuser/restockd/services/reorder/domain/services"
)

// Notifier is the user-facing notification sink consumed by the dispatcher.
// Notify persists an in-app notification entry; Toast publishes a transient
// message for connected clients. Both are best-effort from the dispatcher's
// perspective — failures are logged, never propagated.
type Notifier interface {
	Notify(ctx context.Context, orgID uuid.UUID, kind models.NotificationKind, message string) error
	Toast(ctx context.Context, orgID uuid.UUID, kind models.NotificationKind, message string) error
}

// Mailer dispatches vendor purchase-order emails through the transactional
// mail provider. Send returns an error when the provider is not configured,
// the transport fails, or the provider reports a delivery error.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Snapshot is one evaluation tick's input: the full inventory and vendor
// state of a single organization plus its profile. Supplied wholesale — no
// streaming, no pagination.
type Snapshot struct {
	OrgID   uuid.UUID
	Items   []*models.InventoryItem
	Vendors []*models.Vendor
	Profile *models.OrgProfile
}

// TickReport summarizes one dispatcher run. Purely informational; the
// dispatcher always completes its tick regardless of per-item failures.
type TickReport struct {
	Eligible  int // items passing the eligibility filter
	Ordered   int // purchase orders created
	Debounced int // items skipped inside the cooldown window
	Failed    int // vendor-resolution or submission failures
}

// Dispatcher runs the auto-reorder evaluation tick: eligibility filter,
// debounce check, order synthesis, submission, notifications and optional
// vendor email — strictly sequentially per item, so no two in-flight order
// submissions can race on the same debounce entry.
type Dispatcher struct {
	orders   repositories.OrderRepository
	debounce repositories.DebounceStore
	notifier Notifier
	mailer   Mailer
	log      logger.Logger

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewDispatcher wires a Dispatcher with its collaborators.
func NewDispatcher(
	orders repositories.OrderRepository,
	debounce repositories.DebounceStore,
	notifier Notifier,
	mailer Mailer,
	log logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		orders:   orders,
		debounce: debounce,
		notifier: notifier,
		mailer:   mailer,
		log:      log,
		now:      time.Now,
	}
}

// WithClock overrides the dispatcher's time source. Test hook.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Run executes one evaluation tick over snap.
//
// Precondition: the org profile must exist, have auto-reorder enabled, and
// carry a non-nil org ID — otherwise the tick is a silent no-op (expected
// steady state for most orgs).
//
// Items are processed in filtered-snapshot order. A failure for one item
// never aborts processing of subsequent items; Run always returns normally.
func (d *Dispatcher) Run(ctx context.Context, snap Snapshot) TickReport {
	var report TickReport

	if snap.OrgID == uuid.Nil || snap.Profile == nil || !snap.Profile.AutoReorderEnabled {
		d.log.DebugContext(ctx, "auto-reorder disabled or org missing, skipping tick", "org_id", snap.OrgID)
		return report
	}

	eligible := domainsvcs.EligibleItems(snap.Items)
	report.Eligible = len(eligible)
	if len(eligible) == 0 {
		return report
	}

	vendors := vendorIndex(snap.Vendors)

	for _, item := range eligible {
		now := d.now()

		skip, err := d.debounce.ShouldSkip(ctx, item.ID, now)
		if err != nil {
			// Fail closed: an unreadable debounce entry must not cause a
			// duplicate order inside the cooldown window.
			d.log.WarnContext(ctx, "debounce check failed, skipping item",
				"item_id", item.ID, "error", err)
			report.Debounced++
			continue
		}
		if skip {
			d.log.DebugContext(ctx, "item inside cooldown window, skipping",
				"item_id", item.ID, "sku", item.SKU)
			report.Debounced++
			continue
		}

		vendor := vendors[item.VendorID.UUID]
		if vendor == nil {
			// Deliberately not debounced: the item re-fails (and re-notifies)
			// every tick until its vendor assignment is fixed.
			report.Failed++
			msg := fmt.Sprintf("Auto-reorder failed for %s: assigned vendor not found", item.Name)
			d.notify(ctx, snap.OrgID, models.NotificationError, msg)
			d.toast(ctx, snap.OrgID, models.NotificationError, msg)
			continue
		}

		order, err := domainsvcs.SynthesizeOrder(item, vendor, now)
		if err != nil {
			report.Failed++
			d.log.ErrorContext(ctx, "order synthesis failed", "item_id", item.ID, "error", err)
			continue
		}

		if err := d.orders.Create(ctx, order); err != nil {
			// Not debounced either: the item is eligible again next tick.
			report.Failed++
			msg := fmt.Sprintf("Auto-reorder failed for %s: %v", item.Name, err)
			d.notify(ctx, snap.OrgID, models.NotificationError, msg)
			d.toast(ctx, snap.OrgID, models.NotificationError, msg)
			continue
		}
		report.Ordered++

		if err := d.debounce.RecordAttempt(ctx, item.ID, now); err != nil {
			d.log.WarnContext(ctx, "failed to record reorder attempt",
				"item_id", item.ID, "error", err)
		}

		msg := fmt.Sprintf("Auto-reorder placed %s for %d × %s", order.Number, item.AutoReorderQuantity, item.Name)
		d.notify(ctx, snap.OrgID, models.NotificationSuccess, msg)
		d.toast(ctx, snap.OrgID, models.NotificationSuccess, msg)

		if snap.Profile.AutoReorderNotifications {
			d.emailVendor(ctx, snap.OrgID, item, vendor, order)
		}
	}

	d.log.InfoContext(ctx, "auto-reorder tick complete",
		"org_id", snap.OrgID,
		"eligible", report.Eligible,
		"ordered", report.Ordered,
		"debounced", report.Debounced,
		"failed", report.Failed,
	)
	return report
}

// emailVendor attempts the vendor email side channel after a successful
// order. Its outcome is purely informational and never aborts the per-item
// loop: failures surface as an error notification, success as info, and a
// vendor without an email address as a warning.
func (d *Dispatcher) emailVendor(ctx context.Context, orgID uuid.UUID, item *models.InventoryItem, vendor *models.Vendor, order *models.PurchaseOrder) {
	if !vendor.HasEmail() {
		d.notify(ctx, orgID, models.NotificationWarning,
			fmt.Sprintf("No email on file for vendor %s; purchase order %s was not sent", vendor.Name, order.Number))
		return
	}

	subject := fmt.Sprintf("New Purchase Order: %s for %s", order.Number, item.Name)
	body, err := renderOrderEmail(vendor, order)
	if err != nil {
		d.log.ErrorContext(ctx, "order email render failed", "order", order.Number, "error", err)
		d.notify(ctx, orgID, models.NotificationError,
			fmt.Sprintf("Failed to email vendor %s for order %s", vendor.Name, order.Number))
		return
	}

	if err := d.mailer.Send(ctx, vendor.Email, subject, body); err != nil {
		d.notify(ctx, orgID, models.NotificationError,
			fmt.Sprintf("Failed to email vendor %s for order %s: %v", vendor.Name, order.Number, err))
		return
	}

	d.notify(ctx, orgID, models.NotificationInfo,
		fmt.Sprintf("Purchase order %s emailed to %s", order.Number, vendor.Email))
}

func (d *Dispatcher) notify(ctx context.Context, orgID uuid.UUID, kind models.NotificationKind, msg string) {
	if err := d.notifier.Notify(ctx, orgID, kind, msg); err != nil {
		d.log.WarnContext(ctx, "notification sink failed", "kind", kind, "error", err)
	}
}

func (d *Dispatcher) toast(ctx context.Context, orgID uuid.UUID, kind models.NotificationKind, msg string) {
	if err := d.notifier.Toast(ctx, orgID, kind, msg); err != nil {
		d.log.WarnContext(ctx, "toast publish failed", "kind", kind, "error", err)
	}
}

// vendorIndex builds an ID lookup over the snapshot's vendor list.
func vendorIndex(vendors []*models.Vendor) map[uuid.UUID]*models.Vendor {
	idx := make(map[uuid.UUID]*models.Vendor, len(vendors))
	for _, v := range vendors {
		idx[v.ID] = v
	}
	return idx
}

var orderEmailTmpl = template.Must(template.New("order_email").Parse(`<h2>New Purchase Order {{.Order.Number}}</h2>
<p>Dear {{if .Vendor.ContactPerson}}{{.Vendor.ContactPerson}}{{else}}{{.Vendor.Name}}{{end}},</p>
<p>Please find our purchase order below.</p>
<table>
{{range .Order.Items}}  <tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td></tr>
{{end}}</table>
<p>Total: {{.Order.TotalAmount}}<br>
Due date: {{.Order.DueDate.Format "2006-01-02"}}<br>
Terms: {{.Order.Terms}}</p>
`))

func renderOrderEmail(vendor *models.Vendor, order *models.PurchaseOrder) (string, error) {
	var buf bytes.Buffer
	err := orderEmailTmpl.Execute(&buf, struct {
		Vendor *models.Vendor
		Order  *models.PurchaseOrder
	}{vendor, order})
	if err != nil {
		return "", fmt.Errorf("render order email: %w", err)
	}
	return buf.String(), nil
}
