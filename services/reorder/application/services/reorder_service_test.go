package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/restockd/services/reorder/domain"
	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
	"github.com/ghuser/restockd/services/reorder/infrastructure/debounce"
)

type fakeInventoryRepo struct {
	items   map[uuid.UUID][]*models.InventoryItem
	findErr error
}

func (f *fakeInventoryRepo) Save(context.Context, *models.InventoryItem) error {
	return errors.New("not implemented")
}

func (f *fakeInventoryRepo) GetByID(context.Context, uuid.UUID, uuid.UUID) (*models.InventoryItem, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeInventoryRepo) FindByOrgID(context.Context, uuid.UUID, repositories.QueryOpts) ([]*models.InventoryItem, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeInventoryRepo) FindAllByOrgID(_ context.Context, orgID uuid.UUID) ([]*models.InventoryItem, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.items[orgID], nil
}

func (f *fakeInventoryRepo) UpdateReorderSettings(context.Context, *models.InventoryItem) error {
	return errors.New("not implemented")
}

type fakeVendorRepo struct {
	vendors map[uuid.UUID][]*models.Vendor
}

func (f *fakeVendorRepo) Save(context.Context, *models.Vendor) error {
	return errors.New("not implemented")
}

func (f *fakeVendorRepo) GetByID(context.Context, uuid.UUID, uuid.UUID) (*models.Vendor, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeVendorRepo) FindAllByOrgID(_ context.Context, orgID uuid.UUID) ([]*models.Vendor, error) {
	return f.vendors[orgID], nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*models.OrgProfile
	listErr  error
}

func (f *fakeProfileRepo) GetByOrgID(_ context.Context, orgID uuid.UUID) (*models.OrgProfile, error) {
	p, ok := f.profiles[orgID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Upsert(context.Context, *models.OrgProfile) error {
	return errors.New("not implemented")
}

func (f *fakeProfileRepo) ListAutoReorderEnabled(context.Context) ([]uuid.UUID, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var ids []uuid.UUID
	for id, p := range f.profiles {
		if p.AutoReorderEnabled {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func newReorderFixture() (*ReorderService, *fakeOrderRepo, *fakeInventoryRepo, *fakeVendorRepo, *fakeProfileRepo) {
	orders := &fakeOrderRepo{}
	inventory := &fakeInventoryRepo{items: map[uuid.UUID][]*models.InventoryItem{}}
	vendors := &fakeVendorRepo{vendors: map[uuid.UUID][]*models.Vendor{}}
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*models.OrgProfile{}}

	disp := NewDispatcher(orders, debounce.NewMemoryStore(24*time.Hour), &fakeNotifier{}, &fakeMailer{}, testLogger())
	svc := NewReorderService(disp, inventory, vendors, profiles, testLogger())
	return svc, orders, inventory, vendors, profiles
}

func TestRunOrg_MissingProfileIsNoOp(t *testing.T) {
	svc, orders, _, _, _ := newReorderFixture()

	report, err := svc.RunOrg(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("RunOrg: %v", err)
	}
	if report != (TickReport{}) {
		t.Fatalf("report = %+v, want zero", report)
	}
	if len(orders.created) != 0 {
		t.Fatal("no orders expected for an org without a profile")
	}
}

func TestRunOrg_OrdersEligibleItems(t *testing.T) {
	svc, orders, inventory, vendors, profiles := newReorderFixture()

	orgID := uuid.New()
	vendor := testVendor(orgID, "orders@acme.example")
	profiles.profiles[orgID] = enabledProfile(orgID, false)
	vendors.vendors[orgID] = []*models.Vendor{vendor}
	inventory.items[orgID] = []*models.InventoryItem{
		lowStockItem(orgID, vendor.ID, nil),
		lowStockItem(orgID, vendor.ID, func(i *models.InventoryItem) { i.Quantity = 500 }),
	}

	report, err := svc.RunOrg(context.Background(), orgID)
	if err != nil {
		t.Fatalf("RunOrg: %v", err)
	}
	if want := (TickReport{Eligible: 1, Ordered: 1}); report != want {
		t.Fatalf("report = %+v, want %+v", report, want)
	}
	if len(orders.created) != 1 {
		t.Fatalf("created %d orders, want 1", len(orders.created))
	}
}

func TestRunOrg_SnapshotLoadError(t *testing.T) {
	svc, _, inventory, _, profiles := newReorderFixture()

	orgID := uuid.New()
	profiles.profiles[orgID] = enabledProfile(orgID, false)
	inventory.findErr = errors.New("db down")

	if _, err := svc.RunOrg(context.Background(), orgID); err == nil {
		t.Fatal("expected error when the inventory snapshot cannot be loaded")
	}
}

func TestRunTick_IteratesEnabledOrgs(t *testing.T) {
	svc, orders, inventory, vendors, profiles := newReorderFixture()

	// Two enabled orgs with one eligible item each, one disabled org.
	for range 2 {
		orgID := uuid.New()
		vendor := testVendor(orgID, "")
		profiles.profiles[orgID] = enabledProfile(orgID, false)
		vendors.vendors[orgID] = []*models.Vendor{vendor}
		inventory.items[orgID] = []*models.InventoryItem{lowStockItem(orgID, vendor.ID, nil)}
	}
	disabledOrg := uuid.New()
	profiles.profiles[disabledOrg] = &models.OrgProfile{OrgID: disabledOrg}
	inventory.items[disabledOrg] = []*models.InventoryItem{lowStockItem(disabledOrg, uuid.New(), nil)}

	if err := svc.RunTick(context.Background()); err != nil {
		t.Fatalf("RunTick: %v", err)
	}
	if len(orders.created) != 2 {
		t.Fatalf("created %d orders, want 2", len(orders.created))
	}
}

func TestRunTick_ListError(t *testing.T) {
	svc, _, _, _, profiles := newReorderFixture()
	profiles.listErr = errors.New("db down")

	if err := svc.RunTick(context.Background()); err == nil {
		t.Fatal("expected error when the org list cannot be loaded")
	}
}
