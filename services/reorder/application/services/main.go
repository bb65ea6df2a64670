package services

import (
	"github.com/ghuser/restockd/pkg/app"
	"github.com/ghuser/restockd/pkg/cache"
	"github.com/ghuser/restockd/services/reorder/infrastructure/debounce"
	"github.com/ghuser/restockd/services/reorder/infrastructure/notify"
	"github.com/ghuser/restockd/services/reorder/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Inventory    *InventoryService
	Vendor       *VendorService
	Order        *OrderService
	Notification *NotificationService
	Profile      *ProfileService
	Reorder      *ReorderService
}

// New wires all reorder application services with infrastructure from the
// Application container. The debounce store is Redis-backed so the cooldown
// window holds across worker restarts and instances.
func New(a *app.Application) *Services {
	inventoryRepo := postgres.NewInventoryRepository(a.Db)
	vendorRepo := postgres.NewVendorRepository(a.Db)
	profileRepo := postgres.NewProfileRepository(a.Db)
	orderRepo := postgres.NewOrderRepository(a.Db, a.EventBus)
	notificationRepo := postgres.NewNotificationRepository(a.Db)

	notifier := notify.New(notificationRepo, a.EventBus)
	debounceStore := debounce.NewRedisStore(a.Redis, a.Cfg.ReorderCooldown)
	dispatcher := NewDispatcher(orderRepo, debounceStore, notifier, a.Mailer, a.Logger)

	return &Services{
		Inventory:    NewInventoryService(inventoryRepo, vendorRepo),
		Vendor:       NewVendorService(vendorRepo),
		Order:        NewOrderService(orderRepo, cache.NewOrderCache(a.Redis)),
		Notification: NewNotificationService(notificationRepo),
		Profile:      NewProfileService(profileRepo),
		Reorder:      NewReorderService(dispatcher, inventoryRepo, vendorRepo, profileRepo, a.Logger),
	}
}
