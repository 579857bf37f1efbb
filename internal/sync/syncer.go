package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rithysok/restock-backend/internal/cart"
	"github.com/rithysok/restock-backend/pkg/db/models"
	"github.com/rithysok/restock-backend/pkg/enums"
	"github.com/rithysok/restock-backend/pkg/logger"
	"github.com/rithysok/restock-backend/pkg/metrics"
)

// ItemsRemote is the per-entity adapter surface for items.
type ItemsRemote interface {
	PushAll(ctx context.Context, items []models.Item) error
	FetchAll(ctx context.Context) ([]models.Item, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// SuppliersRemote is the per-entity adapter surface for suppliers.
type SuppliersRemote interface {
	PushAll(ctx context.Context, records []models.Supplier) error
	FetchAll(ctx context.Context) ([]models.Supplier, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// OrdersRemote is the adapter surface for pending and completed orders.
type OrdersRemote interface {
	PushAllPending(ctx context.Context, records []models.PendingOrder) error
	FetchAllPending(ctx context.Context) ([]models.PendingOrder, error)
	DeletePendingByID(ctx context.Context, id uuid.UUID) error
	PushAllCompleted(ctx context.Context, records []models.CompletedOrder) error
	FetchAllCompleted(ctx context.Context) ([]models.CompletedOrder, error)
}

// CartRemote is the singleton-row adapter surface for the active cart.
type CartRemote interface {
	PushSingleton(ctx context.Context, items []models.OrderItem, meta cart.Metadata) error
	FetchSingleton(ctx context.Context) ([]models.OrderItem, cart.Metadata, error)
}

// Syncer is the remote sync facade: it wraps the per-entity repositories
// with per-category single-flight guards, metrics and logging. Pushes for
// the same category while one is running are dropped and reported as
// ErrSyncInFlight; different categories run concurrently with no
// coordination.
type Syncer struct {
	items     ItemsRemote
	suppliers SuppliersRemote
	orders    OrdersRemote
	cart      CartRemote

	guards  map[enums.SyncCategory]*flightGuard
	metrics *metrics.SyncMetrics
	logg    *logger.Logger
}

// NewSyncer builds the facade with the required adapters.
func NewSyncer(items ItemsRemote, suppliers SuppliersRemote, orders OrdersRemote, cartRemote CartRemote, m *metrics.SyncMetrics, logg *logger.Logger) (*Syncer, error) {
	if items == nil {
		return nil, fmt.Errorf("items remote required")
	}
	if suppliers == nil {
		return nil, fmt.Errorf("suppliers remote required")
	}
	if orders == nil {
		return nil, fmt.Errorf("orders remote required")
	}
	if cartRemote == nil {
		return nil, fmt.Errorf("cart remote required")
	}
	return &Syncer{
		items:     items,
		suppliers: suppliers,
		orders:    orders,
		cart:      cartRemote,
		guards:    newGuards(),
		metrics:   m,
		logg:      logg,
	}, nil
}

// RemoteState is everything the startup fetch returns.
type RemoteState struct {
	Items           []models.Item
	Suppliers       []models.Supplier
	PendingOrders   []models.PendingOrder
	CompletedOrders []models.CompletedOrder
	CartItems       []models.OrderItem
	CartMetadata    cart.Metadata
}

// FetchState loads every collection from the remote store. Any error
// propagates; the caller decides whether to fall back to seed data.
func (s *Syncer) FetchState(ctx context.Context) (*RemoteState, error) {
	items, err := s.items.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	suppliers, err := s.suppliers.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching suppliers: %w", err)
	}
	pending, err := s.orders.FetchAllPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching pending orders: %w", err)
	}
	completed, err := s.orders.FetchAllCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching completed orders: %w", err)
	}
	cartItems, cartMeta, err := s.cart.FetchSingleton(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching current order: %w", err)
	}
	return &RemoteState{
		Items:           items,
		Suppliers:       suppliers,
		PendingOrders:   pending,
		CompletedOrders: completed,
		CartItems:       cartItems,
		CartMetadata:    cartMeta,
	}, nil
}

// PushItems uploads the whole item collection.
func (s *Syncer) PushItems(ctx context.Context, snapshot []models.Item) error {
	return s.guarded(ctx, enums.SyncCategoryItems, func(ctx context.Context) error {
		return s.items.PushAll(ctx, snapshot)
	})
}

// PushSuppliers uploads the whole supplier collection.
func (s *Syncer) PushSuppliers(ctx context.Context, snapshot []models.Supplier) error {
	return s.guarded(ctx, enums.SyncCategorySuppliers, func(ctx context.Context) error {
		return s.suppliers.PushAll(ctx, snapshot)
	})
}

// PushPendingOrders uploads the whole pending order collection.
func (s *Syncer) PushPendingOrders(ctx context.Context, snapshot []models.PendingOrder) error {
	return s.guarded(ctx, enums.SyncCategoryPendingOrders, func(ctx context.Context) error {
		return s.orders.PushAllPending(ctx, snapshot)
	})
}

// PushCompletedOrders uploads the whole completed order collection.
func (s *Syncer) PushCompletedOrders(ctx context.Context, snapshot []models.CompletedOrder) error {
	return s.guarded(ctx, enums.SyncCategoryCompletedOrders, func(ctx context.Context) error {
		return s.orders.PushAllCompleted(ctx, snapshot)
	})
}

// PushCurrentOrder uploads the cart singleton.
func (s *Syncer) PushCurrentOrder(ctx context.Context, items []models.OrderItem, meta cart.Metadata) error {
	return s.guarded(ctx, enums.SyncCategoryCurrentOrder, func(ctx context.Context) error {
		return s.cart.PushSingleton(ctx, items, meta)
	})
}

// DeleteItem removes one remote row. Not guarded: deletes are issued from
// the mutation path and must not be silently dropped.
func (s *Syncer) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.items.DeleteByID(ctx, id)
}

// DeleteSupplier removes one remote row.
func (s *Syncer) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	return s.suppliers.DeleteByID(ctx, id)
}

// DeletePendingOrder removes one remote row.
func (s *Syncer) DeletePendingOrder(ctx context.Context, id uuid.UUID) error {
	return s.orders.DeletePendingByID(ctx, id)
}

func (s *Syncer) guarded(ctx context.Context, category enums.SyncCategory, push func(context.Context) error) error {
	guard := s.guards[category]
	if !guard.tryAcquire() {
		s.metrics.IncDropped(category.String())
		if s.logg != nil {
			s.logg.Warn(s.logg.WithCategory(ctx, category.String()), "sync.dropped")
		}
		return ErrSyncInFlight
	}
	defer guard.release()

	start := time.Now()
	err := push(ctx)
	s.metrics.ObserveDuration(category.String(), time.Since(start))
	if err != nil {
		s.metrics.IncFailure(category.String())
		return err
	}
	s.metrics.IncSuccess(category.String())
	return nil
}
