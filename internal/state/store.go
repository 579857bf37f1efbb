package state

import (
	"context"
	"errors"
	"fmt"
	stdsync "sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/rithysok/restock-backend/internal/cart"
	remotesync "github.com/rithysok/restock-backend/internal/sync"
	"github.com/rithysok/restock-backend/pkg/db/models"
	"github.com/rithysok/restock-backend/pkg/enums"
	"github.com/rithysok/restock-backend/pkg/logger"
)

// Phase tracks the load lifecycle of the store.
type Phase int32

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Remote is what the store needs from the sync facade.
type Remote interface {
	FetchState(ctx context.Context) (*remotesync.RemoteState, error)
	PushItems(ctx context.Context, snapshot []models.Item) error
	PushSuppliers(ctx context.Context, snapshot []models.Supplier) error
	PushPendingOrders(ctx context.Context, snapshot []models.PendingOrder) error
	PushCompletedOrders(ctx context.Context, snapshot []models.CompletedOrder) error
	PushCurrentOrder(ctx context.Context, items []models.OrderItem, meta cart.Metadata) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	DeleteSupplier(ctx context.Context, id uuid.UUID) error
	DeletePendingOrder(ctx context.Context, id uuid.UUID) error
}

// SeedFunc supplies the bundled default dataset.
type SeedFunc func() ([]models.Item, []models.Supplier, error)

// Store holds the authoritative in-memory collections. It is the sole
// mutator; the sync facade only reads snapshots handed to it. Mutations are
// synchronous, remote pushes are scheduled as detached background tasks and
// never roll a mutation back (local state is the source of truth).
type Store struct {
	mu stdsync.Mutex

	remote Remote
	seed   SeedFunc
	logg   *logger.Logger
	run    func(func())

	phase Phase

	items           []models.Item
	suppliers       []models.Supplier
	pendingOrders   []models.PendingOrder
	completedOrders []models.CompletedOrder
	cartItems       []models.OrderItem
	cartMeta        cart.Metadata
}

// Params carries the store dependencies.
type Params struct {
	Remote Remote
	Seed   SeedFunc
	Logger *logger.Logger
	// Scheduler runs background sync tasks; defaults to `go fn()`.
	// Tests inject a synchronous scheduler.
	Scheduler func(func())
}

// New builds an uninitialized store. Call Load before mutating.
func New(params Params) (*Store, error) {
	if params.Remote == nil {
		return nil, fmt.Errorf("remote sync facade required")
	}
	if params.Seed == nil {
		return nil, fmt.Errorf("seed source required")
	}
	run := params.Scheduler
	if run == nil {
		run = func(fn func()) { go fn() }
	}
	return &Store{
		remote:   params.Remote,
		seed:     params.Seed,
		logg:     params.Logger,
		run:      run,
		cartMeta: cart.DefaultMetadata(),
	}, nil
}

// Load transitions Uninitialized → Loading → Ready. When the remote fetch
// fails or returns no items, the bundled defaults populate items and
// suppliers; pending orders and the cart start empty. Ready is reached
// unconditionally.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseUninitialized {
		return fmt.Errorf("store already loaded (phase %s)", s.phase)
	}
	s.phase = PhaseLoading

	remoteState, err := s.remote.FetchState(ctx)
	if err != nil || len(remoteState.Items) == 0 {
		if err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "remote fetch failed, seeding defaults")
		}
		items, suppliers, seedErr := s.seed()
		if seedErr != nil {
			// still become Ready; an empty store beats a stuck one
			if s.logg != nil {
				s.logg.Error(ctx, "loading bundled defaults", seedErr)
			}
			items, suppliers = []models.Item{}, []models.Supplier{}
		}
		s.items = items
		s.suppliers = suppliers
		s.pendingOrders = []models.PendingOrder{}
		s.completedOrders = []models.CompletedOrder{}
		s.cartItems = []models.OrderItem{}
		s.cartMeta = cart.DefaultMetadata()
		s.phase = PhaseReady
		return nil
	}

	s.items = remoteState.Items
	s.suppliers = remoteState.Suppliers
	s.pendingOrders = remoteState.PendingOrders
	s.completedOrders = remoteState.CompletedOrders
	s.cartItems = remoteState.CartItems
	s.cartMeta = remoteState.CartMetadata
	s.phase = PhaseReady
	return nil
}

// Phase returns the current lifecycle phase.
func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Items returns a copy of the item collection.
func (s *Store) Items() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Item(nil), s.items...)
}

// Suppliers returns a copy of the supplier collection.
func (s *Store) Suppliers() []models.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Supplier(nil), s.suppliers...)
}

// PendingOrders returns a copy of the pending order collection.
func (s *Store) PendingOrders() []models.PendingOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PendingOrder(nil), s.pendingOrders...)
}

// CompletedOrders returns a copy of the completed order collection.
func (s *Store) CompletedOrders() []models.CompletedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CompletedOrder(nil), s.completedOrders...)
}

// CurrentOrder returns a copy of the cart lines plus its metadata.
func (s *Store) CurrentOrder() ([]models.OrderItem, cart.Metadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.OrderItem(nil), s.cartItems...), s.cartMeta
}

// Flush pushes every collection synchronously, bypassing the background
// scheduler. Per-category failures are aggregated, not fail-fast. A category
// with a push already in flight is skipped rather than reported: the running
// push carries the latest snapshot.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	items := append([]models.Item(nil), s.items...)
	suppliers := append([]models.Supplier(nil), s.suppliers...)
	pending := append([]models.PendingOrder(nil), s.pendingOrders...)
	completed := append([]models.CompletedOrder(nil), s.completedOrders...)
	cartItems := append([]models.OrderItem(nil), s.cartItems...)
	cartMeta := s.cartMeta
	s.mu.Unlock()

	var err error
	err = multierr.Append(err, skipInFlight(s.remote.PushItems(ctx, items)))
	err = multierr.Append(err, skipInFlight(s.remote.PushSuppliers(ctx, suppliers)))
	err = multierr.Append(err, skipInFlight(s.remote.PushPendingOrders(ctx, pending)))
	err = multierr.Append(err, skipInFlight(s.remote.PushCompletedOrders(ctx, completed)))
	err = multierr.Append(err, skipInFlight(s.remote.PushCurrentOrder(ctx, cartItems, cartMeta)))
	return err
}

func skipInFlight(err error) error {
	if errors.Is(err, remotesync.ErrSyncInFlight) {
		return nil
	}
	return err
}

// schedule queues a background push when the store is Ready. Push errors
// are logged and otherwise ignored; a dropped same-category push is already
// counted by the syncer.
func (s *Store) schedule(category enums.SyncCategory, push func(ctx context.Context) error) {
	if s.phase != PhaseReady {
		return
	}
	s.run(func() {
		ctx := context.Background()
		if err := push(ctx); err != nil && !errors.Is(err, remotesync.ErrSyncInFlight) {
			if s.logg != nil {
				s.logg.Error(s.logg.WithCategory(ctx, category.String()), "background sync failed", err)
			}
		}
	})
}

func (s *Store) scheduleItemsPush() {
	snapshot := append([]models.Item(nil), s.items...)
	s.schedule(enums.SyncCategoryItems, func(ctx context.Context) error {
		return s.remote.PushItems(ctx, snapshot)
	})
}

func (s *Store) scheduleSuppliersPush() {
	snapshot := append([]models.Supplier(nil), s.suppliers...)
	s.schedule(enums.SyncCategorySuppliers, func(ctx context.Context) error {
		return s.remote.PushSuppliers(ctx, snapshot)
	})
}

func (s *Store) schedulePendingOrdersPush() {
	snapshot := append([]models.PendingOrder(nil), s.pendingOrders...)
	s.schedule(enums.SyncCategoryPendingOrders, func(ctx context.Context) error {
		return s.remote.PushPendingOrders(ctx, snapshot)
	})
}

func (s *Store) scheduleCompletedOrdersPush() {
	snapshot := append([]models.CompletedOrder(nil), s.completedOrders...)
	s.schedule(enums.SyncCategoryCompletedOrders, func(ctx context.Context) error {
		return s.remote.PushCompletedOrders(ctx, snapshot)
	})
}

func (s *Store) scheduleCartPush() {
	items := append([]models.OrderItem(nil), s.cartItems...)
	meta := s.cartMeta
	s.schedule(enums.SyncCategoryCurrentOrder, func(ctx context.Context) error {
		return s.remote.PushCurrentOrder(ctx, items, meta)
	})
}
