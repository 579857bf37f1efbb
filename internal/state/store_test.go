package state

import (
	"context"
	"fmt"
	stdsync "sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rithysok/restock-backend/internal/cart"
	remotesync "github.com/rithysok/restock-backend/internal/sync"
	"github.com/rithysok/restock-backend/pkg/db/models"
	"github.com/rithysok/restock-backend/pkg/enums"
	pkgerrors "github.com/rithysok/restock-backend/pkg/errors"
)

type stubRemote struct {
	mu stdsync.Mutex

	state    *remotesync.RemoteState
	fetchErr error

	pushes    map[enums.SyncCategory]int
	pushErr   error
	deleteErr error
	deleted   []uuid.UUID
}

func newStubRemote() *stubRemote {
	return &stubRemote{pushes: map[enums.SyncCategory]int{}}
}

func (r *stubRemote) recordPush(category enums.SyncCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes[category]++
	return r.pushErr
}

func (r *stubRemote) pushCount(category enums.SyncCategory) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pushes[category]
}

func (r *stubRemote) FetchState(ctx context.Context) (*remotesync.RemoteState, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	if r.state != nil {
		return r.state, nil
	}
	return &remotesync.RemoteState{
		Items:           []models.Item{},
		Suppliers:       []models.Supplier{},
		PendingOrders:   []models.PendingOrder{},
		CompletedOrders: []models.CompletedOrder{},
		CartItems:       []models.OrderItem{},
		CartMetadata:    cart.DefaultMetadata(),
	}, nil
}

func (r *stubRemote) PushItems(ctx context.Context, snapshot []models.Item) error {
	return r.recordPush(enums.SyncCategoryItems)
}

func (r *stubRemote) PushSuppliers(ctx context.Context, snapshot []models.Supplier) error {
	return r.recordPush(enums.SyncCategorySuppliers)
}

func (r *stubRemote) PushPendingOrders(ctx context.Context, snapshot []models.PendingOrder) error {
	return r.recordPush(enums.SyncCategoryPendingOrders)
}

func (r *stubRemote) PushCompletedOrders(ctx context.Context, snapshot []models.CompletedOrder) error {
	return r.recordPush(enums.SyncCategoryCompletedOrders)
}

func (r *stubRemote) PushCurrentOrder(ctx context.Context, items []models.OrderItem, meta cart.Metadata) error {
	return r.recordPush(enums.SyncCategoryCurrentOrder)
}

func (r *stubRemote) DeleteItem(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return r.deleteErr
}

func (r *stubRemote) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	return r.DeleteItem(ctx, id)
}

func (r *stubRemote) DeletePendingOrder(ctx context.Context, id uuid.UUID) error {
	return r.DeleteItem(ctx, id)
}

func testSeed() ([]models.Item, []models.Supplier, error) {
	apple := models.Item{ID: uuid.New(), Name: "Apple", Supplier: "Fresh Market"}
	rice := models.Item{ID: uuid.New(), Name: "Rice", Supplier: "Dry Goods"}
	market := models.Supplier{ID: uuid.New(), Name: "Fresh Market", DefaultPaymentMethod: enums.DefaultPaymentMethod}
	return []models.Item{apple, rice}, []models.Supplier{market}, nil
}

func newTestStore(t *testing.T, remote *stubRemote) *Store {
	t.Helper()
	store, err := New(Params{
		Remote:    remote,
		Seed:      testSeed,
		Scheduler: func(fn func()) { fn() },
	})
	require.NoError(t, err)
	return store
}

func newReadyStore(t *testing.T, remote *stubRemote) *Store {
	t.Helper()
	store := newTestStore(t, remote)
	require.NoError(t, store.Load(context.Background()))
	return store
}

func storeTag(tag enums.StoreTag) *enums.StoreTag { return &tag }

func TestLoadAdoptsRemoteState(t *testing.T) {
	remote := newStubRemote()
	itemID := uuid.New()
	remote.state = &remotesync.RemoteState{
		Items:     []models.Item{{ID: itemID, Name: "Fish Sauce", Supplier: "Angkor Dry Goods"}},
		Suppliers: []models.Supplier{{ID: uuid.New(), Name: "Angkor Dry Goods"}},
		PendingOrders: []models.PendingOrder{
			{ID: uuid.New(), Supplier: "Angkor Dry Goods", Status: enums.OrderStatusPending},
		},
		CompletedOrders: []models.CompletedOrder{},
		CartItems:       []models.OrderItem{{ItemID: itemID, Name: "Fish Sauce", Quantity: 2}},
		CartMetadata:    cart.Metadata{PaymentMethod: enums.PaymentMethodBankTransfer},
	}

	store := newTestStore(t, remote)
	require.Equal(t, PhaseUninitialized, store.Phase())
	require.NoError(t, store.Load(context.Background()))
	require.Equal(t, PhaseReady, store.Phase())

	require.Len(t, store.Items(), 1)
	require.Len(t, store.Suppliers(), 1)
	require.Len(t, store.PendingOrders(), 1)

	lines, meta := store.CurrentOrder()
	require.Len(t, lines, 1)
	require.Equal(t, enums.PaymentMethodBankTransfer, meta.PaymentMethod)
}

func TestLoadSeedsDefaultsWhenRemoteEmpty(t *testing.T) {
	store := newReadyStore(t, newStubRemote())

	require.Len(t, store.Items(), 2)
	require.Len(t, store.Suppliers(), 1)
	require.Empty(t, store.PendingOrders())
	require.Empty(t, store.CompletedOrders())

	lines, meta := store.CurrentOrder()
	require.Empty(t, lines)
	require.Equal(t, enums.DefaultPaymentMethod, meta.PaymentMethod)
}

func TestLoadSeedsDefaultsOnFetchError(t *testing.T) {
	remote := newStubRemote()
	remote.fetchErr = fmt.Errorf("connection refused")

	store := newTestStore(t, remote)
	require.NoError(t, store.Load(context.Background()))
	require.Equal(t, PhaseReady, store.Phase())
	require.Len(t, store.Items(), 2)
}

func TestLoadTwiceFails(t *testing.T) {
	store := newReadyStore(t, newStubRemote())
	require.Error(t, store.Load(context.Background()))
}

func TestMutationBeforeLoadRejected(t *testing.T) {
	store := newTestStore(t, newStubRemote())
	_, err := store.AddItem(context.Background(), ItemDraft{Name: "Palm Sugar", Supplier: "Kampot Produce Co"})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestAddItemGeneratesIDAndPushes(t *testing.T) {
	remote := newStubRemote()
	store := newReadyStore(t, remote)

	item, err := store.AddItem(context.Background(), ItemDraft{Name: "Palm Sugar", Supplier: "Kampot Produce Co"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, item.ID)
	require.Len(t, store.Items(), 3)
	require.Equal(t, 1, remote.pushCount(enums.SyncCategoryItems))
}

func TestAddItemCustomIDConflictRejected(t *testing.T) {
	store := newReadyStore(t, newStubRemote())
	existing := store.Items()[0].ID

	_, err := store.AddItem(context.Background(), ItemDraft{ID: &existing, Name: "Dup", Supplier: "X"})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
	require.Len(t, store.Items(), 2)
}

func TestUpdateItemPartialMerge(t *testing.T) {
	store := newReadyStore(t, newStubRemote())
	id := store.Items()[0].ID

	name := "Green Apple"
	updated, err := store.UpdateItem(context.Background(), id, ItemPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Green Apple", updated.Name)
	require.Equal(t, "Fresh Market", updated.Supplier)

	_, err = store.UpdateItem(context.Background(), uuid.New(), ItemPatch{Name: &name})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteItemLocalFirstOnRemoteFailure(t *testing.T) {
	remote := newStubRemote()
	remote.deleteErr = fmt.Errorf("remote down")
	store := newReadyStore(t, remote)
	id := store.Items()[0].ID

	err := store.DeleteItem(context.Background(), id)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())

	// the row is gone locally regardless
	require.Len(t, store.Items(), 1)
	require.NotEqual(t, id, store.Items()[0].ID)
}

func TestAddSupplierDefaultsPaymentMethod(t *testing.T) {
	store := newReadyStore(t, newStubRemote())

	supplier, err := store.AddSupplier(context.Background(), SupplierDraft{Name: "Mekong Seafood"})
	require.NoError(t, err)
	require.Equal(t, enums.PaymentMethodCOD, supplier.DefaultPaymentMethod)

	method := enums.PaymentMethodCredit
	supplier, err = store.AddSupplier(context.Background(), SupplierDraft{Name: "Kampot Produce Co", DefaultPaymentMethod: &method})
	require.NoError(t, err)
	require.Equal(t, enums.PaymentMethodCredit, supplier.DefaultPaymentMethod)
}

func TestAddToOrderMergesSameLine(t *testing.T) {
	store := newReadyStore(t, newStubRemote())
	apple := store.Items()[0]

	_, err := store.AddToOrder(context.Background(), apple.ID, 3, storeTag(enums.StoreTagWB))
	require.NoError(t, err)
	line, err := store.AddToOrder(context.Background(), apple.ID, 2, storeTag(enums.StoreTagWB))
	require.NoError(t, err)

	lines, _ := store.CurrentOrder()
	require.Len(t, lines, 1)
	require.Equal(t, 5.0, line.Quantity)
}

func TestAddToOrderDistinctStoreTagsStayApart(t *testing.T) {
	store := newReadyStore(t, newStubRemote())
	apple := store.Items()[0]

	_, err := store.AddToOrder(context.Background(), apple.ID, 3, storeTag(enums.StoreTagWB))
	require.NoError(t, err)
	_, err = store.AddToOrder(context.Background(), apple.ID, 2, storeTag(enums.StoreTagBKK))
	require.NoError(t, err)
	_, err = store.AddToOrder(context.Background(), apple.ID, 1, nil)
	require.NoError(t, err)

	lines, _ := store.CurrentOrder()
	require.Len(t, lines, 3)
}

func TestAddToOrderValidation(t *testing.T) {
	store := newReadyStore(t, newStubRemote())
	apple := store.Items()[0]

	_, err := store.AddToOrder(context.Background(), apple.ID, 0, nil)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = store.AddToOrder(context.Background(), uuid.New(), 1, nil)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateOrderItemReplacesQuantity(t *testing.T) {
	store := newReadyStore(t, newStubRemote())
	apple := store.Items()[0]

	_, err := store.AddToOrder(context.Background(), apple.ID, 3, nil)
	require.NoError(t, err)
	require.NoError(t, store.UpdateOrderItem(context.Background(), apple.ID, 7, nil))

	lines, _ := store.CurrentOrder()
	require.Equal(t, 7.0, lines[0].Quantity)

	// missing composite key is a no-op
	require.NoError(t, store.UpdateOrderItem(context.Background(), apple.ID, 9, storeTag(enums.StoreTagTK)))
	lines, _ = store.CurrentOrder()
	require.Len(t, lines, 1)
	require.Equal(t, 7.0, lines[0].Quantity)
}

func TestRemoveFromOrder(t *testing.T) {
	store := newReadyStore(t, newStubRemote())
	apple := store.Items()[0]

	_, err := store.AddToOrder(context.Background(), apple.ID, 3, storeTag(enums.StoreTagWB))
	require.NoError(t, err)
	require.NoError(t, store.RemoveFromOrder(context.Background(), apple.ID, storeTag(enums.StoreTagWB)))

	lines, _ := store.CurrentOrder()
	require.Empty(t, lines)
}

func TestUpdateOrderMetadataMerges(t *testing.T) {
	store := newReadyStore(t, newStubRemote())

	method := enums.PaymentMethodBankTransfer
	meta, err := store.UpdateOrderMetadata(context.Background(), MetadataPatch{PaymentMethod: &method})
	require.NoError(t, err)
	require.Equal(t, enums.PaymentMethodBankTransfer, meta.PaymentMethod)
	require.Nil(t, meta.StoreTag)

	meta, err = store.UpdateOrderMetadata(context.Background(), MetadataPatch{StoreTag: storeTag(enums.StoreTagPSD)})
	require.NoError(t, err)
	require.Equal(t, enums.PaymentMethodBankTransfer, meta.PaymentMethod)
	require.Equal(t, enums.StoreTagPSD, *meta.StoreTag)
}

func TestCompleteOrderEmptyCartNoOp(t *testing.T) {
	remote := newStubRemote()
	store := newReadyStore(t, remote)

	require.NoError(t, store.ClearOrder(context.Background()))
	before := len(store.CompletedOrders())

	order, err := store.CompleteOrder(context.Background())
	require.NoError(t, err)
	require.Nil(t, order)
	require.Len(t, store.CompletedOrders(), before)
	require.Equal(t, 0, remote.pushCount(enums.SyncCategoryCompletedOrders))
}

func TestCompleteOrderFinalizesCart(t *testing.T) {
	store := newReadyStore(t, newStubRemote())
	apple := store.Items()[0]
	rice := store.Items()[1]

	_, err := store.AddToOrder(context.Background(), apple.ID, 3, storeTag(enums.StoreTagWB))
	require.NoError(t, err)
	_, err = store.AddToOrder(context.Background(), rice.ID, 1, storeTag(enums.StoreTagWB))
	require.NoError(t, err)
	_, err = store.AddToOrder(context.Background(), rice.ID, 2, storeTag(enums.StoreTagBKK))
	require.NoError(t, err)

	method := enums.PaymentMethodBankTransfer
	_, err = store.UpdateOrderMetadata(context.Background(), MetadataPatch{PaymentMethod: &method})
	require.NoError(t, err)

	order, err := store.CompleteOrder(context.Background())
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Len(t, store.CompletedOrders(), 1)
	require.Equal(t, "Fresh Market", order.Supplier)
	require.ElementsMatch(t, []string{"wb", "bkk"}, []string(order.StoreTags))
	require.Len(t, order.Items, 3)
	require.Equal(t, enums.PaymentMethodBankTransfer, *order.PaymentMethod)

	lines, meta := store.CurrentOrder()
	require.Empty(t, lines)
	require.Equal(t, enums.PaymentMethodCOD, meta.PaymentMethod)
	require.Nil(t, meta.StoreTag)

	// ordered items get their counters stamped
	for _, item := range store.Items() {
		require.NotNil(t, item.OrderCount)
		require.Equal(t, 1, *item.OrderCount)
		require.NotNil(t, item.LastOrderedAt)
	}
}

func TestAddPendingOrderMergesOpenOrder(t *testing.T) {
	store := newReadyStore(t, newStubRemote())
	itemID := uuid.New()

	first, err := store.AddPendingOrder(context.Background(), PendingOrderDraft{
		Supplier: "Mekong Seafood",
		StoreTag: storeTag(enums.StoreTagWB),
		Items:    []models.PendingOrderItem{{ItemID: itemID, Name: "River Prawns", Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusPending, first.Status)

	second, err := store.AddPendingOrder(context.Background(), PendingOrderDraft{
		Supplier: "Mekong Seafood",
		StoreTag: storeTag(enums.StoreTagWB),
		Items: []models.PendingOrderItem{
			{ItemID: itemID, Name: "River Prawns", Quantity: 3},
			{ItemID: uuid.New(), Name: "Snakehead Fish", Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Len(t, store.PendingOrders(), 1)
	require.Len(t, second.Items, 2)
	require.Equal(t, 5.0, second.Items[0].Quantity)
}

func TestAddPendingOrderDifferentStoreTagCreatesNew(t *testing.T) {
	store := newReadyStore(t, newStubRemote())

	first, err := store.AddPendingOrder(context.Background(), PendingOrderDraft{
		Supplier: "Mekong Seafood",
		StoreTag: storeTag(enums.StoreTagWB),
	})
	require.NoError(t, err)

	second, err := store.AddPendingOrder(context.Background(), PendingOrderDraft{
		Supplier: "Mekong Seafood",
		StoreTag: storeTag(enums.StoreTagBKK),
	})
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.Len(t, store.PendingOrders(), 2)
}

func TestAddPendingOrderClosedOrderNotMerged(t *testing.T) {
	store := newReadyStore(t, newStubRemote())

	first, err := store.AddPendingOrder(context.Background(), PendingOrderDraft{Supplier: "Mekong Seafood"})
	require.NoError(t, err)

	status := enums.OrderStatusCompleted
	_, err = store.UpdatePendingOrder(context.Background(), first.ID, PendingOrderPatch{Status: &status})
	require.NoError(t, err)

	second, err := store.AddPendingOrder(context.Background(), PendingOrderDraft{Supplier: "Mekong Seafood"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.Len(t, store.PendingOrders(), 2)
}

func TestUpdatePendingOrderStampsUpdatedAt(t *testing.T) {
	store := newReadyStore(t, newStubRemote())

	order, err := store.AddPendingOrder(context.Background(), PendingOrderDraft{Supplier: "Mekong Seafood"})
	require.NoError(t, err)

	updated, err := store.UpdatePendingOrder(context.Background(), order.ID, PendingOrderPatch{})
	require.NoError(t, err)
	require.False(t, updated.UpdatedAt.Before(order.UpdatedAt))
	require.Equal(t, order.Supplier, updated.Supplier)
}

func TestDeletePendingOrderLocalFirst(t *testing.T) {
	remote := newStubRemote()
	remote.deleteErr = fmt.Errorf("remote down")
	store := newReadyStore(t, remote)

	order, err := store.AddPendingOrder(context.Background(), PendingOrderDraft{Supplier: "Mekong Seafood"})
	require.NoError(t, err)

	err = store.DeletePendingOrder(context.Background(), order.ID)
	require.Error(t, err)
	require.Empty(t, store.PendingOrders())
}

func TestImportDataPartialLeavesOthersUntouched(t *testing.T) {
	store := newReadyStore(t, newStubRemote())

	_, err := store.AddPendingOrder(context.Background(), PendingOrderDraft{Supplier: "Mekong Seafood"})
	require.NoError(t, err)
	suppliersBefore := store.Suppliers()
	pendingBefore := store.PendingOrders()
	completedBefore := store.CompletedOrders()

	err = store.ImportData(context.Background(), Snapshot{
		Items: []models.Item{{ID: uuid.New(), Name: "Durian", Supplier: "Kampot Produce Co"}},
	})
	require.NoError(t, err)

	require.Len(t, store.Items(), 1)
	require.Equal(t, suppliersBefore, store.Suppliers())
	require.Equal(t, pendingBefore, store.PendingOrders())
	require.Equal(t, completedBefore, store.CompletedOrders())
}

func TestExportImportRoundTrip(t *testing.T) {
	store := newReadyStore(t, newStubRemote())
	apple := store.Items()[0]

	_, err := store.AddToOrder(context.Background(), apple.ID, 2, storeTag(enums.StoreTagTK))
	require.NoError(t, err)
	_, err = store.AddPendingOrder(context.Background(), PendingOrderDraft{Supplier: "Fresh Market"})
	require.NoError(t, err)

	exported := store.ExportData()
	require.NoError(t, store.ImportData(context.Background(), exported))
	require.Equal(t, exported, store.ExportData())
}

func TestMutationsPushWholeCollections(t *testing.T) {
	remote := newStubRemote()
	store := newReadyStore(t, remote)

	_, err := store.AddItem(context.Background(), ItemDraft{Name: "Durian", Supplier: "Kampot Produce Co"})
	require.NoError(t, err)
	_, err = store.AddSupplier(context.Background(), SupplierDraft{Name: "Kampot Produce Co"})
	require.NoError(t, err)
	_, err = store.AddPendingOrder(context.Background(), PendingOrderDraft{Supplier: "Kampot Produce Co"})
	require.NoError(t, err)

	require.Equal(t, 1, remote.pushCount(enums.SyncCategoryItems))
	require.Equal(t, 1, remote.pushCount(enums.SyncCategorySuppliers))
	require.Equal(t, 1, remote.pushCount(enums.SyncCategoryPendingOrders))
	require.Equal(t, 0, remote.pushCount(enums.SyncCategoryCurrentOrder))
}

func TestFlushPushesEverything(t *testing.T) {
	remote := newStubRemote()
	store := newReadyStore(t, remote)

	require.NoError(t, store.Flush(context.Background()))
	for _, category := range enums.SyncCategories() {
		require.Equal(t, 1, remote.pushCount(category), category.String())
	}
}

func TestFlushSkipsInFlightCategories(t *testing.T) {
	remote := newStubRemote()
	remote.pushErr = remotesync.ErrSyncInFlight
	store := newReadyStore(t, remote)

	// a concurrent push already owns the category; that is not a failure
	require.NoError(t, store.Flush(context.Background()))
	for _, category := range enums.SyncCategories() {
		require.Equal(t, 1, remote.pushCount(category), category.String())
	}
}

func TestFlushAggregatesFailures(t *testing.T) {
	remote := newStubRemote()
	remote.pushErr = fmt.Errorf("remote down")
	store := newReadyStore(t, remote)

	err := store.Flush(context.Background())
	require.Error(t, err)
	// every category was still attempted
	for _, category := range enums.SyncCategories() {
		require.Equal(t, 1, remote.pushCount(category), category.String())
	}
}
