package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/rithysok/restock-backend/internal/cart"
	"github.com/rithysok/restock-backend/pkg/db/models"
	"github.com/rithysok/restock-backend/pkg/enums"
	"github.com/rithysok/restock-backend/pkg/metrics"
)

type fakeItems struct {
	pushErr error
	pushed  int

	block   chan struct{} // when set, PushAll waits until closed
	started chan struct{}
}

func (f *fakeItems) PushAll(ctx context.Context, items []models.Item) error {
	f.pushed++
	if f.block != nil {
		close(f.started)
		<-f.block
	}
	return f.pushErr
}

func (f *fakeItems) FetchAll(ctx context.Context) ([]models.Item, error) {
	return []models.Item{}, nil
}

func (f *fakeItems) DeleteByID(ctx context.Context, id uuid.UUID) error { return nil }

type fakeSuppliers struct{ fetchErr error }

func (f *fakeSuppliers) PushAll(ctx context.Context, records []models.Supplier) error { return nil }
func (f *fakeSuppliers) FetchAll(ctx context.Context) ([]models.Supplier, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return []models.Supplier{}, nil
}
func (f *fakeSuppliers) DeleteByID(ctx context.Context, id uuid.UUID) error { return nil }

type fakeOrders struct{}

func (f *fakeOrders) PushAllPending(ctx context.Context, records []models.PendingOrder) error {
	return nil
}
func (f *fakeOrders) FetchAllPending(ctx context.Context) ([]models.PendingOrder, error) {
	return []models.PendingOrder{}, nil
}
func (f *fakeOrders) DeletePendingByID(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeOrders) PushAllCompleted(ctx context.Context, records []models.CompletedOrder) error {
	return nil
}
func (f *fakeOrders) FetchAllCompleted(ctx context.Context) ([]models.CompletedOrder, error) {
	return []models.CompletedOrder{}, nil
}

type fakeCart struct{}

func (f *fakeCart) PushSingleton(ctx context.Context, items []models.OrderItem, meta cart.Metadata) error {
	return nil
}
func (f *fakeCart) FetchSingleton(ctx context.Context) ([]models.OrderItem, cart.Metadata, error) {
	return []models.OrderItem{}, cart.DefaultMetadata(), nil
}

func newTestSyncer(t *testing.T, items *fakeItems, suppliers *fakeSuppliers) (*Syncer, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	syncer, err := NewSyncer(items, suppliers, &fakeOrders{}, &fakeCart{}, metrics.NewSyncMetrics(reg), nil)
	require.NoError(t, err)
	return syncer, reg
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, category string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "category" && label.GetValue() == category {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestPushItemsSuccessCountsMetric(t *testing.T) {
	items := &fakeItems{}
	syncer, reg := newTestSyncer(t, items, &fakeSuppliers{})

	require.NoError(t, syncer.PushItems(context.Background(), nil))
	require.Equal(t, 1, items.pushed)
	require.Equal(t, 1.0, counterValue(t, reg, "sync_push_success", "items"))
}

func TestPushItemsFailureCountsMetric(t *testing.T) {
	items := &fakeItems{pushErr: fmt.Errorf("remote down")}
	syncer, reg := newTestSyncer(t, items, &fakeSuppliers{})

	require.Error(t, syncer.PushItems(context.Background(), nil))
	require.Equal(t, 1.0, counterValue(t, reg, "sync_push_failure", "items"))
	require.Equal(t, 0.0, counterValue(t, reg, "sync_push_success", "items"))
}

func TestConcurrentSameCategoryPushDropped(t *testing.T) {
	items := &fakeItems{
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	syncer, reg := newTestSyncer(t, items, &fakeSuppliers{})

	var wg stdsync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = syncer.PushItems(context.Background(), nil)
	}()

	<-items.started
	err := syncer.PushItems(context.Background(), nil)
	require.ErrorIs(t, err, ErrSyncInFlight)

	close(items.block)
	wg.Wait()

	require.Equal(t, 1, items.pushed)
	require.Equal(t, 1.0, counterValue(t, reg, "sync_push_dropped", "items"))
	require.Equal(t, 1.0, counterValue(t, reg, "sync_push_success", "items"))
}

func TestDifferentCategoriesDoNotBlockEachOther(t *testing.T) {
	items := &fakeItems{
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	syncer, _ := newTestSyncer(t, items, &fakeSuppliers{})

	var wg stdsync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = syncer.PushItems(context.Background(), nil)
	}()

	<-items.started
	// the suppliers guard is independent of the in-flight items push
	require.NoError(t, syncer.PushSuppliers(context.Background(), nil))

	close(items.block)
	wg.Wait()
}

func TestGuardReleasedAfterFailure(t *testing.T) {
	items := &fakeItems{pushErr: fmt.Errorf("remote down")}
	syncer, _ := newTestSyncer(t, items, &fakeSuppliers{})

	require.Error(t, syncer.PushItems(context.Background(), nil))
	items.pushErr = nil
	require.NoError(t, syncer.PushItems(context.Background(), nil))
	require.Equal(t, 2, items.pushed)
}

func TestFetchStatePropagatesError(t *testing.T) {
	syncer, _ := newTestSyncer(t, &fakeItems{}, &fakeSuppliers{fetchErr: fmt.Errorf("timeout")})

	_, err := syncer.FetchState(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "fetching suppliers")
}

func TestFetchStateCollectsAllCollections(t *testing.T) {
	syncer, _ := newTestSyncer(t, &fakeItems{}, &fakeSuppliers{})

	state, err := syncer.FetchState(context.Background())
	require.NoError(t, err)
	require.NotNil(t, state.Items)
	require.NotNil(t, state.Suppliers)
	require.NotNil(t, state.PendingOrders)
	require.NotNil(t, state.CompletedOrders)
	require.NotNil(t, state.CartItems)
	require.Equal(t, enums.DefaultPaymentMethod, state.CartMetadata.PaymentMethod)
}
