package sync

import (
	"errors"
	"sync/atomic"

	"github.com/rithysok/restock-backend/pkg/enums"
)

// ErrSyncInFlight reports that a push for the same category was already
// running. The caller's snapshot is dropped, not queued; the next mutation
// will push a fresh snapshot anyway.
var ErrSyncInFlight = errors.New("sync already in flight for category")

// flightGuard is a single in-flight slot. Categories are independent: a
// guard never coordinates across categories.
type flightGuard struct {
	busy atomic.Bool
}

func (g *flightGuard) tryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *flightGuard) release() {
	g.busy.Store(false)
}

func newGuards() map[enums.SyncCategory]*flightGuard {
	guards := make(map[enums.SyncCategory]*flightGuard, len(enums.SyncCategories()))
	for _, category := range enums.SyncCategories() {
		guards[category] = &flightGuard{}
	}
	return guards
}
