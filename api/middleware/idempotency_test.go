package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	pkgredis "github.com/rithysok/restock-backend/pkg/redis"
)

// fakeCommander backs the redis client with an in-memory map.
type fakeCommander struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCommander() *fakeCommander {
	return &fakeCommander{data: map[string]string{}}
}

func (f *fakeCommander) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCommander) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if value, ok := f.data[key]; ok {
		return redis.NewStringResult(value, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeCommander) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCommander) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func newIdempotencyHandler(t *testing.T, calls *int) http.Handler {
	t.Helper()
	client := pkgredis.NewWithStore(newFakeCommander())
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"call":%d}`, *calls)
	})
	return Idempotency(client, time.Hour, nil)(inner)
}

func postItems(handler http.Handler, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	calls := 0
	handler := newIdempotencyHandler(t, &calls)

	first := postItems(handler, "abc-123", `{"name":"Lemongrass"}`)
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, 1, calls)

	second := postItems(handler, "abc-123", `{"name":"Lemongrass"}`)
	require.Equal(t, 1, calls, "handler must not run again")
	require.Equal(t, first.Code, second.Code)
	require.Equal(t, first.Body.String(), second.Body.String())
	require.Equal(t, "application/json", second.Header().Get("Content-Type"))
}

func TestIdempotencyKeyReuseDifferentBodyRejected(t *testing.T) {
	calls := 0
	handler := newIdempotencyHandler(t, &calls)

	postItems(handler, "abc-123", `{"name":"Lemongrass"}`)
	rec := postItems(handler, "abc-123", `{"name":"Galangal"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "IDEMPOTENCY_KEY_REUSED")
	require.Equal(t, 1, calls)
}

func TestIdempotencyMissingKeyPassesThrough(t *testing.T) {
	calls := 0
	handler := newIdempotencyHandler(t, &calls)

	postItems(handler, "", `{"name":"Lemongrass"}`)
	postItems(handler, "", `{"name":"Lemongrass"}`)
	require.Equal(t, 2, calls)
}

func TestIdempotencyUnmatchedRoutePassesThrough(t *testing.T) {
	calls := 0
	handler := newIdempotencyHandler(t, &calls)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/order/items", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}
	require.Equal(t, 2, calls)
}

func TestIdempotencyDistinctKeysRunIndependently(t *testing.T) {
	calls := 0
	handler := newIdempotencyHandler(t, &calls)

	postItems(handler, "key-one", `{"name":"Lemongrass"}`)
	postItems(handler, "key-two", `{"name":"Lemongrass"}`)
	require.Equal(t, 2, calls)
}
