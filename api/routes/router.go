package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rithysok/restock-backend/api/controllers"
	"github.com/rithysok/restock-backend/api/middleware"
	"github.com/rithysok/restock-backend/internal/state"
	"github.com/rithysok/restock-backend/pkg/config"
	"github.com/rithysok/restock-backend/pkg/logger"
	pkgredis "github.com/rithysok/restock-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	Store      *state.Store
	StoresRepo controllers.StoreLister
	DB         controllers.Pinger
	Redis      *pkgredis.Client
	Registry   *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(deps.Config.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.Store, deps.DB, redisPinger(deps.Redis)))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		var idempotencyStore pkgredis.IdempotencyStore
		if deps.Redis != nil {
			idempotencyStore = deps.Redis
		}
		r.Use(middleware.Idempotency(idempotencyStore, deps.Config.Idempotency.TTL, deps.Logger))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ItemsList(deps.Store, deps.Logger))
			r.Post("/", controllers.ItemsCreate(deps.Store, deps.Logger))
			r.Patch("/{itemId}", controllers.ItemsUpdate(deps.Store, deps.Logger))
			r.Delete("/{itemId}", controllers.ItemsDelete(deps.Store, deps.Logger))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.SuppliersList(deps.Store, deps.Logger))
			r.Post("/", controllers.SuppliersCreate(deps.Store, deps.Logger))
			r.Patch("/{supplierId}", controllers.SuppliersUpdate(deps.Store, deps.Logger))
			r.Delete("/{supplierId}", controllers.SuppliersDelete(deps.Store, deps.Logger))
		})

		r.Route("/order", func(r chi.Router) {
			r.Get("/", controllers.OrderGet(deps.Store, deps.Logger))
			r.Delete("/", controllers.OrderClear(deps.Store, deps.Logger))
			r.Post("/items", controllers.OrderAddItem(deps.Store, deps.Logger))
			r.Put("/items/{itemId}", controllers.OrderUpdateItem(deps.Store, deps.Logger))
			r.Delete("/items/{itemId}", controllers.OrderRemoveItem(deps.Store, deps.Logger))
			r.Patch("/metadata", controllers.OrderUpdateMetadata(deps.Store, deps.Logger))
			r.Post("/complete", controllers.OrderComplete(deps.Store, deps.Logger))
		})

		r.Route("/pending-orders", func(r chi.Router) {
			r.Get("/", controllers.PendingOrdersList(deps.Store, deps.Logger))
			r.Post("/", controllers.PendingOrdersCreate(deps.Store, deps.Logger))
			r.Patch("/{orderId}", controllers.PendingOrdersUpdate(deps.Store, deps.Logger))
			r.Delete("/{orderId}", controllers.PendingOrdersDelete(deps.Store, deps.Logger))
		})

		r.Get("/completed-orders", controllers.CompletedOrdersList(deps.Store, deps.Logger))
		r.Get("/stores", controllers.StoresList(deps.StoresRepo, deps.Logger))

		r.Route("/snapshot", func(r chi.Router) {
			r.Get("/export", controllers.SnapshotExport(deps.Store, deps.Logger))
			r.Post("/import", controllers.SnapshotImport(deps.Store, deps.Logger))
		})

		r.Post("/sync/flush", controllers.SyncFlush(deps.Store, deps.Logger))
	})

	return r
}

func redisPinger(client *pkgredis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}
