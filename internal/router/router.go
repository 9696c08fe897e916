package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pizza-delivery/api/internal/config"
	"github.com/pizza-delivery/api/internal/database"
	"github.com/pizza-delivery/api/internal/handler"
	"github.com/pizza-delivery/api/internal/metrics"
	mw "github.com/pizza-delivery/api/internal/middleware"
	"github.com/pizza-delivery/api/internal/service"
	"github.com/pizza-delivery/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Order routes require a bearer token resolving to an existing user;
// staff-only routes are guarded inside the order handler.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret, cfg.TokenTTL)
	authHandler.RegisterRoutes(r)

	newOrderStore := func(db database.DBTX) service.OrderStore {
		return database.New(db)
	}
	orderService := service.NewOrderService(pool, newOrderStore, cfg.EnforceOrderOwnership)
	orderHandler := handler.NewOrderHandler(queries, orderService, hub)

	r.Route("/orders", func(r chi.Router) {
		// WebSocket route (handles auth internally via query param)
		r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWS(hub, cfg.JWTSecret, queries, w, r)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate(cfg.JWTSecret))
			r.Use(mw.LoadUser(queries))
			orderHandler.RegisterRoutes(r)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
