package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mazoon-pos/api/internal/config"
	"github.com/mazoon-pos/api/internal/handler"
	mw "github.com/mazoon-pos/api/internal/middleware"
	"github.com/mazoon-pos/api/internal/pdf"
	"github.com/mazoon-pos/api/internal/store"
	"github.com/mazoon-pos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Applies authentication and role-based middleware as needed.
func New(cfg *config.Config, st *store.Store, hub *ws.Hub, renderer *pdf.Renderer) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(st, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// Translation dictionaries (public, the login screen needs them)
	i18nHandler := handler.NewI18nHandler()
	r.Route("/i18n", i18nHandler.RegisterRoutes)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		exportHandler := handler.NewExportHandler(st, renderer)

		// Orders
		orderHandler := handler.NewOrderHandler(st, hub)
		r.Route("/orders", func(r chi.Router) {
			orderHandler.RegisterRoutes(r)

			// Printable receipt (nested under orders)
			r.Get("/{id}/receipt.pdf", exportHandler.Receipt)
		})

		// Dashboard KPIs
		kpiHandler := handler.NewKPIHandler(st)
		r.Route("/kpis", kpiHandler.RegisterRoutes)

		// PDF exports
		r.Route("/exports", exportHandler.RegisterRoutes)

		// Staff accounts (ADMIN only)
		userHandler := handler.NewUserHandler(st)
		r.Route("/users", userHandler.RegisterRoutes)
	})

	log.Println("Router initialized with all handlers")
	return r
}
