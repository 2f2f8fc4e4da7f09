package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gcashledger/internal/adapter/http/handler"
	"github.com/iho/gcashledger/internal/adapter/http/middleware"
	"github.com/iho/gcashledger/internal/infrastructure/metrics"
	"github.com/iho/gcashledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	OwnerHandler       *handler.OwnerHandler
	TransactionHandler *handler.TransactionHandler
	BalanceHandler     *handler.BalanceHandler
	CategoryHandler    *handler.CategoryHandler
	ReportHandler      *handler.ReportHandler
	HealthHandler      *handler.HealthHandler

	// Owners backs the onboarded guard on ledger routes.
	Owners middleware.OwnerLookup
	// TokenVerifier enables JWT auth on owner routes when set.
	TokenVerifier middleware.TokenVerifier

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	Logger           *zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(*cfg.Logger).Wrap)
	}
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics(cfg.Metrics))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", cfg.OwnerHandler.Signup)
		r.Post("/auth/login", cfg.OwnerHandler.Login)

		r.Route("/owners/{"+handler.OwnerIDParam+"}", func(r chi.Router) {
			if cfg.TokenVerifier != nil {
				r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
				r.Use(middleware.RequireOwner)
			}

			r.Get("/", cfg.OwnerHandler.Get)
			r.Post("/onboarding", cfg.OwnerHandler.CompleteOnboarding)

			r.Group(func(r chi.Router) {
				if cfg.Owners != nil {
					r.Use(middleware.RequireOnboarded(cfg.Owners))
				}
				registerLedgerRoutes(r, cfg)
			})
		})
	})

	return r
}

func registerLedgerRoutes(r chi.Router, cfg RouterConfig) {
	// Transactions
	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", cfg.TransactionHandler.List)
		r.With(idempotency(cfg)...).Post("/", cfg.TransactionHandler.Create)
		r.Get("/{"+handler.EntryIDParam+"}", cfg.TransactionHandler.Get)
		r.Patch("/{"+handler.EntryIDParam+"}", cfg.TransactionHandler.Update)
		r.Delete("/{"+handler.EntryIDParam+"}", cfg.TransactionHandler.Delete)
	})

	// Balances
	r.Route("/balances", func(r chi.Router) {
		r.Get("/", cfg.BalanceHandler.Current)
		r.Get("/at", cfg.BalanceHandler.AtDate)
		r.Get("/history", cfg.BalanceHandler.History)
		r.Get("/trend", cfg.BalanceHandler.Trend)
		r.Get("/alerts", cfg.BalanceHandler.Alerts)
		r.Get("/stats", cfg.BalanceHandler.Stats)
	})

	// Profit
	r.Get("/profit", cfg.BalanceHandler.Profit)
	r.Get("/profit/trend", cfg.BalanceHandler.ProfitTrend)

	// Categories
	r.Get("/categories", cfg.CategoryHandler.List)
	r.Post("/categories", cfg.CategoryHandler.Create)

	// Reports
	r.Route("/reports", func(r chi.Router) {
		r.Get("/", cfg.ReportHandler.List)
		r.Post("/", cfg.ReportHandler.Generate)
		r.Get("/{"+handler.ReportIDParam+"}", cfg.ReportHandler.Get)
		r.Get("/{"+handler.ReportIDParam+"}/export", cfg.ReportHandler.Export)
	})

	r.Get("/reconciliation", cfg.ReportHandler.Reconcile)
}

func idempotency(cfg RouterConfig) []func(http.Handler) http.Handler {
	if cfg.IdempotencyStore == nil {
		return nil
	}
	return []func(http.Handler) http.Handler{
		middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap,
	}
}
