package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 3 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type redisPinger struct{ client redis.Cmdable }

func (p redisPinger) Ping(ctx context.Context) error { return p.client.Ping(ctx).Err() }

// HealthHandler serves /health and /ready. Readiness probes the ledger
// database and the cache/idempotency Redis in parallel and reports each.
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler skips any dependency passed as nil.
func NewHealthHandler(pool Pinger, redisClient redis.Cmdable) *HealthHandler {
	checks := make(map[string]Pinger, 2)
	if pool != nil {
		checks["postgres"] = pool
	}
	if redisClient != nil {
		checks["redis"] = redisPinger{client: redisClient}
	}
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		healthy = true
		report  = map[string]string{}
	)
	for name, check := range h.checks {
		g.Go(func() error {
			result := "ok"
			if err := check.Ping(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			report[name] = result
			healthy = healthy && result == "ok"
			return nil
		})
	}
	_ = g.Wait()

	status := http.StatusOK
	report["status"] = "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		report["status"] = "unavailable"
	}
	writeJSON(w, status, report)
}
