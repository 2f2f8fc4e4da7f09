package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/adapter/http/dto"
	"github.com/iho/gcashledger/internal/domain"
)

// BalanceService defines the read side needed by BalanceHandler.
type BalanceService interface {
	CurrentBalances(ctx context.Context, ownerID string) (domain.Balances, error)
	BalanceAtDate(ctx context.Context, ownerID string, date time.Time) (domain.Balances, error)
	BalanceHistory(ctx context.Context, ownerID string, from, to *time.Time) ([]*domain.BalanceHistoryRecord, error)
	Trend(ctx context.Context, ownerID string, field domain.TrendField, from, to *time.Time) ([]domain.TrendPoint, error)
	LowBalanceAlerts(ctx context.Context, ownerID string, thresholds *domain.Balances) ([]domain.LowBalanceAlert, error)
	BalanceStats(ctx context.Context, ownerID string) (*domain.BalanceStats, error)
	ProfitStats(ctx context.Context, ownerID string, from, to *time.Time) (*domain.ProfitStats, error)
	ProfitTrend(ctx context.Context, ownerID string, period domain.ReportPeriod, from, to *time.Time) ([]domain.TrendPoint, error)
}

// BalanceHandler serves balances, balance history and profit statistics.
type BalanceHandler struct {
	queryUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(queryUC BalanceService) *BalanceHandler {
	return &BalanceHandler{queryUC: queryUC}
}

// Current returns the owner's current balances.
func (h *BalanceHandler) Current(w http.ResponseWriter, r *http.Request) {
	balances, err := h.queryUC.CurrentBalances(r.Context(), ownerID(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(balances))
}

// AtDate returns the balances as of the start of ?date=. Entries dated on
// that day are not counted.
func (h *BalanceHandler) AtDate(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateQuery(r, "date")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if date == nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "date query parameter is required")
		return
	}

	balances, err := h.queryUC.BalanceAtDate(r.Context(), ownerID(r), *date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(balances))
}

// History returns the balance audit trail.
func (h *BalanceHandler) History(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	records, err := h.queryUC.BalanceHistory(r.Context(), ownerID(r), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.HistoryFromDomain(records))
}

// Trend returns a daily series for ?field=electronic|cash.
func (h *BalanceHandler) Trend(w http.ResponseWriter, r *http.Request) {
	field, err := domain.ParseTrendField(r.URL.Query().Get("field"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	from, to, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	points, err := h.queryUC.Trend(r.Context(), ownerID(r), field, from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TrendFromDomain(points))
}

// Alerts returns pools below their threshold. Both ?electronic= and ?cash=
// must be given to override the configured thresholds.
func (h *BalanceHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	var thresholds *domain.Balances
	q := r.URL.Query()
	if q.Has("electronic") || q.Has("cash") {
		electronic, err1 := decimal.NewFromString(strings.TrimSpace(q.Get("electronic")))
		cash, err2 := decimal.NewFromString(strings.TrimSpace(q.Get("cash")))
		if err1 != nil || err2 != nil {
			writeError(w, http.StatusBadRequest, "invalid_amount", "electronic and cash thresholds must both be numbers")
			return
		}
		thresholds = &domain.Balances{Electronic: electronic, Cash: cash}
	}

	alerts, err := h.queryUC.LowBalanceAlerts(r.Context(), ownerID(r), thresholds)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AlertsFromDomain(alerts))
}

// Stats returns current, max, min and average per pool.
func (h *BalanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queryUC.BalanceStats(r.Context(), ownerID(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.BalanceStatsFromDomain(stats))
}

// Profit returns fee revenue over the optional date range.
func (h *BalanceHandler) Profit(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	stats, err := h.queryUC.ProfitStats(r.Context(), ownerID(r), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ProfitStatsFromDomain(stats))
}

// ProfitTrend returns fee revenue bucketed by ?period=, daily by default.
func (h *BalanceHandler) ProfitTrend(w http.ResponseWriter, r *http.Request) {
	period := domain.PeriodDaily
	if raw := r.URL.Query().Get("period"); raw != "" {
		p, err := domain.ParseReportPeriod(raw)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		period = p
	}
	from, to, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	points, err := h.queryUC.ProfitTrend(r.Context(), ownerID(r), period, from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TrendFromDomain(points))
}
