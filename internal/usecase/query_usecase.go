package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/metrics"
)

// QueryUseCase serves the read-only ledger queries.
type QueryUseCase struct {
	ownerRepo     OwnerRepository
	entryRepo     LedgerEntryRepository
	historyRepo   BalanceHistoryRepository
	profitRepo    ProfitRepository
	analyticsRepo AnalyticsRepository
	cache         Cache
	cacheTTL      time.Duration
	thresholds    domain.Balances
	metrics       *metrics.Metrics
}

// QueryOption configures a QueryUseCase.
type QueryOption func(*QueryUseCase)

// WithBalanceCache serves current balances through cache for ttl, capped
// at the lifetime of a generation marker.
func WithBalanceCache(cache Cache, ttl time.Duration) QueryOption {
	return func(uc *QueryUseCase) {
		uc.cache = cache
		uc.cacheTTL = min(ttl, balanceGenerationTTL)
	}
}

// WithLowBalanceThresholds overrides the default alert thresholds.
func WithLowBalanceThresholds(electronic, cash decimal.Decimal) QueryOption {
	return func(uc *QueryUseCase) {
		uc.thresholds = domain.Balances{Electronic: electronic, Cash: cash}
	}
}

// WithQueryMetrics records cache hit and miss counts.
func WithQueryMetrics(m *metrics.Metrics) QueryOption {
	return func(uc *QueryUseCase) {
		uc.metrics = m
	}
}

// NewQueryUseCase creates a new QueryUseCase.
func NewQueryUseCase(
	ownerRepo OwnerRepository,
	entryRepo LedgerEntryRepository,
	historyRepo BalanceHistoryRepository,
	profitRepo ProfitRepository,
	analyticsRepo AnalyticsRepository,
	opts ...QueryOption,
) *QueryUseCase {
	threshold := decimal.RequireFromString(DefaultLowBalanceThreshold)
	uc := &QueryUseCase{
		ownerRepo:     ownerRepo,
		entryRepo:     entryRepo,
		historyRepo:   historyRepo,
		profitRepo:    profitRepo,
		analyticsRepo: analyticsRepo,
		cacheTTL:      DefaultBalanceCacheTTL,
		thresholds:    domain.Balances{Electronic: threshold, Cash: threshold},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type cachedBalances struct {
	Generation string          `json:"generation"`
	Electronic decimal.Decimal `json:"electronic"`
	Cash       decimal.Decimal `json:"cash"`
}

// CurrentBalances returns the owner's live balances. Cached balances are
// served only while their generation matches the owner's current one.
func (uc *QueryUseCase) CurrentBalances(ctx context.Context, ownerID string) (domain.Balances, error) {
	if uc.cache == nil {
		return uc.loadBalances(ctx, ownerID)
	}

	// The generation must be read before the owner row.
	gen, err := balanceGeneration(ctx, uc.cache, ownerID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("owner_id", ownerID).Msg("balance cache unavailable")
		return uc.loadBalances(ctx, ownerID)
	}

	key := balanceCacheKey(ownerID)
	if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
		var cached cachedBalances
		if err := json.Unmarshal(data, &cached); err == nil && cached.Generation == gen {
			uc.recordCache("hit")
			return domain.Balances{Electronic: cached.Electronic, Cash: cached.Cash}, nil
		}
	}
	uc.recordCache("miss")

	balances, err := uc.loadBalances(ctx, ownerID)
	if err != nil {
		return domain.Balances{}, err
	}

	data, err := json.Marshal(cachedBalances{Generation: gen, Electronic: balances.Electronic, Cash: balances.Cash})
	if err == nil {
		if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("owner_id", ownerID).Msg("failed to cache balances")
		}
	}

	return balances, nil
}

func (uc *QueryUseCase) loadBalances(ctx context.Context, ownerID string) (domain.Balances, error) {
	owner, err := uc.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		return domain.Balances{}, err
	}
	return owner.Balances(), nil
}

// BalanceAtDate returns the after-balances of the latest entry dated before
// date, or zero balances when there is none.
func (uc *QueryUseCase) BalanceAtDate(ctx context.Context, ownerID string, date time.Time) (domain.Balances, error) {
	if _, err := uc.ownerRepo.GetByID(ctx, ownerID); err != nil {
		return domain.Balances{}, err
	}

	entry, err := uc.entryRepo.LatestBefore(ctx, ownerID, date)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return domain.Balances{Electronic: decimal.Zero, Cash: decimal.Zero}, nil
		}
		return domain.Balances{}, err
	}

	return entry.After(), nil
}

// ProfitStats sums fees over entries in [from, to]. Nil bounds are open.
func (uc *QueryUseCase) ProfitStats(ctx context.Context, ownerID string, from, to *time.Time) (*domain.ProfitStats, error) {
	if err := domain.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	if _, err := uc.ownerRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	aggregate, err := uc.profitRepo.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sums, err := uc.analyticsRepo.ProfitSums(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.ProfitStats{
		TotalProfit:      sums.Total,
		CashInProfit:     sums.CashIn,
		CashOutProfit:    sums.CashOut,
		TransactionCount: sums.Count,
		AverageProfit:    sums.Average(),
		AllTimeProfit:    aggregate.TotalProfit,
	}, nil
}

// Trend returns daily points for field: the maximum after-balance for the
// balance fields, the fee sum for profit.
func (uc *QueryUseCase) Trend(ctx context.Context, ownerID string, field domain.TrendField, from, to *time.Time) ([]domain.TrendPoint, error) {
	start, end, err := trendRange(from, to)
	if err != nil {
		return nil, err
	}

	if _, err := uc.ownerRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	switch field {
	case domain.TrendElectronic, domain.TrendCash:
		return uc.analyticsRepo.BalanceTrend(ctx, ownerID, field, start, end)
	case domain.TrendProfit:
		return uc.analyticsRepo.ProfitTrend(ctx, ownerID, domain.PeriodDaily, start, end)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTrend, field)
	}
}

// ProfitTrend groups fee sums by day, week or month.
func (uc *QueryUseCase) ProfitTrend(ctx context.Context, ownerID string, period domain.ReportPeriod, from, to *time.Time) ([]domain.TrendPoint, error) {
	start, end, err := trendRange(from, to)
	if err != nil {
		return nil, err
	}

	if _, err := uc.ownerRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	return uc.analyticsRepo.ProfitTrend(ctx, ownerID, period, start, end)
}

// BalanceHistory lists history records ordered by creation time.
func (uc *QueryUseCase) BalanceHistory(ctx context.Context, ownerID string, from, to *time.Time) ([]*domain.BalanceHistoryRecord, error) {
	if err := domain.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	if _, err := uc.ownerRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	// to names a calendar day; records created at any time on it count.
	var before *time.Time
	if to != nil {
		next := to.AddDate(0, 0, 1)
		before = &next
	}
	return uc.historyRepo.List(ctx, ownerID, from, before)
}

// ListEntries lists the owner's entries, newest first.
func (uc *QueryUseCase) ListEntries(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]*domain.LedgerEntry, error) {
	if err := domain.ValidateDateRange(filter.From, filter.To); err != nil {
		return nil, err
	}

	limit, offset = domain.ClampPage(limit, offset)

	return uc.entryRepo.List(ctx, ownerID, filter, limit, offset)
}

// GetEntry returns one entry owned by ownerID.
func (uc *QueryUseCase) GetEntry(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.OwnerID != ownerID {
		return nil, domain.ErrEntryNotFound
	}
	return entry, nil
}

// LowBalanceAlerts returns one alert per pool below its threshold. A nil
// thresholds argument uses the configured defaults.
func (uc *QueryUseCase) LowBalanceAlerts(ctx context.Context, ownerID string, thresholds *domain.Balances) ([]domain.LowBalanceAlert, error) {
	limits := uc.thresholds
	if thresholds != nil {
		limits = *thresholds
	}

	balances, err := uc.CurrentBalances(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.LowBalanceAlert, 0, 2)
	if balances.Electronic.LessThan(limits.Electronic) {
		alerts = append(alerts, domain.LowBalanceAlert{
			BalanceType: domain.BalanceTypeElectronic,
			Message:     "GCash balance is low: ₱" + balances.Electronic.StringFixed(domain.MoneyPlaces),
			Balance:     balances.Electronic,
			Threshold:   limits.Electronic,
		})
	}
	if balances.Cash.LessThan(limits.Cash) {
		alerts = append(alerts, domain.LowBalanceAlert{
			BalanceType: domain.BalanceTypeCash,
			Message:     "Cash balance is low: ₱" + balances.Cash.StringFixed(domain.MoneyPlaces),
			Balance:     balances.Cash,
			Threshold:   limits.Cash,
		})
	}

	return alerts, nil
}

// BalanceStats returns current, max, min and average per pool.
func (uc *QueryUseCase) BalanceStats(ctx context.Context, ownerID string) (*domain.BalanceStats, error) {
	owner, err := uc.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats, err := uc.analyticsRepo.BalanceStats(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats.Electronic.Current = owner.ElectronicBalance
	stats.Cash.Current = owner.CashBalance

	return &stats, nil
}

func (uc *QueryUseCase) recordCache(result string) {
	if uc.metrics != nil {
		uc.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}

// trendRange applies the default window: end defaults to now, start to 30
// days before end.
func trendRange(from, to *time.Time) (time.Time, time.Time, error) {
	end := time.Now().UTC()
	if to != nil {
		end = *to
	}

	start := end.Add(-DefaultTrendWindow)
	if from != nil {
		start = *from
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}

	return start, end, nil
}
