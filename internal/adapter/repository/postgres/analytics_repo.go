package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/postgres/generated"
)

// AnalyticsRepository implements usecase.AnalyticsRepository with
// aggregate queries over ledger_entries. It only reads, so it can run
// against a read replica.
type AnalyticsRepository struct {
	queries *generated.Queries
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(db generated.DBTX) *AnalyticsRepository {
	return &AnalyticsRepository{queries: generated.New(db)}
}

func (r *AnalyticsRepository) ProfitSums(ctx context.Context, ownerID string, from, to *time.Time) (domain.ProfitSums, error) {
	row, err := r.queries.ProfitSums(ctx, generated.ProfitSumsParams{
		OwnerID:  ownerID,
		FromDate: optionalDate(from),
		ToDate:   optionalDate(to),
	})
	if err != nil {
		return domain.ProfitSums{}, err
	}

	return domain.ProfitSums{
		Total:   numericToDecimal(row.Total),
		CashIn:  numericToDecimal(row.CashIn),
		CashOut: numericToDecimal(row.CashOut),
		Count:   row.EntryCount,
	}, nil
}

func (r *AnalyticsRepository) PeriodTotals(ctx context.Context, ownerID string, start, end time.Time) (domain.PeriodTotals, error) {
	row, err := r.queries.PeriodTotals(ctx, generated.PeriodTotalsParams{
		OwnerID:   ownerID,
		StartDate: dateToPgDate(start),
		EndDate:   dateToPgDate(end),
	})
	if err != nil {
		return domain.PeriodTotals{}, err
	}

	return domain.PeriodTotals{
		TotalCashIn:  numericToDecimal(row.TotalCashIn),
		TotalCashOut: numericToDecimal(row.TotalCashOut),
		TotalFees:    numericToDecimal(row.TotalFees),
	}, nil
}

// BalanceTrend returns, per day, the highest after-balance of the pool.
func (r *AnalyticsRepository) BalanceTrend(ctx context.Context, ownerID string, field domain.TrendField, start, end time.Time) ([]domain.TrendPoint, error) {
	points := []domain.TrendPoint{}

	switch field {
	case domain.TrendElectronic:
		rows, err := r.queries.DailyElectronicBalance(ctx, generated.DailyElectronicBalanceParams{
			OwnerID:   ownerID,
			StartDate: dateToPgDate(start),
			EndDate:   dateToPgDate(end),
		})
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			points = append(points, domain.TrendPoint{Date: pgDateToTime(row.Day), Value: numericToDecimal(row.Value)})
		}
	case domain.TrendCash:
		rows, err := r.queries.DailyCashBalance(ctx, generated.DailyCashBalanceParams{
			OwnerID:   ownerID,
			StartDate: dateToPgDate(start),
			EndDate:   dateToPgDate(end),
		})
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			points = append(points, domain.TrendPoint{Date: pgDateToTime(row.Day), Value: numericToDecimal(row.Value)})
		}
	default:
		return nil, fmt.Errorf("%w: %q has no balance series", domain.ErrInvalidTrend, field)
	}

	return points, nil
}

// ProfitTrend sums fees per day, week (starting Monday) or month.
func (r *AnalyticsRepository) ProfitTrend(ctx context.Context, ownerID string, period domain.ReportPeriod, start, end time.Time) ([]domain.TrendPoint, error) {
	unit, err := truncUnit(period)
	if err != nil {
		return nil, err
	}

	rows, err := r.queries.ProfitTrend(ctx, generated.ProfitTrendParams{
		OwnerID:   ownerID,
		Unit:      unit,
		StartDate: dateToPgDate(start),
		EndDate:   dateToPgDate(end),
	})
	if err != nil {
		return nil, err
	}

	points := make([]domain.TrendPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, domain.TrendPoint{Date: pgDateToTime(row.Bucket), Value: numericToDecimal(row.Value)})
	}

	return points, nil
}

func (r *AnalyticsRepository) BalanceStats(ctx context.Context, ownerID string) (domain.BalanceStats, error) {
	row, err := r.queries.BalanceStats(ctx, ownerID)
	if err != nil {
		return domain.BalanceStats{}, err
	}

	return domain.BalanceStats{
		Electronic: domain.PoolStats{
			Max:     numericToDecimal(row.ElectronicMax),
			Min:     numericToDecimal(row.ElectronicMin),
			Average: numericToDecimal(row.ElectronicAvg),
		},
		Cash: domain.PoolStats{
			Max:     numericToDecimal(row.CashMax),
			Min:     numericToDecimal(row.CashMin),
			Average: numericToDecimal(row.CashAvg),
		},
	}, nil
}

// truncUnit maps a period onto a date_trunc field name.
func truncUnit(period domain.ReportPeriod) (string, error) {
	switch period {
	case domain.PeriodDaily:
		return "day", nil
	case domain.PeriodWeekly:
		return "week", nil
	case domain.PeriodMonthly:
		return "month", nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, period)
}
