package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/postgres/generated"
)

// ReportRepository implements usecase.ReportRepository.
type ReportRepository struct {
	queries *generated.Queries
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db generated.DBTX) *ReportRepository {
	return &ReportRepository{queries: generated.New(db)}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	return r.queries.CreateReport(ctx, generated.CreateReportParams{
		ID:           report.ID,
		OwnerID:      report.OwnerID,
		Name:         report.Name,
		Period:       string(report.Period),
		StartDate:    dateToPgDate(report.StartDate),
		EndDate:      dateToPgDate(report.EndDate),
		TotalCashIn:  decimalToNumeric(report.TotalCashIn),
		TotalCashOut: decimalToNumeric(report.TotalCashOut),
		TotalFees:    decimalToNumeric(report.TotalFees),
		NetProfit:    decimalToNumeric(report.NetProfit),
		CreatedAt:    timeToPgTimestamptz(report.CreatedAt),
	})
}

func (r *ReportRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Report, error) {
	row, err := r.queries.GetReportByID(ctx, generated.GetReportByIDParams{OwnerID: ownerID, ID: id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}

		return nil, err
	}

	return rowToReport(row), nil
}

func (r *ReportRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Report, error) {
	rows, err := r.queries.ListReports(ctx, generated.ListReportsParams{
		OwnerID: ownerID,
		Limit:   int32(limit),
		Offset:  int32(offset),
	})
	if err != nil {
		return nil, err
	}

	reports := make([]*domain.Report, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, rowToReport(row))
	}

	return reports, nil
}

func rowToReport(row generated.Report) *domain.Report {
	return &domain.Report{
		ID:           row.ID,
		OwnerID:      row.OwnerID,
		Name:         row.Name,
		Period:       domain.ReportPeriod(row.Period),
		StartDate:    pgDateToTime(row.StartDate),
		EndDate:      pgDateToTime(row.EndDate),
		TotalCashIn:  numericToDecimal(row.TotalCashIn),
		TotalCashOut: numericToDecimal(row.TotalCashOut),
		TotalFees:    numericToDecimal(row.TotalFees),
		NetProfit:    numericToDecimal(row.NetProfit),
		CreatedAt:    row.CreatedAt.Time,
	}
}
