package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/metrics"
)

// ReportUseCase generates, stores and exports period reports.
type ReportUseCase struct {
	ownerRepo     OwnerRepository
	entryRepo     LedgerEntryRepository
	analyticsRepo AnalyticsRepository
	reportRepo    ReportRepository
	renderers     map[string]ReportRenderer
	idGen         IDGenerator
	metrics       *metrics.Metrics
}

// NewReportUseCase creates a new ReportUseCase. renderers is keyed by format
// name, e.g. "pdf" or "xlsx".
func NewReportUseCase(
	ownerRepo OwnerRepository,
	entryRepo LedgerEntryRepository,
	analyticsRepo AnalyticsRepository,
	reportRepo ReportRepository,
	renderers map[string]ReportRenderer,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *ReportUseCase {
	return &ReportUseCase{
		ownerRepo:     ownerRepo,
		entryRepo:     entryRepo,
		analyticsRepo: analyticsRepo,
		reportRepo:    reportRepo,
		renderers:     renderers,
		idGen:         idGen,
		metrics:       metrics,
	}
}

// GenerateReportInput is the input for GenerateReport.
type GenerateReportInput struct {
	StartDate time.Time
	EndDate   time.Time
	OwnerID   string
	Period    domain.ReportPeriod
}

// GenerateReport totals entries dated within [start, end] and persists the result.
func (uc *ReportUseCase) GenerateReport(ctx context.Context, input GenerateReportInput) (*domain.Report, error) {
	if _, err := domain.ParseReportPeriod(string(input.Period)); err != nil {
		return nil, err
	}

	start := normalizeDate(input.StartDate, time.Now().UTC())
	end := normalizeDate(input.EndDate, time.Now().UTC())
	if start.After(end) {
		return nil, domain.ErrInvalidDateRange
	}

	if _, err := uc.ownerRepo.GetByID(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	totals, err := uc.analyticsRepo.PeriodTotals(ctx, input.OwnerID, start, end)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:           uc.idGen.Generate(),
		OwnerID:      input.OwnerID,
		Name:         domain.ReportName(input.Period, start),
		Period:       input.Period,
		StartDate:    start,
		EndDate:      end,
		TotalCashIn:  totals.TotalCashIn,
		TotalCashOut: totals.TotalCashOut,
		TotalFees:    totals.TotalFees,
		NetProfit:    totals.NetProfit(),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ReportsGenerated.WithLabelValues(string(report.Period)).Inc()
	}

	return report, nil
}

// GetReport returns one of the owner's reports.
func (uc *ReportUseCase) GetReport(ctx context.Context, ownerID, reportID string) (*domain.Report, error) {
	return uc.reportRepo.GetByID(ctx, ownerID, reportID)
}

// ListReports lists the owner's reports, newest first.
func (uc *ReportUseCase) ListReports(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Report, error) {
	limit, offset = domain.ClampPage(limit, offset)
	return uc.reportRepo.List(ctx, ownerID, limit, offset)
}

// ExportedReport is a rendered report document.
type ExportedReport struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportReport renders a stored report and the entries it covers.
func (uc *ReportUseCase) ExportReport(ctx context.Context, ownerID, reportID, format string) (*ExportedReport, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, format)
	}

	report, err := uc.reportRepo.GetByID(ctx, ownerID, reportID)
	if err != nil {
		return nil, err
	}

	from, to := report.StartDate, report.EndDate
	entries, err := uc.entryRepo.List(ctx, ownerID, domain.EntryFilter{From: &from, To: &to}, MaxExportEntries, 0)
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(report, entries)
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}

	if uc.metrics != nil {
		uc.metrics.ReportsExported.WithLabelValues(format).Inc()
	}

	return &ExportedReport{
		Filename:    fmt.Sprintf("report-%s-%s.%s", report.Period, report.StartDate.Format("20060102"), format),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}
