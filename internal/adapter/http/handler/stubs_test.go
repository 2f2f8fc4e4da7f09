package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
)

// newRequest builds a request with chi URL params already attached.
func newRequest(method, target, body string, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type ownerServiceStub struct {
	signupFn     func(ctx context.Context, input usecase.SignupInput) (*domain.Owner, error)
	authFn       func(ctx context.Context, input usecase.AuthenticateInput) (*domain.Owner, error)
	getFn        func(ctx context.Context, id string) (*domain.Owner, error)
	onboardingFn func(ctx context.Context, input usecase.CompleteOnboardingInput) (*domain.Owner, error)
}

func (s *ownerServiceStub) Signup(ctx context.Context, input usecase.SignupInput) (*domain.Owner, error) {
	return s.signupFn(ctx, input)
}

func (s *ownerServiceStub) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.Owner, error) {
	return s.authFn(ctx, input)
}

func (s *ownerServiceStub) GetOwner(ctx context.Context, id string) (*domain.Owner, error) {
	return s.getFn(ctx, id)
}

func (s *ownerServiceStub) CompleteOnboarding(ctx context.Context, input usecase.CompleteOnboardingInput) (*domain.Owner, error) {
	return s.onboardingFn(ctx, input)
}

type tokenIssuerStub struct {
	expiresAt time.Time
}

func (s tokenIssuerStub) Generate(owner *domain.Owner) (string, time.Time, error) {
	return "token-" + owner.ID, s.expiresAt, nil
}

type transactionServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.LedgerEntry, error)
	updateFn func(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.LedgerEntry, error)
	deleteFn func(ctx context.Context, ownerID, entryID string) error
}

func (s *transactionServiceStub) CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.LedgerEntry, error) {
	return s.createFn(ctx, input)
}

func (s *transactionServiceStub) UpdateTransaction(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.LedgerEntry, error) {
	return s.updateFn(ctx, input)
}

func (s *transactionServiceStub) DeleteTransaction(ctx context.Context, ownerID, entryID string) error {
	return s.deleteFn(ctx, ownerID, entryID)
}

type entryReaderStub struct {
	listFn func(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]*domain.LedgerEntry, error)
	getFn  func(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error)
}

func (s *entryReaderStub) ListEntries(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]*domain.LedgerEntry, error) {
	return s.listFn(ctx, ownerID, filter, limit, offset)
}

func (s *entryReaderStub) GetEntry(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error) {
	return s.getFn(ctx, ownerID, entryID)
}

// balanceServiceStub returns zero values for every method without a func set.
type balanceServiceStub struct {
	currentFn  func(ctx context.Context, ownerID string) (domain.Balances, error)
	atDateFn   func(ctx context.Context, ownerID string, date time.Time) (domain.Balances, error)
	alertsFn   func(ctx context.Context, ownerID string, thresholds *domain.Balances) ([]domain.LowBalanceAlert, error)
	profitFn   func(ctx context.Context, ownerID string, from, to *time.Time) (*domain.ProfitStats, error)
	trendFn    func(ctx context.Context, ownerID string, field domain.TrendField, from, to *time.Time) ([]domain.TrendPoint, error)
	profitTrFn func(ctx context.Context, ownerID string, period domain.ReportPeriod, from, to *time.Time) ([]domain.TrendPoint, error)
}

func (s *balanceServiceStub) CurrentBalances(ctx context.Context, ownerID string) (domain.Balances, error) {
	if s.currentFn == nil {
		return domain.Balances{}, nil
	}
	return s.currentFn(ctx, ownerID)
}

func (s *balanceServiceStub) BalanceAtDate(ctx context.Context, ownerID string, date time.Time) (domain.Balances, error) {
	if s.atDateFn == nil {
		return domain.Balances{}, nil
	}
	return s.atDateFn(ctx, ownerID, date)
}

func (s *balanceServiceStub) BalanceHistory(ctx context.Context, ownerID string, from, to *time.Time) ([]*domain.BalanceHistoryRecord, error) {
	return []*domain.BalanceHistoryRecord{}, nil
}

func (s *balanceServiceStub) Trend(ctx context.Context, ownerID string, field domain.TrendField, from, to *time.Time) ([]domain.TrendPoint, error) {
	if s.trendFn == nil {
		return nil, nil
	}
	return s.trendFn(ctx, ownerID, field, from, to)
}

func (s *balanceServiceStub) LowBalanceAlerts(ctx context.Context, ownerID string, thresholds *domain.Balances) ([]domain.LowBalanceAlert, error) {
	if s.alertsFn == nil {
		return nil, nil
	}
	return s.alertsFn(ctx, ownerID, thresholds)
}

func (s *balanceServiceStub) BalanceStats(ctx context.Context, ownerID string) (*domain.BalanceStats, error) {
	return &domain.BalanceStats{}, nil
}

func (s *balanceServiceStub) ProfitStats(ctx context.Context, ownerID string, from, to *time.Time) (*domain.ProfitStats, error) {
	if s.profitFn == nil {
		return &domain.ProfitStats{}, nil
	}
	return s.profitFn(ctx, ownerID, from, to)
}

func (s *balanceServiceStub) ProfitTrend(ctx context.Context, ownerID string, period domain.ReportPeriod, from, to *time.Time) ([]domain.TrendPoint, error) {
	if s.profitTrFn == nil {
		return nil, nil
	}
	return s.profitTrFn(ctx, ownerID, period, from, to)
}

type reportServiceStub struct {
	generateFn func(ctx context.Context, input usecase.GenerateReportInput) (*domain.Report, error)
	exportFn   func(ctx context.Context, ownerID, reportID, format string) (*usecase.ExportedReport, error)
}

func (s *reportServiceStub) GenerateReport(ctx context.Context, input usecase.GenerateReportInput) (*domain.Report, error) {
	return s.generateFn(ctx, input)
}

func (s *reportServiceStub) GetReport(ctx context.Context, ownerID, reportID string) (*domain.Report, error) {
	return nil, domain.ErrReportNotFound
}

func (s *reportServiceStub) ListReports(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Report, error) {
	return []*domain.Report{}, nil
}

func (s *reportServiceStub) ExportReport(ctx context.Context, ownerID, reportID, format string) (*usecase.ExportedReport, error) {
	return s.exportFn(ctx, ownerID, reportID, format)
}

type reconciliationServiceStub struct {
	result *usecase.ReconciliationResult
	err    error
}

func (s reconciliationServiceStub) ReconcileOwner(ctx context.Context, ownerID string) (*usecase.ReconciliationResult, error) {
	return s.result, s.err
}
