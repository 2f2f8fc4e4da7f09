package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
)

// Snapshotter is implemented by in-memory repositories whose state can be
// restored when a mock transaction rolls back.
type Snapshotter interface {
	Snapshot() (restore func())
}

// MockOwnerRepository is a mock implementation of OwnerRepository.
type MockOwnerRepository struct {
	mu     sync.RWMutex
	owners map[string]*domain.Owner

	CreateFunc             func(ctx context.Context, owner *domain.Owner) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.Owner, error)
	GetByEmailFunc         func(ctx context.Context, email string) (*domain.Owner, error)
	GetByIDForUpdateFunc   func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Owner, error)
	UpdateBalancesFunc     func(ctx context.Context, tx usecase.Transaction, id string, balances domain.Balances, updatedAt time.Time) error
	CompleteOnboardingFunc func(ctx context.Context, tx usecase.Transaction, owner *domain.Owner) error
	ListFunc               func(ctx context.Context, limit, offset int) ([]*domain.Owner, error)
}

func NewMockOwnerRepository() *MockOwnerRepository {
	return &MockOwnerRepository{
		owners: make(map[string]*domain.Owner),
	}
}

// Seed stores owner as is.
func (m *MockOwnerRepository) Seed(owner *domain.Owner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *owner
	m.owners[owner.ID] = &cp
}

func (m *MockOwnerRepository) Snapshot() func() {
	m.mu.RLock()
	saved := make(map[string]domain.Owner, len(m.owners))
	for id, o := range m.owners {
		saved[id] = *o
	}
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.owners = make(map[string]*domain.Owner, len(saved))
		for id, o := range saved {
			o := o
			m.owners[id] = &o
		}
	}
}

func (m *MockOwnerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, owner)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.owners {
		if o.Email == owner.Email {
			return domain.ErrOwnerExists
		}
	}
	cp := *owner
	m.owners[owner.ID] = &cp
	return nil
}

func (m *MockOwnerRepository) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.owners[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, domain.ErrOwnerNotFound
}

func (m *MockOwnerRepository) GetByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.owners {
		if o.Email == email {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrOwnerNotFound
}

func (m *MockOwnerRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Owner, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockOwnerRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, id string, balances domain.Balances, updatedAt time.Time) error {
	if m.UpdateBalancesFunc != nil {
		return m.UpdateBalancesFunc(ctx, tx, id, balances, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.owners[id]
	if !ok {
		return domain.ErrOwnerNotFound
	}
	o.ElectronicBalance = balances.Electronic
	o.CashBalance = balances.Cash
	o.UpdatedAt = updatedAt
	return nil
}

func (m *MockOwnerRepository) CompleteOnboarding(ctx context.Context, tx usecase.Transaction, owner *domain.Owner) error {
	if m.CompleteOnboardingFunc != nil {
		return m.CompleteOnboardingFunc(ctx, tx, owner)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.owners[owner.ID]
	if !ok {
		return domain.ErrOwnerNotFound
	}
	o.ElectronicBalance = owner.ElectronicBalance
	o.CashBalance = owner.CashBalance
	o.DefaultFeePercentage = owner.DefaultFeePercentage
	o.Onboarded = true
	o.UpdatedAt = owner.UpdatedAt
	return nil
}

func (m *MockOwnerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Owner, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	owners := make([]*domain.Owner, 0, len(m.owners))
	for _, o := range m.owners {
		cp := *o
		owners = append(owners, &cp)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].ID < owners[j].ID })
	return page(owners, limit, offset), nil
}

// MockLedgerEntryRepository is a mock implementation of LedgerEntryRepository.
type MockLedgerEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.LedgerEntry

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id string) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.LedgerEntry, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerEntry, error)
	ListFunc             func(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]*domain.LedgerEntry, error)
	LatestBeforeFunc     func(ctx context.Context, ownerID string, date time.Time) (*domain.LedgerEntry, error)
}

func NewMockLedgerEntryRepository() *MockLedgerEntryRepository {
	return &MockLedgerEntryRepository{
		entries: make(map[string]*domain.LedgerEntry),
	}
}

func (m *MockLedgerEntryRepository) Snapshot() func() {
	m.mu.RLock()
	saved := make(map[string]domain.LedgerEntry, len(m.entries))
	for id, e := range m.entries {
		saved[id] = *e
	}
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.entries = make(map[string]*domain.LedgerEntry, len(saved))
		for id, e := range saved {
			e := e
			m.entries[id] = &e
		}
	}
}

// Count returns the number of stored entries.
func (m *MockLedgerEntryRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// All returns copies of every stored entry ordered by date, then creation time.
func (m *MockLedgerEntryRepository) All() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*domain.LedgerEntry, 0, len(m.entries))
	for _, e := range m.entries {
		cp := *e
		entries = append(entries, &cp)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries
}

func (m *MockLedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *entry
	m.entries[entry.ID] = &cp
	return nil
}

func (m *MockLedgerEntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	cp := *entry
	m.entries[entry.ID] = &cp
	return nil
}

func (m *MockLedgerEntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *MockLedgerEntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockLedgerEntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerEntry, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockLedgerEntryRepository) List(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, filter, limit, offset)
	}
	all := m.All()
	entries := make([]*domain.LedgerEntry, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]
		if e.OwnerID != ownerID {
			continue
		}
		if filter.Kind != nil && e.Kind != *filter.Kind {
			continue
		}
		if filter.CategoryID != nil && (e.CategoryID == nil || *e.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		entries = append(entries, e)
	}
	return page(entries, limit, offset), nil
}

func (m *MockLedgerEntryRepository) LatestBefore(ctx context.Context, ownerID string, date time.Time) (*domain.LedgerEntry, error) {
	if m.LatestBeforeFunc != nil {
		return m.LatestBeforeFunc(ctx, ownerID, date)
	}
	var latest *domain.LedgerEntry
	for _, e := range m.All() {
		if e.OwnerID == ownerID && e.Date.Before(date) {
			latest = e
		}
	}
	if latest == nil {
		return nil, domain.ErrEntryNotFound
	}
	return latest, nil
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository.
type MockBalanceHistoryRepository struct {
	mu      sync.RWMutex
	records []*domain.BalanceHistoryRecord

	CreateBatchFunc   func(ctx context.Context, tx usecase.Transaction, records []*domain.BalanceHistoryRecord) error
	DeleteByEntryFunc func(ctx context.Context, tx usecase.Transaction, entryID string) (int64, error)
	ListFunc          func(ctx context.Context, ownerID string, from, to *time.Time) ([]*domain.BalanceHistoryRecord, error)
}

func NewMockBalanceHistoryRepository() *MockBalanceHistoryRepository {
	return &MockBalanceHistoryRepository{}
}

func (m *MockBalanceHistoryRepository) Snapshot() func() {
	m.mu.RLock()
	saved := append([]*domain.BalanceHistoryRecord(nil), m.records...)
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.records = saved
	}
}

// Records returns every stored record in insertion order.
func (m *MockBalanceHistoryRepository) Records() []*domain.BalanceHistoryRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.BalanceHistoryRecord(nil), m.records...)
}

func (m *MockBalanceHistoryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, records []*domain.BalanceHistoryRecord) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, records)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
	return nil
}

func (m *MockBalanceHistoryRepository) DeleteByEntry(ctx context.Context, tx usecase.Transaction, entryID string) (int64, error) {
	if m.DeleteByEntryFunc != nil {
		return m.DeleteByEntryFunc(ctx, tx, entryID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0:0]
	var removed int64
	for _, r := range m.records {
		if r.EntryID != nil && *r.EntryID == entryID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return removed, nil
}

func (m *MockBalanceHistoryRepository) List(ctx context.Context, ownerID string, from, before *time.Time) ([]*domain.BalanceHistoryRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, from, before)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []*domain.BalanceHistoryRecord
	for _, r := range m.records {
		if r.OwnerID != ownerID {
			continue
		}
		if from != nil && r.CreatedAt.Before(*from) {
			continue
		}
		if before != nil && !r.CreatedAt.Before(*before) {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// MockProfitRepository is a mock implementation of ProfitRepository.
type MockProfitRepository struct {
	mu         sync.RWMutex
	aggregates map[string]*domain.ProfitAggregate

	GetOrCreateForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ownerID string, now time.Time) (*domain.ProfitAggregate, error)
	GetOrCreateFunc          func(ctx context.Context, ownerID string) (*domain.ProfitAggregate, error)
	SaveFunc                 func(ctx context.Context, tx usecase.Transaction, aggregate *domain.ProfitAggregate) error
}

func NewMockProfitRepository() *MockProfitRepository {
	return &MockProfitRepository{
		aggregates: make(map[string]*domain.ProfitAggregate),
	}
}

// Seed stores aggregate as is.
func (m *MockProfitRepository) Seed(aggregate *domain.ProfitAggregate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *aggregate
	m.aggregates[aggregate.OwnerID] = &cp
}

func (m *MockProfitRepository) Snapshot() func() {
	m.mu.RLock()
	saved := make(map[string]domain.ProfitAggregate, len(m.aggregates))
	for id, a := range m.aggregates {
		saved[id] = *a
	}
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.aggregates = make(map[string]*domain.ProfitAggregate, len(saved))
		for id, a := range saved {
			a := a
			m.aggregates[id] = &a
		}
	}
}

func (m *MockProfitRepository) GetOrCreateForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, now time.Time) (*domain.ProfitAggregate, error) {
	if m.GetOrCreateForUpdateFunc != nil {
		return m.GetOrCreateForUpdateFunc(ctx, tx, ownerID, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.aggregates[ownerID]
	if !ok {
		a = domain.NewProfitAggregate(ownerID, now)
		m.aggregates[ownerID] = a
	}
	cp := *a
	return &cp, nil
}

func (m *MockProfitRepository) GetOrCreate(ctx context.Context, ownerID string) (*domain.ProfitAggregate, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, ownerID)
	}
	return m.GetOrCreateForUpdate(ctx, nil, ownerID, time.Now().UTC())
}

func (m *MockProfitRepository) Save(ctx context.Context, tx usecase.Transaction, aggregate *domain.ProfitAggregate) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, aggregate)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *aggregate
	m.aggregates[aggregate.OwnerID] = &cp
	return nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category

	CreateFunc  func(ctx context.Context, category *domain.Category) error
	GetByIDFunc func(ctx context.Context, ownerID, id string) (*domain.Category, error)
	ListFunc    func(ctx context.Context, ownerID string) ([]*domain.Category, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]*domain.Category),
	}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.OwnerID == category.OwnerID && c.Name == category.Name {
			return domain.ErrCategoryExists
		}
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok && c.OwnerID == ownerID {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) List(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []*domain.Category
	for _, c := range m.categories {
		if c.OwnerID == ownerID {
			cp := *c
			categories = append(categories, &cp)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// MockAnalyticsRepository is a mock implementation of AnalyticsRepository.
// Sums and period totals are computed from the linked entry repository.
type MockAnalyticsRepository struct {
	entries *MockLedgerEntryRepository

	ProfitSumsFunc   func(ctx context.Context, ownerID string, from, to *time.Time) (domain.ProfitSums, error)
	PeriodTotalsFunc func(ctx context.Context, ownerID string, start, end time.Time) (domain.PeriodTotals, error)
	BalanceTrendFunc func(ctx context.Context, ownerID string, field domain.TrendField, start, end time.Time) ([]domain.TrendPoint, error)
	ProfitTrendFunc  func(ctx context.Context, ownerID string, period domain.ReportPeriod, start, end time.Time) ([]domain.TrendPoint, error)
	BalanceStatsFunc func(ctx context.Context, ownerID string) (domain.BalanceStats, error)
}

func NewMockAnalyticsRepository(entries *MockLedgerEntryRepository) *MockAnalyticsRepository {
	return &MockAnalyticsRepository{entries: entries}
}

func (m *MockAnalyticsRepository) ownerEntries(ownerID string) []*domain.LedgerEntry {
	if m.entries == nil {
		return nil
	}
	var out []*domain.LedgerEntry
	for _, e := range m.entries.All() {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out
}

func (m *MockAnalyticsRepository) ProfitSums(ctx context.Context, ownerID string, from, to *time.Time) (domain.ProfitSums, error) {
	if m.ProfitSumsFunc != nil {
		return m.ProfitSumsFunc(ctx, ownerID, from, to)
	}
	sums := domain.ProfitSums{Total: decimal.Zero, CashIn: decimal.Zero, CashOut: decimal.Zero}
	for _, e := range m.ownerEntries(ownerID) {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		sums.Total = sums.Total.Add(e.FeeAmount)
		if e.Kind == domain.KindCashIn {
			sums.CashIn = sums.CashIn.Add(e.FeeAmount)
		} else {
			sums.CashOut = sums.CashOut.Add(e.FeeAmount)
		}
		sums.Count++
	}
	return sums, nil
}

func (m *MockAnalyticsRepository) PeriodTotals(ctx context.Context, ownerID string, start, end time.Time) (domain.PeriodTotals, error) {
	if m.PeriodTotalsFunc != nil {
		return m.PeriodTotalsFunc(ctx, ownerID, start, end)
	}
	totals := domain.PeriodTotals{TotalCashIn: decimal.Zero, TotalCashOut: decimal.Zero, TotalFees: decimal.Zero}
	for _, e := range m.ownerEntries(ownerID) {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		if e.Kind == domain.KindCashIn {
			totals.TotalCashIn = totals.TotalCashIn.Add(e.Amount)
		} else {
			totals.TotalCashOut = totals.TotalCashOut.Add(e.Amount)
		}
		totals.TotalFees = totals.TotalFees.Add(e.FeeAmount)
	}
	return totals, nil
}

func (m *MockAnalyticsRepository) BalanceTrend(ctx context.Context, ownerID string, field domain.TrendField, start, end time.Time) ([]domain.TrendPoint, error) {
	if m.BalanceTrendFunc != nil {
		return m.BalanceTrendFunc(ctx, ownerID, field, start, end)
	}
	return []domain.TrendPoint{}, nil
}

func (m *MockAnalyticsRepository) ProfitTrend(ctx context.Context, ownerID string, period domain.ReportPeriod, start, end time.Time) ([]domain.TrendPoint, error) {
	if m.ProfitTrendFunc != nil {
		return m.ProfitTrendFunc(ctx, ownerID, period, start, end)
	}
	return []domain.TrendPoint{}, nil
}

func (m *MockAnalyticsRepository) BalanceStats(ctx context.Context, ownerID string) (domain.BalanceStats, error) {
	if m.BalanceStatsFunc != nil {
		return m.BalanceStatsFunc(ctx, ownerID)
	}
	return domain.BalanceStats{}, nil
}

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*domain.Report

	CreateFunc  func(ctx context.Context, report *domain.Report) error
	GetByIDFunc func(ctx context.Context, ownerID, id string) (*domain.Report, error)
	ListFunc    func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Report, error)
}

func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{
		reports: make(map[string]*domain.Report),
	}
}

func (m *MockReportRepository) Create(ctx context.Context, report *domain.Report) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, report)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *report
	m.reports[report.ID] = &cp
	return nil
}

func (m *MockReportRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Report, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.reports[id]; ok && r.OwnerID == ownerID {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrReportNotFound
}

func (m *MockReportRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Report, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reports []*domain.Report
	for _, r := range m.reports {
		if r.OwnerID == ownerID {
			cp := *r
			reports = append(reports, &cp)
		}
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].CreatedAt.After(reports[j].CreatedAt) })
	return page(reports, limit, offset), nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Snapshot() func() {
	m.mu.RLock()
	saved := append([]*domain.OutboxEvent(nil), m.events...)
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.events = saved
	}
}

// Events returns every stored event in insertion order.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published && len(events) < limit {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0:0]
	for _, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
// Tracked repositories are restored when a transaction rolls back without
// a prior commit.
type MockTransactionManager struct {
	mu      sync.Mutex
	tracked []Snapshotter

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	Begun     int
	Committed int
}

func NewMockTransactionManager(tracked ...Snapshotter) *MockTransactionManager {
	return &MockTransactionManager{tracked: tracked}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Begun++

	restores := make([]func(), 0, len(m.tracked))
	for _, s := range m.tracked {
		restores = append(restores, s.Snapshot())
	}

	return &MockTransaction{
		CommitFunc: func(ctx context.Context) error {
			m.mu.Lock()
			m.Committed++
			m.mu.Unlock()
			return nil
		},
		restores: restores,
	}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	restores  []func()
	committed bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		if err := m.CommitFunc(ctx); err != nil {
			return err
		}
	}
	m.committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if m.committed {
		return nil
	}
	for _, restore := range m.restores {
		restore()
	}
	m.restores = nil
	return nil
}

// MockRetrier is a mock implementation of Retrier.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
	Calls     int
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	m.Calls++
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	ReleaseFunc     func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockReportRenderer is a mock implementation of ReportRenderer.
type MockReportRenderer struct {
	ContentTypeValue string
	RenderFunc       func(report *domain.Report, entries []*domain.LedgerEntry) ([]byte, error)

	Rendered []*domain.LedgerEntry
}

func (m *MockReportRenderer) ContentType() string {
	if m.ContentTypeValue == "" {
		return "application/octet-stream"
	}
	return m.ContentTypeValue
}

func (m *MockReportRenderer) Render(report *domain.Report, entries []*domain.LedgerEntry) ([]byte, error) {
	m.Rendered = entries
	if m.RenderFunc != nil {
		return m.RenderFunc(report, entries)
	}
	return []byte(report.Name), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
