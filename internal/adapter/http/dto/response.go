package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Money formats an amount with two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyPlaces)
}

// OwnerResponse represents an owner in API responses.
type OwnerResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	ElectronicBalance    string    `json:"electronic_balance"`
	CashBalance          string    `json:"cash_balance"`
	DefaultFeePercentage string    `json:"default_fee_percentage"`
	Onboarded            bool      `json:"onboarded"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// OwnerFromDomain converts a domain owner to response.
func OwnerFromDomain(o *domain.Owner) *OwnerResponse {
	return &OwnerResponse{
		ID:                   o.ID,
		Name:                 o.Name,
		Email:                o.Email,
		ElectronicBalance:    Money(o.ElectronicBalance),
		CashBalance:          Money(o.CashBalance),
		DefaultFeePercentage: Money(o.DefaultFeePercentage),
		Onboarded:            o.Onboarded,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token     string         `json:"token,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	Owner     *OwnerResponse `json:"owner"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID                      string    `json:"id"`
	OwnerID                 string    `json:"owner_id"`
	Kind                    string    `json:"kind"`
	Amount                  string    `json:"amount"`
	FeePercentage           string    `json:"fee_percentage"`
	FeeAmount               string    `json:"fee_amount"`
	ElectronicBalanceBefore string    `json:"electronic_balance_before"`
	ElectronicBalanceAfter  string    `json:"electronic_balance_after"`
	CashBalanceBefore       string    `json:"cash_balance_before"`
	CashBalanceAfter        string    `json:"cash_balance_after"`
	Date                    string    `json:"date"`
	CategoryID              *string   `json:"category_id,omitempty"`
	Note                    *string   `json:"note,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// EntryFromDomain converts a domain entry to response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:                      e.ID,
		OwnerID:                 e.OwnerID,
		Kind:                    string(e.Kind),
		Amount:                  Money(e.Amount),
		FeePercentage:           Money(e.FeePercentage),
		FeeAmount:               Money(e.FeeAmount),
		ElectronicBalanceBefore: Money(e.ElectronicBalanceBefore),
		ElectronicBalanceAfter:  Money(e.ElectronicBalanceAfter),
		CashBalanceBefore:       Money(e.CashBalanceBefore),
		CashBalanceAfter:        Money(e.CashBalanceAfter),
		Date:                    e.Date.Format(DateLayout),
		CategoryID:              e.CategoryID,
		Note:                    e.Note,
		CreatedAt:               e.CreatedAt,
		UpdatedAt:               e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse represents a page of entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int              `json:"total"`
}

// BalancesResponse represents both pools and their sum.
type BalancesResponse struct {
	Electronic string `json:"electronic"`
	Cash       string `json:"cash"`
	Total      string `json:"total"`
}

// BalancesFromDomain converts balances to response.
func BalancesFromDomain(b domain.Balances) *BalancesResponse {
	return &BalancesResponse{
		Electronic: Money(b.Electronic),
		Cash:       Money(b.Cash),
		Total:      Money(b.Total()),
	}
}

// HistoryRecordResponse represents one balance history record.
type HistoryRecordResponse struct {
	ID           string    `json:"id"`
	EntryID      *string   `json:"entry_id,omitempty"`
	BalanceType  string    `json:"balance_type"`
	AmountBefore string    `json:"amount_before"`
	AmountAfter  string    `json:"amount_after"`
	ChangeAmount string    `json:"change_amount"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryFromDomain converts history records to responses.
func HistoryFromDomain(records []*domain.BalanceHistoryRecord) []*HistoryRecordResponse {
	result := make([]*HistoryRecordResponse, len(records))
	for i, r := range records {
		result[i] = &HistoryRecordResponse{
			ID:           r.ID,
			EntryID:      r.EntryID,
			BalanceType:  string(r.BalanceType),
			AmountBefore: Money(r.AmountBefore),
			AmountAfter:  Money(r.AmountAfter),
			ChangeAmount: Money(r.ChangeAmount),
			Reason:       r.Reason,
			CreatedAt:    r.CreatedAt,
		}
	}
	return result
}

// ProfitStatsResponse represents fee revenue over a range.
type ProfitStatsResponse struct {
	TotalProfit      string `json:"total_profit"`
	CashInProfit     string `json:"cash_in_profit"`
	CashOutProfit    string `json:"cash_out_profit"`
	AverageProfit    string `json:"average_profit"`
	AllTimeProfit    string `json:"all_time_profit"`
	TransactionCount int64  `json:"transaction_count"`
}

// ProfitStatsFromDomain converts profit stats to response.
func ProfitStatsFromDomain(s *domain.ProfitStats) *ProfitStatsResponse {
	return &ProfitStatsResponse{
		TotalProfit:      Money(s.TotalProfit),
		CashInProfit:     Money(s.CashInProfit),
		CashOutProfit:    Money(s.CashOutProfit),
		AverageProfit:    Money(s.AverageProfit),
		AllTimeProfit:    Money(s.AllTimeProfit),
		TransactionCount: s.TransactionCount,
	}
}

// TrendPointResponse is one bucket of a time series.
type TrendPointResponse struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// TrendFromDomain converts trend points to responses.
func TrendFromDomain(points []domain.TrendPoint) []TrendPointResponse {
	result := make([]TrendPointResponse, len(points))
	for i, p := range points {
		result[i] = TrendPointResponse{Date: p.Date.Format(DateLayout), Value: Money(p.Value)}
	}
	return result
}

// LowBalanceAlertResponse flags a pool below its threshold.
type LowBalanceAlertResponse struct {
	BalanceType string `json:"balance_type"`
	Message     string `json:"message"`
	Balance     string `json:"balance"`
	Threshold   string `json:"threshold"`
}

// AlertsFromDomain converts alerts to responses.
func AlertsFromDomain(alerts []domain.LowBalanceAlert) []LowBalanceAlertResponse {
	result := make([]LowBalanceAlertResponse, len(alerts))
	for i, a := range alerts {
		result[i] = LowBalanceAlertResponse{
			BalanceType: string(a.BalanceType),
			Message:     a.Message,
			Balance:     Money(a.Balance),
			Threshold:   Money(a.Threshold),
		}
	}
	return result
}

// PoolStatsResponse summarises one pool.
type PoolStatsResponse struct {
	Current string `json:"current"`
	Max     string `json:"max"`
	Min     string `json:"min"`
	Average string `json:"average"`
}

// BalanceStatsResponse holds stats for both pools.
type BalanceStatsResponse struct {
	Electronic PoolStatsResponse `json:"electronic"`
	Cash       PoolStatsResponse `json:"cash"`
}

// BalanceStatsFromDomain converts balance stats to response.
func BalanceStatsFromDomain(s *domain.BalanceStats) *BalanceStatsResponse {
	pool := func(p domain.PoolStats) PoolStatsResponse {
		return PoolStatsResponse{
			Current: Money(p.Current),
			Max:     Money(p.Max),
			Min:     Money(p.Min),
			Average: Money(p.Average),
		}
	}
	return &BalanceStatsResponse{Electronic: pool(s.Electronic), Cash: pool(s.Cash)}
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoriesFromDomain converts categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = &CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
	}
	return result
}

// ReportResponse represents a stored report.
type ReportResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Period       string    `json:"period"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	TotalCashIn  string    `json:"total_cash_in"`
	TotalCashOut string    `json:"total_cash_out"`
	TotalFees    string    `json:"total_fees"`
	NetProfit    string    `json:"net_profit"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReportFromDomain converts a domain report to response.
func ReportFromDomain(r *domain.Report) *ReportResponse {
	return &ReportResponse{
		ID:           r.ID,
		Name:         r.Name,
		Period:       string(r.Period),
		StartDate:    r.StartDate.Format(DateLayout),
		EndDate:      r.EndDate.Format(DateLayout),
		TotalCashIn:  Money(r.TotalCashIn),
		TotalCashOut: Money(r.TotalCashOut),
		TotalFees:    Money(r.TotalFees),
		NetProfit:    Money(r.NetProfit),
		CreatedAt:    r.CreatedAt,
	}
}

// ReportsFromDomain converts reports to responses.
func ReportsFromDomain(reports []*domain.Report) []*ReportResponse {
	result := make([]*ReportResponse, len(reports))
	for i, r := range reports {
		result[i] = ReportFromDomain(r)
	}
	return result
}

// ReconciliationResponse represents one owner's reconciliation result.
type ReconciliationResponse struct {
	OwnerID          string    `json:"owner_id"`
	RecordedProfit   string    `json:"recorded_profit"`
	CalculatedProfit string    `json:"calculated_profit"`
	Difference       string    `json:"difference"`
	RecordedCount    int64     `json:"recorded_count"`
	CalculatedCount  int64     `json:"calculated_count"`
	Discrepancies    []string  `json:"discrepancies"`
	IsReconciled     bool      `json:"is_reconciled"`
	LastChecked      time.Time `json:"last_checked"`
}

// ReconciliationFromUseCase converts a reconciliation result to response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	discrepancies := r.Discrepancies
	if discrepancies == nil {
		discrepancies = []string{}
	}
	return &ReconciliationResponse{
		OwnerID:          r.OwnerID,
		RecordedProfit:   Money(r.RecordedProfit),
		CalculatedProfit: Money(r.CalculatedProfit),
		Difference:       Money(r.Difference),
		RecordedCount:    r.RecordedCount,
		CalculatedCount:  r.CalculatedCount,
		Discrepancies:    discrepancies,
		IsReconciled:     r.IsReconciled,
		LastChecked:      r.LastChecked,
	}
}
