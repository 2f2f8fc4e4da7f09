package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod is the granularity of a report or trend.
type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "daily"
	PeriodWeekly  ReportPeriod = "weekly"
	PeriodMonthly ReportPeriod = "monthly"
)

// ParseReportPeriod validates a period name.
func ParseReportPeriod(s string) (ReportPeriod, error) {
	p := ReportPeriod(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// Report is a persisted period summary.
type Report struct {
	StartDate    time.Time
	EndDate      time.Time
	CreatedAt    time.Time
	ID           string
	OwnerID      string
	Name         string
	Period       ReportPeriod
	TotalCashIn  decimal.Decimal
	TotalCashOut decimal.Decimal
	TotalFees    decimal.Decimal
	NetProfit    decimal.Decimal
}

// ReportName formats a report name such as "Weekly Report - Jan 02, 2006".
func ReportName(period ReportPeriod, start time.Time) string {
	p := string(period)
	if p != "" {
		p = strings.ToUpper(p[:1]) + p[1:]
	}
	return p + " Report - " + start.Format("Jan 02, 2006")
}

// PeriodTotals are the sums a report is built from.
type PeriodTotals struct {
	TotalCashIn  decimal.Decimal
	TotalCashOut decimal.Decimal
	TotalFees    decimal.Decimal
}

// NetProfit is cash in minus cash out minus fees.
func (t PeriodTotals) NetProfit() decimal.Decimal {
	return t.TotalCashIn.Sub(t.TotalCashOut).Sub(t.TotalFees)
}

// ProfitStats summarises fee revenue over a range.
type ProfitStats struct {
	TotalProfit      decimal.Decimal
	CashInProfit     decimal.Decimal
	CashOutProfit    decimal.Decimal
	AverageProfit    decimal.Decimal
	AllTimeProfit    decimal.Decimal
	TransactionCount int64
}

// ProfitSums is the raw aggregate a ProfitStats is derived from.
type ProfitSums struct {
	Total   decimal.Decimal
	CashIn  decimal.Decimal
	CashOut decimal.Decimal
	Count   int64
}

// Average returns total/count rounded to two places, or zero.
func (s ProfitSums) Average() decimal.Decimal {
	if s.Count == 0 {
		return decimal.Zero
	}
	return s.Total.Div(decimal.NewFromInt(s.Count)).Round(MoneyPlaces)
}

// TrendField selects the series a trend query returns.
type TrendField string

const (
	TrendElectronic TrendField = "electronic"
	TrendCash       TrendField = "cash"
	TrendProfit     TrendField = "profit"
)

// ParseTrendField validates a trend field name. "gcash" is an alias for electronic.
func ParseTrendField(s string) (TrendField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "electronic", "gcash":
		return TrendElectronic, nil
	case "cash":
		return TrendCash, nil
	case "profit":
		return TrendProfit, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTrend, s)
}

// TrendPoint is one bucket of a time series.
type TrendPoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// LowBalanceAlert flags a pool below its threshold.
type LowBalanceAlert struct {
	BalanceType BalanceType
	Message     string
	Balance     decimal.Decimal
	Threshold   decimal.Decimal
}

// PoolStats summarises one pool's after-balances.
type PoolStats struct {
	Current decimal.Decimal
	Max     decimal.Decimal
	Min     decimal.Decimal
	Average decimal.Decimal
}

// BalanceStats holds pool stats for both pools.
type BalanceStats struct {
	Electronic PoolStats
	Cash       PoolStats
}
