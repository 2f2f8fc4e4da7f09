// Package export renders reports into downloadable documents.
package export

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/domain"
)

var entryHeader = []string{"Date", "Type", "Amount", "Fee %", "Fee", "Electronic After", "Cash After"}

func summaryRows(r *domain.Report) [][2]string {
	money := func(d decimal.Decimal) string { return d.StringFixed(domain.MoneyPlaces) }
	return [][2]string{
		{"Period", string(r.Period)},
		{"From", r.StartDate.Format(time.DateOnly)},
		{"To", r.EndDate.Format(time.DateOnly)},
		{"Total Cash In", money(r.TotalCashIn)},
		{"Total Cash Out", money(r.TotalCashOut)},
		{"Total Fees", money(r.TotalFees)},
		{"Net Profit", money(r.NetProfit)},
	}
}

func entryRow(e *domain.LedgerEntry) []string {
	return []string{
		e.Date.Format(time.DateOnly),
		e.Kind.Label(),
		e.Amount.StringFixed(domain.MoneyPlaces),
		e.FeePercentage.StringFixed(domain.MoneyPlaces),
		e.FeeAmount.StringFixed(domain.MoneyPlaces),
		e.ElectronicBalanceAfter.StringFixed(domain.MoneyPlaces),
		e.CashBalanceAfter.StringFixed(domain.MoneyPlaces),
	}
}
