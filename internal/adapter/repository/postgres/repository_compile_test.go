package postgres

import (
	"github.com/iho/gcashledger/internal/usecase"
)

var (
	_ usecase.OwnerRepository          = (*OwnerRepository)(nil)
	_ usecase.LedgerEntryRepository    = (*LedgerEntryRepository)(nil)
	_ usecase.BalanceHistoryRepository = (*BalanceHistoryRepository)(nil)
	_ usecase.ProfitRepository         = (*ProfitRepository)(nil)
	_ usecase.CategoryRepository       = (*CategoryRepository)(nil)
	_ usecase.AnalyticsRepository      = (*AnalyticsRepository)(nil)
	_ usecase.ReportRepository         = (*ReportRepository)(nil)
	_ usecase.OutboxRepository         = (*OutboxRepository)(nil)
	_ usecase.OutboxRepository         = (*NullOutboxRepository)(nil)
	_ usecase.TransactionManager       = (*TxManager)(nil)
	_ usecase.Retrier                  = (*Retrier)(nil)
	_ usecase.IDGenerator              = (*ULIDGenerator)(nil)
)
