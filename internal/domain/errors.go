package domain

import "errors"

var (
	// Owner errors
	ErrOwnerNotFound    = errors.New("owner not found")
	ErrOwnerExists      = errors.New("owner with this email already exists")
	ErrAlreadyOnboarded = errors.New("owner is already onboarded")
	ErrNotOnboarded     = errors.New("owner has not completed onboarding")

	// Ledger errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidPercentage = errors.New("fee percentage must be between 0 and 100")
	ErrInvalidKind       = errors.New("invalid transaction kind")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrEntryNotFound     = errors.New("ledger entry not found")
	ErrInconsistentState = errors.New("ledger is in an inconsistent state")

	// Category errors
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")

	// Report errors
	ErrReportNotFound   = errors.New("report not found")
	ErrInvalidPeriod    = errors.New("invalid report period")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrInvalidFormat    = errors.New("unsupported export format")
	ErrInvalidTrend     = errors.New("invalid trend field")

	// Authentication errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
