package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// SignupRequest represents a request to register an owner.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *SignupRequest) ToUseCaseInput() usecase.SignupInput {
	return usecase.SignupInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// OnboardingRequest carries the one-time initial balances.
type OnboardingRequest struct {
	ElectronicBalance    string  `json:"electronic_balance"`
	CashBalance          string  `json:"cash_balance"`
	DefaultFeePercentage *string `json:"default_fee_percentage,omitempty"`
}

// ToUseCaseInput converts to use case input. A missing fee percentage falls
// back to the system default.
func (r *OnboardingRequest) ToUseCaseInput(ownerID string) (usecase.CompleteOnboardingInput, error) {
	electronic, err := parseDecimal(domain.ErrInvalidAmount, "electronic_balance", r.ElectronicBalance)
	if err != nil {
		return usecase.CompleteOnboardingInput{}, err
	}
	cash, err := parseDecimal(domain.ErrInvalidAmount, "cash_balance", r.CashBalance)
	if err != nil {
		return usecase.CompleteOnboardingInput{}, err
	}

	fee := domain.DefaultFeePercentage
	if r.DefaultFeePercentage != nil {
		if fee, err = parseDecimal(domain.ErrInvalidPercentage, "default_fee_percentage", *r.DefaultFeePercentage); err != nil {
			return usecase.CompleteOnboardingInput{}, err
		}
	}

	return usecase.CompleteOnboardingInput{
		OwnerID:              ownerID,
		ElectronicBalance:    electronic,
		CashBalance:          cash,
		DefaultFeePercentage: fee,
	}, nil
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	FeePercentage *string `json:"fee_percentage,omitempty"`
	Date          *string `json:"date,omitempty"`
	CategoryID    *string `json:"category_id,omitempty"`
	Note          *string `json:"note,omitempty"`
	Kind          string  `json:"kind"`
	Amount        string  `json:"amount"`
	FeeMode       string  `json:"fee_mode,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput(ownerID string) (usecase.CreateTransactionInput, error) {
	kind, err := domain.ParseTransactionKind(r.Kind)
	if err != nil {
		return usecase.CreateTransactionInput{}, err
	}

	amount, err := parseDecimal(domain.ErrInvalidAmount, "amount", r.Amount)
	if err != nil {
		return usecase.CreateTransactionInput{}, err
	}

	input := usecase.CreateTransactionInput{
		OwnerID:    ownerID,
		Kind:       kind,
		Amount:     amount,
		FeeMode:    usecase.FeeMode(strings.ToLower(r.FeeMode)),
		CategoryID: r.CategoryID,
		Note:       r.Note,
	}

	if r.FeePercentage != nil {
		fee, err := parseDecimal(domain.ErrInvalidPercentage, "fee_percentage", *r.FeePercentage)
		if err != nil {
			return usecase.CreateTransactionInput{}, err
		}
		input.FeePercentage = &fee
	}

	if r.Date != nil {
		date, err := ParseDate(*r.Date)
		if err != nil {
			return usecase.CreateTransactionInput{}, err
		}
		input.Date = date
	}

	return input, nil
}

// UpdateTransactionRequest carries a partial update. Omitted fields are left unchanged.
type UpdateTransactionRequest struct {
	Amount        *string `json:"amount,omitempty"`
	FeePercentage *string `json:"fee_percentage,omitempty"`
	Kind          *string `json:"kind,omitempty"`
	Date          *string `json:"date,omitempty"`
	CategoryID    *string `json:"category_id,omitempty"`
	Note          *string `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput(ownerID, entryID string) (usecase.UpdateTransactionInput, error) {
	input := usecase.UpdateTransactionInput{
		OwnerID:    ownerID,
		EntryID:    entryID,
		CategoryID: r.CategoryID,
		Note:       r.Note,
	}

	if r.Amount != nil {
		amount, err := parseDecimal(domain.ErrInvalidAmount, "amount", *r.Amount)
		if err != nil {
			return usecase.UpdateTransactionInput{}, err
		}
		input.Amount = &amount
	}

	if r.FeePercentage != nil {
		fee, err := parseDecimal(domain.ErrInvalidPercentage, "fee_percentage", *r.FeePercentage)
		if err != nil {
			return usecase.UpdateTransactionInput{}, err
		}
		input.FeePercentage = &fee
	}

	if r.Kind != nil {
		kind, err := domain.ParseTransactionKind(*r.Kind)
		if err != nil {
			return usecase.UpdateTransactionInput{}, err
		}
		input.Kind = &kind
	}

	if r.Date != nil {
		date, err := ParseDate(*r.Date)
		if err != nil {
			return usecase.UpdateTransactionInput{}, err
		}
		input.Date = &date
	}

	return input, nil
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// GenerateReportRequest represents a request to build a period report.
type GenerateReportRequest struct {
	Period    string `json:"period"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ToUseCaseInput converts to use case input.
func (r *GenerateReportRequest) ToUseCaseInput(ownerID string) (usecase.GenerateReportInput, error) {
	period, err := domain.ParseReportPeriod(r.Period)
	if err != nil {
		return usecase.GenerateReportInput{}, err
	}
	start, err := ParseDate(r.StartDate)
	if err != nil {
		return usecase.GenerateReportInput{}, err
	}
	end, err := ParseDate(r.EndDate)
	if err != nil {
		return usecase.GenerateReportInput{}, err
	}

	return usecase.GenerateReportInput{
		OwnerID:   ownerID,
		Period:    period,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// ParseDate parses a YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidDateRange, s)
	}
	return t, nil
}

func parseDecimal(sentinel error, field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", sentinel, field, s)
	}
	return d, nil
}
