package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrPasswordTooWeak = errors.New("password does not meet requirements")
	ErrNoteTooLong     = errors.New("note exceeds maximum length")
)

const (
	MaxNameLength     = 255
	MaxNoteLength     = 1000
	MinPasswordLength = 8
	MaxPasswordLength = 128

	// Bounds of the numeric(12,2) amount column.
	MinEntryAmount = "0.01"
	MaxEntryAmount = "9999999999.99"

	DefaultPageSize = 50
	MaxPageSize     = 1000
)

var (
	minEntryAmount = decimal.RequireFromString(MinEntryAmount)
	maxEntryAmount = decimal.RequireFromString(MaxEntryAmount)

	emailPattern = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
)

func hasMoneyPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyPlaces))
}

// ValidateName checks owner and category names. Length counts characters,
// not bytes, so names like "Tindahan ni Aling Nena" with accents fit.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	switch {
	case n == 0:
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	case n > MaxNameLength:
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	return nil
}

// ValidateAmount accepts whole centavos between MinEntryAmount and
// MaxEntryAmount.
func ValidateAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return ErrInvalidAmount
	case !hasMoneyPrecision(amount):
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, MoneyPlaces)
	case amount.LessThan(minEntryAmount):
		return fmt.Errorf("%w: minimum amount is %s", ErrInvalidAmount, MinEntryAmount)
	case amount.GreaterThan(maxEntryAmount):
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxEntryAmount)
	}
	return nil
}

// ValidatePercentage accepts 0 to 100 with at most two decimals.
func ValidatePercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Errorf("%w: got %s", ErrInvalidPercentage, pct.String())
	}
	if !hasMoneyPrecision(pct) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidPercentage, MoneyPlaces)
	}
	return nil
}

func ValidateNote(note *string) error {
	if note != nil && utf8.RuneCountInString(*note) > MaxNoteLength {
		return fmt.Errorf("%w: %d characters allowed", ErrNoteTooLong, MaxNoteLength)
	}
	return nil
}

// ValidateEmail is case-insensitive; owners are stored by lowercased email.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.ToLower(strings.TrimSpace(email))) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword requires MinPasswordLength..MaxPasswordLength characters
// mixing upper case, lower case and digits.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}
	if n > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	var upper, lower, digit bool
	for _, r := range password {
		upper = upper || unicode.IsUpper(r)
		lower = lower || unicode.IsLower(r)
		digit = digit || unicode.IsDigit(r)
	}
	if !upper || !lower || !digit {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}
	return nil
}

// ValidateDateRange rejects start after end. Nil bounds are open.
func ValidateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return ErrInvalidDateRange
	}
	return nil
}

// ClampPage applies DefaultPageSize to a missing limit, caps it at
// MaxPageSize and floors offset at zero.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return min(limit, MaxPageSize), max(offset, 0)
}
