package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/postgres/generated"
	"github.com/iho/gcashledger/internal/usecase"
)

// OwnerRepository implements usecase.OwnerRepository.
type OwnerRepository struct {
	queries *generated.Queries
}

// NewOwnerRepository creates a new OwnerRepository. db is usually a *pgxpool.Pool.
func NewOwnerRepository(db generated.DBTX) *OwnerRepository {
	return &OwnerRepository{queries: generated.New(db)}
}

// Create inserts a new owner. A duplicate email maps to domain.ErrOwnerExists.
func (r *OwnerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	err := r.queries.CreateOwner(ctx, generated.CreateOwnerParams{
		ID:                   owner.ID,
		Name:                 owner.Name,
		Email:                owner.Email,
		PasswordHash:         owner.PasswordHash,
		ElectronicBalance:    decimalToNumeric(owner.ElectronicBalance),
		CashBalance:          decimalToNumeric(owner.CashBalance),
		DefaultFeePercentage: decimalToNumeric(owner.DefaultFeePercentage),
		Onboarded:            owner.Onboarded,
		CreatedAt:            timeToPgTimestamptz(owner.CreatedAt),
		UpdatedAt:            timeToPgTimestamptz(owner.UpdatedAt),
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrOwnerExists, owner.Email)
	}

	return err
}

// GetByID retrieves an owner by ID.
func (r *OwnerRepository) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	row, err := r.queries.GetOwnerByID(ctx, id)
	if err != nil {
		return nil, ownerLookupError(err)
	}

	return rowToOwner(row), nil
}

// GetByEmail retrieves an owner by normalized email.
func (r *OwnerRepository) GetByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	row, err := r.queries.GetOwnerByEmail(ctx, email)
	if err != nil {
		return nil, ownerLookupError(err)
	}

	return rowToOwner(row), nil
}

// GetByIDForUpdate retrieves an owner by ID with a FOR UPDATE lock.
func (r *OwnerRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Owner, error) {
	row, err := txQueries(tx).GetOwnerByIDForUpdate(ctx, id)
	if err != nil {
		return nil, ownerLookupError(err)
	}

	return rowToOwner(row), nil
}

// UpdateBalances overwrites both pool balances.
func (r *OwnerRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, id string, balances domain.Balances, updatedAt time.Time) error {
	return txQueries(tx).UpdateOwnerBalances(ctx, generated.UpdateOwnerBalancesParams{
		ID:                id,
		ElectronicBalance: decimalToNumeric(balances.Electronic),
		CashBalance:       decimalToNumeric(balances.Cash),
		UpdatedAt:         timeToPgTimestamptz(updatedAt),
	})
}

// CompleteOnboarding sets the initial balances and fee once. The update is
// guarded by onboarded = FALSE, so a second call affects no rows.
func (r *OwnerRepository) CompleteOnboarding(ctx context.Context, tx usecase.Transaction, owner *domain.Owner) error {
	n, err := txQueries(tx).CompleteOwnerOnboarding(ctx, generated.CompleteOwnerOnboardingParams{
		ID:                   owner.ID,
		ElectronicBalance:    decimalToNumeric(owner.ElectronicBalance),
		CashBalance:          decimalToNumeric(owner.CashBalance),
		DefaultFeePercentage: decimalToNumeric(owner.DefaultFeePercentage),
		UpdatedAt:            timeToPgTimestamptz(owner.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAlreadyOnboarded
	}

	return nil
}

// List returns owners ordered by creation time.
func (r *OwnerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Owner, error) {
	rows, err := r.queries.ListOwners(ctx, generated.ListOwnersParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	owners := make([]*domain.Owner, 0, len(rows))
	for _, row := range rows {
		owners = append(owners, rowToOwner(row))
	}

	return owners, nil
}

func ownerLookupError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrOwnerNotFound
	}
	return err
}

func rowToOwner(row generated.Owner) *domain.Owner {
	return &domain.Owner{
		ID:                   row.ID,
		Name:                 row.Name,
		Email:                row.Email,
		PasswordHash:         row.PasswordHash,
		ElectronicBalance:    numericToDecimal(row.ElectronicBalance),
		CashBalance:          numericToDecimal(row.CashBalance),
		DefaultFeePercentage: numericToDecimal(row.DefaultFeePercentage),
		Onboarded:            row.Onboarded,
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}
}
