package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/metrics"
)

// OwnerUseCase handles signup, login and the one-time onboarding step.
type OwnerUseCase struct {
	txManager   TransactionManager
	ownerRepo   OwnerRepository
	historyRepo BalanceHistoryRepository
	profitRepo  ProfitRepository
	outboxRepo  OutboxRepository
	cache       Cache
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewOwnerUseCase creates a new OwnerUseCase.
func NewOwnerUseCase(
	txManager TransactionManager,
	ownerRepo OwnerRepository,
	historyRepo BalanceHistoryRepository,
	profitRepo ProfitRepository,
	outboxRepo OutboxRepository,
	cache Cache,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *OwnerUseCase {
	return &OwnerUseCase{
		txManager:   txManager,
		ownerRepo:   ownerRepo,
		historyRepo: historyRepo,
		profitRepo:  profitRepo,
		outboxRepo:  outboxRepo,
		cache:       cache,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// SignupInput represents input for creating an owner
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup creates an owner with zero balances that still has to onboard.
func (uc *OwnerUseCase) Signup(ctx context.Context, input SignupInput) (*domain.Owner, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := uc.ownerRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrOwnerExists
	}
	if err != nil && !errors.Is(err, domain.ErrOwnerNotFound) {
		return nil, err
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	owner := &domain.Owner{
		ID:                   uc.idGen.Generate(),
		Name:                 strings.TrimSpace(input.Name),
		Email:                email,
		PasswordHash:         hashedPassword,
		ElectronicBalance:    decimal.Zero,
		CashBalance:          decimal.Zero,
		DefaultFeePercentage: domain.DefaultFeePercentage,
		Onboarded:            false,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := uc.ownerRepo.Create(ctx, owner); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.OwnersRegistered.Inc()
	}

	// Don't return hashed password
	owner.PasswordHash = ""
	return owner, nil
}

// AuthenticateInput represents authentication input
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies owner credentials
func (uc *OwnerUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.Owner, error) {
	owner, err := uc.ownerRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		uc.recordAuth("failure")
		return nil, domain.ErrUnauthorized
	}

	if err := verifyPassword(owner.PasswordHash, input.Password); err != nil {
		uc.recordAuth("failure")
		return nil, domain.ErrUnauthorized
	}

	uc.recordAuth("success")

	owner.PasswordHash = ""
	return owner, nil
}

// GetOwner retrieves an owner by ID
func (uc *OwnerUseCase) GetOwner(ctx context.Context, id string) (*domain.Owner, error) {
	owner, err := uc.ownerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner.PasswordHash = ""
	return owner, nil
}

// CompleteOnboardingInput represents the one-time initial values.
type CompleteOnboardingInput struct {
	OwnerID              string
	ElectronicBalance    decimal.Decimal
	CashBalance          decimal.Decimal
	DefaultFeePercentage decimal.Decimal
}

// CompleteOnboarding sets the owner's initial balances exactly once.
func (uc *OwnerUseCase) CompleteOnboarding(ctx context.Context, input CompleteOnboardingInput) (*domain.Owner, error) {
	values := domain.OnboardingInput{
		ElectronicBalance:    input.ElectronicBalance,
		CashBalance:          input.CashBalance,
		DefaultFeePercentage: input.DefaultFeePercentage,
	}
	if err := values.Validate(); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	owner, err := uc.ownerRepo.GetByIDForUpdate(txCtx, tx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.Onboarded {
		return nil, domain.ErrAlreadyOnboarded
	}

	now := time.Now().UTC()
	before := owner.Balances()

	owner.ElectronicBalance = values.ElectronicBalance.Round(domain.MoneyPlaces)
	owner.CashBalance = values.CashBalance.Round(domain.MoneyPlaces)
	owner.DefaultFeePercentage = values.DefaultFeePercentage
	owner.Onboarded = true
	owner.UpdatedAt = now

	if err := uc.ownerRepo.CompleteOnboarding(txCtx, tx, owner); err != nil {
		return nil, err
	}

	records := []*domain.BalanceHistoryRecord{
		domain.NewBalanceHistoryRecord(uc.idGen.Generate(), owner.ID, nil, domain.BalanceTypeElectronic,
			before.Electronic, owner.ElectronicBalance, domain.ReasonInitialBalance, now),
		domain.NewBalanceHistoryRecord(uc.idGen.Generate(), owner.ID, nil, domain.BalanceTypeCash,
			before.Cash, owner.CashBalance, domain.ReasonInitialBalance, now),
	}
	if err := uc.historyRepo.CreateBatch(txCtx, tx, records); err != nil {
		return nil, err
	}

	// Materialize the zero aggregate so profit queries never race its creation.
	if _, err := uc.profitRepo.GetOrCreateForUpdate(txCtx, tx, owner.ID, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   owner.ID,
		AggregateType: domain.AggregateTypeOwner,
		EventType:     domain.EventTypeOwnerOnboarded,
		Payload: map[string]any{
			"owner_id":               owner.ID,
			"electronic_balance":     owner.ElectronicBalance.StringFixed(domain.MoneyPlaces),
			"cash_balance":           owner.CashBalance.StringFixed(domain.MoneyPlaces),
			"default_fee_percentage": owner.DefaultFeePercentage.StringFixed(domain.MoneyPlaces),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = bumpBalanceGeneration(ctx, uc.cache, owner.ID)
	}

	if uc.metrics != nil {
		uc.metrics.OwnersOnboarded.Inc()
	}

	owner.PasswordHash = ""
	return owner, nil
}

func (uc *OwnerUseCase) recordAuth(status string) {
	if uc.metrics != nil {
		uc.metrics.AuthAttempts.WithLabelValues(status).Inc()
	}
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword verifies a password against a hash
func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
