package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/gcashledger/internal/domain"
)

// CategoryUseCase manages an owner's transaction categories.
type CategoryUseCase struct {
	ownerRepo    OwnerRepository
	categoryRepo CategoryRepository
	idGen        IDGenerator
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(ownerRepo OwnerRepository, categoryRepo CategoryRepository, idGen IDGenerator) *CategoryUseCase {
	return &CategoryUseCase{
		ownerRepo:    ownerRepo,
		categoryRepo: categoryRepo,
		idGen:        idGen,
	}
}

// CreateCategory adds a category. Names are unique per owner.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, ownerID, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	if _, err := uc.ownerRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	category := &domain.Category{
		ID:        uc.idGen.Generate(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// ListCategories lists the owner's categories by name.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	return uc.categoryRepo.List(ctx, ownerID)
}
