package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/postgres/generated"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	queries *generated.Queries
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db generated.DBTX) *CategoryRepository {
	return &CategoryRepository{queries: generated.New(db)}
}

// Create inserts a category; names are unique per owner.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	err := r.queries.CreateCategory(ctx, generated.CreateCategoryParams{
		ID:        category.ID,
		OwnerID:   category.OwnerID,
		Name:      category.Name,
		CreatedAt: timeToPgTimestamptz(category.CreatedAt),
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrCategoryExists, category.Name)
	}

	return err
}

// GetByID retrieves one of the owner's categories.
func (r *CategoryRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	row, err := r.queries.GetCategoryByID(ctx, generated.GetCategoryByIDParams{OwnerID: ownerID, ID: id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}

		return nil, err
	}

	return rowToCategory(row), nil
}

// List returns the owner's categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	rows, err := r.queries.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	categories := make([]*domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, rowToCategory(row))
	}

	return categories, nil
}

func rowToCategory(row generated.Category) *domain.Category {
	return &domain.Category{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt.Time,
	}
}
