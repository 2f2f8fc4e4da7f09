package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
	"github.com/iho/gcashledger/internal/usecase/mocks"
)

func TestCategoryUseCase(t *testing.T) {
	ctx := context.Background()
	owners := mocks.NewMockOwnerRepository()
	owners.Seed(&domain.Owner{ID: "owner-1"})
	uc := usecase.NewCategoryUseCase(owners, mocks.NewMockCategoryRepository(), mocks.NewMockIDGenerator())

	for _, name := range []string{" Load ", "Bills"} {
		if _, err := uc.CreateCategory(ctx, "owner-1", name); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}

	if _, err := uc.CreateCategory(ctx, "owner-1", "Load"); !errors.Is(err, domain.ErrCategoryExists) {
		t.Errorf("expected duplicate to fail, got %v", err)
	}
	if _, err := uc.CreateCategory(ctx, "owner-1", "   "); !errors.Is(err, domain.ErrInvalidName) {
		t.Errorf("expected invalid name, got %v", err)
	}
	if _, err := uc.CreateCategory(ctx, "ghost", "Load"); !errors.Is(err, domain.ErrOwnerNotFound) {
		t.Errorf("expected owner not found, got %v", err)
	}

	list, err := uc.ListCategories(ctx, "owner-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Bills" || list[1].Name != "Load" {
		t.Errorf("unexpected categories: %+v", list)
	}
}
