package service

import (
	"context"
	"errors"
	"strings"

	"digiwallet/internal/apperror"
	"digiwallet/internal/domain"
	"digiwallet/internal/store"
)

// CategoryService manages transaction labels
type CategoryService struct {
	store store.Gateway
}

// NewCategoryService builds the service
func NewCategoryService(gw store.Gateway) *CategoryService {
	return &CategoryService{store: gw}
}

// CreateCategory adds a label; names are unique
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	const op = "category.CreateCategory"
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxLabelLength {
		return nil, apperror.NewInvalidArgument(op, "category name must be 1-%d characters", maxLabelLength)
	}
	c := &domain.Category{Name: name}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.NewAlreadyExists(op, "category %q already exists", name)
		}
		return nil, apperror.Wrap(op, err)
	}
	return c, nil
}

// GetCategory returns a category by id
func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	c, err := s.store.FindCategory(ctx, id)
	if err != nil {
		return nil, notFoundOr("category.GetCategory", "category", id, err)
	}
	return c, nil
}

// ListCategories returns every category ordered by name
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cs, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, apperror.Wrap("category.ListCategories", err)
	}
	return cs, nil
}
