package store

import (
	"context"
	"errors"

	"digiwallet/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateCategory inserts c and fills its id
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	return s.create(ctx, "create category", c)
}

// FindCategory loads a category by id
func (s *Store) FindCategory(ctx context.Context, id uint) (*domain.Category, error) {
	return first[domain.Category](ctx, s, "find category", id)
}

// FindOrCreateCategory returns the category named name, inserting it if
// needed. A concurrent insert of the same name is absorbed by ON CONFLICT DO
// NOTHING and the row is read back with a locking read, which sees rows
// committed by other transactions.
func (s *Store) FindOrCreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	err := s.with(ctx).Where("name = ?", name).First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, translate("find category by name", err)
	}
	if err := s.insertCategoryIfAbsent(ctx, name); err != nil {
		return nil, err
	}
	c = domain.Category{}
	err = s.with(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthShare}).
		Where("name = ?", name).
		First(&c).Error
	if err != nil {
		return nil, translate("find category by name", err)
	}
	return &c, nil
}

// insertCategoryIfAbsent inserts name unless a row with that name exists
func (s *Store) insertCategoryIfAbsent(ctx context.Context, name string) error {
	c := domain.Category{Name: name}
	err := s.with(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&c).Error
	return translate("insert category", err)
}

// ListCategories returns every category ordered by name
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := s.with(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, translate("list categories", err)
	}
	return categories, nil
}
