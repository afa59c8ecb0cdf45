package store

import (
	"context"

	"digiwallet/internal/domain"
)

// CreateUser inserts u and fills its id
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	return s.create(ctx, "create user", u)
}

// FindUser loads a user by id
func (s *Store) FindUser(ctx context.Context, id uint) (*domain.User, error) {
	return first[domain.User](ctx, s, "find user", id)
}

// FindUserByUsername loads a user by its unique username
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := s.with(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate("find user by username", err)
	}
	return &u, nil
}

// ListUsers returns every user ordered by id
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.with(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, translate("list users", err)
	}
	return users, nil
}

// UpdateUserStatus sets the status column
func (s *Store) UpdateUserStatus(ctx context.Context, id uint, status domain.UserStatus) error {
	return s.updateColumn(ctx, "update user status", &domain.User{}, id, "status", status)
}
