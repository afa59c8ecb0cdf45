package service

import (
	"context"
	"errors"
	"net/mail"
	"regexp"
	"strings"

	"digiwallet/internal/apperror"
	"digiwallet/internal/domain"
	"digiwallet/internal/store"

	"github.com/sirupsen/logrus"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.-]{3,64}$`)

// SignupInput carries the fields of a new user
type SignupInput struct {
	Username string
	FullName string
	Email    string
	Role     domain.Role
}

// UserService manages user accounts
type UserService struct {
	store store.Gateway
}

// NewUserService builds the service
func NewUserService(gw store.Gateway) *UserService {
	return &UserService{store: gw}
}

// CreateUser signs up a new user. Usernames are stored lowercase and are unique.
func (s *UserService) CreateUser(ctx context.Context, in SignupInput) (*domain.User, error) {
	const op = "user.CreateUser"

	username := strings.ToLower(strings.TrimSpace(in.Username))
	if !usernamePattern.MatchString(username) {
		return nil, apperror.NewInvalidArgument(op, "username must be 3-64 characters of letters, digits, '_', '.' or '-'")
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(in.Email))
	if err != nil || addr.Name != "" {
		return nil, apperror.NewInvalidArgument(op, "invalid email %q", in.Email)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, apperror.NewInvalidArgument(op, "role must be USER or ADMIN, got %q", role)
	}

	if _, err := s.store.FindUserByUsername(ctx, username); err == nil {
		return nil, apperror.NewAlreadyExists(op, "username %q is already taken", username)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperror.Wrap(op, err)
	}

	u := &domain.User{
		Username: username,
		FullName: strings.TrimSpace(in.FullName),
		Email:    addr.Address,
		Role:     role,
		Status:   domain.UserActive,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.NewAlreadyExists(op, "username %q is already taken", username)
		}
		return nil, apperror.Wrap(op, err)
	}
	logrus.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("User registered")
	return u, nil
}

// GetUser returns a user by id
func (s *UserService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.store.FindUser(ctx, id)
	if err != nil {
		return nil, notFoundOr("user.GetUser", "user", id, err)
	}
	return u, nil
}

// GetUserByUsername returns a user by username
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	u, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, notFoundOr("user.GetUserByUsername", "user", username, err)
	}
	return u, nil
}

// ListUsers returns every user
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, apperror.Wrap("user.ListUsers", err)
	}
	return users, nil
}

// ToggleUserStatus flips a user between ACTIVE and INACTIVE
func (s *UserService) ToggleUserStatus(ctx context.Context, id uint) (*domain.User, error) {
	const op = "user.ToggleUserStatus"
	u, err := s.store.FindUser(ctx, id)
	if err != nil {
		return nil, notFoundOr(op, "user", id, err)
	}
	next := domain.UserInactive
	if u.Status == domain.UserInactive {
		next = domain.UserActive
	}
	if err := s.store.UpdateUserStatus(ctx, id, next); err != nil {
		return nil, notFoundOr(op, "user", id, err)
	}
	u.Status = next
	logrus.WithFields(logrus.Fields{"user_id": id, "status": next}).Info("User status toggled")
	return u, nil
}
