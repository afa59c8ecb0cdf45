// Package store is the persistence gateway. All writes that must be atomic
// go through Transaction; the wallet row is locked with SELECT ... FOR UPDATE
// before its balance is read for a change.
package store

import (
	"context"
	"errors"
	"fmt"

	"digiwallet/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinel errors translated from GORM
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Gateway is the set of lookups and writes the services depend on
type Gateway interface {
	// Transaction runs fn in one database transaction. fn must use the
	// Gateway it receives; returning an error rolls everything back.
	Transaction(ctx context.Context, fn func(tx Gateway) error) error

	CreateUser(ctx context.Context, u *domain.User) error
	FindUser(ctx context.Context, id uint) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserStatus(ctx context.Context, id uint, status domain.UserStatus) error

	CreateWallet(ctx context.Context, w *domain.Wallet) error
	FindWallet(ctx context.Context, id uint) (*domain.Wallet, error)
	FindWalletByUser(ctx context.Context, userID uint) (*domain.Wallet, error)
	LockWallet(ctx context.Context, id uint) (*domain.Wallet, error)
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
	UpdateWalletBalance(ctx context.Context, id uint, balance decimal.Decimal) error
	UpdateWalletStatus(ctx context.Context, id uint, status domain.WalletStatus) error

	CreateCard(ctx context.Context, c *domain.Card) error
	FindCard(ctx context.Context, id uint) (*domain.Card, error)
	FindCardByNumber(ctx context.Context, number string) (*domain.Card, error)
	ListCardsByWallet(ctx context.Context, walletID uint) ([]domain.Card, error)
	UpdateCardStatus(ctx context.Context, id uint, status domain.CardStatus) error

	CreateCategory(ctx context.Context, c *domain.Category) error
	FindCategory(ctx context.Context, id uint) (*domain.Category, error)
	FindOrCreateCategory(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)

	CreateTransaction(ctx context.Context, t *domain.Transaction) error
	FindTransaction(ctx context.Context, id uint) (*domain.Transaction, error)
	ListTransactionsByWallet(ctx context.Context, walletID uint) ([]domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// Store implements Gateway on GORM
type Store struct {
	db *gorm.DB
}

var _ Gateway = (*Store)(nil)

// New wraps an open GORM connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction implements Gateway
func (s *Store) Transaction(ctx context.Context, fn func(tx Gateway) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) with(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// translate maps GORM errors onto the package sentinels
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// create inserts a row without touching associations
func (s *Store) create(ctx context.Context, op string, v any) error {
	return translate(op, s.with(ctx).Omit(clause.Associations).Create(v).Error)
}

// first loads one row by primary key
func first[T any](ctx context.Context, s *Store, op string, id uint) (*T, error) {
	var out T
	if err := s.with(ctx).First(&out, id).Error; err != nil {
		return nil, translate(op, err)
	}
	return &out, nil
}

// updateColumn sets one column and reports ErrNotFound when no row matched
func (s *Store) updateColumn(ctx context.Context, op string, model any, id uint, column string, value any) error {
	res := s.with(ctx).Model(model).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return translate(op, res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero rows when the value is unchanged, so check existence
		var count int64
		if err := s.with(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return translate(op, err)
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}
