package store

import (
	"context"

	"digiwallet/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// CreateWallet inserts w and fills its id
func (s *Store) CreateWallet(ctx context.Context, w *domain.Wallet) error {
	return s.create(ctx, "create wallet", w)
}

// FindWallet loads a wallet by id without locking
func (s *Store) FindWallet(ctx context.Context, id uint) (*domain.Wallet, error) {
	return first[domain.Wallet](ctx, s, "find wallet", id)
}

// FindWalletByUser loads the wallet owned by userID
func (s *Store) FindWalletByUser(ctx context.Context, userID uint) (*domain.Wallet, error) {
	var w domain.Wallet
	if err := s.with(ctx).Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, translate("find wallet by user", err)
	}
	return &w, nil
}

// LockWallet loads a wallet with a row lock held until the enclosing
// transaction ends. Only meaningful inside Transaction.
func (s *Store) LockWallet(ctx context.Context, id uint) (*domain.Wallet, error) {
	var w domain.Wallet
	err := s.with(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&w, id).Error
	if err != nil {
		return nil, translate("lock wallet", err)
	}
	return &w, nil
}

// ListWallets returns every wallet ordered by id
func (s *Store) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	var wallets []domain.Wallet
	if err := s.with(ctx).Order("id").Find(&wallets).Error; err != nil {
		return nil, translate("list wallets", err)
	}
	return wallets, nil
}

// UpdateWalletBalance writes a new balance. Callers must hold the row lock.
func (s *Store) UpdateWalletBalance(ctx context.Context, id uint, balance decimal.Decimal) error {
	return s.updateColumn(ctx, "update wallet balance", &domain.Wallet{}, id, "balance", balance)
}

// UpdateWalletStatus sets the status column
func (s *Store) UpdateWalletStatus(ctx context.Context, id uint, status domain.WalletStatus) error {
	return s.updateColumn(ctx, "update wallet status", &domain.Wallet{}, id, "status", status)
}
