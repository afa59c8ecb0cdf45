package store

import (
	"context"

	"digiwallet/internal/domain"
)

// CreateTransaction appends a ledger row
func (s *Store) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.create(ctx, "create transaction", t)
}

// FindTransaction loads a transaction and its category label
func (s *Store) FindTransaction(ctx context.Context, id uint) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := s.with(ctx).Preload("Category").First(&t, id).Error; err != nil {
		return nil, translate("find transaction", err)
	}
	return &t, nil
}

// ListTransactionsByWallet returns a wallet's transactions, newest first
func (s *Store) ListTransactionsByWallet(ctx context.Context, walletID uint) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	err := s.with(ctx).
		Preload("Category").
		Where("wallet_id = ?", walletID).
		Order("transaction_date desc, id desc").
		Find(&txs).Error
	if err != nil {
		return nil, translate("list wallet transactions", err)
	}
	return txs, nil
}

// ListTransactions returns every transaction, newest first
func (s *Store) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := s.with(ctx).Preload("Category").Order("transaction_date desc, id desc").Find(&txs).Error; err != nil {
		return nil, translate("list transactions", err)
	}
	return txs, nil
}
