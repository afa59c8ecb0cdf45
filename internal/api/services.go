package api

import (
	"context"

	"digiwallet/internal/domain"
	"digiwallet/internal/service"

	"github.com/shopspring/decimal"
)

// UserService is the user lifecycle used by the handlers
type UserService interface {
	CreateUser(ctx context.Context, in service.SignupInput) (*domain.User, error)
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ToggleUserStatus(ctx context.Context, id uint) (*domain.User, error)
}

// WalletService is the wallet lifecycle used by the handlers
type WalletService interface {
	CreateWallet(ctx context.Context, userID uint, initialBalance decimal.Decimal, currency string) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id uint) (*domain.Wallet, error)
	GetWalletByUser(ctx context.Context, userID uint) (*domain.Wallet, error)
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
	UpdateWalletStatus(ctx context.Context, id uint, status domain.WalletStatus) (*domain.Wallet, error)
}

// CardService is the card lifecycle used by the handlers
type CardService interface {
	CreateCard(ctx context.Context, in service.NewCardInput) (*domain.Card, error)
	GetCard(ctx context.Context, id uint) (*domain.Card, error)
	ListCardsByWallet(ctx context.Context, walletID uint) ([]domain.Card, error)
	UpdateCardStatus(ctx context.Context, id uint, status domain.CardStatus) (*domain.Card, error)
}

// CategoryService manages transaction labels
type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	GetCategory(ctx context.Context, id uint) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// LedgerService is the balance engine and its read side
type LedgerService interface {
	ApplyTransaction(ctx context.Context, req service.TransactionRequest) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id uint) (*domain.Transaction, error)
	ListWalletTransactions(ctx context.Context, walletID uint) ([]domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}
