package service

import (
	"context"
	"testing"

	"digiwallet/internal/apperror"
	"digiwallet/internal/cache"
	"digiwallet/internal/domain"
	"digiwallet/internal/metrics"
	"digiwallet/internal/store"
	"digiwallet/internal/store/storetest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store      *store.Store
	registry   *prometheus.Registry
	ledger     *LedgerService
	wallets    *WalletService
	users      *UserService
	cards      *CardService
	categories *CategoryService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithCache(t, cache.Noop{})
}

func newFixtureWithCache(t *testing.T, c cache.Cache) *fixture {
	t.Helper()
	s := store.New(storetest.Open(t))
	reg := prometheus.NewRegistry()
	ledger := NewLedgerService(s, c, metrics.NewLedger(reg))
	return &fixture{
		store:      s,
		registry:   reg,
		ledger:     ledger,
		wallets:    NewWalletService(s, c, 0, ledger),
		users:      NewUserService(s),
		cards:      NewCardService(s),
		categories: NewCategoryService(s),
	}
}

func (f *fixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), SignupInput{Username: username, FullName: username, Email: username + "@example.com"})
	require.NoError(t, err)
	return u
}

func (f *fixture) wallet(t *testing.T, username string, opening int64) *domain.Wallet {
	t.Helper()
	u := f.user(t, username)
	w, err := f.wallets.CreateWallet(context.Background(), u.ID, decimal.NewFromInt(opening), "USD")
	require.NoError(t, err)
	return w
}

func (f *fixture) balance(t *testing.T, walletID uint) decimal.Decimal {
	t.Helper()
	w, err := f.store.FindWallet(context.Background(), walletID)
	require.NoError(t, err)
	return w.Balance.Decimal
}

func (f *fixture) history(t *testing.T, walletID uint) []domain.Transaction {
	t.Helper()
	txs, err := f.ledger.ListWalletTransactions(context.Background(), walletID)
	require.NoError(t, err)
	return txs
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func assertKind(t *testing.T, want apperror.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, apperror.KindOf(err), err.Error())
}
