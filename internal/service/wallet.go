package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"digiwallet/internal/apperror"
	"digiwallet/internal/cache"
	"digiwallet/internal/domain"
	"digiwallet/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// WalletService manages wallet lifecycle. Balances move only through the
// ledger; an opening balance is booked as a CREDIT.
type WalletService struct {
	store  store.Gateway
	cache  cache.Cache
	ttl    time.Duration
	ledger *LedgerService
}

// NewWalletService builds the service. ttl bounds how long a cached wallet is served.
func NewWalletService(gw store.Gateway, c cache.Cache, ttl time.Duration, ledger *LedgerService) *WalletService {
	if c == nil {
		c = cache.Noop{}
	}
	return &WalletService{store: gw, cache: c, ttl: ttl, ledger: ledger}
}

// CreateWallet opens the single wallet of a user
func (s *WalletService) CreateWallet(ctx context.Context, userID uint, initialBalance decimal.Decimal, currency string) (*domain.Wallet, error) {
	const op = "wallet.CreateWallet"

	if initialBalance.IsNegative() {
		return nil, apperror.NewInvalidArgument(op, "initial balance must not be negative, got %s", initialBalance)
	}
	if !initialBalance.IsZero() {
		if err := validateAmount(op, initialBalance); err != nil {
			return nil, err
		}
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	if !currencyPattern.MatchString(currency) {
		return nil, apperror.NewInvalidArgument(op, "currency must be a 3-letter code, got %q", currency)
	}

	var created *domain.Wallet
	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		if _, err := tx.FindUser(ctx, userID); err != nil {
			return notFoundOr(op, "user", userID, err)
		}
		existing, err := tx.FindWalletByUser(ctx, userID)
		if err == nil {
			return apperror.NewAlreadyExists(op, "user %d already has wallet %d", userID, existing.ID)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return apperror.Wrap(op, err)
		}

		w := &domain.Wallet{UserID: userID, Balance: domain.NewMoney(decimal.Zero), Currency: currency, Status: domain.WalletActive}
		if err := tx.CreateWallet(ctx, w); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return apperror.NewAlreadyExists(op, "user %d already has a wallet", userID)
			}
			return apperror.Wrap(op, err)
		}
		if initialBalance.IsPositive() {
			opening := TransactionRequest{WalletID: w.ID, Type: domain.Credit, Amount: initialBalance, Category: "Opening balance"}
			if _, _, err := s.ledger.apply(ctx, tx, opening); err != nil {
				return err
			}
		}
		created, err = tx.FindWallet(ctx, w.ID)
		return apperror.Wrap(op, err)
	})
	if err != nil {
		return nil, apperror.Wrap(op, err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"wallet_id": created.ID,
		"balance":   created.Balance.String(),
		"currency":  created.Currency,
	}).Info("Wallet created")
	return created, nil
}

// GetWallet returns a wallet by id, from cache when possible
func (s *WalletService) GetWallet(ctx context.Context, id uint) (*domain.Wallet, error) {
	return s.cached(ctx, cache.WalletKey(id), func() (*domain.Wallet, error) {
		w, err := s.store.FindWallet(ctx, id)
		if err != nil {
			return nil, notFoundOr("wallet.GetWallet", "wallet", id, err)
		}
		return w, nil
	})
}

// GetWalletByUser returns the wallet owned by userID
func (s *WalletService) GetWalletByUser(ctx context.Context, userID uint) (*domain.Wallet, error) {
	return s.cached(ctx, cache.WalletUserKey(userID), func() (*domain.Wallet, error) {
		w, err := s.store.FindWalletByUser(ctx, userID)
		if err != nil {
			return nil, notFoundOr("wallet.GetWalletByUser", "wallet for user", userID, err)
		}
		return w, nil
	})
}

// ListWallets returns every wallet
func (s *WalletService) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	wallets, err := s.store.ListWallets(ctx)
	if err != nil {
		return nil, apperror.Wrap("wallet.ListWallets", err)
	}
	return wallets, nil
}

// UpdateWalletStatus sets the wallet status. Setting the current status is a no-op.
func (s *WalletService) UpdateWalletStatus(ctx context.Context, id uint, status domain.WalletStatus) (*domain.Wallet, error) {
	const op = "wallet.UpdateWalletStatus"
	if !status.Valid() {
		return nil, apperror.NewInvalidArgument(op, "wallet status must be ACTIVE or INACTIVE, got %q", status)
	}
	if err := s.store.UpdateWalletStatus(ctx, id, status); err != nil {
		return nil, notFoundOr(op, "wallet", id, err)
	}
	w, err := s.store.FindWallet(ctx, id)
	if err != nil {
		return nil, notFoundOr(op, "wallet", id, err)
	}
	s.ledger.invalidateWallet(ctx, w.ID, w.UserID)
	logrus.WithFields(logrus.Fields{"wallet_id": id, "status": status}).Info("Wallet status updated")
	return w, nil
}

// cached serves key from the cache or loads and stores it. The key's version
// is read before loading, so a load that raced with a transaction is not
// stored over the invalidation. Cache failures are logged and fall through
// to the database.
func (s *WalletService) cached(ctx context.Context, key string, load func() (*domain.Wallet, error)) (*domain.Wallet, error) {
	var w domain.Wallet
	found, err := s.cache.Get(ctx, key, &w)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Wallet cache read failed")
	} else if found {
		return &w, nil
	}

	version, verr := s.cache.Version(ctx, key)
	if verr != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": verr.Error()}).Warn("Wallet cache version read failed")
	}
	loaded, err := load()
	if err != nil {
		return nil, err
	}
	if verr != nil {
		return loaded, nil // Without a version the fill cannot be checked
	}
	stored, err := s.cache.SetIfVersion(ctx, key, version, loaded, s.ttl)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Wallet cache write failed")
	} else if !stored {
		logrus.WithField("key", key).Debug("Wallet changed while loading; not cached")
	}
	return loaded, nil
}
