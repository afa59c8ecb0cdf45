package service

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"digiwallet/internal/apperror"
	"digiwallet/internal/cache"
	"digiwallet/internal/domain"
	"digiwallet/internal/metrics"
	"digiwallet/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Column limits of the ledger schema
const (
	amountScale    = 4  // decimal(19,4)
	maxLabelLength = 64 // category name and reference id
)

// maxBalance is the first value that no longer fits decimal(19,4)
var maxBalance = decimal.New(1, 15)

// TransactionRequest asks the engine to move money into or out of a wallet
type TransactionRequest struct {
	WalletID    uint
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Category    string // optional label, created on first use
	ReferenceID string // optional, generated when empty
}

// LedgerService is the wallet balance engine. It is the only code path that
// changes Wallet.Balance, and every change it makes is paired with exactly
// one Transaction row written in the same database transaction.
type LedgerService struct {
	store   store.Gateway
	cache   cache.Cache
	metrics *metrics.Ledger
	refs    *referenceGenerator
	now     func() time.Time
}

// NewLedgerService builds the engine. m may be nil.
func NewLedgerService(gw store.Gateway, c cache.Cache, m *metrics.Ledger) *LedgerService {
	if c == nil {
		c = cache.Noop{}
	}
	return &LedgerService{
		store:   gw,
		cache:   c,
		metrics: m,
		refs:    newReferenceGenerator(time.Now),
		now:     time.Now,
	}
}

// ApplyTransaction credits or debits a wallet. On any error nothing is
// written: the balance and the transaction table are left as they were.
func (s *LedgerService) ApplyTransaction(ctx context.Context, req TransactionRequest) (*domain.Transaction, error) {
	const op = "ledger.ApplyTransaction"
	start := s.now()

	var (
		applied *domain.Transaction
		owner   uint
	)
	err := s.store.Transaction(ctx, func(tx store.Gateway) error {
		t, userID, err := s.apply(ctx, tx, req)
		applied, owner = t, userID
		return err
	})
	took := s.now().Sub(start)
	fields := logrus.Fields{
		"wallet_id":    req.WalletID,
		"type":         req.Type,
		"amount":       req.Amount.String(),
		"reference_id": req.ReferenceID,
	}
	if err != nil {
		err = apperror.Wrap(op, err)
		if apperror.Is(err, apperror.Internal) {
			s.metrics.Observe(typeLabel(req.Type), metrics.OutcomeFailed, 0, took)
			logrus.WithFields(fields).WithError(err).Error("Transaction failed")
		} else {
			s.metrics.Observe(typeLabel(req.Type), metrics.OutcomeRejected, 0, took)
			logrus.WithFields(fields).WithField("reason", apperror.KindOf(err)).Info("Transaction rejected")
		}
		return nil, err
	}

	s.invalidateWallet(ctx, applied.WalletID, owner)
	s.metrics.Observe(string(applied.Type), metrics.OutcomeApplied, applied.Amount.InexactFloat64(), took)
	fields["reference_id"] = applied.ReferenceID
	logrus.WithFields(fields).WithField("transaction_id", applied.ID).Info("Transaction applied")
	return applied, nil
}

// apply runs the checks and writes inside an open transaction. It returns
// the inserted row and the wallet owner's id for cache invalidation.
func (s *LedgerService) apply(ctx context.Context, tx store.Gateway, req TransactionRequest) (*domain.Transaction, uint, error) {
	const op = "ledger.apply"

	wallet, err := tx.LockWallet(ctx, req.WalletID)
	if err != nil {
		return nil, 0, notFoundOr(op, "wallet", req.WalletID, err)
	}
	if wallet.Status != domain.WalletActive {
		return nil, 0, apperror.NewInvalidState(op, "inactive wallet cannot transact: wallet %d is %s", wallet.ID, wallet.Status)
	}
	if err := validateAmount(op, req.Amount); err != nil {
		return nil, 0, err
	}
	if !req.Type.Valid() {
		return nil, 0, apperror.NewInvalidArgument(op, "transaction type must be CREDIT or DEBIT, got %q", req.Type)
	}

	var newBalance decimal.Decimal
	switch req.Type {
	case domain.Credit:
		newBalance = wallet.Balance.Add(req.Amount)
		if newBalance.GreaterThanOrEqual(maxBalance) {
			return nil, 0, apperror.NewInvalidArgument(op, "credit of %s would overflow wallet %d", req.Amount, wallet.ID)
		}
	case domain.Debit:
		if req.Amount.GreaterThan(wallet.Balance.Decimal) {
			return nil, 0, apperror.NewInsufficientFunds(op, wallet.ID, wallet.Balance, req.Amount)
		}
		newBalance = wallet.Balance.Sub(req.Amount)
	}

	reference := strings.TrimSpace(req.ReferenceID)
	if len(reference) > maxLabelLength {
		return nil, 0, apperror.NewInvalidArgument(op, "referenceId longer than %d characters", maxLabelLength)
	}
	if reference == "" {
		reference = s.refs.next(req.Type)
	}

	var category *domain.Category
	if label := strings.TrimSpace(req.Category); label != "" {
		if len(label) > maxLabelLength {
			return nil, 0, apperror.NewInvalidArgument(op, "category longer than %d characters", maxLabelLength)
		}
		if category, err = tx.FindOrCreateCategory(ctx, label); err != nil {
			return nil, 0, apperror.Wrap(op, err)
		}
	}

	if err := tx.UpdateWalletBalance(ctx, wallet.ID, newBalance); err != nil {
		return nil, 0, apperror.Wrap(op, err)
	}
	t := &domain.Transaction{
		WalletID:        wallet.ID,
		Amount:          domain.NewMoney(req.Amount),
		Type:            req.Type,
		Status:          domain.TxCompleted,
		ReferenceID:     reference,
		TransactionDate: s.now().UTC(),
	}
	if category != nil {
		t.CategoryID = &category.ID
	}
	if err := tx.CreateTransaction(ctx, t); err != nil {
		return nil, 0, apperror.Wrap(op, err)
	}
	t.Category = category
	return t, wallet.UserID, nil
}

// GetTransaction loads one transaction
func (s *LedgerService) GetTransaction(ctx context.Context, id uint) (*domain.Transaction, error) {
	const op = "ledger.GetTransaction"
	t, err := s.store.FindTransaction(ctx, id)
	if err != nil {
		return nil, notFoundOr(op, "transaction", id, err)
	}
	return t, nil
}

// ListWalletTransactions returns a wallet's history, newest first
func (s *LedgerService) ListWalletTransactions(ctx context.Context, walletID uint) ([]domain.Transaction, error) {
	const op = "ledger.ListWalletTransactions"
	if _, err := s.store.FindWallet(ctx, walletID); err != nil {
		return nil, notFoundOr(op, "wallet", walletID, err)
	}
	txs, err := s.store.ListTransactionsByWallet(ctx, walletID)
	if err != nil {
		return nil, apperror.Wrap(op, err)
	}
	return txs, nil
}

// ListTransactions returns every transaction, newest first
func (s *LedgerService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, apperror.Wrap("ledger.ListTransactions", err)
	}
	return txs, nil
}

func (s *LedgerService) invalidateWallet(ctx context.Context, walletID, userID uint) {
	if err := s.cache.Invalidate(ctx, cache.WalletKey(walletID), cache.WalletUserKey(userID)); err != nil {
		logrus.WithFields(logrus.Fields{"wallet_id": walletID, "error": err.Error()}).Warn("Failed to invalidate wallet cache")
	}
}

// typeLabel keeps caller input out of metric label values
func typeLabel(t domain.TransactionType) string {
	if t.Valid() {
		return string(t)
	}
	return "INVALID"
}

// validateAmount accepts strictly positive amounts that fit decimal(19,4)
func validateAmount(op string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperror.NewInvalidArgument(op, "amount must be greater than zero, got %s", amount)
	}
	if !amount.Equal(amount.Round(amountScale)) {
		return apperror.NewInvalidArgument(op, "amount %s has more than %d decimal places", amount, amountScale)
	}
	if amount.GreaterThanOrEqual(maxBalance) {
		return apperror.NewInvalidArgument(op, "amount %s is too large", amount)
	}
	return nil
}

// referenceGenerator issues "CR-<n>" / "DB-<n>" references. n starts from
// the clock in milliseconds and strictly increases within the process.
type referenceGenerator struct {
	last atomic.Int64
	now  func() time.Time
}

func newReferenceGenerator(now func() time.Time) *referenceGenerator {
	return &referenceGenerator{now: now}
}

func (g *referenceGenerator) next(t domain.TransactionType) string {
	prefix := "CR"
	if t == domain.Debit {
		prefix = "DB"
	}
	for {
		prev := g.last.Load()
		n := g.now().UnixMilli()
		if n <= prev {
			n = prev + 1
		}
		if g.last.CompareAndSwap(prev, n) {
			return prefix + "-" + strconv.FormatInt(n, 10)
		}
	}
}
