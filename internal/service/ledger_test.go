package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"digiwallet/internal/apperror"
	"digiwallet/internal/domain"
	"digiwallet/internal/store"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func credit(walletID uint, amount string) TransactionRequest {
	return TransactionRequest{WalletID: walletID, Type: domain.Credit, Amount: decimal.RequireFromString(amount)}
}

func debit(walletID uint, amount string) TransactionRequest {
	return TransactionRequest{WalletID: walletID, Type: domain.Debit, Amount: decimal.RequireFromString(amount)}
}

func TestApplyTransactionScenarios(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "alice", 0)

	// credit 1000 on an empty wallet
	tx, err := f.ledger.ApplyTransaction(ctx, credit(w.ID, "1000"))
	require.NoError(t, err)
	assert.Equal(t, domain.Credit, tx.Type)
	assert.Equal(t, domain.TxCompleted, tx.Status)
	assertDecimal(t, "1000", tx.Amount.Decimal)
	assertDecimal(t, "1000", f.balance(t, w.ID))
	require.Len(t, f.history(t, w.ID), 1)

	// overdraft is rejected and leaves no trace
	_, err = f.ledger.ApplyTransaction(ctx, debit(w.ID, "1500"))
	assertKind(t, apperror.InsufficientFunds, err)
	assertDecimal(t, "1000", f.balance(t, w.ID))
	require.Len(t, f.history(t, w.ID), 1)

	// debit 400 then credit 200
	_, err = f.ledger.ApplyTransaction(ctx, debit(w.ID, "400"))
	require.NoError(t, err)
	_, err = f.ledger.ApplyTransaction(ctx, credit(w.ID, "200"))
	require.NoError(t, err)
	assertDecimal(t, "800", f.balance(t, w.ID))
	assert.Len(t, f.history(t, w.ID), 3)
}

func TestApplyTransactionRejectsNonPositiveAmounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "bob", 100)

	for _, amount := range []string{"0", "-50", "0.00001"} {
		_, err := f.ledger.ApplyTransaction(ctx, credit(w.ID, amount))
		assertKind(t, apperror.InvalidArgument, err)
	}
	_, err := f.ledger.ApplyTransaction(ctx, debit(w.ID, "1000000000000000"))
	assertKind(t, apperror.InvalidArgument, err)

	assertDecimal(t, "100", f.balance(t, w.ID))
	assert.Len(t, f.history(t, w.ID), 1) // opening credit only
}

func TestApplyTransactionPreconditionOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// a missing wallet wins over a bad amount
	_, err := f.ledger.ApplyTransaction(ctx, credit(404, "0"))
	assertKind(t, apperror.NotFound, err)
	assert.Contains(t, err.Error(), "wallet with id 404 not found")

	// an inactive wallet wins over a bad amount
	w := f.wallet(t, "carol", 50)
	_, err = f.wallets.UpdateWalletStatus(ctx, w.ID, domain.WalletInactive)
	require.NoError(t, err)
	_, err = f.ledger.ApplyTransaction(ctx, credit(w.ID, "-1"))
	assertKind(t, apperror.InvalidState, err)
	assert.Contains(t, err.Error(), "inactive wallet cannot transact")

	// reactivated wallets transact again
	_, err = f.wallets.UpdateWalletStatus(ctx, w.ID, domain.WalletActive)
	require.NoError(t, err)
	_, err = f.ledger.ApplyTransaction(ctx, TransactionRequest{WalletID: w.ID, Type: "REFUND", Amount: decimal.NewFromInt(1)})
	assertKind(t, apperror.InvalidArgument, err)
	_, err = f.ledger.ApplyTransaction(ctx, debit(w.ID, "50"))
	require.NoError(t, err)
	assertDecimal(t, "0", f.balance(t, w.ID))
}

func TestApplyTransactionReferenceAndCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "dave", 0)

	supplied, err := f.ledger.ApplyTransaction(ctx, TransactionRequest{
		WalletID: w.ID, Type: domain.Credit, Amount: decimal.NewFromInt(10),
		Category: " Salary ", ReferenceID: "PAYROLL-2026-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAYROLL-2026-10", supplied.ReferenceID)
	require.NotNil(t, supplied.Category)
	assert.Equal(t, "Salary", supplied.Category.Name)

	// references are not deduplicated
	again, err := f.ledger.ApplyTransaction(ctx, TransactionRequest{
		WalletID: w.ID, Type: domain.Credit, Amount: decimal.NewFromInt(10),
		Category: "Salary", ReferenceID: "PAYROLL-2026-10",
	})
	require.NoError(t, err)
	assert.Equal(t, *supplied.CategoryID, *again.CategoryID)

	generated, err := f.ledger.ApplyTransaction(ctx, debit(w.ID, "5"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(generated.ReferenceID, "DB-"), generated.ReferenceID)
	assert.Nil(t, generated.CategoryID)

	loaded, err := f.ledger.GetTransaction(ctx, supplied.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Category)
	assert.Equal(t, "Salary", loaded.Category.Name)

	_, err = f.ledger.ApplyTransaction(ctx, TransactionRequest{
		WalletID: w.ID, Type: domain.Credit, Amount: decimal.NewFromInt(1),
		ReferenceID: strings.Repeat("x", 65),
	})
	assertKind(t, apperror.InvalidArgument, err)
}

func TestApplyTransactionConservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "erin", 250)
	rng := rand.New(rand.NewSource(7))

	expected := decimal.NewFromInt(250)
	for i := 0; i < 200; i++ {
		amount := decimal.New(rng.Int63n(100000)+1, -2) // 0.01 .. 1000.00
		req := TransactionRequest{WalletID: w.ID, Type: domain.Credit, Amount: amount}
		if rng.Intn(2) == 0 {
			req.Type = domain.Debit
		}
		before := f.balance(t, w.ID)

		_, err := f.ledger.ApplyTransaction(ctx, req)
		switch {
		case err == nil && req.Type == domain.Credit:
			expected = expected.Add(amount)
		case err == nil:
			require.True(t, amount.LessThanOrEqual(before), "debit %s accepted on balance %s", amount, before)
			expected = expected.Sub(amount)
		default:
			assertKind(t, apperror.InsufficientFunds, err)
			require.True(t, amount.GreaterThan(before))
		}

		got := f.balance(t, w.ID)
		require.False(t, got.IsNegative())
		require.True(t, expected.Equal(got), "step %d: want %s, got %s", i, expected, got)
	}

	// the ledger alone reproduces the balance
	sum := decimal.Zero
	for _, tx := range f.history(t, w.ID) {
		if tx.Type == domain.Credit {
			sum = sum.Add(tx.Amount.Decimal)
		} else {
			sum = sum.Sub(tx.Amount.Decimal)
		}
	}
	assertDecimal(t, expected.String(), sum)
}

// failingInsert breaks the ledger insert so the balance update must roll back
type failingInsert struct {
	store.Gateway
}

func (f failingInsert) Transaction(ctx context.Context, fn func(tx store.Gateway) error) error {
	return f.Gateway.Transaction(ctx, func(tx store.Gateway) error {
		return fn(failingInsert{tx})
	})
}

func (failingInsert) CreateTransaction(context.Context, *domain.Transaction) error {
	return errors.New("disk full")
}

func TestApplyTransactionIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "frank", 300)

	broken := NewLedgerService(failingInsert{f.store}, nil, nil)
	_, err := broken.ApplyTransaction(ctx, debit(w.ID, "100"))
	assertKind(t, apperror.Internal, err)

	assertDecimal(t, "300", f.balance(t, w.ID))
	assert.Len(t, f.history(t, w.ID), 1)
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "grace", 1000)

	const workers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.ApplyTransaction(ctx, debit(w.ID, "100"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
			} else if apperror.Is(err, apperror.InsufficientFunds) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, accepted)
	assert.Equal(t, 10, rejected)
	assertDecimal(t, "0", f.balance(t, w.ID))
	assert.Len(t, f.history(t, w.ID), 11)
}

// walletReads records how the engine reads wallets inside its transaction
type walletReads struct {
	store.Gateway
	calls *[]string
}

func (w walletReads) Transaction(ctx context.Context, fn func(tx store.Gateway) error) error {
	return w.Gateway.Transaction(ctx, func(tx store.Gateway) error {
		return fn(walletReads{Gateway: tx, calls: w.calls})
	})
}

func (w walletReads) LockWallet(ctx context.Context, id uint) (*domain.Wallet, error) {
	*w.calls = append(*w.calls, "LockWallet")
	return w.Gateway.LockWallet(ctx, id)
}

func (w walletReads) FindWallet(ctx context.Context, id uint) (*domain.Wallet, error) {
	*w.calls = append(*w.calls, "FindWallet")
	return w.Gateway.FindWallet(ctx, id)
}

func (w walletReads) UpdateWalletBalance(ctx context.Context, id uint, balance decimal.Decimal) error {
	*w.calls = append(*w.calls, "UpdateWalletBalance")
	return w.Gateway.UpdateWalletBalance(ctx, id, balance)
}

func TestApplyTransactionReadsWalletUnderLock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "ivan", 100)

	var calls []string
	ledger := NewLedgerService(walletReads{Gateway: f.store, calls: &calls}, nil, nil)

	_, err := ledger.ApplyTransaction(ctx, debit(w.ID, "40"))
	require.NoError(t, err)
	assert.Equal(t, []string{"LockWallet", "UpdateWalletBalance"}, calls)

	calls = nil
	_, err = ledger.ApplyTransaction(ctx, debit(w.ID, "400"))
	assertKind(t, apperror.InsufficientFunds, err)
	assert.Equal(t, []string{"LockWallet"}, calls)
}

func TestApplyTransactionKeepsFullPrecisionAtTheLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "judy", 0)

	const limit = "999999999999999.9999"
	tx, err := f.ledger.ApplyTransaction(ctx, credit(w.ID, limit))
	require.NoError(t, err)
	assertDecimal(t, limit, f.balance(t, w.ID))

	stored, err := f.ledger.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assertDecimal(t, limit, stored.Amount.Decimal)

	// one more unit no longer fits the column
	_, err = f.ledger.ApplyTransaction(ctx, credit(w.ID, "0.0001"))
	assertKind(t, apperror.InvalidArgument, err)

	_, err = f.ledger.ApplyTransaction(ctx, debit(w.ID, limit))
	require.NoError(t, err)
	assertDecimal(t, "0", f.balance(t, w.ID))

	_, err = f.ledger.ApplyTransaction(ctx, debit(w.ID, "0.0001"))
	assertKind(t, apperror.InsufficientFunds, err)
}

func TestApplyTransactionRecordsMetrics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "heidi", 0)

	_, err := f.ledger.ApplyTransaction(ctx, credit(w.ID, "10"))
	require.NoError(t, err)
	_, err = f.ledger.ApplyTransaction(ctx, debit(w.ID, "20"))
	require.Error(t, err)

	n, err := testutil.GatherAndCount(f.registry, "digiwallet_transactions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n) // CREDIT/applied and DEBIT/rejected
}

func TestReadsAreRepeatable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "ivan", 75)
	tx := f.history(t, w.ID)[0]

	first, err := f.ledger.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	second, err := f.ledger.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = f.ledger.GetTransaction(ctx, 9999)
	assertKind(t, apperror.NotFound, err)
	_, err = f.ledger.ListWalletTransactions(ctx, 9999)
	assertKind(t, apperror.NotFound, err)
}

func TestReferenceGeneratorIsMonotonic(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	g := newReferenceGenerator(func() time.Time { return fixed })

	assert.Equal(t, "CR-1700000000000", g.next(domain.Credit))
	assert.Equal(t, "DB-1700000000001", g.next(domain.Debit))
	assert.Equal(t, "CR-1700000000002", g.next(domain.Credit))
}
