package service

import (
	"context"
	"testing"

	"digiwallet/internal/apperror"
	"digiwallet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "alice", 0)

	c, err := f.cards.CreateCard(ctx, NewCardInput{WalletID: w.ID, CardNumber: "4111111111111111", CardType: "debit", ExpiryDate: "2030-06-30"})
	require.NoError(t, err)
	assert.Equal(t, domain.CardDebit, c.CardType)
	assert.Equal(t, domain.CardActive, c.Status)
	assert.Equal(t, "2030-06-30", c.ExpiryDate.Format(ExpiryLayout))

	// card numbers are unique across wallets
	other := f.wallet(t, "bob", 0)
	_, err = f.cards.CreateCard(ctx, NewCardInput{WalletID: other.ID, CardNumber: "4111111111111111", CardType: domain.CardVirtual, ExpiryDate: "2031-01-31"})
	assertKind(t, apperror.AlreadyExists, err)

	cards, err := f.cards.ListCardsByWallet(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, c.ID, cards[0].ID)

	// the engine never touches cards, and cards never touch balances
	assert.True(t, f.balance(t, w.ID).IsZero())
}

func TestCreateCardValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "carol", 0)

	tests := []struct {
		name string
		in   NewCardInput
		kind apperror.Kind
	}{
		{"short number", NewCardInput{WalletID: w.ID, CardNumber: "41111111", CardType: domain.CardDebit, ExpiryDate: "2030-01-01"}, apperror.InvalidArgument},
		{"letters in number", NewCardInput{WalletID: w.ID, CardNumber: "4111x11111111111", CardType: domain.CardDebit, ExpiryDate: "2030-01-01"}, apperror.InvalidArgument},
		{"unknown type", NewCardInput{WalletID: w.ID, CardNumber: "4111111111111112", CardType: "GIFT", ExpiryDate: "2030-01-01"}, apperror.InvalidArgument},
		{"bad expiry", NewCardInput{WalletID: w.ID, CardNumber: "4111111111111112", CardType: domain.CardDebit, ExpiryDate: "12/30"}, apperror.InvalidArgument},
		{"missing wallet", NewCardInput{WalletID: 999, CardNumber: "4111111111111112", CardType: domain.CardDebit, ExpiryDate: "2030-01-01"}, apperror.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.cards.CreateCard(ctx, tt.in)
			assertKind(t, tt.kind, err)
		})
	}
}

func TestUpdateCardStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet(t, "dave", 0)
	c, err := f.cards.CreateCard(ctx, NewCardInput{WalletID: w.ID, CardNumber: "5500000000000004", CardType: domain.CardCredit, ExpiryDate: "2029-12-31"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := f.cards.UpdateCardStatus(ctx, c.ID, "blocked")
		require.NoError(t, err)
		assert.Equal(t, domain.CardBlocked, got.Status)
	}
	_, err = f.cards.UpdateCardStatus(ctx, c.ID, "LOST")
	assertKind(t, apperror.InvalidArgument, err)
	_, err = f.cards.UpdateCardStatus(ctx, 404, domain.CardActive)
	assertKind(t, apperror.NotFound, err)
	_, err = f.cards.GetCard(ctx, 404)
	assertKind(t, apperror.NotFound, err)
	_, err = f.cards.ListCardsByWallet(ctx, 404)
	assertKind(t, apperror.NotFound, err)
}
