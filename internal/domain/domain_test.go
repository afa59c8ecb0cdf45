package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumValidity(t *testing.T) {
	assert.True(t, Credit.Valid())
	assert.True(t, Debit.Valid())
	assert.False(t, TransactionType("credit").Valid())
	assert.False(t, TransactionType("REFUND").Valid())

	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("").Valid())

	assert.True(t, WalletInactive.Valid())
	assert.False(t, WalletStatus("BLOCKED").Valid())

	for _, ct := range []CardType{CardDebit, CardCredit, CardPrepaid, CardVirtual} {
		assert.True(t, ct.Valid(), ct)
	}
	assert.False(t, CardType("GIFT").Valid())

	assert.True(t, CardBlocked.Valid())
	assert.False(t, CardStatus("LOST").Valid())
}

func TestLegacyTableNames(t *testing.T) {
	assert.Equal(t, "user_table", User{}.TableName())
	assert.Equal(t, "wallet", Wallet{}.TableName())
	assert.Equal(t, "card", Card{}.TableName())
	assert.Equal(t, "transaction", Transaction{}.TableName())
	assert.Equal(t, "category", Category{}.TableName())
}
