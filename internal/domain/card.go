package domain

import "time"

// CardType of a payment card
type CardType string

// Card types
const (
	CardDebit   CardType = "DEBIT"
	CardCredit  CardType = "CREDIT"
	CardPrepaid CardType = "PREPAID"
	CardVirtual CardType = "VIRTUAL"
)

// Valid reports whether t is a known card type
func (t CardType) Valid() bool {
	switch t {
	case CardDebit, CardCredit, CardPrepaid, CardVirtual:
		return true
	}
	return false
}

// CardStatus of a card
type CardStatus string

// Card statuses
const (
	CardActive   CardStatus = "ACTIVE"
	CardInactive CardStatus = "INACTIVE"
	CardBlocked  CardStatus = "BLOCKED"
)

// Valid reports whether s is a known card status
func (s CardStatus) Valid() bool {
	return s == CardActive || s == CardInactive || s == CardBlocked
}

// Card Model
type Card struct {
	ID         uint       `gorm:"primaryKey" json:"id"`                            // Primary key
	WalletID   uint       `gorm:"index;not null" json:"walletId"`                  // Wallet the card draws on
	CardNumber string     `gorm:"size:16;uniqueIndex;not null" json:"cardNumber"`  // 16 digits, globally unique
	CardType   CardType   `gorm:"size:16;not null" json:"cardType"`                // DEBIT, CREDIT, PREPAID, VIRTUAL
	ExpiryDate time.Time  `gorm:"type:date;not null" json:"expiryDate"`            // Last valid day
	Status     CardStatus `gorm:"size:16;not null;default:'ACTIVE'" json:"status"` // Card status

	Wallet *Wallet `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"` // Foreign key only
}

// TableName of the card table
func (Card) TableName() string { return "card" }
