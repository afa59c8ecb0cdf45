package domain

import "time"

// WalletStatus of a wallet
type WalletStatus string

// Wallet statuses
const (
	WalletActive   WalletStatus = "ACTIVE"
	WalletInactive WalletStatus = "INACTIVE"
)

// Valid reports whether s is a known wallet status
func (s WalletStatus) Valid() bool {
	return s == WalletActive || s == WalletInactive
}

// DefaultCurrency is used when a wallet is created without one
const DefaultCurrency = "USD"

// Wallet Model. Balance changes only through the ledger service.
type Wallet struct {
	ID        uint         `gorm:"primaryKey" json:"id"`                            // Primary key
	UserID    uint         `gorm:"uniqueIndex;not null" json:"userId"`              // One wallet per user
	Balance   Money        `gorm:"not null;default:0" json:"balance"`               // Fixed-point balance
	Currency  string       `gorm:"size:3;not null" json:"currency"`                 // ISO 4217 code
	Status    WalletStatus `gorm:"size:16;not null;default:'ACTIVE'" json:"status"` // ACTIVE or INACTIVE
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"createdAt"`                 // Creation time

	// Declared for the user_id foreign key only; never preloaded
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName of the wallet table
func (Wallet) TableName() string { return "wallet" }
