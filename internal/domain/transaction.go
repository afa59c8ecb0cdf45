package domain

import "time"

// TransactionType is the direction of a balance change
type TransactionType string

// Transaction types
const (
	Credit TransactionType = "CREDIT"
	Debit  TransactionType = "DEBIT"
)

// Valid reports whether t is CREDIT or DEBIT
func (t TransactionType) Valid() bool {
	return t == Credit || t == Debit
}

// TransactionStatus of a ledger entry
type TransactionStatus string

// Transaction statuses
const (
	TxPending   TransactionStatus = "PENDING"
	TxCompleted TransactionStatus = "COMPLETED"
	TxFailed    TransactionStatus = "FAILED"
)

// Transaction Model. Append-only record of one balance change.
type Transaction struct {
	ID              uint              `gorm:"primaryKey" json:"id"`                  // Primary key
	WalletID        uint              `gorm:"index;not null" json:"walletId"`        // Owning wallet
	Amount          Money             `gorm:"not null" json:"amount"`                // Always positive
	Type            TransactionType   `gorm:"size:8;not null" json:"type"`           // CREDIT or DEBIT
	CategoryID      *uint             `gorm:"index" json:"categoryId,omitempty"`     // Optional label
	Status          TransactionStatus `gorm:"size:16;not null" json:"status"`        // Lifecycle status
	ReferenceID     string            `gorm:"size:64;index" json:"referenceId"`      // Not unique
	TransactionDate time.Time         `gorm:"not null;index" json:"transactionDate"` // When it was applied

	Wallet   *Wallet   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`                  // Foreign key only
	Category *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"` // Loaded explicitly
}

// TableName of the transaction table
func (Transaction) TableName() string { return "transaction" }
