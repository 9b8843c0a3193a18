package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeRevenue TransactionType = "REVENUE"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeRevenue || t == TransactionTypeExpense
}

// Transaction is an immutable revenue or expense entry booked against a bet.
// Date is when the money moved, which can differ from CreatedAt.
type Transaction struct {
	Base
	BetID       string          `gorm:"type:uuid;not null;index" json:"bet_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Type        TransactionType `gorm:"type:varchar(16);not null" json:"type"`
	Description string          `gorm:"not null" json:"description"`
	Source      *string         `json:"source"`
	Date        time.Time       `gorm:"not null;index" json:"date"`

	// Relationships
	Bet *Bet `gorm:"foreignKey:BetID" json:"-"`
}
