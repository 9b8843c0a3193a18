package models

import "github.com/shopspring/decimal"

// BetStatus represents the lifecycle state of a bet
type BetStatus string

const (
	BetStatusActive  BetStatus = "ACTIVE"
	BetStatusDormant BetStatus = "DORMANT"
	BetStatusZombie  BetStatus = "ZOMBIE"
	BetStatusWon     BetStatus = "WON"
	BetStatusLost    BetStatus = "LOST"
)

// Valid reports whether s is one of the known statuses.
func (s BetStatus) Valid() bool {
	switch s {
	case BetStatusActive, BetStatusDormant, BetStatusZombie, BetStatusWon, BetStatusLost:
		return true
	}
	return false
}

// IsTerminal reports whether the bet has been resolved. Terminal bets are
// never moved by automatic status transitions.
func (s BetStatus) IsTerminal() bool {
	return s == BetStatusWon || s == BetStatusLost
}

// Bet is a financial commitment with its own budget envelope. Bets form a
// forest through ParentID; a child's budget is carved out of its parent's.
type Bet struct {
	Base
	Name        string          `gorm:"not null;uniqueIndex" json:"name"`
	Description *string         `json:"description"`
	Budget      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"budget"`
	Status      BetStatus       `gorm:"type:varchar(16);not null;default:'ACTIVE';index" json:"status"`
	Flagged     bool            `gorm:"not null;default:false" json:"flagged"`
	ParentID    *string         `gorm:"type:uuid;index" json:"parent_id"`
}

// IsRoot reports whether the bet declares no parent.
func (b *Bet) IsRoot() bool {
	return b.ParentID == nil
}
