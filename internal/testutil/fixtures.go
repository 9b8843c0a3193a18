package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"betmetric/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestBet creates an ACTIVE bet with a unique name, created now.
func CreateTestBet(t *testing.T, db *gorm.DB, parentID *string, budget string) *models.Bet {
	t.Helper()
	return CreateTestBetAt(t, db, parentID, budget, time.Now().UTC())
}

// CreateTestBetAt creates an ACTIVE bet with the given creation time.
func CreateTestBetAt(t *testing.T, db *gorm.DB, parentID *string, budget string, createdAt time.Time) *models.Bet {
	t.Helper()

	bet := &models.Bet{
		Name:     fmt.Sprintf("bet-%d", nextID()),
		Budget:   decimal.RequireFromString(budget),
		Status:   models.BetStatusActive,
		ParentID: parentID,
	}
	bet.CreatedAt = createdAt
	bet.UpdatedAt = createdAt
	if err := db.Create(bet).Error; err != nil {
		t.Fatalf("failed to create test bet: %v", err)
	}
	return bet
}

// SetBetStatus overwrites a bet's stored status.
func SetBetStatus(t *testing.T, db *gorm.DB, betID string, status models.BetStatus) {
	t.Helper()
	if err := db.Model(&models.Bet{}).Where("id = ?", betID).Update("status", status).Error; err != nil {
		t.Fatalf("failed to set bet status: %v", err)
	}
}

// CreateTestTransaction books a transaction against a bet on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, betID string, txType models.TransactionType, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		BetID:       betID,
		Amount:      decimal.RequireFromString(amount),
		Type:        txType,
		Description: fmt.Sprintf("tx-%d", nextID()),
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
