package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "betmetric/internal/errors"
	"betmetric/internal/models"
	"betmetric/internal/uuid"
)

// The allocation checks run inside the caller's transaction. A plain read is
// not enough under READ COMMITTED: two writers under the same parent could
// both see the same sibling sum. Every write that changes what a parent has
// handed out first takes the parent's row lock through forUpdate, so those
// writers queue and each sees the other's committed row.

// forUpdate row-locks what the next query selects until the transaction
// ends. The SQLite driver drops the clause; SQLite serializes writers anyway.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// validateNoCycle walks up from parentID and fails if betID is reached.
func validateNoCycle(tx *gorm.DB, betID, parentID string) error {
	if betID == parentID {
		return apperrors.ErrBetCycle
	}

	var edges []struct {
		ID       string
		ParentID *string
	}
	if err := tx.Model(&models.Bet{}).Select("id", "parent_id").Find(&edges).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	parents := make(map[string]*string, len(edges))
	for _, e := range edges {
		parents[e.ID] = e.ParentID
	}

	seen := make(map[string]bool)
	for cur := parentID; ; {
		if cur == betID {
			return apperrors.ErrBetCycle
		}
		if seen[cur] {
			return nil
		}
		seen[cur] = true

		next, ok := parents[cur]
		if !ok || next == nil {
			return nil
		}
		cur = *next
	}
}

// validateParentAllocation locks parentID and checks that budget fits in what
// it has not yet handed to its other children. excludeID is the bet being
// updated, if any.
func validateParentAllocation(tx *gorm.DB, parentID string, budget decimal.Decimal, excludeID string) error {
	if !uuid.IsValid(parentID) {
		return apperrors.ErrParentBetNotFound
	}

	var parent models.Bet
	if err := forUpdate(tx).Select("id", "budget").First(&parent, "id = ?", parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrParentBetNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	allocated, err := sumChildBudgets(tx, parentID, excludeID)
	if err != nil {
		return err
	}

	if allocated.Add(budget).GreaterThan(parent.Budget) {
		remaining := decimal.Max(parent.Budget.Sub(allocated), decimal.Zero)
		return apperrors.WithMessage(apperrors.ErrParentBudgetExceeded,
			fmt.Sprintf("Child budget exceeds parent remaining allocation (remaining: %s)", remaining.StringFixed(2)))
	}
	return nil
}

// validateChildAllocation checks that betID's children still fit in budget.
func validateChildAllocation(tx *gorm.DB, betID string, budget decimal.Decimal) error {
	allocated, err := sumChildBudgets(tx, betID, "")
	if err != nil {
		return err
	}
	if allocated.GreaterThan(budget) {
		return apperrors.WithMessage(apperrors.ErrChildBudgetsExceedBudget,
			fmt.Sprintf("Bet budget cannot be lower than allocated child budgets (allocated: %s)", allocated.StringFixed(2)))
	}
	return nil
}

// sumChildBudgets adds up the budgets of parentID's direct children. Sums are
// taken in Go so every driver gets exact decimal arithmetic.
func sumChildBudgets(tx *gorm.DB, parentID, excludeID string) (decimal.Decimal, error) {
	q := tx.Model(&models.Bet{}).Select("budget").Where("parent_id = ?", parentID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var rows []struct {
		Budget decimal.Decimal
	}
	if err := q.Find(&rows).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Budget)
	}
	return total, nil
}

// ensureUniqueName fails if another bet already uses name.
func ensureUniqueName(tx *gorm.DB, name, excludeID string) error {
	q := tx.Model(&models.Bet{}).Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateBetName
	}
	return nil
}
