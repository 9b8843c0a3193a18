package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"betmetric/internal/models"
)

// ZombieAfterDays is the inactivity span after which a bet turns ZOMBIE.
const ZombieAfterDays = 30

// WarningThreshold is the share of budget spent that triggers a warning.
var WarningThreshold = decimal.RequireFromString("0.80")

// Health is the derived financial signal for a bet.
type Health string

const (
	HealthProfit  Health = "profit"
	HealthBurn    Health = "burn"
	HealthWarning Health = "warning"
	HealthZombie  Health = "zombie"
)

const day = 24 * time.Hour

// InactiveDays counts whole days from the later of lastTx and created to
// now. Future activity clamps to 0. It returns nil when neither time is
// known.
func InactiveDays(lastTx *time.Time, created, now time.Time) *int {
	var anchor time.Time
	switch {
	case lastTx != nil && lastTx.After(created):
		anchor = *lastTx
	case !created.IsZero():
		anchor = created
	case lastTx != nil:
		anchor = *lastTx
	default:
		return nil
	}

	days := int(now.Sub(anchor) / day)
	if days < 0 {
		days = 0
	}
	return &days
}

// NextStatus returns the status a bet should move to given its inactivity.
// WON and LOST never move; an unknown inactivity leaves the status alone.
func NextStatus(status models.BetStatus, inactiveDays *int) models.BetStatus {
	if status.IsTerminal() || inactiveDays == nil {
		return status
	}
	switch {
	case *inactiveDays >= ZombieAfterDays && status != models.BetStatusZombie:
		return models.BetStatusZombie
	case *inactiveDays < ZombieAfterDays && status == models.BetStatusZombie:
		return models.BetStatusActive
	}
	return status
}

// ClassifyHealth applies the health rules in order; the first match wins.
// status must already reflect any automatic transition.
func ClassifyHealth(status models.BetStatus, budget decimal.Decimal, t Totals, inactiveDays *int) Health {
	if inactiveDays != nil && *inactiveDays >= ZombieAfterDays && !status.IsTerminal() {
		return HealthZombie
	}
	if budget.IsPositive() && t.TotalExpenses.GreaterThanOrEqual(budget.Mul(WarningThreshold)) {
		return HealthWarning
	}
	if t.TotalRevenue.GreaterThan(t.TotalExpenses) {
		return HealthProfit
	}
	if t.TotalExpenses.GreaterThan(t.TotalRevenue) {
		return HealthBurn
	}
	return HealthWarning
}
