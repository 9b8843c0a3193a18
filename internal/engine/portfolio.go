package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"betmetric/internal/models"
)

// RecentBurnWindow is the trailing window used for recent burn.
const RecentBurnWindow = 30 * day

// PortfolioSummary holds portfolio-wide metrics.
type PortfolioSummary struct {
	TotalBurn       decimal.Decimal `json:"total_burn"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	ActiveBets      int             `json:"active_bets"`
	RecentBurn      decimal.Decimal `json:"recent_burn"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	RunwayMonths    *float64        `json:"runway_months"`
	LastRefreshedAt time.Time       `json:"last_refreshed_at"`
}

// Summarize computes portfolio metrics. Burn and revenue sum direct amounts
// only, so nothing is counted twice through the hierarchy.
func Summarize(a *Analysis) PortfolioSummary {
	p := PortfolioSummary{LastRefreshedAt: a.Now}
	since := a.Now.Add(-RecentBurnWindow)

	var rootBudgets, rootSpend decimal.Decimal
	for _, s := range a.Summaries {
		p.TotalBurn = p.TotalBurn.Add(s.DirectExpenses)
		p.TotalRevenue = p.TotalRevenue.Add(s.DirectRevenue)

		switch s.Status {
		case models.BetStatusLost, models.BetStatusWon, models.BetStatusZombie:
		default:
			p.ActiveBets++
		}

		if a.Index.IsRoot(s.ID) {
			rootBudgets = rootBudgets.Add(s.Budget)
			rootSpend = rootSpend.Add(s.TotalExpenses)
		}

		for _, tx := range a.Index.Transactions(s.ID) {
			if tx.Type == models.TransactionTypeExpense && !tx.Date.Before(since) {
				p.RecentBurn = p.RecentBurn.Add(tx.Amount)
			}
		}
	}

	p.RemainingBudget = decimal.Max(rootBudgets.Sub(rootSpend), decimal.Zero)
	if p.RecentBurn.IsPositive() {
		runway := p.RemainingBudget.Div(p.RecentBurn).InexactFloat64()
		p.RunwayMonths = &runway
	}

	return p
}
