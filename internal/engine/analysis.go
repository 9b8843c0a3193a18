package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"betmetric/internal/models"
)

// Summary is a bet together with its derived financials.
type Summary struct {
	models.Bet
	DirectRevenue     decimal.Decimal `json:"direct_revenue"`
	DirectExpenses    decimal.Decimal `json:"direct_expenses"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	ROI               float64         `json:"roi"`
	Health            Health          `json:"health"`
	LastTransactionAt *time.Time      `json:"last_transaction_at"`
	InactiveDays      *int            `json:"inactive_days"`
}

// Financials is the numbers-only view of a bet.
type Financials struct {
	BetID             string          `json:"bet_id"`
	DirectRevenue     decimal.Decimal `json:"direct_revenue"`
	DirectExpenses    decimal.Decimal `json:"direct_expenses"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	ROI               float64         `json:"roi"`
	Health            Health          `json:"health"`
	LastTransactionAt *time.Time      `json:"last_transaction_at"`
	InactiveDays      *int            `json:"inactive_days"`
}

// Financials projects the summary onto its derived numbers.
func (s Summary) Financials() Financials {
	return Financials{
		BetID:             s.ID,
		DirectRevenue:     s.DirectRevenue,
		DirectExpenses:    s.DirectExpenses,
		TotalRevenue:      s.TotalRevenue,
		TotalExpenses:     s.TotalExpenses,
		NetProfit:         s.NetProfit,
		ROI:               s.ROI,
		Health:            s.Health,
		LastTransactionAt: s.LastTransactionAt,
		InactiveDays:      s.InactiveDays,
	}
}

// StatusChange is an automatic transition waiting to be persisted.
type StatusChange struct {
	BetID string
	From  models.BetStatus
	To    models.BetStatus
}

// Analysis is the result of one read pass over a snapshot.
type Analysis struct {
	Now       time.Time
	Index     *Index
	Totals    map[string]Totals
	Summaries []Summary
	Changes   []StatusChange

	byID map[string]int
}

// Analyze indexes the snapshot, rolls up totals, decides status transitions
// and classifies health. The input slices are not modified; summaries carry
// the post-transition status and Changes lists what moved.
func Analyze(bets []models.Bet, txs []models.Transaction, now time.Time) *Analysis {
	snapshot := make([]models.Bet, len(bets))
	copy(snapshot, bets)

	idx := NewIndex(snapshot, txs)
	totals := Rollup(idx)

	a := &Analysis{
		Now:       now,
		Index:     idx,
		Totals:    totals,
		Summaries: make([]Summary, 0, len(snapshot)),
		byID:      make(map[string]int, len(snapshot)),
	}

	for i := range snapshot {
		b := &snapshot[i]
		lastTx := idx.LastTransactionAt(b.ID)
		inactive := InactiveDays(lastTx, b.CreatedAt, now)

		if next := NextStatus(b.Status, inactive); next != b.Status {
			a.Changes = append(a.Changes, StatusChange{BetID: b.ID, From: b.Status, To: next})
			b.Status = next
		}

		t := totals[b.ID]
		a.byID[b.ID] = len(a.Summaries)
		a.Summaries = append(a.Summaries, Summary{
			Bet:               *b,
			DirectRevenue:     t.DirectRevenue,
			DirectExpenses:    t.DirectExpenses,
			TotalRevenue:      t.TotalRevenue,
			TotalExpenses:     t.TotalExpenses,
			NetProfit:         t.NetProfit(),
			ROI:               t.ROI(),
			Health:            ClassifyHealth(b.Status, b.Budget, t, inactive),
			LastTransactionAt: lastTx,
			InactiveDays:      inactive,
		})
	}

	return a
}

// Summary returns the summary for id.
func (a *Analysis) Summary(id string) (Summary, bool) {
	i, ok := a.byID[id]
	if !ok {
		return Summary{}, false
	}
	return a.Summaries[i], true
}

// Filter returns summaries with the given status, in snapshot order.
func (a *Analysis) Filter(status models.BetStatus) []Summary {
	out := make([]Summary, 0)
	for _, s := range a.Summaries {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}
