package engine

import (
	"github.com/shopspring/decimal"

	"betmetric/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Totals holds the direct and rolled-up sums for one bet.
type Totals struct {
	DirectRevenue  decimal.Decimal
	DirectExpenses decimal.Decimal
	TotalRevenue   decimal.Decimal
	TotalExpenses  decimal.Decimal
}

// NetProfit is total revenue minus total expenses.
func (t Totals) NetProfit() decimal.Decimal {
	return t.TotalRevenue.Sub(t.TotalExpenses)
}

// ROI is net profit as a percentage of total expenses, or 0 when nothing
// has been spent.
func (t Totals) ROI() float64 {
	if t.TotalExpenses.IsZero() {
		return 0
	}
	return t.NetProfit().Div(t.TotalExpenses).Mul(hundred).InexactFloat64()
}

func directTotals(txs []models.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeRevenue:
			t.DirectRevenue = t.DirectRevenue.Add(tx.Amount)
		case models.TransactionTypeExpense:
			t.DirectExpenses = t.DirectExpenses.Add(tx.Amount)
		}
	}
	t.TotalRevenue = t.DirectRevenue
	t.TotalExpenses = t.DirectExpenses
	return t
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

type frame struct {
	id   string
	next int
}

// Rollup computes totals for every bet in the index. Each node is summed
// once, after its children, using an explicit stack so deep chains cannot
// exhaust the goroutine stack. A child reached again while still on the
// stack (a stored cycle) contributes nothing to its ancestor.
func Rollup(idx *Index) map[string]Totals {
	totals := make(map[string]Totals, idx.Len())
	state := make(map[string]visitState, idx.Len())

	for _, start := range idx.IDs() {
		if state[start] != unvisited {
			continue
		}
		state[start] = visiting
		stack := []frame{{id: start}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			kids := idx.Children(top.id)
			if top.next < len(kids) {
				child := kids[top.next]
				top.next++
				if state[child] == unvisited {
					state[child] = visiting
					stack = append(stack, frame{id: child})
				}
				continue
			}

			t := directTotals(idx.Transactions(top.id))
			for _, child := range kids {
				if state[child] != visited {
					continue
				}
				ct := totals[child]
				t.TotalRevenue = t.TotalRevenue.Add(ct.TotalRevenue)
				t.TotalExpenses = t.TotalExpenses.Add(ct.TotalExpenses)
			}
			totals[top.id] = t
			state[top.id] = visited
			stack = stack[:len(stack)-1]
		}
	}

	return totals
}
