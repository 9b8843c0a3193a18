// Package engine derives financial health from a snapshot of bets and
// transactions. Everything here is pure: callers load the snapshot, the
// engine computes, and callers decide what to persist.
package engine

import (
	"time"

	"betmetric/internal/models"
)

// Index is the adjacency view of one snapshot.
type Index struct {
	order    []string
	bets     map[string]*models.Bet
	roots    []string
	children map[string][]string
	txs      map[string][]models.Transaction
	lastTx   map[string]time.Time
}

// NewIndex links bets into a forest and groups transactions by bet.
// Child order follows the order of bets. A bet whose parent is missing
// from the snapshot, or that names itself as parent, is treated as a root.
// Transactions for unknown bets are dropped.
func NewIndex(bets []models.Bet, txs []models.Transaction) *Index {
	idx := &Index{
		order:    make([]string, 0, len(bets)),
		bets:     make(map[string]*models.Bet, len(bets)),
		children: make(map[string][]string),
		txs:      make(map[string][]models.Transaction),
		lastTx:   make(map[string]time.Time),
	}

	for i := range bets {
		b := &bets[i]
		idx.order = append(idx.order, b.ID)
		idx.bets[b.ID] = b
	}

	for _, id := range idx.order {
		b := idx.bets[id]
		if idx.isRootBet(b) {
			idx.roots = append(idx.roots, id)
			continue
		}
		idx.children[*b.ParentID] = append(idx.children[*b.ParentID], id)
	}

	for _, tx := range txs {
		if _, ok := idx.bets[tx.BetID]; !ok {
			continue
		}
		idx.txs[tx.BetID] = append(idx.txs[tx.BetID], tx)
		if last, ok := idx.lastTx[tx.BetID]; !ok || tx.Date.After(last) {
			idx.lastTx[tx.BetID] = tx.Date
		}
	}

	return idx
}

func (idx *Index) isRootBet(b *models.Bet) bool {
	if b.IsRoot() || *b.ParentID == b.ID {
		return true
	}
	_, ok := idx.bets[*b.ParentID]
	return !ok
}

// IDs returns every bet id in snapshot order.
func (idx *Index) IDs() []string {
	return idx.order
}

// Len returns the number of bets in the snapshot.
func (idx *Index) Len() int {
	return len(idx.order)
}

// Roots returns root ids in snapshot order.
func (idx *Index) Roots() []string {
	return idx.roots
}

// IsRoot reports whether id is a root of the forest.
func (idx *Index) IsRoot(id string) bool {
	b, ok := idx.bets[id]
	return ok && idx.isRootBet(b)
}

// Children returns the direct children of id in snapshot order.
func (idx *Index) Children(id string) []string {
	return idx.children[id]
}

// Transactions returns the transactions booked directly against id.
func (idx *Index) Transactions(id string) []models.Transaction {
	return idx.txs[id]
}

// LastTransactionAt returns the latest transaction date for id, or nil when
// the bet has no transactions.
func (idx *Index) LastTransactionAt(id string) *time.Time {
	last, ok := idx.lastTx[id]
	if !ok {
		return nil
	}
	return &last
}
