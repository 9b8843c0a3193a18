package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "betmetric/internal/errors"
	"betmetric/internal/engine"
	"betmetric/internal/logger"
	"betmetric/internal/metrics"
	"betmetric/internal/models"
)

// analyzer runs the read pass shared by every bet-facing query: load the
// full snapshot, derive financials, and persist any automatic status
// transitions it decided on.
type analyzer struct {
	db  *gorm.DB
	now func() time.Time
	log *zap.Logger
}

func newAnalyzer(db *gorm.DB) *analyzer {
	return &analyzer{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
		log: logger.Named("analyzer"),
	}
}

// snapshot loads every bet and transaction and analyzes them without
// writing anything back.
func (a *analyzer) snapshot(ctx context.Context) (*engine.Analysis, error) {
	db := a.db.WithContext(ctx)

	var bets []models.Bet
	if err := db.Order("created_at ASC, id ASC").Find(&bets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var txs []models.Transaction
	if err := db.Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return engine.Analyze(bets, txs, a.now()), nil
}

// analyze runs a full pass. A failed status commit is logged and the
// computed analysis is still returned.
func (a *analyzer) analyze(ctx context.Context) (*engine.Analysis, error) {
	analysis, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.commit(ctx, analysis.Changes); err != nil {
		a.log.Warn("failed to persist status transitions",
			zap.Int("changes", len(analysis.Changes)),
			zap.Error(err),
		)
	}
	return analysis, nil
}

type transitionKey struct {
	from, to models.BetStatus
}

// commit writes all transitions in one database transaction. Each update is
// conditioned on the status the pass observed, so a concurrent writer that
// already moved the bet wins and repeated passes are idempotent.
func (a *analyzer) commit(ctx context.Context, changes []engine.StatusChange) error {
	if len(changes) == 0 {
		return nil
	}

	groups := make(map[transitionKey][]string)
	keys := make([]transitionKey, 0)
	for _, c := range changes {
		k := transitionKey{from: c.From, to: c.To}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], c.BetID)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})

	committed := make(map[transitionKey]int64, len(keys))
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			res := tx.Model(&models.Bet{}).
				Where("id IN ? AND status = ?", groups[k], k.from).
				Update("status", k.to)
			if res.Error != nil {
				return res.Error
			}
			committed[k] = res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, k := range keys {
		a.log.Info("status transition",
			zap.String("from", string(k.from)),
			zap.String("to", string(k.to)),
			zap.Int("planned", len(groups[k])),
			zap.Int64("committed", committed[k]),
		)
		metrics.RecordTransitions(k.from, k.to, committed[k])
	}
	return nil
}
