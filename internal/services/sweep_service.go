package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"betmetric/internal/engine"
	"betmetric/internal/metrics"
)

// sweepService reclassifies every bet so dormant bets turn ZOMBIE even when
// nobody reads them.
type sweepService struct {
	analyzer *analyzer
}

// NewSweepService creates a new SweepServicer.
func NewSweepService(db *gorm.DB) SweepServicer {
	return &sweepService{analyzer: newAnalyzer(db)}
}

// Sweep runs one classification pass. Unlike read paths, a failed commit is
// returned to the caller. Portfolio gauges are refreshed on success.
func (s *sweepService) Sweep(ctx context.Context) (*SweepResult, error) {
	start := time.Now()

	analysis, err := s.analyzer.snapshot(ctx)
	if err == nil {
		err = s.analyzer.commit(ctx, analysis.Changes)
	}
	metrics.ObserveSweep(time.Since(start), err)
	if err != nil {
		s.analyzer.log.Error("classification sweep failed", zap.Error(err))
		return nil, err
	}

	metrics.ObservePortfolio(engine.Summarize(analysis))

	result := &SweepResult{
		Bets:        analysis.Index.Len(),
		Transitions: make([]StatusTransition, 0, len(analysis.Changes)),
		RanAt:       analysis.Now,
	}
	for _, c := range analysis.Changes {
		result.Transitions = append(result.Transitions, StatusTransition{BetID: c.BetID, From: c.From, To: c.To})
	}

	s.analyzer.log.Info("classification sweep finished",
		zap.Int("bets", result.Bets),
		zap.Int("transitions", len(result.Transitions)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
