package services

import (
	"context"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"betmetric/internal/engine"
	"betmetric/internal/logger"
	"betmetric/internal/metrics"
	"betmetric/internal/models"
	"betmetric/internal/testutil"
)

func init() {
	logger.Init("test")
}

func TestAnalyzerCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("skips_bets_moved_by_someone_else", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		a := newAnalyzer(db)

		moved := testutil.CreateTestBet(t, db, nil, "100")
		untouched := testutil.CreateTestBet(t, db, nil, "100")
		testutil.SetBetStatus(t, db, moved.ID, models.BetStatusLost)

		zombified := metrics.StatusTransitions.WithLabelValues("ACTIVE", "ZOMBIE")
		before := promtest.ToFloat64(zombified)

		err := a.commit(ctx, []engine.StatusChange{
			{BetID: moved.ID, From: models.BetStatusActive, To: models.BetStatusZombie},
			{BetID: untouched.ID, From: models.BetStatusActive, To: models.BetStatusZombie},
		})
		testutil.AssertNoError(t, err)

		var storedMoved, storedUntouched models.Bet
		testutil.AssertNoError(t, db.First(&storedMoved, "id = ?", moved.ID).Error)
		testutil.AssertNoError(t, db.First(&storedUntouched, "id = ?", untouched.ID).Error)
		if storedMoved.Status != models.BetStatusLost {
			t.Errorf("expected LOST to be preserved, got %s", storedMoved.Status)
		}
		if storedUntouched.Status != models.BetStatusZombie {
			t.Errorf("expected ZOMBIE, got %s", storedUntouched.Status)
		}
		if got := promtest.ToFloat64(zombified) - before; got != 1 {
			t.Errorf("expected 1 committed transition counted, got %v", got)
		}
	})

	t.Run("repeated_pass_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		a := newAnalyzer(db)
		testutil.CreateTestBetAt(t, db, nil, "100", time.Now().UTC().Add(-40*day))

		first, err := a.analyze(ctx)
		testutil.AssertNoError(t, err)
		if len(first.Changes) != 1 {
			t.Fatalf("expected 1 change on first pass, got %d", len(first.Changes))
		}

		second, err := a.analyze(ctx)
		testutil.AssertNoError(t, err)
		if len(second.Changes) != 0 {
			t.Errorf("expected no changes on second pass, got %d", len(second.Changes))
		}
	})

	t.Run("revives_zombie_on_new_activity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		a := newAnalyzer(db)
		bet := testutil.CreateTestBetAt(t, db, nil, "100", time.Now().UTC().Add(-40*day))
		testutil.SetBetStatus(t, db, bet.ID, models.BetStatusZombie)
		testutil.CreateTestTransaction(t, db, bet.ID, models.TransactionTypeRevenue, "1", time.Now().UTC())

		_, err := a.analyze(ctx)
		testutil.AssertNoError(t, err)

		var stored models.Bet
		db.First(&stored, "id = ?", bet.ID)
		if stored.Status != models.BetStatusActive {
			t.Errorf("expected ACTIVE, got %s", stored.Status)
		}
	})

	t.Run("uses_injected_clock", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		a := newAnalyzer(db)
		fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		a.now = func() time.Time { return fixed }

		analysis, err := a.analyze(ctx)
		testutil.AssertNoError(t, err)
		if !analysis.Now.Equal(fixed) {
			t.Errorf("expected pass time %v, got %v", fixed, analysis.Now)
		}
	})
}
