package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"betmetric/internal/engine"
	apperrors "betmetric/internal/errors"
	"betmetric/internal/models"
	"betmetric/internal/pagination"
	"betmetric/internal/testutil"
)

const day = 24 * time.Hour

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateBet(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_root", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)

		bet, err := svc.CreateBet(ctx, BetCreateInput{
			Name:        "  Market Expansion ",
			Description: testutil.Ptr("EU launch"),
			Budget:      dec("1000.00"),
		})
		testutil.AssertNoError(t, err)

		if bet.ID == "" {
			t.Fatal("expected bet ID")
		}
		if bet.Name != "Market Expansion" {
			t.Errorf("expected trimmed name, got %q", bet.Name)
		}
		if bet.Status != models.BetStatusActive {
			t.Errorf("expected ACTIVE, got %s", bet.Status)
		}
		if bet.ParentID != nil {
			t.Errorf("expected root bet, got parent %v", *bet.ParentID)
		}
	})

	t.Run("child_within_parent_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)
		parent := testutil.CreateTestBet(t, db, nil, "1000")
		testutil.CreateTestBet(t, db, &parent.ID, "600")

		child, err := svc.CreateBet(ctx, BetCreateInput{Name: "Exactly fits", Budget: dec("400"), ParentID: &parent.ID})
		testutil.AssertNoError(t, err)

		if child.ParentID == nil || *child.ParentID != parent.ID {
			t.Errorf("expected parent %s, got %v", parent.ID, child.ParentID)
		}
	})

	t.Run("child_exceeds_parent_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)
		parent := testutil.CreateTestBet(t, db, nil, "1000")
		testutil.CreateTestBet(t, db, &parent.ID, "600")

		_, err := svc.CreateBet(ctx, BetCreateInput{Name: "Too big", Budget: dec("400.01"), ParentID: &parent.ID})
		testutil.AssertAppError(t, err, apperrors.ErrParentBudgetExceeded)

		var count int64
		db.Model(&models.Bet{}).Where("name = ?", "Too big").Count(&count)
		if count != 0 {
			t.Error("expected no bet to be written")
		}
	})

	t.Run("unknown_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)

		missing := "01890a5d-ac96-774b-bcce-b302099a8057"
		_, err := svc.CreateBet(ctx, BetCreateInput{Name: "Orphan", Budget: dec("10"), ParentID: &missing})
		testutil.AssertAppError(t, err, apperrors.ErrParentBetNotFound)
	})

	t.Run("empty_parent_means_root", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)

		bet, err := svc.CreateBet(ctx, BetCreateInput{Name: "Root", Budget: dec("10"), ParentID: testutil.Ptr("")})
		testutil.AssertNoError(t, err)
		if bet.ParentID != nil {
			t.Error("expected nil parent")
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)

		_, err := svc.CreateBet(ctx, BetCreateInput{Name: "Same", Budget: dec("10")})
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBet(ctx, BetCreateInput{Name: "Same", Budget: dec("10")})
		testutil.AssertAppError(t, err, apperrors.ErrDuplicateBetName)
	})

	t.Run("invalid_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)

		_, err := svc.CreateBet(ctx, BetCreateInput{Name: "Zero", Budget: decimal.Zero})
		testutil.AssertAppError(t, err, apperrors.ErrInvalidBudget)

		_, err = svc.CreateBet(ctx, BetCreateInput{Name: "   ", Budget: dec("1")})
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)

		_, err = svc.CreateBet(ctx, BetCreateInput{Name: "Odd", Budget: dec("1"), Status: "PENDING"})
		testutil.AssertAppError(t, err, apperrors.ErrInvalidBetStatus)
	})
}

func TestUpdateBet(t *testing.T) {
	ctx := context.Background()

	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)
		bet := testutil.CreateTestBet(t, db, nil, "100")

		updated, err := svc.UpdateBet(ctx, bet.ID, BetUpdateInput{
			Name:    testutil.Ptr("Renamed"),
			Flagged: testutil.Ptr(true),
			Status:  testutil.Ptr(models.BetStatusWon),
		})
		testutil.AssertNoError(t, err)

		if updated.Name != "Renamed" || !updated.Flagged || updated.Status != models.BetStatusWon {
			t.Errorf("unexpected bet after update: %+v", updated)
		}
		testutil.AssertDecimal(t, "budget", updated.Budget, "100")

		var stored models.Bet
		if err := db.First(&stored, "id = ?", bet.ID).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if stored.Name != "Renamed" {
			t.Errorf("expected stored name Renamed, got %s", stored.Name)
		}
	})

	t.Run("parent_to_own_descendant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)
		root := testutil.CreateTestBet(t, db, nil, "1000")
		child := testutil.CreateTestBet(t, db, &root.ID, "500")
		grandchild := testutil.CreateTestBet(t, db, &child.ID, "100")

		_, err := svc.UpdateBet(ctx, root.ID, BetUpdateInput{ParentID: &grandchild.ID})
		testutil.AssertAppError(t, err, apperrors.ErrBetCycle)

		_, err = svc.UpdateBet(ctx, child.ID, BetUpdateInput{ParentID: &child.ID})
		testutil.AssertAppError(t, err, apperrors.ErrBetCycle)
	})

	t.Run("parent_to_unrelated_root", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)
		first := testutil.CreateTestBet(t, db, nil, "1000")
		second := testutil.CreateTestBet(t, db, nil, "1000")
		child := testutil.CreateTestBet(t, db, &first.ID, "300")

		moved, err := svc.UpdateBet(ctx, child.ID, BetUpdateInput{ParentID: &second.ID})
		testutil.AssertNoError(t, err)
		if moved.ParentID == nil || *moved.ParentID != second.ID {
			t.Errorf("expected parent %s, got %v", second.ID, moved.ParentID)
		}
	})

	t.Run("parent_allocation_excludes_self", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)
		parent := testutil.CreateTestBet(t, db, nil, "100")
		child := testutil.CreateTestBet(t, db, &parent.ID, "60")
		testutil.CreateTestBet(t, db, &parent.ID, "10")

		_, err := svc.UpdateBet(ctx, child.ID, BetUpdateInput{Budget: testutil.Ptr(dec("90"))})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateBet(ctx, child.ID, BetUpdateInput{Budget: testutil.Ptr(dec("90.01"))})
		testutil.AssertAppError(t, err, apperrors.ErrParentBudgetExceeded)
	})

	t.Run("budget_below_children", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)
		parent := testutil.CreateTestBet(t, db, nil, "100")
		testutil.CreateTestBet(t, db, &parent.ID, "40")
		testutil.CreateTestBet(t, db, &parent.ID, "30")

		_, err := svc.UpdateBet(ctx, parent.ID, BetUpdateInput{Budget: testutil.Ptr(dec("69.99"))})
		testutil.AssertAppError(t, err, apperrors.ErrChildBudgetsExceedBudget)

		_, err = svc.UpdateBet(ctx, parent.ID, BetUpdateInput{Budget: testutil.Ptr(dec("70"))})
		testutil.AssertNoError(t, err)
	})

	t.Run("detach_to_root", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)
		parent := testutil.CreateTestBet(t, db, nil, "100")
		child := testutil.CreateTestBet(t, db, &parent.ID, "50")

		updated, err := svc.UpdateBet(ctx, child.ID, BetUpdateInput{ParentID: testutil.Ptr("")})
		testutil.AssertNoError(t, err)
		if updated.ParentID != nil {
			t.Errorf("expected root, got parent %s", *updated.ParentID)
		}

		roots, err := svc.GetRootBets(ctx)
		testutil.AssertNoError(t, err)
		if len(roots) != 2 {
			t.Errorf("expected 2 roots, got %d", len(roots))
		}
	})

	t.Run("rename_to_existing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)
		first := testutil.CreateTestBet(t, db, nil, "100")
		second := testutil.CreateTestBet(t, db, nil, "100")

		_, err := svc.UpdateBet(ctx, second.ID, BetUpdateInput{Name: &first.Name})
		testutil.AssertAppError(t, err, apperrors.ErrDuplicateBetName)

		_, err = svc.UpdateBet(ctx, first.ID, BetUpdateInput{Name: &first.Name})
		testutil.AssertNoError(t, err)
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)

		_, err := svc.UpdateBet(ctx, "01890a5d-ac96-774b-bcce-b302099a8057", BetUpdateInput{Flagged: testutil.Ptr(true)})
		testutil.AssertAppError(t, err, apperrors.ErrBetNotFound)

		_, err = svc.UpdateBet(ctx, "not-a-uuid", BetUpdateInput{})
		testutil.AssertAppError(t, err, apperrors.ErrBetNotFound)
	})
}

func TestMarkLost(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBetService(db)
	txSvc := NewTransactionService(db)

	root := testutil.CreateTestBet(t, db, nil, "1000")
	lost := testutil.CreateTestBet(t, db, &root.ID, "200")
	testutil.CreateTestTransaction(t, db, lost.ID, models.TransactionTypeExpense, "75", time.Now().UTC())

	bet, err := svc.MarkLost(ctx, lost.ID)
	testutil.AssertNoError(t, err)
	if bet.Status != models.BetStatusLost {
		t.Fatalf("expected LOST, got %s", bet.Status)
	}

	t.Run("absent_from_tree", func(t *testing.T) {
		forest, err := svc.GetFullTree(ctx)
		testutil.AssertNoError(t, err)
		if engine.FindSubtree(forest, lost.ID) != nil {
			t.Error("expected LOST bet to be hidden from the tree")
		}
		_, err = svc.GetSubtree(ctx, lost.ID)
		testutil.AssertAppError(t, err, apperrors.ErrBetNotFound)
	})

	t.Run("present_in_summary", func(t *testing.T) {
		summary, err := svc.GetBetSummary(ctx, lost.ID)
		testutil.AssertNoError(t, err)
		if summary.Status != models.BetStatusLost {
			t.Errorf("expected LOST, got %s", summary.Status)
		}

		rootSummary, err := svc.GetBetSummary(ctx, root.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "total_expenses", rootSummary.TotalExpenses, "75")
	})

	t.Run("transactions_listable", func(t *testing.T) {
		page, err := txSvc.GetTransactions(ctx, pagination.PageRequest{}, TransactionFilter{BetID: &lost.ID})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 transaction, got %d", page.TotalItems)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		again, err := svc.MarkLost(ctx, lost.ID)
		testutil.AssertNoError(t, err)
		if again.Status != models.BetStatusLost {
			t.Errorf("expected LOST, got %s", again.Status)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.MarkLost(ctx, "01890a5d-ac96-774b-bcce-b302099a8057")
		testutil.AssertAppError(t, err, apperrors.ErrBetNotFound)
	})
}

func TestGetBetSummaries(t *testing.T) {
	ctx := context.Background()

	t.Run("zombie_transition_is_persisted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)

		past := time.Now().UTC().Add(-31 * day)
		root := testutil.CreateTestBetAt(t, db, nil, "1000", past)
		child := testutil.CreateTestBetAt(t, db, &root.ID, "400", past)
		testutil.CreateTestTransaction(t, db, child.ID, models.TransactionTypeExpense, "350", past)
		testutil.CreateTestTransaction(t, db, root.ID, models.TransactionTypeRevenue, "10", time.Now().UTC())

		summary, err := svc.GetBetSummary(ctx, child.ID)
		testutil.AssertNoError(t, err)
		if summary.Status != models.BetStatusZombie {
			t.Errorf("expected ZOMBIE, got %s", summary.Status)
		}
		if summary.Health != engine.HealthZombie {
			t.Errorf("expected zombie health, got %s", summary.Health)
		}

		var stored models.Bet
		if err := db.First(&stored, "id = ?", child.ID).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if stored.Status != models.BetStatusZombie {
			t.Errorf("expected stored status ZOMBIE, got %s", stored.Status)
		}

		rootSummary, err := svc.GetBetSummary(ctx, root.ID)
		testutil.AssertNoError(t, err)
		if rootSummary.Status != models.BetStatusActive {
			t.Errorf("expected recently active root to stay ACTIVE, got %s", rootSummary.Status)
		}
		testutil.AssertDecimal(t, "total_expenses", rootSummary.TotalExpenses, "350")
	})

	t.Run("filter_and_paginate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)

		now := time.Now().UTC()
		for i := 0; i < 5; i++ {
			testutil.CreateTestBetAt(t, db, nil, "100", now.Add(time.Duration(i)*time.Minute))
		}
		won := testutil.CreateTestBetAt(t, db, nil, "100", now.Add(10*time.Minute))
		testutil.SetBetStatus(t, db, won.ID, models.BetStatusWon)

		page, err := svc.GetBetSummaries(ctx, pagination.PageRequest{Page: 2, PageSize: 2}, nil)
		testutil.AssertNoError(t, err)
		if page.TotalItems != 6 || page.TotalPages != 3 || len(page.Data) != 2 {
			t.Errorf("unexpected page: total=%d pages=%d len=%d", page.TotalItems, page.TotalPages, len(page.Data))
		}

		status := models.BetStatusWon
		page, err = svc.GetBetSummaries(ctx, pagination.PageRequest{}, &status)
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 || page.Data[0].ID != won.ID {
			t.Errorf("expected only the WON bet, got %d items", page.TotalItems)
		}
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)

		page, err := svc.GetBetSummaries(ctx, pagination.PageRequest{}, nil)
		testutil.AssertNoError(t, err)
		if page.Data == nil || len(page.Data) != 0 {
			t.Errorf("expected empty non-nil data, got %v", page.Data)
		}
	})

	t.Run("invalid_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBetService(db)

		status := models.BetStatus("PENDING")
		_, err := svc.GetBetSummaries(ctx, pagination.PageRequest{}, &status)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidBetStatus)
	})
}

func TestGetBetFinancials(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBetService(db)

	now := time.Now().UTC()
	bet := testutil.CreateTestBet(t, db, nil, "1000")
	testutil.CreateTestTransaction(t, db, bet.ID, models.TransactionTypeRevenue, "300", now)
	testutil.CreateTestTransaction(t, db, bet.ID, models.TransactionTypeExpense, "200", now)

	fin, err := svc.GetBetFinancials(ctx, bet.ID)
	testutil.AssertNoError(t, err)

	if fin.BetID != bet.ID {
		t.Errorf("expected bet_id %s, got %s", bet.ID, fin.BetID)
	}
	testutil.AssertDecimal(t, "net_profit", fin.NetProfit, "100")
	if fin.ROI != 50 {
		t.Errorf("expected ROI 50, got %v", fin.ROI)
	}
	if fin.Health != engine.HealthProfit {
		t.Errorf("expected profit, got %s", fin.Health)
	}

	_, err = svc.GetBetFinancials(ctx, "01890a5d-ac96-774b-bcce-b302099a8057")
	testutil.AssertAppError(t, err, apperrors.ErrBetNotFound)
}

func TestGetTree(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBetService(db)

	now := time.Now().UTC()
	second := testutil.CreateTestBetAt(t, db, nil, "500", now.Add(-time.Hour))
	first := testutil.CreateTestBetAt(t, db, nil, "500", now.Add(-2*time.Hour))
	child := testutil.CreateTestBetAt(t, db, &first.ID, "100", now.Add(-time.Minute))

	forest, err := svc.GetFullTree(ctx)
	testutil.AssertNoError(t, err)
	if len(forest) != 2 || forest[0].ID != first.ID || forest[1].ID != second.ID {
		t.Fatalf("expected roots ordered by creation")
	}

	sub, err := svc.GetSubtree(ctx, first.ID)
	testutil.AssertNoError(t, err)
	if len(sub.Children) != 1 || sub.Children[0].ID != child.ID {
		t.Errorf("expected subtree with one child")
	}

	_, err = svc.GetSubtree(ctx, "01890a5d-ac96-774b-bcce-b302099a8057")
	testutil.AssertAppError(t, err, apperrors.ErrBetNotFound)
}
