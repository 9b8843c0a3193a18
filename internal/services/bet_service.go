package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "betmetric/internal/errors"
	"betmetric/internal/engine"
	"betmetric/internal/models"
	"betmetric/internal/pagination"
	"betmetric/internal/uuid"
)

// betService handles bet-related business logic.
type betService struct {
	db       *gorm.DB
	analyzer *analyzer
}

// NewBetService creates a new BetServicer.
func NewBetService(db *gorm.DB) BetServicer {
	return &betService{
		db:       db,
		analyzer: newAnalyzer(db),
	}
}

// CreateBet validates the draft against its parent's remaining allocation and
// inserts it, all in one transaction.
func (s *betService) CreateBet(ctx context.Context, in BetCreateInput) (*models.Bet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !in.Budget.IsPositive() {
		return nil, apperrors.ErrInvalidBudget
	}
	status := in.Status
	if status == "" {
		status = models.BetStatusActive
	}
	if !status.Valid() {
		return nil, apperrors.ErrInvalidBetStatus
	}
	parentID := in.ParentID
	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	bet := &models.Bet{
		Name:        name,
		Description: in.Description,
		Budget:      in.Budget,
		Status:      status,
		Flagged:     in.Flagged,
		ParentID:    parentID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, name, ""); err != nil {
			return err
		}
		if parentID != nil {
			if err := validateParentAllocation(tx, *parentID, bet.Budget, ""); err != nil {
				return err
			}
		}
		return createBet(tx, bet)
	})
	if err != nil {
		return nil, err
	}
	return bet, nil
}

func createBet(tx *gorm.DB, bet *models.Bet) error {
	if err := tx.Create(bet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateBetName
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateBet applies a partial update. Whenever the resulting bet has a parent
// the ancestor chain and the parent's allocation are re-checked; the bet's
// own children must always fit in the resulting budget. The bet's row stays
// locked so a child created concurrently is checked against the new budget.
func (s *betService) UpdateBet(ctx context.Context, id string, in BetUpdateInput) (*models.Bet, error) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name cannot be empty")
		}
		in.Name = &trimmed
	}
	if in.Budget != nil && !in.Budget.IsPositive() {
		return nil, apperrors.ErrInvalidBudget
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, apperrors.ErrInvalidBetStatus
	}

	var bet models.Bet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findBet(forUpdate(tx), id, &bet); err != nil {
			return err
		}

		if in.Name != nil && *in.Name != bet.Name {
			if err := ensureUniqueName(tx, *in.Name, bet.ID); err != nil {
				return err
			}
			bet.Name = *in.Name
		}
		if in.Description != nil {
			bet.Description = in.Description
		}
		if in.Budget != nil {
			bet.Budget = *in.Budget
		}
		if in.Status != nil {
			bet.Status = *in.Status
		}
		if in.Flagged != nil {
			bet.Flagged = *in.Flagged
		}
		if in.ParentID != nil {
			if *in.ParentID == "" {
				bet.ParentID = nil
			} else {
				parentID := *in.ParentID
				bet.ParentID = &parentID
			}
		}

		if !bet.IsRoot() {
			if err := validateNoCycle(tx, bet.ID, *bet.ParentID); err != nil {
				return err
			}
			if err := validateParentAllocation(tx, *bet.ParentID, bet.Budget, bet.ID); err != nil {
				return err
			}
		}
		if err := validateChildAllocation(tx, bet.ID, bet.Budget); err != nil {
			return err
		}

		if err := tx.Select("*").Omit("created_at").Updates(&bet).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateBetName
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

// MarkLost retires a bet. Its transactions stay in place and keep counting
// toward its ancestors.
func (s *betService) MarkLost(ctx context.Context, id string) (*models.Bet, error) {
	var bet models.Bet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findBet(forUpdate(tx), id, &bet); err != nil {
			return err
		}
		if bet.Status == models.BetStatusLost {
			return nil
		}
		bet.Status = models.BetStatusLost
		if err := tx.Model(&bet).Update("status", models.BetStatusLost).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

func findBet(tx *gorm.DB, id string, bet *models.Bet) error {
	if !uuid.IsValid(id) {
		return apperrors.ErrBetNotFound
	}
	if err := tx.First(bet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBetNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBetSummaries returns a page of bet summaries in creation order,
// optionally restricted to one status. The filter applies to the status
// after automatic transitions.
func (s *betService) GetBetSummaries(ctx context.Context, page pagination.PageRequest, status *models.BetStatus) (*pagination.PageResponse[engine.Summary], error) {
	if status != nil && !status.Valid() {
		return nil, apperrors.ErrInvalidBetStatus
	}

	analysis, err := s.analyzer.analyze(ctx)
	if err != nil {
		return nil, err
	}

	summaries := analysis.Summaries
	if status != nil {
		summaries = analysis.Filter(*status)
	}

	result := pagination.Slice(summaries, page)
	return &result, nil
}

// GetBetSummary returns one bet with its derived financials.
func (s *betService) GetBetSummary(ctx context.Context, id string) (*engine.Summary, error) {
	analysis, err := s.analyzer.analyze(ctx)
	if err != nil {
		return nil, err
	}
	summary, ok := analysis.Summary(id)
	if !ok {
		return nil, apperrors.ErrBetNotFound
	}
	return &summary, nil
}

// GetBetFinancials returns only the derived numbers for one bet.
func (s *betService) GetBetFinancials(ctx context.Context, id string) (*engine.Financials, error) {
	summary, err := s.GetBetSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	fin := summary.Financials()
	return &fin, nil
}

// GetRootBets lists stored bets without a parent, oldest first.
func (s *betService) GetRootBets(ctx context.Context) ([]models.Bet, error) {
	var bets []models.Bet
	if err := s.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("created_at ASC, id ASC").
		Find(&bets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if bets == nil {
		bets = []models.Bet{}
	}
	return bets, nil
}

// GetFullTree returns the visible forest.
func (s *betService) GetFullTree(ctx context.Context) ([]*engine.TreeNode, error) {
	analysis, err := s.analyzer.analyze(ctx)
	if err != nil {
		return nil, err
	}
	return engine.BuildForest(analysis), nil
}

// GetSubtree returns the visible subtree rooted at id.
func (s *betService) GetSubtree(ctx context.Context, id string) (*engine.TreeNode, error) {
	forest, err := s.GetFullTree(ctx)
	if err != nil {
		return nil, err
	}
	node := engine.FindSubtree(forest, id)
	if node == nil {
		return nil, apperrors.ErrBetNotFound
	}
	return node, nil
}
