package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"betmetric/internal/engine"
	"betmetric/internal/models"
	"betmetric/internal/pagination"
)

// BetCreateInput carries the fields of a new bet. An empty Status means ACTIVE.
type BetCreateInput struct {
	Name        string
	Description *string
	Budget      decimal.Decimal
	Status      models.BetStatus
	Flagged     bool
	ParentID    *string
}

// BetUpdateInput carries a partial update. Nil fields are left unchanged.
// A ParentID pointing at "" detaches the bet and makes it a root.
type BetUpdateInput struct {
	Name        *string
	Description *string
	Budget      *decimal.Decimal
	Status      *models.BetStatus
	Flagged     *bool
	ParentID    *string
}

// BetServicer defines the contract for bet-related business logic.
type BetServicer interface {
	CreateBet(ctx context.Context, in BetCreateInput) (*models.Bet, error)
	UpdateBet(ctx context.Context, id string, in BetUpdateInput) (*models.Bet, error)
	MarkLost(ctx context.Context, id string) (*models.Bet, error)
	GetBetSummaries(ctx context.Context, page pagination.PageRequest, status *models.BetStatus) (*pagination.PageResponse[engine.Summary], error)
	GetBetSummary(ctx context.Context, id string) (*engine.Summary, error)
	GetBetFinancials(ctx context.Context, id string) (*engine.Financials, error)
	GetRootBets(ctx context.Context) ([]models.Bet, error)
	GetFullTree(ctx context.Context) ([]*engine.TreeNode, error)
	GetSubtree(ctx context.Context, id string) (*engine.TreeNode, error)
}

// TransactionCreateInput carries the fields of a new transaction. A nil Date
// means now.
type TransactionCreateInput struct {
	BetID       string
	Amount      decimal.Decimal
	Type        models.TransactionType
	Description string
	Source      *string
	Date        *time.Time
}

// TransactionView is a transaction with the name of the bet it belongs to.
type TransactionView struct {
	models.Transaction
	BetName string `json:"bet_name"`
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	BetID    *string
	Type     *models.TransactionType
	FromDate *time.Time
	ToDate   *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, in TransactionCreateInput) (*TransactionView, error)
	GetTransactions(ctx context.Context, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[TransactionView], error)
	GetTransactionByID(ctx context.Context, id string) (*TransactionView, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// MetricsServicer defines the contract for portfolio-level metrics.
type MetricsServicer interface {
	GetSummaryMetrics(ctx context.Context) (*engine.PortfolioSummary, error)
}

// SweepResult reports what one classification sweep did.
type SweepResult struct {
	Bets        int                `json:"bets"`
	Transitions []StatusTransition `json:"transitions"`
	RanAt       time.Time          `json:"ran_at"`
}

// StatusTransition is a committed automatic status change.
type StatusTransition struct {
	BetID string           `json:"bet_id"`
	From  models.BetStatus `json:"from"`
	To    models.BetStatus `json:"to"`
}

// SweepServicer defines the contract for the background classification pass.
type SweepServicer interface {
	Sweep(ctx context.Context) (*SweepResult, error)
}
