package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "betmetric/internal/errors"
	"betmetric/internal/models"
	"betmetric/internal/pagination"
	"betmetric/internal/services"
)

// BetHandler handles bet-related requests.
type BetHandler struct {
	betService services.BetServicer
}

// NewBetHandler creates a new BetHandler.
func NewBetHandler(betService services.BetServicer) *BetHandler {
	return &BetHandler{betService: betService}
}

// CreateBetRequest represents the request payload for creating a bet.
// An empty or missing parent_id creates a root bet.
type CreateBetRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=255"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Budget      decimal.Decimal  `json:"budget" swaggertype:"string" binding:"required,decimal_gt0,money"`
	Status      models.BetStatus `json:"status" binding:"omitempty,bet_status"`
	Flagged     bool             `json:"flagged"`
	ParentID    *string          `json:"parent_id" binding:"omitempty,uuid_or_empty"`
}

// UpdateBetRequest represents a partial update. Omitted fields are unchanged;
// parent_id "" detaches the bet into a root.
type UpdateBetRequest struct {
	Name        *string           `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string           `json:"description" binding:"omitempty,max=1000"`
	Budget      *decimal.Decimal  `json:"budget" swaggertype:"string" binding:"omitempty,decimal_gt0,money"`
	Status      *models.BetStatus `json:"status" binding:"omitempty,bet_status"`
	Flagged     *bool             `json:"flagged"`
	ParentID    *string           `json:"parent_id" binding:"omitempty,uuid_or_empty"`
}

// CreateBet handles the creation of a new bet
// @Summary     Create a bet
// @Description Create a root bet or a child bet funded from its parent's budget
// @Tags        bets
// @Accept      json
// @Produce     json
// @Param       request body CreateBetRequest true "Bet details"
// @Success     201 {object} map[string]models.Bet "Bet created"
// @Failure     400 {object} ErrorResponse "Invalid input, duplicate name or budget exceeded"
// @Failure     404 {object} ErrorResponse "Parent bet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bets [post]
func (h *BetHandler) CreateBet(c *gin.Context) {
	var req CreateBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bet, err := h.betService.CreateBet(c.Request.Context(), services.BetCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Budget:      req.Budget,
		Status:      req.Status,
		Flagged:     req.Flagged,
		ParentID:    req.ParentID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bet": bet})
}

// ListBets handles the retrieval of bet summaries
// @Summary     List bets
// @Description Get a paginated list of bets with rolled-up financials and health, optionally filtered by status
// @Tags        bets
// @Produce     json
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       status    query string false "Filter by status (ACTIVE, DORMANT, ZOMBIE, WON, LOST)"
// @Success     200 {object} pagination.PageResponse[engine.Summary] "Paginated bet summaries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bets [get]
func (h *BetHandler) ListBets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.BetStatus
	if v := c.Query("status"); v != "" {
		s := models.BetStatus(v)
		if !s.Valid() {
			respondWithError(c, apperrors.ErrInvalidBetStatus)
			return
		}
		status = &s
	}

	result, err := h.betService.GetBetSummaries(c.Request.Context(), page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBet handles the retrieval of a single bet summary
// @Summary     Get a bet
// @Description Get one bet with its rolled-up financials and health
// @Tags        bets
// @Produce     json
// @Param       id path string true "Bet ID"
// @Success     200 {object} map[string]engine.Summary "Bet summary"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Bet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bets/{id} [get]
func (h *BetHandler) GetBet(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.betService.GetBetSummary(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bet": summary})
}

// GetBetFinancials handles the retrieval of a bet's financial figures
// @Summary     Get bet financials
// @Description Get direct and rolled-up revenue and expenses, net profit and ROI for one bet
// @Tags        bets
// @Produce     json
// @Param       id path string true "Bet ID"
// @Success     200 {object} map[string]engine.Financials "Bet financials"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Bet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bets/{id}/financials [get]
func (h *BetHandler) GetBetFinancials(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	financials, err := h.betService.GetBetFinancials(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"financials": financials})
}

// GetRootBets handles the retrieval of bets without a parent
// @Summary     List root bets
// @Description Get every bet that has no parent, oldest first
// @Tags        bets
// @Produce     json
// @Success     200 {object} map[string][]models.Bet "Root bets"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bets/root [get]
func (h *BetHandler) GetRootBets(c *gin.Context) {
	bets, err := h.betService.GetRootBets(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bets": bets})
}

// GetTree handles the retrieval of the full bet forest
// @Summary     Get the bet tree
// @Description Get every visible bet nested under its parent. LOST bets and their descendants are hidden.
// @Tags        bets
// @Produce     json
// @Success     200 {object} map[string][]engine.TreeNode "Bet forest"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bets/tree [get]
func (h *BetHandler) GetTree(c *gin.Context) {
	forest, err := h.betService.GetFullTree(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tree": forest})
}

// GetSubtree handles the retrieval of one bet and its descendants
// @Summary     Get a bet subtree
// @Description Get one visible bet with its descendants nested beneath it
// @Tags        bets
// @Produce     json
// @Param       id path string true "Bet ID"
// @Success     200 {object} map[string]engine.TreeNode "Bet subtree"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Bet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bets/tree/{id} [get]
func (h *BetHandler) GetSubtree(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	node, err := h.betService.GetSubtree(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tree": node})
}

// UpdateBet handles partial updates of a bet
// @Summary     Update a bet
// @Description Update any subset of a bet's fields, including moving it under another parent
// @Tags        bets
// @Accept      json
// @Produce     json
// @Param       id      path string           true "Bet ID"
// @Param       request body UpdateBetRequest true "Fields to update"
// @Success     200 {object} map[string]models.Bet "Updated bet"
// @Failure     400 {object} ErrorResponse "Invalid input, cycle or budget exceeded"
// @Failure     404 {object} ErrorResponse "Bet or parent not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bets/{id} [patch]
func (h *BetHandler) UpdateBet(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bet, err := h.betService.UpdateBet(c.Request.Context(), id, services.BetUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Budget:      req.Budget,
		Status:      req.Status,
		Flagged:     req.Flagged,
		ParentID:    req.ParentID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bet": bet})
}

// DeleteBet marks a bet as LOST. Bets are never physically removed.
// @Summary     Mark a bet as lost
// @Description Soft-delete a bet by moving it to LOST. Its history and descendants are kept.
// @Tags        bets
// @Produce     json
// @Param       id path string true "Bet ID"
// @Success     200 {object} map[string]interface{} "Bet marked as lost"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Bet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bets/{id} [delete]
func (h *BetHandler) DeleteBet(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bet, err := h.betService.MarkLost(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bet marked as lost", "bet": bet})
}
