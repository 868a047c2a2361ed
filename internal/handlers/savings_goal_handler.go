package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// SavingsGoalHandler handles savings goal requests.
type SavingsGoalHandler struct {
	savingsGoalService services.SavingsGoalServicer
	auditService       services.AuditServicer
}

// NewSavingsGoalHandler creates a new SavingsGoalHandler.
func NewSavingsGoalHandler(savingsGoalService services.SavingsGoalServicer, auditService services.AuditServicer) *SavingsGoalHandler {
	return &SavingsGoalHandler{savingsGoalService: savingsGoalService, auditService: auditService}
}

// CreateSavingsGoalRequest represents the request payload for creating a goal.
type CreateSavingsGoalRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	TargetAmount decimal.Decimal `json:"target_amount" swaggertype:"string" example:"5000.00" binding:"decimal_gt0"`
	Year         int             `json:"year" binding:"required,min=1,max=9999"`
	Notes        string          `json:"notes" binding:"max=500"`
}

// CreateSavingsGoal handles the creation of a savings goal.
// @Summary     Create a savings goal
// @Description Create an amount to have left over by the end of a year
// @Tags        savings-goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSavingsGoalRequest true "Savings goal"
// @Success     201 {object} models.SavingsGoal "Savings goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals [post]
func (h *SavingsGoalHandler) CreateSavingsGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.savingsGoalService.CreateSavingsGoal(userID, req.Name, req.TargetAmount, req.Year, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SAVINGS_GOAL", "savings_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "target_amount": req.TargetAmount.String(), "year": req.Year})

	c.JSON(http.StatusCreated, gin.H{"savings_goal": goal})
}

// GetSavingsGoals handles listing savings goals.
// @Summary     Get savings goals
// @Description List savings goals, optionally for one year
// @Tags        savings-goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Filter by year"
// @Success     200 {array}  models.SavingsGoal "Savings goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals [get]
func (h *SavingsGoalHandler) GetSavingsGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseOptionalInt(c, "year")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.savingsGoalService.GetUserSavingsGoals(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"savings_goals": goals})
}

// GetSavingsGoalByID handles retrieving a single savings goal.
// @Summary     Get a savings goal
// @Tags        savings-goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Savings goal ID"
// @Success     200 {object} models.SavingsGoal "Savings goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Savings goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals/{id} [get]
func (h *SavingsGoalHandler) GetSavingsGoalByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.savingsGoalService.GetSavingsGoalByID(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"savings_goal": goal})
}

// DeleteSavingsGoal handles deleting a savings goal.
// @Summary     Delete a savings goal
// @Tags        savings-goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Savings goal ID"
// @Success     200 {object} map[string]string "Savings goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Savings goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals/{id} [delete]
func (h *SavingsGoalHandler) DeleteSavingsGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.savingsGoalService.DeleteSavingsGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SAVINGS_GOAL", "savings_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Savings goal deleted successfully"})
}

// GetSavingsGoalProgress handles computing progress towards a goal.
// @Summary     Get savings goal progress
// @Description Compare a goal with what its year leaves over after all expenses
// @Tags        savings-goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Savings goal ID"
// @Success     200 {object} services.SavingsGoalProgress "Progress"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Savings goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals/{id}/progress [get]
func (h *SavingsGoalHandler) GetSavingsGoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.savingsGoalService.GetSavingsGoalProgress(c.Request.Context(), userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
