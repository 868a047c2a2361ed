package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// FixedExpenseHandler handles recurring expense and override requests.
type FixedExpenseHandler struct {
	fixedExpenseService services.FixedExpenseServicer
	auditService        services.AuditServicer
}

// NewFixedExpenseHandler creates a new FixedExpenseHandler.
func NewFixedExpenseHandler(fixedExpenseService services.FixedExpenseServicer, auditService services.AuditServicer) *FixedExpenseHandler {
	return &FixedExpenseHandler{fixedExpenseService: fixedExpenseService, auditService: auditService}
}

// FixedExpenseRequest is the payload for creating or replacing a fixed expense.
type FixedExpenseRequest struct {
	Name   string          `json:"name" binding:"required,min=1,max=100"`
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"1200.00" binding:"decimal_gt0"`
	Months []int           `json:"months" binding:"required,min=1,max=12,dive,month"`
	Year   int             `json:"year" binding:"required,min=1,max=9999"`
}

func (r FixedExpenseRequest) input() services.FixedExpenseInput {
	return services.FixedExpenseInput{Name: r.Name, Amount: r.Amount, Months: r.Months, Year: r.Year}
}

// OverrideRequest sets the amount of a fixed expense or income for one month.
// Zero is allowed and waives the month.
type OverrideRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"0" binding:"decimal_gte0"`
	Year   int             `json:"year" binding:"omitempty,min=1,max=9999"`
}

// CreateFixedExpense handles the creation of a new fixed expense.
// @Summary     Create a fixed expense
// @Description Create a recurring expense applied to the given months of a year
// @Tags        fixed-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FixedExpenseRequest true "Fixed expense details"
// @Success     201 {object} models.FixedExpense "Fixed expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-expenses [post]
func (h *FixedExpenseHandler) CreateFixedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fixed, err := h.fixedExpenseService.CreateFixedExpense(userID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_FIXED_EXPENSE", "fixed_expense", fixed.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "amount": req.Amount.String(), "months": req.Months})

	c.JSON(http.StatusCreated, gin.H{"fixed_expense": fixed})
}

// GetFixedExpenses handles listing fixed expenses for a year.
// @Summary     Get fixed expenses
// @Description List fixed expenses of a year with their overrides
// @Tags        fixed-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (default current year)"
// @Success     200 {array}  models.FixedExpense "Fixed expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-expenses [get]
func (h *FixedExpenseHandler) GetFixedExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYearQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fixed, err := h.fixedExpenseService.GetUserFixedExpenses(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fixed_expenses": fixed})
}

// GetFixedExpenseByID handles retrieving a single fixed expense.
// @Summary     Get a fixed expense
// @Description Get a fixed expense with its overrides
// @Tags        fixed-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Fixed expense ID"
// @Success     200 {object} models.FixedExpense "Fixed expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fixed expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-expenses/{id} [get]
func (h *FixedExpenseHandler) GetFixedExpenseByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fixedID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	fixed, err := h.fixedExpenseService.GetFixedExpenseByID(userID, fixedID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fixed_expense": fixed})
}

// UpdateFixedExpense handles replacing a fixed expense.
// @Summary     Update a fixed expense
// @Description Replace the name, amount, months and year of a fixed expense
// @Tags        fixed-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Fixed expense ID"
// @Param       request body FixedExpenseRequest true "Fixed expense details"
// @Success     200 {object} models.FixedExpense "Updated fixed expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fixed expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-expenses/{id} [put]
func (h *FixedExpenseHandler) UpdateFixedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fixedID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fixed, err := h.fixedExpenseService.UpdateFixedExpense(userID, fixedID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_FIXED_EXPENSE", "fixed_expense", fixedID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "amount": req.Amount.String(), "months": req.Months})

	c.JSON(http.StatusOK, gin.H{"fixed_expense": fixed})
}

// DeleteFixedExpense handles deleting a fixed expense.
// @Summary     Delete a fixed expense
// @Description Soft-delete a fixed expense and remove its overrides
// @Tags        fixed-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Fixed expense ID"
// @Success     200 {object} map[string]string "Fixed expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fixed expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-expenses/{id} [delete]
func (h *FixedExpenseHandler) DeleteFixedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fixedID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.fixedExpenseService.DeleteFixedExpense(userID, fixedID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_FIXED_EXPENSE", "fixed_expense", fixedID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Fixed expense deleted successfully"})
}

// SetOverride handles overriding a fixed expense for one month.
// @Summary     Override a fixed expense for a month
// @Description Set the amount charged in one month, replacing any previous override. Year defaults to the fixed expense's year.
// @Tags        fixed-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Fixed expense ID"
// @Param       month   path int             true "Month (1-12)"
// @Param       request body OverrideRequest true "Override amount"
// @Success     200 {object} models.FixedExpenseOverride "Override"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fixed expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-expenses/{id}/overrides/{month} [put]
func (h *FixedExpenseHandler) SetOverride(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fixedID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := parseMonthParam(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	override, err := h.fixedExpenseService.SetOverride(userID, fixedID, month, req.Year, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SET_FIXED_OVERRIDE", "fixed_expense", fixedID, c.ClientIP(),
		map[string]interface{}{"month": month, "year": override.Year, "amount": req.Amount.String()})

	c.JSON(http.StatusOK, gin.H{"override": override})
}

// ClearOverride handles removing a fixed expense override.
// @Summary     Clear a fixed expense override
// @Description Remove the override for one month so the base amount applies again
// @Tags        fixed-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string true  "Fixed expense ID"
// @Param       month path  int    true  "Month (1-12)"
// @Param       year  query int    false "Year (default the fixed expense's year)"
// @Success     200 {object} map[string]string "Override cleared"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fixed expense or override not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-expenses/{id}/overrides/{month} [delete]
func (h *FixedExpenseHandler) ClearOverride(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fixedID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := parseMonthParam(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseOptionalInt(c, "year")
	if err != nil {
		respondWithError(c, err)
		return
	}
	y := 0
	if year != nil {
		y = *year
	}

	if err := h.fixedExpenseService.ClearOverride(userID, fixedID, month, y); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CLEAR_FIXED_OVERRIDE", "fixed_expense", fixedID, c.ClientIP(),
		map[string]interface{}{"month": month, "year": y})

	c.JSON(http.StatusOK, gin.H{"message": "Override cleared successfully"})
}
