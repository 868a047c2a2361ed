package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

// IncomeHandler handles base income and income override requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// SetIncomeRequest stores a monthly or yearly base income for a year.
type SetIncomeRequest struct {
	Key    models.IncomeKey `json:"key" binding:"required,income_key"`
	Year   int              `json:"year" binding:"required,min=1,max=9999"`
	Amount decimal.Decimal  `json:"amount" swaggertype:"string" example:"3000.00" binding:"decimal_gte0"`
}

// GetIncome handles reading the income configuration of a year.
// @Summary     Get income
// @Description Get the base income values, effective monthly base and overrides of a year
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (default current year)"
// @Success     200 {object} services.IncomeSummary "Income"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
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

	summary, err := h.incomeService.GetIncome(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": summary})
}

// SetIncome handles storing a base income.
// @Summary     Set income
// @Description Store the monthly or yearly base income of a year
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetIncomeRequest true "Income"
// @Success     200 {object} models.Income "Stored income"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [put]
func (h *IncomeHandler) SetIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.SetIncome(userID, req.Key, req.Year, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SET_INCOME", "income", income.ID, c.ClientIP(),
		map[string]interface{}{"key": req.Key, "year": req.Year, "amount": req.Amount.String()})

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// SetIncomeOverride handles overriding the income of one month.
// @Summary     Override income for a month
// @Description Replace the income of one month. Year defaults to the current year.
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month   path int             true "Month (1-12)"
// @Param       request body OverrideRequest true "Override amount"
// @Success     200 {object} models.IncomeOverride "Override"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/overrides/{month} [put]
func (h *IncomeHandler) SetIncomeOverride(c *gin.Context) {
	userID, err := getUserID(c)
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
	year := req.Year
	if year == 0 {
		if year, err = parseYearQuery(c); err != nil {
			respondWithError(c, err)
			return
		}
	}

	override, err := h.incomeService.SetIncomeOverride(userID, month, year, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SET_INCOME_OVERRIDE", "income_override", override.ID, c.ClientIP(),
		map[string]interface{}{"month": month, "year": year, "amount": req.Amount.String()})

	c.JSON(http.StatusOK, gin.H{"override": override})
}

// ClearIncomeOverride handles removing an income override.
// @Summary     Clear an income override
// @Description Remove the income override of one month
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month path  int true  "Month (1-12)"
// @Param       year  query int false "Year (default current year)"
// @Success     200 {object} map[string]string "Override cleared"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Override not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/overrides/{month} [delete]
func (h *IncomeHandler) ClearIncomeOverride(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := parseMonthParam(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYearQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.ClearIncomeOverride(userID, month, year); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CLEAR_INCOME_OVERRIDE", "income_override", "", c.ClientIP(),
		map[string]interface{}{"month": month, "year": year})

	c.JSON(http.StatusOK, gin.H{"message": "Override cleared successfully"})
}
