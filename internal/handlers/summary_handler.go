package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"spendwise/internal/engine"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// SummaryHandler serves aggregated budget figures.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// parsePeriodQuery reads "period", defaulting to this_month.
func parsePeriodQuery(c *gin.Context) (engine.Period, error) {
	v := c.DefaultQuery("period", string(engine.ThisMonth))
	p, err := engine.ParsePeriod(v)
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidPeriod, "unknown period "+strconv.Quote(v))
	}
	return p, nil
}

// GetDashboard handles the window summary for a period.
// @Summary     Get dashboard
// @Description Totals and per-month figures for a period relative to the current month
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       year   query int    false "Year (default current year)"
// @Param       period query string false "this_month, last_month, past_3_months, past_6_months or entire_year (default this_month)"
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/dashboard [get]
func (h *SummaryHandler) GetDashboard(c *gin.Context) {
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
	period, err := parsePeriodQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.summaryService.GetDashboard(c.Request.Context(), userID, year, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetWindow handles aggregation over an explicit list of months.
// @Summary     Get window summary
// @Description Totals and per-month figures for a comma separated list of months
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       year   query int    false "Year (default current year)"
// @Param       months query string true  "Months, e.g. 1,2,3"
// @Success     200 {object} engine.WindowFigure "Window"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/window [get]
func (h *SummaryHandler) GetWindow(c *gin.Context) {
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
	months, err := parseMonthList(c.Query("months"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	figure, err := h.summaryService.GetWindow(c.Request.Context(), userID, year, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, figure)
}

// GetMonth handles the detail view of one month.
// @Summary     Get month detail
// @Description Figures of one month with its expenses, resolved fixed expenses and income override flag
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       month path  int true  "Month (1-12)"
// @Param       year  query int false "Year (default current year)"
// @Success     200 {object} services.MonthDetail "Month detail"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/months/{month} [get]
func (h *SummaryHandler) GetMonth(c *gin.Context) {
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

	detail, err := h.summaryService.GetMonth(c.Request.Context(), userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetChart handles the plotting series for a period.
// @Summary     Get chart series
// @Description Per-month spent, income and remaining in plotting order
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       year   query int    false "Year (default current year)"
// @Param       period query string false "Period (default this_month)"
// @Success     200 {object} services.Chart "Chart"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/chart [get]
func (h *SummaryHandler) GetChart(c *gin.Context) {
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
	period, err := parsePeriodQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chart, err := h.summaryService.GetChart(c.Request.Context(), userID, year, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, chart)
}

// GetYear handles the whole-year summary.
// @Summary     Get year summary
// @Description Twelve monthly figures plus yearly expenses and totals
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       year path int true "Year"
// @Success     200 {object} engine.YearFigure "Year"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/years/{year} [get]
func (h *SummaryHandler) GetYear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
		return
	}

	figure, err := h.summaryService.GetYear(c.Request.Context(), userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, figure)
}
