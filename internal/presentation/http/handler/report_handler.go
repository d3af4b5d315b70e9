package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stationhq/fuelops-api/internal/application/service"
	"github.com/stationhq/fuelops-api/internal/presentation/http/dto/response"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DailySales handles the daily sales report
// @Summary Daily Sales
// @Description Daily sales totals for the last N days, excluding voided sales
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /reports/daily-sales [get]
func (h *ReportHandler) DailySales(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "Invalid days parameter")
			return
		}
		days = parsed
	}

	rows, err := h.reportService.GetDailySales(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily sales retrieved successfully", gin.H{"daily_sales": rows})
}

// SalesByFuelType handles the per-fuel-type sales breakdown
// @Summary Sales By Fuel Type
// @Description Sales totals grouped by fuel type over a date range
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /reports/sales-by-fuel-type [get]
func (h *ReportHandler) SalesByFuelType(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rows, err := h.reportService.GetSalesByFuelType(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales by fuel type retrieved successfully", gin.H{"sales_by_fuel_type": rows})
}

// ShiftVariances handles the shift variance leaderboard
// @Summary Shift Variances
// @Description Closed shifts ordered by absolute settlement variance
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /reports/shift-variances [get]
func (h *ReportHandler) ShiftVariances(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	rows, err := h.reportService.GetShiftVariances(c.Request.Context(), from, to, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift variances retrieved successfully", gin.H{"shift_variances": rows})
}

// parseDateRange reads from/to query params, defaulting to the last 30 days.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// Make "to" inclusive of the named day
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}
