package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stationhq/fuelops-api/internal/application/service"
	"github.com/stationhq/fuelops-api/internal/presentation/http/dto/request"
	"github.com/stationhq/fuelops-api/internal/presentation/http/dto/response"
	"github.com/stationhq/fuelops-api/pkg/pagination"
)

// StockHandler handles stock ledger HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// StockIn handles recording a fuel delivery
// @Summary Record Stock In
// @Description Record a fuel delivery into a tank
// @Tags stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.StockInRequest true "Delivery data"
// @Success 201 {object} response.APIResponse
// @Router /stock/in [post]
func (h *StockHandler) StockIn(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.stockService.RecordStockIn(c.Request.Context(), &service.StockInInput{
		TankID:     req.TankID,
		Quantity:   req.Quantity,
		Reference:  req.Reference,
		Notes:      req.Notes,
		RecordedBy: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock delivery recorded successfully", gin.H{"entry": entry})
}

// Adjust handles a manual stock correction
// @Summary Record Stock Adjustment
// @Description Record a manual stock correction against a tank
// @Tags stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.StockAdjustmentRequest true "Adjustment data"
// @Success 201 {object} response.APIResponse
// @Router /stock/adjustments [post]
func (h *StockHandler) Adjust(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.stockService.RecordAdjustment(c.Request.Context(), &service.AdjustmentInput{
		TankID:     req.TankID,
		Quantity:   req.Quantity,
		Notes:      &req.Notes,
		RecordedBy: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock adjustment recorded successfully", gin.H{"entry": entry})
}

// Transfer handles a tank-to-tank transfer
// @Summary Transfer Stock
// @Description Move fuel between two tanks of the same fuel type
// @Tags stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.StockTransferRequest true "Transfer data"
// @Success 201 {object} response.APIResponse
// @Router /stock/transfers [post]
func (h *StockHandler) Transfer(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.StockTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entries, err := h.stockService.TransferStock(c.Request.Context(), &service.TransferInput{
		FromTankID: req.FromTankID,
		ToTankID:   req.ToTankID,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
		RecordedBy: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock transferred successfully", gin.H{"entries": entries})
}

// ListEntries handles listing a tank's ledger
// @Summary List Stock Entries
// @Description List a tank's stock ledger entries, newest first
// @Tags stock
// @Security BearerAuth
// @Produce json
// @Param id path string true "Tank ID"
// @Success 200 {object} response.APIResponse
// @Router /tanks/{id}/entries [get]
func (h *StockHandler) ListEntries(c *gin.Context) {
	tankID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tank ID")
		return
	}

	var filter struct {
		Page    int `form:"page"`
		PerPage int `form:"per_page"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	params.Validate()

	entries, total, err := h.stockService.ListEntries(c.Request.Context(), tankID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(entries,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Stock entries retrieved successfully", result)
}
