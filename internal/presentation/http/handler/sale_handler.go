package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stationhq/fuelops-api/internal/application/service"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"github.com/stationhq/fuelops-api/internal/domain/repository"
	"github.com/stationhq/fuelops-api/internal/presentation/http/dto/request"
	"github.com/stationhq/fuelops-api/internal/presentation/http/dto/response"
	"github.com/stationhq/fuelops-api/pkg/pagination"
)

// SaleHandler handles fuel sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Record handles recording a fuel sale
// @Summary Record Sale
// @Description Record a dispensing transaction against an active shift
// @Tags sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.RecordSaleRequest true "Sale data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /sales [post]
func (h *SaleHandler) Record(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.RecordSale(c.Request.Context(), &service.RecordSaleInput{
		ShiftID:       req.ShiftID,
		NozzleID:      req.NozzleID,
		Quantity:      req.Quantity,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		CustomerName:  req.CustomerName,
		VehicleNumber: req.VehicleNumber,
		Notes:         req.Notes,
		RecordedBy:    *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", gin.H{"sale": sale})
}

// Void handles voiding a sale
// @Summary Void Sale
// @Description Void a sale, crediting stock back without rolling the meter
// @Tags sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Sale ID"
// @Param request body request.VoidSaleRequest true "Void reason"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /sales/{id}/void [post]
func (h *SaleHandler) Void(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.VoidSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.VoidSale(c.Request.Context(), saleID, req.Reason, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale voided successfully", gin.H{"sale": sale})
}

// Get handles fetching a single sale
// @Summary Get Sale
// @Description Get a fuel sale by ID
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", gin.H{"sale": sale})
}

// List handles listing sales with filters
// @Summary List Sales
// @Description List fuel sales with filters and pagination
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		IncludeVoided: filter.IncludeVoided,
	}
	params.Pagination.Validate()

	if filter.ShiftID != "" {
		if shiftID, err := uuid.Parse(filter.ShiftID); err == nil {
			params.ShiftID = &shiftID
		}
	}
	if filter.NozzleID != "" {
		if nozzleID, err := uuid.Parse(filter.NozzleID); err == nil {
			params.NozzleID = &nozzleID
		}
	}
	if filter.PaymentMethod != nil {
		method := enum.PaymentMethod(*filter.PaymentMethod)
		params.PaymentMethod = &method
	}
	if filter.StartDate != "" {
		if start, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			params.StartDate = &start
		}
	}
	if filter.EndDate != "" {
		if end, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			params.EndDate = &end
		}
	}

	sales, total, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}
