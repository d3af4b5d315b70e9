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

// ShiftHandler handles shift lifecycle HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// Start handles opening a shift
// @Summary Start Shift
// @Description Open a shift for a worker on a machine, freezing opening readings and rates
// @Tags shifts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.StartShiftRequest true "Start shift data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /shifts [post]
func (h *ShiftHandler) Start(c *gin.Context) {
	var req request.StartShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shift, err := h.shiftService.StartShift(c.Request.Context(), &service.StartShiftInput{
		WorkerID:  req.WorkerID,
		MachineID: req.MachineID,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift started successfully", gin.H{"shift": shift})
}

// Close handles settling a shift
// @Summary Close Shift
// @Description Close a shift with closing readings and settlement amounts
// @Tags shifts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param request body request.CloseShiftRequest true "Close shift data"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /shifts/{id}/close [post]
func (h *ShiftHandler) Close(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	closings := make([]service.NozzleClosing, 0, len(req.Closings))
	for _, cl := range req.Closings {
		closings = append(closings, service.NozzleClosing{
			NozzleID:       cl.NozzleID,
			ClosingReading: cl.ClosingReading,
		})
	}

	shift, err := h.shiftService.CloseShift(c.Request.Context(), &service.CloseShiftInput{
		ShiftID:         shiftID,
		Closings:        closings,
		CashCollected:   req.CashCollected,
		CreditSales:     req.CreditSales,
		DigitalPayments: req.DigitalPayments,
		Borrowing:       req.Borrowing,
		Notes:           req.Notes,
		ClosedBy:        *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift closed successfully", gin.H{"shift": shift})
}

// Get handles fetching a single shift with its nozzle readings
// @Summary Get Shift
// @Description Get a shift with its nozzle readings
// @Tags shifts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /shifts/{id} [get]
func (h *ShiftHandler) Get(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	shift, err := h.shiftService.GetShift(c.Request.Context(), shiftID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift retrieved successfully", gin.H{"shift": shift})
}

// GetActive handles fetching the current user's active shift
// @Summary Get Active Shift
// @Description Get the authenticated worker's active shift
// @Tags shifts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /shifts/active [get]
func (h *ShiftHandler) GetActive(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	workerID := *userID
	if raw := c.Query("worker_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid worker ID")
			return
		}
		workerID = parsed
	}

	shift, err := h.shiftService.GetActiveShift(c.Request.Context(), workerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active shift retrieved successfully", gin.H{"shift": shift})
}

// List handles listing shifts with filters
// @Summary List Shifts
// @Description List shifts with filters and pagination
// @Tags shifts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /shifts [get]
func (h *ShiftHandler) List(c *gin.Context) {
	var filter request.ShiftFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ShiftFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}
	params.Pagination.Validate()

	if filter.Status != nil {
		status := enum.ShiftStatus(*filter.Status)
		params.Status = &status
	}
	if filter.WorkerID != "" {
		if workerID, err := uuid.Parse(filter.WorkerID); err == nil {
			params.WorkerID = &workerID
		}
	}
	if filter.MachineID != "" {
		if machineID, err := uuid.Parse(filter.MachineID); err == nil {
			params.MachineID = &machineID
		}
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

	shifts, total, err := h.shiftService.ListShifts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(shifts,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Shifts retrieved successfully", result)
}
