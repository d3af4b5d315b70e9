package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stationhq/fuelops-api/internal/application/service"
	"github.com/stationhq/fuelops-api/internal/presentation/http/dto/request"
	"github.com/stationhq/fuelops-api/internal/presentation/http/dto/response"
)

// StationHandler handles forecourt configuration HTTP requests: machines,
// nozzles, tanks, fuel types and rates.
type StationHandler struct {
	stationService *service.StationService
}

// NewStationHandler creates a new station handler
func NewStationHandler(stationService *service.StationService) *StationHandler {
	return &StationHandler{stationService: stationService}
}

// CreateMachine handles machine creation
func (h *StationHandler) CreateMachine(c *gin.Context) {
	var req request.CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	machine, err := h.stationService.CreateMachine(c.Request.Context(), &service.CreateMachineInput{
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Machine created successfully", gin.H{"machine": machine})
}

// UpdateMachine handles machine updates
func (h *StationHandler) UpdateMachine(c *gin.Context) {
	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid machine ID")
		return
	}

	var req request.UpdateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	machine, err := h.stationService.UpdateMachine(c.Request.Context(), machineID, &service.UpdateMachineInput{
		Name:     req.Name,
		Code:     req.Code,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Machine updated successfully", gin.H{"machine": machine})
}

// GetMachine handles fetching a machine with its nozzles
func (h *StationHandler) GetMachine(c *gin.Context) {
	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid machine ID")
		return
	}

	machine, err := h.stationService.GetMachine(c.Request.Context(), machineID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Machine retrieved successfully", gin.H{"machine": machine})
}

// ListMachines handles listing machines
func (h *StationHandler) ListMachines(c *gin.Context) {
	machines, err := h.stationService.ListMachines(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Machines retrieved successfully", gin.H{"machines": machines})
}

// DeleteMachine handles retiring a machine
func (h *StationHandler) DeleteMachine(c *gin.Context) {
	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid machine ID")
		return
	}

	if err := h.stationService.DeleteMachine(c.Request.Context(), machineID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Machine deleted successfully", nil)
}

// CreateNozzle handles nozzle creation
func (h *StationHandler) CreateNozzle(c *gin.Context) {
	var req request.CreateNozzleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	nozzle, err := h.stationService.CreateNozzle(c.Request.Context(), &service.CreateNozzleInput{
		MachineID:      req.MachineID,
		FuelTypeID:     req.FuelTypeID,
		TankID:         req.TankID,
		Name:           req.Name,
		InitialReading: req.InitialReading,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Nozzle created successfully", gin.H{"nozzle": nozzle})
}

// UpdateNozzle handles nozzle updates
func (h *StationHandler) UpdateNozzle(c *gin.Context) {
	nozzleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid nozzle ID")
		return
	}

	var req request.UpdateNozzleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	nozzle, err := h.stationService.UpdateNozzle(c.Request.Context(), nozzleID, &service.UpdateNozzleInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Nozzle updated successfully", gin.H{"nozzle": nozzle})
}

// ListNozzles handles listing nozzles
func (h *StationHandler) ListNozzles(c *gin.Context) {
	nozzles, err := h.stationService.ListNozzles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Nozzles retrieved successfully", gin.H{"nozzles": nozzles})
}

// CreateTank handles tank creation
func (h *StationHandler) CreateTank(c *gin.Context) {
	var req request.CreateTankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tank, err := h.stationService.CreateTank(c.Request.Context(), &service.CreateTankInput{
		FuelTypeID:   req.FuelTypeID,
		Name:         req.Name,
		Capacity:     req.Capacity,
		OpeningStock: req.OpeningStock,
		MinimumLevel: req.MinimumLevel,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tank created successfully", gin.H{"tank": tank})
}

// UpdateTank handles tank configuration updates
func (h *StationHandler) UpdateTank(c *gin.Context) {
	tankID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tank ID")
		return
	}

	var req request.UpdateTankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tank, err := h.stationService.UpdateTank(c.Request.Context(), tankID, &service.UpdateTankInput{
		Name:         req.Name,
		Capacity:     req.Capacity,
		MinimumLevel: req.MinimumLevel,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tank updated successfully", gin.H{"tank": tank})
}

// GetTank handles fetching a tank
func (h *StationHandler) GetTank(c *gin.Context) {
	tankID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tank ID")
		return
	}

	tank, err := h.stationService.GetTank(c.Request.Context(), tankID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tank retrieved successfully", gin.H{"tank": tank})
}

// ListTanks handles listing tanks
func (h *StationHandler) ListTanks(c *gin.Context) {
	if c.Query("low") == "true" {
		tanks, err := h.stationService.ListLowTanks(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Low tanks retrieved successfully", gin.H{"tanks": tanks})
		return
	}

	tanks, err := h.stationService.ListTanks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tanks retrieved successfully", gin.H{"tanks": tanks})
}

// CreateFuelType handles fuel type creation
func (h *StationHandler) CreateFuelType(c *gin.Context) {
	var req request.CreateFuelTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	fuelType, err := h.stationService.CreateFuelType(c.Request.Context(), &service.CreateFuelTypeInput{
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fuel type created successfully", gin.H{"fuel_type": fuelType})
}

// ListFuelTypes handles listing fuel types
func (h *StationHandler) ListFuelTypes(c *gin.Context) {
	fuelTypes, err := h.stationService.ListFuelTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fuel types retrieved successfully", gin.H{"fuel_types": fuelTypes})
}

// SetFuelRate handles opening a new rate window for a fuel type
func (h *StationHandler) SetFuelRate(c *gin.Context) {
	fuelTypeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fuel type ID")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SetFuelRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rate, err := h.stationService.SetFuelRate(c.Request.Context(), &service.SetRateInput{
		FuelTypeID:    fuelTypeID,
		Rate:          req.Rate,
		EffectiveFrom: req.EffectiveFrom,
		SetBy:         *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fuel rate set successfully", gin.H{"rate": rate})
}

// ListFuelRates handles listing a fuel type's rate history
func (h *StationHandler) ListFuelRates(c *gin.Context) {
	fuelTypeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fuel type ID")
		return
	}

	rates, err := h.stationService.ListFuelRates(c.Request.Context(), fuelTypeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fuel rates retrieved successfully", gin.H{"rates": rates})
}

// GetEffectiveRate handles fetching the currently effective rate
func (h *StationHandler) GetEffectiveRate(c *gin.Context) {
	fuelTypeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fuel type ID")
		return
	}

	rate, err := h.stationService.GetEffectiveRate(c.Request.Context(), fuelTypeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Effective rate retrieved successfully", gin.H{"rate": rate})
}
