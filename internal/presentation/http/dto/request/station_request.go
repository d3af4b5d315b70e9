package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMachineRequest represents a machine creation request
type CreateMachineRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
	Code string `json:"code" binding:"required,min=1,max=100"`
}

// UpdateMachineRequest represents a machine update request
type UpdateMachineRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Code     *string `json:"code" binding:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"is_active"`
}

// CreateNozzleRequest represents a nozzle creation request
type CreateNozzleRequest struct {
	MachineID      uuid.UUID       `json:"machine_id" binding:"required"`
	FuelTypeID     uuid.UUID       `json:"fuel_type_id" binding:"required"`
	TankID         uuid.UUID       `json:"tank_id" binding:"required"`
	Name           string          `json:"name" binding:"required,min=1,max=100"`
	InitialReading decimal.Decimal `json:"initial_reading"`
}

// UpdateNozzleRequest represents a nozzle update request
type UpdateNozzleRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"is_active"`
}

// CreateTankRequest represents a tank creation request
type CreateTankRequest struct {
	FuelTypeID   uuid.UUID       `json:"fuel_type_id" binding:"required"`
	Name         string          `json:"name" binding:"required,min=1,max=255"`
	Capacity     decimal.Decimal `json:"capacity" binding:"required"`
	OpeningStock decimal.Decimal `json:"opening_stock"`
	MinimumLevel decimal.Decimal `json:"minimum_level"`
}

// UpdateTankRequest represents a tank update request
type UpdateTankRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Capacity     *decimal.Decimal `json:"capacity"`
	MinimumLevel *decimal.Decimal `json:"minimum_level"`
}

// CreateFuelTypeRequest represents a fuel type creation request
type CreateFuelTypeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
	Code string `json:"code" binding:"required,min=1,max=50"`
}

// SetFuelRateRequest represents a rate change request
type SetFuelRateRequest struct {
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	EffectiveFrom *time.Time      `json:"effective_from"`
}
