package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockInRequest represents a fuel delivery request
type StockInRequest struct {
	TankID    uuid.UUID       `json:"tank_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Reference *string         `json:"reference" binding:"omitempty,max=255"`
	Notes     *string         `json:"notes"`
}

// StockAdjustmentRequest represents a manual stock correction request
type StockAdjustmentRequest struct {
	TankID   uuid.UUID       `json:"tank_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Notes    string          `json:"notes" binding:"required,min=3"`
}

// StockTransferRequest represents a tank-to-tank transfer request
type StockTransferRequest struct {
	FromTankID uuid.UUID       `json:"from_tank_id" binding:"required"`
	ToTankID   uuid.UUID       `json:"to_tank_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Notes      *string         `json:"notes"`
}
