package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordSaleRequest represents a record sale request. Amount is never
// accepted from the client; it is derived from quantity and the shift's
// frozen rate.
type RecordSaleRequest struct {
	ShiftID       uuid.UUID       `json:"shift_id" binding:"required"`
	NozzleID      uuid.UUID       `json:"nozzle_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	PaymentMethod int             `json:"payment_method" binding:"min=0,max=2"`
	CustomerName  *string         `json:"customer_name" binding:"omitempty,max=255"`
	VehicleNumber *string         `json:"vehicle_number" binding:"omitempty,max=50"`
	Notes         *string         `json:"notes"`
}

// VoidSaleRequest represents a void sale request
type VoidSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=3"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	ShiftID       string `form:"shift_id"`
	NozzleID      string `form:"nozzle_id"`
	PaymentMethod *int   `form:"payment_method"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	IncludeVoided bool   `form:"include_voided"`
}
