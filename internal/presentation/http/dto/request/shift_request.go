package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StartShiftRequest represents a start shift request
type StartShiftRequest struct {
	WorkerID  uuid.UUID `json:"worker_id" binding:"required"`
	MachineID uuid.UUID `json:"machine_id" binding:"required"`
	Notes     *string   `json:"notes"`
}

// NozzleClosingRequest is one submitted closing meter reading
type NozzleClosingRequest struct {
	NozzleID       uuid.UUID       `json:"nozzle_id" binding:"required"`
	ClosingReading decimal.Decimal `json:"closing_reading" binding:"required"`
}

// CloseShiftRequest represents a close shift request
type CloseShiftRequest struct {
	Closings        []NozzleClosingRequest `json:"closings" binding:"required,min=1,dive"`
	CashCollected   decimal.Decimal        `json:"cash_collected"`
	CreditSales     decimal.Decimal        `json:"credit_sales"`
	DigitalPayments decimal.Decimal        `json:"digital_payments"`
	Borrowing       decimal.Decimal        `json:"borrowing"`
	Notes           *string                `json:"notes"`
}

// ShiftFilterRequest represents shift filter parameters
type ShiftFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Status    *int   `form:"status"`
	WorkerID  string `form:"worker_id"`
	MachineID string `form:"machine_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
