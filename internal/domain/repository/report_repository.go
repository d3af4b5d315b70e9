package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailySalesRow represents aggregated non-voided sales for one day
type DailySalesRow struct {
	Date     time.Time
	Quantity decimal.Decimal
	Amount   decimal.Decimal
	Count    int
}

// FuelTypeSalesRow represents non-voided sales aggregated by fuel type
type FuelTypeSalesRow struct {
	FuelTypeID   uuid.UUID
	FuelTypeName string
	Quantity     decimal.Decimal
	Amount       decimal.Decimal
}

// ShiftVarianceRow represents one closed shift's settlement summary
type ShiftVarianceRow struct {
	ShiftID    uuid.UUID
	WorkerName string
	ShiftDate  time.Time
	TotalSales decimal.Decimal
	Variance   decimal.Decimal
}

// ReportRepository defines read-model aggregation queries. The engine is the
// sole writer of the underlying ledgers; reporting only ever reads them.
type ReportRepository interface {
	// GetDailySales returns per-day totals over non-voided sales for the
	// last N days.
	GetDailySales(ctx context.Context, days int) ([]DailySalesRow, error)
	// GetSalesByFuelType returns totals per fuel type between two dates.
	GetSalesByFuelType(ctx context.Context, from, to time.Time) ([]FuelTypeSalesRow, error)
	// GetShiftVariances returns settlement rows for closed shifts between
	// two dates, worst variance first.
	GetShiftVariances(ctx context.Context, from, to time.Time, limit int) ([]ShiftVarianceRow, error)
}
