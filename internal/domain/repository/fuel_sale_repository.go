package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"github.com/stationhq/fuelops-api/pkg/pagination"
)

// SaleFilterParams contains filtering parameters for fuel sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	ShiftID       *uuid.UUID
	NozzleID      *uuid.UUID
	PaymentMethod *enum.PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
	IncludeVoided bool
}

// FuelSaleRepository defines the interface for fuel sale data operations
type FuelSaleRepository interface {
	Create(ctx context.Context, sale *entity.FuelSale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelSale, error)
	// NextSaleNumber allocates the next sequential number for the tenant
	// and day. The unique index on (tenant, date, number) is the backstop:
	// two racing allocations cannot both commit, the second insert fails
	// and the whole transaction rolls back.
	NextSaleNumber(ctx context.Context, saleDate time.Time) (int, error)
	// MarkVoided flags the sale; the row itself is never deleted.
	MarkVoided(ctx context.Context, id uuid.UUID, reason string, actor uuid.UUID, at time.Time) error
	// SumQuantityByShiftNozzle totals sale volume on one nozzle within one
	// shift. Voided sales still moved the meter, so callers choose whether
	// to include them.
	SumQuantityByShiftNozzle(ctx context.Context, shiftID, nozzleID uuid.UUID, includeVoided bool) (decimal.Decimal, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.FuelSale, int64, error)
}
