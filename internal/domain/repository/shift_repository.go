package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"github.com/stationhq/fuelops-api/pkg/pagination"
)

// ShiftFilterParams contains filtering parameters for shift queries
type ShiftFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.ShiftStatus
	WorkerID   *uuid.UUID
	MachineID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// ShiftRepository defines the interface for shift data operations
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	// GetForUpdate loads the shift row under a row-level write lock so a
	// close cannot race another close or a concurrent sale's status check.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	GetWithReadings(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	// GetActiveByWorker returns the worker's Active shift, or nil.
	GetActiveByWorker(ctx context.Context, workerID uuid.UUID) (*entity.Shift, error)
	Update(ctx context.Context, shift *entity.Shift) error
	List(ctx context.Context, params *ShiftFilterParams) ([]entity.Shift, int64, error)
}

// ShiftNozzleReadingRepository defines the interface for per-shift nozzle
// snapshot rows
type ShiftNozzleReadingRepository interface {
	CreateBatch(ctx context.Context, readings []entity.ShiftNozzleReading) error
	GetByShiftAndNozzle(ctx context.Context, shiftID, nozzleID uuid.UUID) (*entity.ShiftNozzleReading, error)
	ListByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.ShiftNozzleReading, error)
	Update(ctx context.Context, reading *entity.ShiftNozzleReading) error
}
