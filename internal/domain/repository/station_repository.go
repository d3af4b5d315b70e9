package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
)

// MachineRepository defines the interface for dispenser machine data operations
type MachineRepository interface {
	Create(ctx context.Context, machine *entity.Machine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Machine, error)
	Update(ctx context.Context, machine *entity.Machine) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Machine, error)
	GetWithNozzles(ctx context.Context, id uuid.UUID) (*entity.Machine, error)
}

// FuelTypeRepository defines the interface for fuel type data operations
type FuelTypeRepository interface {
	Create(ctx context.Context, fuelType *entity.FuelType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelType, error)
	List(ctx context.Context) ([]entity.FuelType, error)
}

// FuelRateRepository is the rate-history boundary: the engine only ever asks
// for the rate effective at a point in time. The rate-history writer keeps
// windows tiling the timeline so exactly one row covers any timestamp.
type FuelRateRepository interface {
	Create(ctx context.Context, rate *entity.FuelRate) error
	// GetEffectiveRate returns the rate whose window contains asOf
	// (EffectiveFrom <= asOf < EffectiveTo, unset EffectiveTo open-ended),
	// or nil when no window covers it.
	GetEffectiveRate(ctx context.Context, fuelTypeID uuid.UUID, asOf time.Time) (*entity.FuelRate, error)
	// CloseCurrentWindow sets EffectiveTo on the open window, if any.
	CloseCurrentWindow(ctx context.Context, fuelTypeID uuid.UUID, at time.Time) error
	ListByFuelType(ctx context.Context, fuelTypeID uuid.UUID) ([]entity.FuelRate, error)
}
