package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
)

// NozzleRepository defines the interface for nozzle data operations. The
// meter ledger is the only caller of UpdateMeterReading; everything else
// reads.
type NozzleRepository interface {
	Create(ctx context.Context, nozzle *entity.Nozzle) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Nozzle, error)
	// GetForUpdate loads the nozzle row under a row-level write lock. Must
	// be called inside a TxManager transaction; the lock serializes
	// concurrent meter advances on the same nozzle across server
	// processes.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Nozzle, error)
	Update(ctx context.Context, nozzle *entity.Nozzle) error
	// UpdateMeterReading writes the cumulative meter value. Monotonicity is
	// the meter ledger's job; the repository just persists.
	UpdateMeterReading(ctx context.Context, id uuid.UUID, reading decimal.Decimal) error
	ListByMachine(ctx context.Context, machineID uuid.UUID) ([]entity.Nozzle, error)
	ListActiveByMachine(ctx context.Context, machineID uuid.UUID) ([]entity.Nozzle, error)
	List(ctx context.Context) ([]entity.Nozzle, error)
}
