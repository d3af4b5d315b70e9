package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/pkg/pagination"
)

// TankRepository defines the interface for tank data operations
type TankRepository interface {
	Create(ctx context.Context, tank *entity.Tank) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tank, error)
	// GetForUpdate loads the tank row under a row-level write lock. Must be
	// called inside a TxManager transaction; one tank backs many nozzles,
	// so every debit/credit serializes on this lock to keep the ledger's
	// StockBefore causally accurate.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Tank, error)
	Update(ctx context.Context, tank *entity.Tank) error
	// UpdateStock writes the materialized CurrentStock. Only the stock
	// ledger calls this, in the same transaction as the StockEntry append.
	UpdateStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error
	List(ctx context.Context) ([]entity.Tank, error)
	ListLow(ctx context.Context) ([]entity.Tank, error)
}

// StockEntryRepository defines the interface for the append-only tank ledger
type StockEntryRepository interface {
	Create(ctx context.Context, entry *entity.StockEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockEntry, error)
	// GetSaleDebit returns the StockOut entry a fuel sale generated, if any.
	GetSaleDebit(ctx context.Context, fuelSaleID uuid.UUID) (*entity.StockEntry, error)
	ListByTank(ctx context.Context, tankID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockEntry, int64, error)
}
