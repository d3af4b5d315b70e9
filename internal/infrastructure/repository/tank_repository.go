package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	domainRepo "github.com/stationhq/fuelops-api/internal/domain/repository"
	"github.com/stationhq/fuelops-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tankRepository struct {
	db *gorm.DB
}

// NewTankRepository creates a new tank repository
func NewTankRepository(db *gorm.DB) domainRepo.TankRepository {
	return &tankRepository{db: db}
}

func (r *tankRepository) Create(ctx context.Context, tank *entity.Tank) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(tank).Error
}

func (r *tankRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tank, error) {
	var tank entity.Tank
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("FuelType").
		First(&tank, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tank, nil
}

// GetForUpdate takes a SELECT ... FOR UPDATE on the tank row. One tank backs
// many nozzles across machines, so every ledger append serializes here.
func (r *tankRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Tank, error) {
	var tank entity.Tank
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(TenantScope(ctx)).
		First(&tank, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tank, nil
}

func (r *tankRepository) Update(ctx context.Context, tank *entity.Tank) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(tank).Error
}

func (r *tankRepository) UpdateStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.Tank{}).
		Scopes(TenantScope(ctx)).
		Where("id = ?", id).
		Update("current_stock", stock).Error
}

func (r *tankRepository) List(ctx context.Context) ([]entity.Tank, error) {
	var tanks []entity.Tank
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("FuelType").
		Order("name ASC").
		Find(&tanks).Error
	return tanks, err
}

func (r *tankRepository) ListLow(ctx context.Context) ([]entity.Tank, error) {
	var tanks []entity.Tank
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("current_stock <= minimum_level").
		Preload("FuelType").
		Find(&tanks).Error
	return tanks, err
}

type stockEntryRepository struct {
	db *gorm.DB
}

// NewStockEntryRepository creates a new stock entry repository
func NewStockEntryRepository(db *gorm.DB) domainRepo.StockEntryRepository {
	return &stockEntryRepository{db: db}
}

func (r *stockEntryRepository) Create(ctx context.Context, entry *entity.StockEntry) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(entry).Error
}

func (r *stockEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockEntry, error) {
	var entry entity.StockEntry
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *stockEntryRepository) GetSaleDebit(ctx context.Context, fuelSaleID uuid.UUID) (*entity.StockEntry, error) {
	var entry entity.StockEntry
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("fuel_sale_id = ? AND type = ?", fuelSaleID, enum.StockEntryTypeStockOut).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *stockEntryRepository) ListByTank(ctx context.Context, tankID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockEntry, int64, error) {
	var entries []entity.StockEntry
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.StockEntry{}).
		Scopes(TenantScope(ctx)).
		Where("tank_id = ?", tankID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&entries).Error

	return entries, total, err
}
