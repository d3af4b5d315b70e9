package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	domainRepo "github.com/stationhq/fuelops-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type nozzleRepository struct {
	db *gorm.DB
}

// NewNozzleRepository creates a new nozzle repository
func NewNozzleRepository(db *gorm.DB) domainRepo.NozzleRepository {
	return &nozzleRepository{db: db}
}

func (r *nozzleRepository) Create(ctx context.Context, nozzle *entity.Nozzle) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(nozzle).Error
}

func (r *nozzleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Nozzle, error) {
	var nozzle entity.Nozzle
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&nozzle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &nozzle, nil
}

// GetForUpdate takes a SELECT ... FOR UPDATE on the nozzle row. The caller
// must be inside a transaction; the lock is what serializes two sales (or a
// sale and a shift close) racing on the same meter.
func (r *nozzleRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Nozzle, error) {
	var nozzle entity.Nozzle
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(TenantScope(ctx)).
		First(&nozzle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &nozzle, nil
}

func (r *nozzleRepository) Update(ctx context.Context, nozzle *entity.Nozzle) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(nozzle).Error
}

func (r *nozzleRepository) UpdateMeterReading(ctx context.Context, id uuid.UUID, reading decimal.Decimal) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.Nozzle{}).
		Scopes(TenantScope(ctx)).
		Where("id = ?", id).
		Update("current_meter_reading", reading).Error
}

func (r *nozzleRepository) ListByMachine(ctx context.Context, machineID uuid.UUID) ([]entity.Nozzle, error) {
	var nozzles []entity.Nozzle
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("machine_id = ?", machineID).
		Order("name ASC").
		Find(&nozzles).Error
	return nozzles, err
}

func (r *nozzleRepository) ListActiveByMachine(ctx context.Context, machineID uuid.UUID) ([]entity.Nozzle, error) {
	var nozzles []entity.Nozzle
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("machine_id = ? AND is_active = ?", machineID, true).
		Order("name ASC").
		Find(&nozzles).Error
	return nozzles, err
}

func (r *nozzleRepository) List(ctx context.Context) ([]entity.Nozzle, error) {
	var nozzles []entity.Nozzle
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("FuelType").
		Order("name ASC").
		Find(&nozzles).Error
	return nozzles, err
}
