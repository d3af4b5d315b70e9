package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	domainRepo "github.com/stationhq/fuelops-api/internal/domain/repository"
	"gorm.io/gorm"
)

type machineRepository struct {
	db *gorm.DB
}

// NewMachineRepository creates a new machine repository
func NewMachineRepository(db *gorm.DB) domainRepo.MachineRepository {
	return &machineRepository{db: db}
}

func (r *machineRepository) Create(ctx context.Context, machine *entity.Machine) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(machine).Error
}

func (r *machineRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Machine, error) {
	var machine entity.Machine
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&machine, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *machineRepository) Update(ctx context.Context, machine *entity.Machine) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(machine).Error
}

func (r *machineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Delete(&entity.Machine{}, "id = ?", id).Error
}

func (r *machineRepository) List(ctx context.Context) ([]entity.Machine, error) {
	var machines []entity.Machine
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Order("name ASC").
		Find(&machines).Error
	return machines, err
}

func (r *machineRepository) GetWithNozzles(ctx context.Context, id uuid.UUID) (*entity.Machine, error) {
	var machine entity.Machine
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Nozzles", "is_active = ?", true).
		Preload("Nozzles.FuelType").
		First(&machine, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

type fuelTypeRepository struct {
	db *gorm.DB
}

// NewFuelTypeRepository creates a new fuel type repository
func NewFuelTypeRepository(db *gorm.DB) domainRepo.FuelTypeRepository {
	return &fuelTypeRepository{db: db}
}

func (r *fuelTypeRepository) Create(ctx context.Context, fuelType *entity.FuelType) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(fuelType).Error
}

func (r *fuelTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelType, error) {
	var fuelType entity.FuelType
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&fuelType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fuelType, nil
}

func (r *fuelTypeRepository) List(ctx context.Context) ([]entity.FuelType, error) {
	var fuelTypes []entity.FuelType
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Order("name ASC").
		Find(&fuelTypes).Error
	return fuelTypes, err
}

type fuelRateRepository struct {
	db *gorm.DB
}

// NewFuelRateRepository creates a new fuel rate repository
func NewFuelRateRepository(db *gorm.DB) domainRepo.FuelRateRepository {
	return &fuelRateRepository{db: db}
}

func (r *fuelRateRepository) Create(ctx context.Context, rate *entity.FuelRate) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(rate).Error
}

func (r *fuelRateRepository) GetEffectiveRate(ctx context.Context, fuelTypeID uuid.UUID, asOf time.Time) (*entity.FuelRate, error) {
	var rate entity.FuelRate
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("fuel_type_id = ? AND effective_from <= ? AND (effective_to IS NULL OR effective_to > ?)",
			fuelTypeID, asOf, asOf).
		Order("effective_from DESC").
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *fuelRateRepository) CloseCurrentWindow(ctx context.Context, fuelTypeID uuid.UUID, at time.Time) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.FuelRate{}).
		Scopes(TenantScope(ctx)).
		Where("fuel_type_id = ? AND effective_to IS NULL", fuelTypeID).
		Update("effective_to", at).Error
}

func (r *fuelRateRepository) ListByFuelType(ctx context.Context, fuelTypeID uuid.UUID) ([]entity.FuelRate, error) {
	var rates []entity.FuelRate
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("fuel_type_id = ?", fuelTypeID).
		Order("effective_from DESC").
		Find(&rates).Error
	return rates, err
}
