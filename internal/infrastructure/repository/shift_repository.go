package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	domainRepo "github.com/stationhq/fuelops-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(shift).Error
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(TenantScope(ctx)).
		First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) GetWithReadings(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Readings").
		Preload("Readings.Nozzle").
		Preload("Sales").
		Preload("Worker").
		Preload("Machine").
		First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) GetActiveByWorker(ctx context.Context, workerID uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("worker_id = ? AND status = ?", workerID, enum.ShiftStatusActive).
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) Update(ctx context.Context, shift *entity.Shift) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(shift).Error
}

func (r *shiftRepository) List(ctx context.Context, params *domainRepo.ShiftFilterParams) ([]entity.Shift, int64, error) {
	var shifts []entity.Shift
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.Shift{}).
		Scopes(TenantScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.WorkerID != nil {
		query = query.Where("worker_id = ?", *params.WorkerID)
	}
	if params.MachineID != nil {
		query = query.Where("machine_id = ?", *params.MachineID)
	}
	if params.StartDate != nil {
		query = query.Where("shift_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("shift_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Worker").
		Preload("Machine").
		Order("start_time DESC").
		Find(&shifts).Error

	return shifts, total, err
}

type shiftNozzleReadingRepository struct {
	db *gorm.DB
}

// NewShiftNozzleReadingRepository creates a new shift nozzle reading repository
func NewShiftNozzleReadingRepository(db *gorm.DB) domainRepo.ShiftNozzleReadingRepository {
	return &shiftNozzleReadingRepository{db: db}
}

func (r *shiftNozzleReadingRepository) CreateBatch(ctx context.Context, readings []entity.ShiftNozzleReading) error {
	if len(readings) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(&readings).Error
}

func (r *shiftNozzleReadingRepository) GetByShiftAndNozzle(ctx context.Context, shiftID, nozzleID uuid.UUID) (*entity.ShiftNozzleReading, error) {
	var reading entity.ShiftNozzleReading
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("shift_id = ? AND nozzle_id = ?", shiftID, nozzleID).
		First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

func (r *shiftNozzleReadingRepository) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.ShiftNozzleReading, error) {
	var readings []entity.ShiftNozzleReading
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("shift_id = ?", shiftID).
		Find(&readings).Error
	return readings, err
}

func (r *shiftNozzleReadingRepository) Update(ctx context.Context, reading *entity.ShiftNozzleReading) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(reading).Error
}
