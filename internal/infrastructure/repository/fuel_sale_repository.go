package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	domainRepo "github.com/stationhq/fuelops-api/internal/domain/repository"
	"gorm.io/gorm"
)

type fuelSaleRepository struct {
	db *gorm.DB
}

// NewFuelSaleRepository creates a new fuel sale repository
func NewFuelSaleRepository(db *gorm.DB) domainRepo.FuelSaleRepository {
	return &fuelSaleRepository{db: db}
}

func (r *fuelSaleRepository) Create(ctx context.Context, sale *entity.FuelSale) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(sale).Error
}

func (r *fuelSaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelSale, error) {
	var sale entity.FuelSale
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Nozzle").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// NextSaleNumber computes max+1 for the tenant and day. The composite unique
// index on (tenant_id, sale_date, sale_number) rejects the losing side of a
// race; the caller's transaction rolls back and the client retries.
func (r *fuelSaleRepository) NextSaleNumber(ctx context.Context, saleDate time.Time) (int, error) {
	var next int
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.FuelSale{}).
		Scopes(TenantScope(ctx)).
		Where("sale_date = ?", saleDate).
		Select("COALESCE(MAX(sale_number), 0) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *fuelSaleRepository) MarkVoided(ctx context.Context, id uuid.UUID, reason string, actor uuid.UUID, at time.Time) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.FuelSale{}).
		Scopes(TenantScope(ctx)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_voided":   true,
			"void_reason": reason,
			"voided_by":   actor,
			"voided_at":   at,
		}).Error
}

func (r *fuelSaleRepository) SumQuantityByShiftNozzle(ctx context.Context, shiftID, nozzleID uuid.UUID, includeVoided bool) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.FuelSale{}).
		Scopes(TenantScope(ctx)).
		Where("shift_id = ? AND nozzle_id = ?", shiftID, nozzleID)
	if !includeVoided {
		query = query.Where("is_voided = ?", false)
	}
	err := query.Select("COALESCE(SUM(quantity), 0)").Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *fuelSaleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.FuelSale, int64, error) {
	var sales []entity.FuelSale
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.FuelSale{}).
		Scopes(TenantScope(ctx))

	if params.ShiftID != nil {
		query = query.Where("shift_id = ?", *params.ShiftID)
	}
	if params.NozzleID != nil {
		query = query.Where("nozzle_id = ?", *params.NozzleID)
	}
	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}
	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}
	if !params.IncludeVoided {
		query = query.Where("is_voided = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Nozzle").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}
