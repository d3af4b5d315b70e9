package repository

import (
	"context"
	"time"

	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	domainRepo "github.com/stationhq/fuelops-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesRow, error) {
	var rows []domainRepo.DailySalesRow
	since := time.Now().AddDate(0, 0, -days)

	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.FuelSale{}).
		Scopes(TenantScope(ctx)).
		Select("sale_date AS date, COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count").
		Where("is_voided = ? AND sale_date >= ?", false, since).
		Group("sale_date").
		Order("sale_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetSalesByFuelType resolves the fuel type through the nozzle; sale rows
// do not denormalize it.
func (r *reportRepository) GetSalesByFuelType(ctx context.Context, from, to time.Time) ([]domainRepo.FuelTypeSalesRow, error) {
	var rows []domainRepo.FuelTypeSalesRow

	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.FuelSale{}).
		Scopes(TenantScopeOn(ctx, "fuel_sales")).
		Select("nozzles.fuel_type_id AS fuel_type_id, fuel_types.name AS fuel_type_name, COALESCE(SUM(fuel_sales.quantity), 0) AS quantity, COALESCE(SUM(fuel_sales.amount), 0) AS amount").
		Joins("JOIN nozzles ON nozzles.id = fuel_sales.nozzle_id").
		Joins("JOIN fuel_types ON fuel_types.id = nozzles.fuel_type_id").
		Where("fuel_sales.is_voided = ? AND fuel_sales.sale_date >= ? AND fuel_sales.sale_date <= ?", false, from, to).
		Group("nozzles.fuel_type_id, fuel_types.name").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) GetShiftVariances(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.ShiftVarianceRow, error) {
	var rows []domainRepo.ShiftVarianceRow
	if limit <= 0 {
		limit = 20
	}

	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.Shift{}).
		Scopes(TenantScopeOn(ctx, "shifts")).
		Select("shifts.id AS shift_id, users.first_name || ' ' || users.last_name AS worker_name, shifts.shift_date, shifts.total_sales, shifts.variance").
		Joins("JOIN users ON users.id = shifts.worker_id").
		Where("shifts.status = ? AND shifts.shift_date >= ? AND shifts.shift_date <= ?", enum.ShiftStatusClosed, from, to).
		Order("ABS(shifts.variance) DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
