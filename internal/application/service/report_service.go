package service

import (
	"context"
	"time"

	"github.com/stationhq/fuelops-api/internal/domain/repository"
	"github.com/stationhq/fuelops-api/pkg/apperror"
)

// ReportService exposes the reconciliation read models. It only ever reads
// what the shift and stock ledgers wrote.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// GetDailySales returns per-day sale totals for the last N days
func (s *ReportService) GetDailySales(ctx context.Context, days int) ([]repository.DailySalesRow, error) {
	if days <= 0 {
		days = 7
	}
	if days > 365 {
		return nil, apperror.NewValidationMessage("Reporting window cannot exceed one year")
	}
	return s.reportRepo.GetDailySales(ctx, days)
}

// GetSalesByFuelType returns sale totals per fuel type between two dates
func (s *ReportService) GetSalesByFuelType(ctx context.Context, from, to time.Time) ([]repository.FuelTypeSalesRow, error) {
	if to.Before(from) {
		return nil, apperror.NewValidationMessage("End date is before start date")
	}
	return s.reportRepo.GetSalesByFuelType(ctx, from, to)
}

// GetShiftVariances returns settlement rows for closed shifts, worst
// variance first
func (s *ReportService) GetShiftVariances(ctx context.Context, from, to time.Time, limit int) ([]repository.ShiftVarianceRow, error) {
	if to.Before(from) {
		return nil, apperror.NewValidationMessage("End date is before start date")
	}
	return s.reportRepo.GetShiftVariances(ctx, from, to, limit)
}
