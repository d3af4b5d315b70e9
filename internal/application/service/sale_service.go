package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/config"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"github.com/stationhq/fuelops-api/internal/domain/repository"
	infraRepo "github.com/stationhq/fuelops-api/internal/infrastructure/repository"
	"github.com/stationhq/fuelops-api/pkg/apperror"
)

// SaleService records and voids fuel sales. A sale moves three ledgers in
// one transaction: the nozzle meter forward, the tank stock down, and the
// numbered sale row in. A void is asymmetric on purpose: stock is credited
// back but the meter stays where it is, because the dispenser counted real
// fuel even if the paperwork was wrong.
type SaleService struct {
	txManager   repository.TxManager
	shiftRepo   repository.ShiftRepository
	readingRepo repository.ShiftNozzleReadingRepository
	saleRepo    repository.FuelSaleRepository
	entryRepo   repository.StockEntryRepository
	meter       *MeterLedger
	stock       *StockService
}

// NewSaleService creates a new sale service
func NewSaleService(
	txManager repository.TxManager,
	shiftRepo repository.ShiftRepository,
	readingRepo repository.ShiftNozzleReadingRepository,
	saleRepo repository.FuelSaleRepository,
	entryRepo repository.StockEntryRepository,
	meter *MeterLedger,
	stock *StockService,
) *SaleService {
	return &SaleService{
		txManager:   txManager,
		shiftRepo:   shiftRepo,
		readingRepo: readingRepo,
		saleRepo:    saleRepo,
		entryRepo:   entryRepo,
		meter:       meter,
		stock:       stock,
	}
}

// RecordSaleInput represents the record sale input
type RecordSaleInput struct {
	ShiftID       uuid.UUID
	NozzleID      uuid.UUID
	Quantity      decimal.Decimal
	PaymentMethod enum.PaymentMethod
	CustomerName  *string
	VehicleNumber *string
	Notes         *string
	RecordedBy    uuid.UUID
}

// RecordSale records one dispensing transaction against an active shift. The
// rate is the one frozen into the shift's nozzle reading at start; amount is
// always quantity times that rate, never client-supplied.
func (s *SaleService) RecordSale(ctx context.Context, input *RecordSaleInput) (*entity.FuelSale, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if !input.Quantity.IsPositive() {
		return nil, apperror.NewValidationMessage("Sale quantity must be positive")
	}
	if !input.PaymentMethod.Valid() {
		return nil, apperror.NewValidationMessage("Unknown payment method")
	}

	var sale *entity.FuelSale
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		shift, err := s.shiftRepo.GetByID(ctx, input.ShiftID)
		if err != nil {
			return err
		}
		if shift == nil {
			return apperror.NewNotFoundError("Shift")
		}
		if !shift.IsActive() {
			return apperror.NewConflictError("Shift is not active")
		}

		reading, err := s.readingRepo.GetByShiftAndNozzle(ctx, shift.ID, input.NozzleID)
		if err != nil {
			return err
		}
		if reading == nil {
			return apperror.NewNotFoundError("Nozzle reading for this shift")
		}

		// Locks the nozzle row, so two tills selling on the same nozzle
		// serialize here and each sale sees the meter the previous one left.
		nozzle, err := s.meter.AdvanceBy(ctx, input.NozzleID, input.Quantity)
		if err != nil {
			return err
		}

		saleNumber, err := s.saleRepo.NextSaleNumber(ctx, shift.ShiftDate)
		if err != nil {
			return err
		}

		amount := input.Quantity.Mul(reading.RateAtShift)
		sale = &entity.FuelSale{
			ID:            uuid.New(),
			TenantID:      tenantID,
			ShiftID:       shift.ID,
			NozzleID:      nozzle.ID,
			SaleDate:      shift.ShiftDate,
			SaleNumber:    saleNumber,
			Quantity:      input.Quantity,
			Rate:          reading.RateAtShift,
			Amount:        amount,
			PaymentMethod: input.PaymentMethod,
			CustomerName:  input.CustomerName,
			VehicleNumber: input.VehicleNumber,
			Notes:         input.Notes,
			RecordedBy:    input.RecordedBy,
		}

		if _, err := s.stock.Debit(ctx, nozzle.TankID, input.Quantity, shift.ID, sale.ID, input.RecordedBy); err != nil {
			return err
		}
		return s.saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// VoidSale marks a sale voided and credits its fuel back to the tank. The
// sale row survives for the audit trail and the nozzle meter is not touched:
// close-of-shift reconciliation counts voided volume as dispensed.
func (s *SaleService) VoidSale(ctx context.Context, saleID uuid.UUID, reason string, actor uuid.UUID) (*entity.FuelSale, error) {
	if reason == "" {
		return nil, apperror.NewValidationMessage("Void reason is required")
	}

	var sale *entity.FuelSale
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.saleRepo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}
		if sale.IsVoided {
			return apperror.NewConflictError("Sale is already voided")
		}

		shift, err := s.shiftRepo.GetByID(ctx, sale.ShiftID)
		if err != nil {
			return err
		}
		if shift == nil || !shift.IsActive() {
			return apperror.NewConflictError("Shift is already settled; void is no longer possible")
		}

		debit, err := s.entryRepo.GetSaleDebit(ctx, sale.ID)
		if err != nil {
			return err
		}
		if debit == nil {
			err := apperror.NewConsistencyError("Sale has no matching stock debit")
			config.LogLedgerAlert("stock", "void", sale.ID.String(), err)
			return err
		}

		if _, err := s.stock.ReverseSaleDebit(ctx, debit, reason, actor); err != nil {
			return err
		}

		now := nowFunc()
		if err := s.saleRepo.MarkVoided(ctx, sale.ID, reason, actor, now); err != nil {
			return err
		}
		sale.IsVoided = true
		sale.VoidReason = &reason
		sale.VoidedBy = &actor
		sale.VoidedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.FuelSale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales retrieves sales with filters and pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.FuelSale, int64, error) {
	return s.saleRepo.List(ctx, params)
}
