package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stationhq/fuelops-api/internal/config"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"github.com/stationhq/fuelops-api/internal/domain/repository"
	infraRepo "github.com/stationhq/fuelops-api/internal/infrastructure/repository"
	"github.com/stationhq/fuelops-api/pkg/apperror"
	"github.com/stationhq/fuelops-api/pkg/pagination"
	"github.com/stationhq/fuelops-api/pkg/utils"
)

// StockService maintains the per-tank movement ledger. Every movement is an
// immutable StockEntry carrying the balance before and after; the tank's
// CurrentStock is only ever written here, in the same transaction as the
// entry it materializes. Depletion below zero and overfill past capacity are
// flagged and logged, never blocked: the physical fuel already moved and the
// books must follow it.
type StockService struct {
	txManager repository.TxManager
	tankRepo  repository.TankRepository
	entryRepo repository.StockEntryRepository
}

// NewStockService creates a new stock service
func NewStockService(
	txManager repository.TxManager,
	tankRepo repository.TankRepository,
	entryRepo repository.StockEntryRepository,
) *StockService {
	return &StockService{
		txManager: txManager,
		tankRepo:  tankRepo,
		entryRepo: entryRepo,
	}
}

// stockMovement is one signed movement against a tank.
type stockMovement struct {
	TankID     uuid.UUID
	Type       enum.StockEntryType
	Quantity   decimal.Decimal // signed: debits negative, credits positive
	ShiftID    *uuid.UUID
	FuelSaleID *uuid.UUID
	Reference  *string
	Notes      *string
	RecordedBy uuid.UUID
}

// apply appends one ledger entry and updates the materialized stock. It runs
// in the caller's transaction and takes the tank's row lock, which is what
// keeps StockBefore causally accurate when many nozzles drain one tank.
func (s *StockService) apply(ctx context.Context, mv stockMovement) (*entity.StockEntry, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	tank, err := s.tankRepo.GetForUpdate(ctx, mv.TankID)
	if err != nil {
		return nil, err
	}
	if tank == nil {
		return nil, apperror.NewNotFoundError("Tank")
	}

	before := tank.CurrentStock
	after := before.Add(mv.Quantity)

	entry := &entity.StockEntry{
		TenantID:    tenantID,
		TankID:      tank.ID,
		Type:        mv.Type,
		Quantity:    mv.Quantity,
		StockBefore: before,
		StockAfter:  after,
		ShiftID:     mv.ShiftID,
		FuelSaleID:  mv.FuelSaleID,
		Reference:   mv.Reference,
		Notes:       mv.Notes,
		RecordedBy:  mv.RecordedBy,
	}

	// Negative stock means more fuel left the nozzles than the books say the
	// tank held; overfill means a delivery exceeded recorded capacity. Both
	// are bookkeeping alarms, not reasons to reject a movement that already
	// happened on the forecourt.
	if after.IsNegative() || tank.ExceedsCapacity(after) {
		entry.Flagged = true
		config.GetLogger().WithFields(logrus.Fields{
			"tank_id":     tank.ID,
			"stock_after": after.String(),
			"capacity":    tank.Capacity.String(),
		}).Warn("tank stock outside physical bounds")
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.tankRepo.UpdateStock(ctx, tank.ID, after); err != nil {
		return nil, err
	}

	if after.LessThanOrEqual(tank.MinimumLevel) {
		config.GetLogger().WithFields(logrus.Fields{
			"tank_id":       tank.ID,
			"stock_after":   after.String(),
			"minimum_level": tank.MinimumLevel.String(),
		}).Warn("tank stock at or below minimum level")
	}

	return entry, nil
}

// Debit records the stock a fuel sale dispensed. Runs in the caller's
// transaction; quantity is the positive litres sold.
func (s *StockService) Debit(ctx context.Context, tankID uuid.UUID, quantity decimal.Decimal, shiftID, fuelSaleID, recordedBy uuid.UUID) (*entity.StockEntry, error) {
	return s.apply(ctx, stockMovement{
		TankID:     tankID,
		Type:       enum.StockEntryTypeStockOut,
		Quantity:   quantity.Neg(),
		ShiftID:    &shiftID,
		FuelSaleID: &fuelSaleID,
		RecordedBy: recordedBy,
	})
}

// ReverseSaleDebit compensates a sale's debit when the sale is voided. The
// original entry stays in the ledger untouched; the reversal is a new
// adjustment crediting the same quantity back, linked to the same sale.
// Runs in the caller's transaction.
func (s *StockService) ReverseSaleDebit(ctx context.Context, debit *entity.StockEntry, reason string, recordedBy uuid.UUID) (*entity.StockEntry, error) {
	notes := fmt.Sprintf("Void reversal: %s", reason)
	return s.apply(ctx, stockMovement{
		TankID:     debit.TankID,
		Type:       enum.StockEntryTypeAdjustment,
		Quantity:   debit.Quantity.Neg(),
		ShiftID:    debit.ShiftID,
		FuelSaleID: debit.FuelSaleID,
		Notes:      &notes,
		RecordedBy: recordedBy,
	})
}

// StockInInput represents a fuel delivery into a tank
type StockInInput struct {
	TankID     uuid.UUID
	Quantity   decimal.Decimal
	Reference  *string
	Notes      *string
	RecordedBy uuid.UUID
}

// RecordStockIn records a delivery into a tank
func (s *StockService) RecordStockIn(ctx context.Context, input *StockInInput) (*entity.StockEntry, error) {
	if !input.Quantity.IsPositive() {
		return nil, apperror.NewValidationMessage("Delivery quantity must be positive")
	}

	reference := input.Reference
	if reference == nil {
		ref := utils.GenerateReferenceNo("DLV")
		reference = &ref
	}

	var entry *entity.StockEntry
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.apply(ctx, stockMovement{
			TankID:     input.TankID,
			Type:       enum.StockEntryTypeStockIn,
			Quantity:   input.Quantity,
			Reference:  reference,
			Notes:      input.Notes,
			RecordedBy: input.RecordedBy,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// AdjustmentInput represents a manual stock correction (dip test, spillage)
type AdjustmentInput struct {
	TankID     uuid.UUID
	Quantity   decimal.Decimal // signed
	Notes      *string
	RecordedBy uuid.UUID
}

// RecordAdjustment records a manual correction against a tank
func (s *StockService) RecordAdjustment(ctx context.Context, input *AdjustmentInput) (*entity.StockEntry, error) {
	if input.Quantity.IsZero() {
		return nil, apperror.NewValidationMessage("Adjustment quantity cannot be zero")
	}
	if input.Notes == nil || *input.Notes == "" {
		return nil, apperror.NewValidationMessage("Adjustment requires a note explaining the correction")
	}

	var entry *entity.StockEntry
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.apply(ctx, stockMovement{
			TankID:     input.TankID,
			Type:       enum.StockEntryTypeAdjustment,
			Quantity:   input.Quantity,
			Notes:      input.Notes,
			RecordedBy: input.RecordedBy,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// TransferInput represents fuel moved between two tanks of the same fuel type
type TransferInput struct {
	FromTankID uuid.UUID
	ToTankID   uuid.UUID
	Quantity   decimal.Decimal
	Notes      *string
	RecordedBy uuid.UUID
}

// TransferStock moves fuel between two tanks as a debit/credit pair sharing
// one reference, committed atomically.
func (s *StockService) TransferStock(ctx context.Context, input *TransferInput) ([]entity.StockEntry, error) {
	if !input.Quantity.IsPositive() {
		return nil, apperror.NewValidationMessage("Transfer quantity must be positive")
	}
	if input.FromTankID == input.ToTankID {
		return nil, apperror.NewValidationMessage("Cannot transfer a tank into itself")
	}

	from, err := s.tankRepo.GetByID(ctx, input.FromTankID)
	if err != nil {
		return nil, err
	}
	if from == nil {
		return nil, apperror.NewNotFoundError("Source tank")
	}
	to, err := s.tankRepo.GetByID(ctx, input.ToTankID)
	if err != nil {
		return nil, err
	}
	if to == nil {
		return nil, apperror.NewNotFoundError("Destination tank")
	}
	if from.FuelTypeID != to.FuelTypeID {
		return nil, apperror.NewValidationMessage("Tanks hold different fuel types")
	}

	ref := utils.GenerateReferenceNo("TRF")
	var entries []entity.StockEntry
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		out, err := s.apply(ctx, stockMovement{
			TankID:     input.FromTankID,
			Type:       enum.StockEntryTypeTransfer,
			Quantity:   input.Quantity.Neg(),
			Reference:  &ref,
			Notes:      input.Notes,
			RecordedBy: input.RecordedBy,
		})
		if err != nil {
			return err
		}
		in, err := s.apply(ctx, stockMovement{
			TankID:     input.ToTankID,
			Type:       enum.StockEntryTypeTransfer,
			Quantity:   input.Quantity,
			Reference:  &ref,
			Notes:      input.Notes,
			RecordedBy: input.RecordedBy,
		})
		if err != nil {
			return err
		}
		entries = []entity.StockEntry{*out, *in}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListEntries returns a tank's ledger, newest first
func (s *StockService) ListEntries(ctx context.Context, tankID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockEntry, int64, error) {
	tank, err := s.tankRepo.GetByID(ctx, tankID)
	if err != nil {
		return nil, 0, err
	}
	if tank == nil {
		return nil, 0, apperror.NewNotFoundError("Tank")
	}
	return s.entryRepo.ListByTank(ctx, tankID, params)
}
