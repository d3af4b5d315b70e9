package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/config"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/repository"
	"github.com/stationhq/fuelops-api/pkg/apperror"
)

// MeterLedger is the single writer of nozzle meter readings. A dispenser
// meter is cumulative and never resets, so the ledger accepts only forward
// movement; an equal reading is an idempotent no-op and a lower one aborts
// the surrounding transaction.
//
// Both methods take the nozzle's row lock and therefore must run inside a
// TxManager transaction.
type MeterLedger struct {
	nozzleRepo repository.NozzleRepository
}

// NewMeterLedger creates a new meter ledger
func NewMeterLedger(nozzleRepo repository.NozzleRepository) *MeterLedger {
	return &MeterLedger{nozzleRepo: nozzleRepo}
}

// AdvanceBy moves the meter forward by delta litres and returns the nozzle
// as it was before the advance. Delta must be positive.
func (l *MeterLedger) AdvanceBy(ctx context.Context, nozzleID uuid.UUID, delta decimal.Decimal) (*entity.Nozzle, error) {
	if !delta.IsPositive() {
		return nil, apperror.NewValidationMessage("Meter advance must be positive")
	}

	nozzle, err := l.nozzleRepo.GetForUpdate(ctx, nozzleID)
	if err != nil {
		return nil, err
	}
	if nozzle == nil {
		return nil, apperror.NewNotFoundError("Nozzle")
	}

	next := nozzle.CurrentMeterReading.Add(delta)
	if err := l.nozzleRepo.UpdateMeterReading(ctx, nozzle.ID, next); err != nil {
		return nil, err
	}
	return nozzle, nil
}

// AdvanceTo moves the meter to an absolute reading. Readings equal to the
// current meter are accepted without a write, so the close path can resubmit
// the same closing reading safely. A lower reading is a broken meter
// invariant and is raised as such, never silently clamped.
func (l *MeterLedger) AdvanceTo(ctx context.Context, nozzleID uuid.UUID, to decimal.Decimal) (*entity.Nozzle, error) {
	nozzle, err := l.nozzleRepo.GetForUpdate(ctx, nozzleID)
	if err != nil {
		return nil, err
	}
	if nozzle == nil {
		return nil, apperror.NewNotFoundError("Nozzle")
	}

	switch {
	case to.LessThan(nozzle.CurrentMeterReading):
		err := apperror.NewInvariantViolation(fmt.Sprintf(
			"Meter on nozzle %s cannot move backward: %s -> %s",
			nozzle.Name, nozzle.CurrentMeterReading, to))
		config.LogLedgerAlert("meter", "advance", nozzle.ID.String(), err)
		return nil, err
	case to.Equal(nozzle.CurrentMeterReading):
		return nozzle, nil
	}

	if err := l.nozzleRepo.UpdateMeterReading(ctx, nozzle.ID, to); err != nil {
		return nil, err
	}
	return nozzle, nil
}
