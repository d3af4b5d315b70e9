package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/config"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"github.com/stationhq/fuelops-api/internal/domain/repository"
	infraRepo "github.com/stationhq/fuelops-api/internal/infrastructure/repository"
	"github.com/stationhq/fuelops-api/pkg/apperror"
)

// ShiftService drives the shift lifecycle: start freezes per-nozzle opening
// readings and rates, close reconciles submitted closing readings against
// the sales the shift recorded and settles the money. Closing is the moment
// the books either balance or get flagged, so every check here runs inside
// the same transaction that writes the settlement.
type ShiftService struct {
	txManager   repository.TxManager
	shiftRepo   repository.ShiftRepository
	readingRepo repository.ShiftNozzleReadingRepository
	nozzleRepo  repository.NozzleRepository
	machineRepo repository.MachineRepository
	rateRepo    repository.FuelRateRepository
	saleRepo    repository.FuelSaleRepository
	userRepo    repository.UserRepository
	meter       *MeterLedger
}

// NewShiftService creates a new shift service
func NewShiftService(
	txManager repository.TxManager,
	shiftRepo repository.ShiftRepository,
	readingRepo repository.ShiftNozzleReadingRepository,
	nozzleRepo repository.NozzleRepository,
	machineRepo repository.MachineRepository,
	rateRepo repository.FuelRateRepository,
	saleRepo repository.FuelSaleRepository,
	userRepo repository.UserRepository,
	meter *MeterLedger,
) *ShiftService {
	return &ShiftService{
		txManager:   txManager,
		shiftRepo:   shiftRepo,
		readingRepo: readingRepo,
		nozzleRepo:  nozzleRepo,
		machineRepo: machineRepo,
		rateRepo:    rateRepo,
		saleRepo:    saleRepo,
		userRepo:    userRepo,
		meter:       meter,
	}
}

// StartShiftInput represents the start shift input
type StartShiftInput struct {
	WorkerID  uuid.UUID
	MachineID uuid.UUID
	Notes     *string
}

// StartShift opens a shift for a worker on a machine. Every active nozzle on
// the machine gets a snapshot row: its current meter reading as the opening
// and the rate effective right now, frozen for the shift's duration.
func (s *ShiftService) StartShift(ctx context.Context, input *StartShiftInput) (*entity.Shift, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	worker, err := s.userRepo.GetByID(ctx, input.WorkerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, apperror.NewNotFoundError("Worker")
	}

	machine, err := s.machineRepo.GetByID(ctx, input.MachineID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, apperror.NewNotFoundError("Machine")
	}
	if !machine.IsActive {
		return nil, apperror.NewValidationMessage("Machine is not active")
	}

	var shift *entity.Shift
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		active, err := s.shiftRepo.GetActiveByWorker(ctx, input.WorkerID)
		if err != nil {
			return err
		}
		if active != nil {
			return apperror.NewConflictError("Worker already has an active shift")
		}

		nozzles, err := s.nozzleRepo.ListActiveByMachine(ctx, input.MachineID)
		if err != nil {
			return err
		}
		if len(nozzles) == 0 {
			return apperror.NewValidationMessage("Machine has no active nozzles")
		}

		now := nowFunc()
		shift = &entity.Shift{
			ID:        uuid.New(),
			TenantID:  tenantID,
			WorkerID:  input.WorkerID,
			MachineID: input.MachineID,
			ShiftDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
			StartTime: now,
			Status:    enum.ShiftStatusActive,
			Notes:     input.Notes,
		}
		if err := s.shiftRepo.Create(ctx, shift); err != nil {
			return err
		}

		readings := make([]entity.ShiftNozzleReading, 0, len(nozzles))
		for _, nozzle := range nozzles {
			rate, err := s.rateRepo.GetEffectiveRate(ctx, nozzle.FuelTypeID, now)
			if err != nil {
				return err
			}
			if rate == nil {
				return apperror.NewValidationMessage(fmt.Sprintf(
					"No effective rate for fuel type on nozzle %s", nozzle.Name))
			}
			readings = append(readings, entity.ShiftNozzleReading{
				TenantID:       tenantID,
				ShiftID:        shift.ID,
				NozzleID:       nozzle.ID,
				OpeningReading: nozzle.CurrentMeterReading,
				RateAtShift:    rate.Rate,
			})
		}
		return s.readingRepo.CreateBatch(ctx, readings)
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// NozzleClosing is one submitted closing meter reading
type NozzleClosing struct {
	NozzleID       uuid.UUID
	ClosingReading decimal.Decimal
}

// CloseShiftInput represents the close shift input
type CloseShiftInput struct {
	ShiftID         uuid.UUID
	Closings        []NozzleClosing
	CashCollected   decimal.Decimal
	CreditSales     decimal.Decimal
	DigitalPayments decimal.Decimal
	Borrowing       decimal.Decimal
	Notes           *string
	ClosedBy        uuid.UUID
}

// CloseShift settles a shift. Exactly one closing reading per opened nozzle
// is required; each is checked against the opening, the live meter and the
// shift's recorded sale volume before the meter is advanced to it. Expected
// revenue is meter movement times the frozen rate; variance is expected
// minus what the worker handed in. The whole close commits or rolls back as
// one transaction, so a failed check leaves the shift untouched and the
// close retryable.
func (s *ShiftService) CloseShift(ctx context.Context, input *CloseShiftInput) (*entity.Shift, error) {
	if input.CashCollected.IsNegative() || input.CreditSales.IsNegative() ||
		input.DigitalPayments.IsNegative() || input.Borrowing.IsNegative() {
		return nil, apperror.NewValidationMessage("Settlement amounts cannot be negative")
	}

	var shift *entity.Shift
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		shift, err = s.shiftRepo.GetForUpdate(ctx, input.ShiftID)
		if err != nil {
			return err
		}
		if shift == nil {
			return apperror.NewNotFoundError("Shift")
		}
		if shift.Status == enum.ShiftStatusClosed {
			return apperror.NewConflictError("Shift is already closed")
		}
		if !shift.IsActive() {
			return apperror.NewConflictError("Shift is not active")
		}

		readings, err := s.readingRepo.ListByShift(ctx, shift.ID)
		if err != nil {
			return err
		}

		closings := make(map[uuid.UUID]decimal.Decimal, len(input.Closings))
		for _, c := range input.Closings {
			if _, dup := closings[c.NozzleID]; dup {
				return apperror.NewValidationMessage("Duplicate closing reading for a nozzle")
			}
			closings[c.NozzleID] = c.ClosingReading
		}
		if len(closings) != len(readings) {
			return apperror.NewValidationMessage("Closing readings must cover every nozzle opened with the shift")
		}

		totalSales := decimal.Zero
		for i := range readings {
			reading := &readings[i]
			closing, ok := closings[reading.NozzleID]
			if !ok {
				return apperror.NewValidationMessage("Missing closing reading for a nozzle opened with the shift")
			}
			if closing.LessThan(reading.OpeningReading) {
				return apperror.NewValidationMessage("Closing reading cannot be below the opening reading")
			}

			nozzle, err := s.nozzleRepo.GetForUpdate(ctx, reading.NozzleID)
			if err != nil {
				return err
			}
			if nozzle == nil {
				return apperror.NewNotFoundError("Nozzle")
			}
			if closing.LessThan(nozzle.CurrentMeterReading) {
				cerr := apperror.NewConsistencyError(fmt.Sprintf(
					"Closing reading %s on nozzle %s is behind the meter at %s",
					closing, nozzle.Name, nozzle.CurrentMeterReading))
				config.LogLedgerAlert("shift", "close", shift.ID.String(), cerr)
				return cerr
			}

			// Voided sales still moved the meter, so the recorded volume
			// here deliberately includes them.
			sold, err := s.saleRepo.SumQuantityByShiftNozzle(ctx, shift.ID, reading.NozzleID, true)
			if err != nil {
				return err
			}
			movement := closing.Sub(reading.OpeningReading)
			if movement.LessThan(sold) {
				cerr := apperror.NewConsistencyError(fmt.Sprintf(
					"Meter movement %s on nozzle %s is below the %s recorded as sold",
					movement, nozzle.Name, sold))
				config.LogLedgerAlert("shift", "close", shift.ID.String(), cerr)
				return cerr
			}

			if _, err := s.meter.AdvanceTo(ctx, reading.NozzleID, closing); err != nil {
				return err
			}

			reading.ClosingReading = &closing
			reading.QuantitySold = movement
			reading.ExpectedAmount = movement.Mul(reading.RateAtShift)
			if err := s.readingRepo.Update(ctx, reading); err != nil {
				return err
			}
			totalSales = totalSales.Add(reading.ExpectedAmount)
		}

		now := nowFunc()
		collected := input.CashCollected.Add(input.CreditSales).Add(input.DigitalPayments)
		shift.Status = enum.ShiftStatusClosed
		shift.EndTime = &now
		shift.TotalSales = totalSales
		shift.CashCollected = input.CashCollected
		shift.CreditSales = input.CreditSales
		shift.DigitalPayments = input.DigitalPayments
		shift.Borrowing = input.Borrowing
		// Borrowing is tracked against the worker, not the till, so it does
		// not reduce the variance.
		shift.Variance = totalSales.Sub(collected)
		shift.ClosedBy = &input.ClosedBy
		if input.Notes != nil {
			shift.Notes = input.Notes
		}
		return s.shiftRepo.Update(ctx, shift)
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// GetShift retrieves a shift with its nozzle readings
func (s *ShiftService) GetShift(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetWithReadings(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}
	return shift, nil
}

// GetActiveShift returns the worker's active shift, if any
func (s *ShiftService) GetActiveShift(ctx context.Context, workerID uuid.UUID) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetActiveByWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Active shift")
	}
	return shift, nil
}

// ListShifts retrieves shifts with filters and pagination
func (s *ShiftService) ListShifts(ctx context.Context, params *repository.ShiftFilterParams) ([]entity.Shift, int64, error) {
	return s.shiftRepo.List(ctx, params)
}
