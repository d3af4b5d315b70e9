package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"github.com/stationhq/fuelops-api/pkg/apperror"
)

func TestStartShiftFreezesReadingsAndRates(t *testing.T) {
	f := newForecourt(t)

	shift := f.startShift(t)
	assert.Equal(t, enum.ShiftStatusActive, shift.Status)

	readings, err := f.readings.ListByShift(f.ctx, shift.ID)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, f.nozzleID, readings[0].NozzleID)
	assert.True(t, readings[0].OpeningReading.Equal(dec("100")), "opening reading is the live meter")
	assert.True(t, readings[0].RateAtShift.Equal(dec("100")), "rate frozen at start")
	assert.Nil(t, readings[0].ClosingReading)
}

func TestStartShiftWhileActiveFails(t *testing.T) {
	f := newForecourt(t)
	f.startShift(t)

	_, err := f.shiftSvc.StartShift(f.ctx, &StartShiftInput{
		WorkerID:  f.workerID,
		MachineID: f.machineID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestStartShiftNeedsActiveNozzles(t *testing.T) {
	f := newForecourt(t)
	f.nozzles.nozzles[f.nozzleID].IsActive = false

	_, err := f.shiftSvc.StartShift(f.ctx, &StartShiftInput{
		WorkerID:  f.workerID,
		MachineID: f.machineID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestStartShiftNeedsEffectiveRate(t *testing.T) {
	f := newForecourt(t)
	f.rates.rates = nil

	_, err := f.shiftSvc.StartShift(f.ctx, &StartShiftInput{
		WorkerID:  f.workerID,
		MachineID: f.machineID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

// A mid-shift rate change must not touch a running shift's frozen rate.
func TestMidShiftRateChangeDoesNotAffectRunningShift(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)

	now := time.Now()
	_ = f.rates.CloseCurrentWindow(f.ctx, f.fuelTypeID, now)
	_ = f.rates.Create(f.ctx, &entity.FuelRate{
		TenantID: f.tenantID, FuelTypeID: f.fuelTypeID,
		Rate: dec("120"), EffectiveFrom: now,
	})

	sale := f.recordSale(t, shift.ID, "10")
	assert.True(t, sale.Rate.Equal(dec("100")), "sale uses the rate frozen at shift start")
	assert.True(t, sale.Amount.Equal(dec("1000")))
}

// Open at 100, rate 100, two sales of 10 and 15, close at 125: quantity sold
// is 25, expected revenue 2500.
func TestCloseShiftReconciles(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)
	f.recordSale(t, shift.ID, "10")
	f.recordSale(t, shift.ID, "15")

	closed, err := f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID:       shift.ID,
		Closings:      []NozzleClosing{{NozzleID: f.nozzleID, ClosingReading: dec("125")}},
		CashCollected: dec("2000"),
		CreditSales:   dec("400"),
		ClosedBy:      f.managerID,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.ShiftStatusClosed, closed.Status)
	require.NotNil(t, closed.EndTime)
	assert.True(t, closed.TotalSales.Equal(dec("2500")))
	assert.True(t, closed.Variance.Equal(dec("100")), "2500 expected minus 2400 handed in")

	readings, _ := f.readings.ListByShift(f.ctx, shift.ID)
	require.Len(t, readings, 1)
	require.NotNil(t, readings[0].ClosingReading)
	assert.True(t, readings[0].ClosingReading.Equal(dec("125")))
	assert.True(t, readings[0].QuantitySold.Equal(dec("25")))
	assert.True(t, readings[0].ExpectedAmount.Equal(dec("2500")))
	assert.True(t, f.nozzleMeter().Equal(dec("125")))
}

// A shift with no sales closes cleanly at the opening reading.
func TestCloseShiftWithZeroMovement(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)

	closed, err := f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID:  shift.ID,
		Closings: []NozzleClosing{{NozzleID: f.nozzleID, ClosingReading: dec("100")}},
		ClosedBy: f.managerID,
	})
	require.NoError(t, err)
	assert.True(t, closed.TotalSales.IsZero())
	assert.True(t, closed.Variance.IsZero())
	assert.True(t, f.nozzleMeter().Equal(dec("100")))
}

// Voided sales still moved the meter, so closing at the full dispensed
// volume must reconcile without a consistency error even though one sale
// was voided.
func TestCloseShiftToleratesVoidedSales(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)
	f.recordSale(t, shift.ID, "10")
	sale := f.recordSale(t, shift.ID, "15")

	_, err := f.saleSvc.VoidSale(f.ctx, sale.ID, "customer dispute", f.managerID)
	require.NoError(t, err)

	closed, err := f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID:       shift.ID,
		Closings:      []NozzleClosing{{NozzleID: f.nozzleID, ClosingReading: dec("125")}},
		CashCollected: dec("2500"),
		ClosedBy:      f.managerID,
	})
	require.NoError(t, err, "void must not trip the close-time cross-check")
	assert.True(t, closed.TotalSales.Equal(dec("2500")), "expected revenue follows the meter, not the void")
}

func TestCloseShiftTwiceFails(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)

	first, err := f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID:       shift.ID,
		Closings:      []NozzleClosing{{NozzleID: f.nozzleID, ClosingReading: dec("100")}},
		CashCollected: dec("50"),
		ClosedBy:      f.managerID,
	})
	require.NoError(t, err)

	_, err = f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID:       shift.ID,
		Closings:      []NozzleClosing{{NozzleID: f.nozzleID, ClosingReading: dec("200")}},
		CashCollected: dec("9999"),
		ClosedBy:      f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// Settled figures are untouched by the failed second close.
	persisted, _ := f.shifts.GetByID(f.ctx, shift.ID)
	assert.True(t, persisted.CashCollected.Equal(first.CashCollected))
	assert.True(t, f.nozzleMeter().Equal(dec("100")))
}

func TestCloseShiftRejectsClosingBelowOpening(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)

	_, err := f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID:  shift.ID,
		Closings: []NozzleClosing{{NozzleID: f.nozzleID, ClosingReading: dec("90")}},
		ClosedBy: f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Equal(t, enum.ShiftStatusActive, f.shifts.shifts[shift.ID].Status)
}

func TestCloseShiftRejectsClosingBehindMeter(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)
	f.recordSale(t, shift.ID, "30") // meter now 130

	_, err := f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID:  shift.ID,
		Closings: []NozzleClosing{{NozzleID: f.nozzleID, ClosingReading: dec("120")}},
		ClosedBy: f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConsistency))
	assert.True(t, f.nozzleMeter().Equal(dec("130")), "meter untouched by the failed close")
}

func TestCloseShiftRejectsMovementBelowRecordedSales(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)
	f.recordSale(t, shift.ID, "30")

	// Fake a meter that somehow reads less than the dispensed volume.
	f.nozzles.nozzles[f.nozzleID].CurrentMeterReading = dec("100")

	_, err := f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID:  shift.ID,
		Closings: []NozzleClosing{{NozzleID: f.nozzleID, ClosingReading: dec("120")}},
		ClosedBy: f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConsistency))
}

func TestCloseShiftRequiresAllNozzleReadings(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)

	_, err := f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID:  shift.ID,
		ClosedBy: f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCloseShiftRejectsUnknownAndDuplicateClosings(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)

	_, err := f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID: shift.ID,
		Closings: []NozzleClosing{
			{NozzleID: f.nozzleID, ClosingReading: dec("100")},
			{NozzleID: uuid.New(), ClosingReading: dec("50")},
		},
		ClosedBy: f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID: shift.ID,
		Closings: []NozzleClosing{
			{NozzleID: f.nozzleID, ClosingReading: dec("100")},
			{NozzleID: f.nozzleID, ClosingReading: dec("105")},
		},
		ClosedBy: f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCloseShiftRejectsNegativeSettlement(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)

	_, err := f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID:       shift.ID,
		Closings:      []NozzleClosing{{NozzleID: f.nozzleID, ClosingReading: dec("100")}},
		CashCollected: dec("-5"),
		ClosedBy:      f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

// Borrowing is tracked on the shift but deliberately excluded from variance.
func TestCloseShiftBorrowingDoesNotOffsetVariance(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)
	f.recordSale(t, shift.ID, "10")

	closed, err := f.shiftSvc.CloseShift(f.ctx, &CloseShiftInput{
		ShiftID:       shift.ID,
		Closings:      []NozzleClosing{{NozzleID: f.nozzleID, ClosingReading: dec("110")}},
		CashCollected: dec("800"),
		Borrowing:     dec("200"),
		ClosedBy:      f.managerID,
	})
	require.NoError(t, err)
	assert.True(t, closed.Borrowing.Equal(dec("200")))
	assert.True(t, closed.Variance.Equal(dec("200")), "borrowing stays visible in the variance")
}

func TestShiftsAreInvisibleAcrossTenants(t *testing.T) {
	f := newForecourt(t)
	shift := f.startShift(t)

	_, err := f.shiftSvc.GetShift(tenantCtx(uuid.New()), shift.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
