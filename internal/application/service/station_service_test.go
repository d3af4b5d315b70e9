package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stationhq/fuelops-api/pkg/apperror"
)

func newStationService(f *forecourt) *StationService {
	return NewStationService(f.txm, f.machines, f.nozzles, f.tanks, f.fuelTypes, f.rates)
}

func TestSetFuelRateClosesPreviousWindow(t *testing.T) {
	f := newForecourt(t)
	svc := newStationService(f)

	rate, err := svc.SetFuelRate(f.ctx, &SetRateInput{
		FuelTypeID: f.fuelTypeID,
		Rate:       dec("105.50"),
		SetBy:      f.managerID,
	})
	require.NoError(t, err)
	assert.Nil(t, rate.EffectiveTo, "new window is open-ended")

	history, err := svc.ListFuelRates(f.ctx, f.fuelTypeID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Windows tile: the old window now ends where the new one begins.
	old := history[0]
	require.NotNil(t, old.EffectiveTo)
	assert.True(t, old.EffectiveTo.Equal(rate.EffectiveFrom))
	assert.False(t, old.Covers(rate.EffectiveFrom))
	assert.True(t, rate.Covers(rate.EffectiveFrom))

	effective, err := svc.GetEffectiveRate(f.ctx, f.fuelTypeID)
	require.NoError(t, err)
	assert.True(t, effective.Rate.Equal(dec("105.50")))
}

func TestSetFuelRateRejectsNonPositive(t *testing.T) {
	f := newForecourt(t)
	svc := newStationService(f)

	_, err := svc.SetFuelRate(f.ctx, &SetRateInput{
		FuelTypeID: f.fuelTypeID,
		Rate:       dec("0"),
		SetBy:      f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCreateNozzleValidatesTankFuelType(t *testing.T) {
	f := newForecourt(t)
	svc := newStationService(f)

	dieselID := uuid.New()
	_, err := svc.CreateNozzle(f.ctx, &CreateNozzleInput{
		MachineID:  f.machineID,
		FuelTypeID: dieselID,
		TankID:     f.tankID,
		Name:       "N2",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "unknown fuel type")

	// Same fuel type works.
	nozzle, err := svc.CreateNozzle(f.ctx, &CreateNozzleInput{
		MachineID:      f.machineID,
		FuelTypeID:     f.fuelTypeID,
		TankID:         f.tankID,
		Name:           "N2",
		InitialReading: dec("0"),
	})
	require.NoError(t, err)
	assert.True(t, nozzle.IsActive)
}

func TestCreateNozzleRejectsNegativeInitialReading(t *testing.T) {
	f := newForecourt(t)
	svc := newStationService(f)

	_, err := svc.CreateNozzle(f.ctx, &CreateNozzleInput{
		MachineID:      f.machineID,
		FuelTypeID:     f.fuelTypeID,
		TankID:         f.tankID,
		Name:           "N2",
		InitialReading: dec("-1"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestRateWindowBoundaries(t *testing.T) {
	f := newForecourt(t)
	svc := newStationService(f)

	from := time.Now().Add(time.Hour)
	rate, err := svc.SetFuelRate(f.ctx, &SetRateInput{
		FuelTypeID:    f.fuelTypeID,
		Rate:          dec("110"),
		EffectiveFrom: &from,
		SetBy:         f.managerID,
	})
	require.NoError(t, err)

	assert.False(t, rate.Covers(from.Add(-time.Second)))
	assert.True(t, rate.Covers(from))
	assert.True(t, rate.Covers(from.Add(365*24*time.Hour)), "open window never expires")
}
