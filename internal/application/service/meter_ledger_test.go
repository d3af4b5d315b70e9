package service

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stationhq/fuelops-api/pkg/apperror"
)

func TestMeterLedgerAdvanceBy(t *testing.T) {
	f := newForecourt(t)

	before, err := f.meter.AdvanceBy(f.ctx, f.nozzleID, dec("12.5"))
	require.NoError(t, err)
	assert.True(t, before.CurrentMeterReading.Equal(dec("100")), "AdvanceBy returns the pre-advance nozzle")
	assert.True(t, f.nozzleMeter().Equal(dec("112.5")))
}

func TestMeterLedgerAdvanceByRejectsNonPositive(t *testing.T) {
	f := newForecourt(t)

	for _, delta := range []string{"0", "-3"} {
		_, err := f.meter.AdvanceBy(f.ctx, f.nozzleID, dec(delta))
		require.Error(t, err, "delta %s", delta)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		assert.True(t, f.nozzleMeter().Equal(dec("100")))
	}
}

func TestMeterLedgerAdvanceTo(t *testing.T) {
	f := newForecourt(t)

	_, err := f.meter.AdvanceTo(f.ctx, f.nozzleID, dec("150"))
	require.NoError(t, err)
	assert.True(t, f.nozzleMeter().Equal(dec("150")))
}

func TestMeterLedgerAdvanceToEqualIsNoOp(t *testing.T) {
	f := newForecourt(t)

	nozzle, err := f.meter.AdvanceTo(f.ctx, f.nozzleID, dec("100"))
	require.NoError(t, err)
	assert.True(t, nozzle.CurrentMeterReading.Equal(dec("100")))
	assert.True(t, f.nozzleMeter().Equal(dec("100")))
}

func TestMeterLedgerRefusesBackwardMovement(t *testing.T) {
	f := newForecourt(t)

	_, err := f.meter.AdvanceTo(f.ctx, f.nozzleID, dec("99.9"))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvariant))
	assert.True(t, f.nozzleMeter().Equal(dec("100")), "failed advance must not move the meter")
}

// The meter only ever grows, whatever mix of relative and absolute advances
// is thrown at it.
func TestMeterLedgerIsMonotonic(t *testing.T) {
	f := newForecourt(t)
	rng := rand.New(rand.NewSource(42))

	last := f.nozzleMeter()
	for i := 0; i < 200; i++ {
		if rng.Intn(2) == 0 {
			delta := decimal.NewFromFloat(rng.Float64()*50 + 0.01).Round(4)
			_, err := f.meter.AdvanceBy(f.ctx, f.nozzleID, delta)
			require.NoError(t, err)
		} else {
			target := last.Add(decimal.NewFromFloat(rng.Float64() * 30).Round(4))
			_, err := f.meter.AdvanceTo(f.ctx, f.nozzleID, target)
			require.NoError(t, err)
		}
		now := f.nozzleMeter()
		require.True(t, now.GreaterThanOrEqual(last),
			fmt.Sprintf("meter went backward: %s -> %s", last, now))
		last = now
	}

	// Any attempt to step below the high-water mark fails.
	_, err := f.meter.AdvanceTo(f.ctx, f.nozzleID, last.Sub(dec("0.0001")))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvariant))
	assert.True(t, f.nozzleMeter().Equal(last))
}

func TestMeterLedgerUnknownNozzle(t *testing.T) {
	f := newForecourt(t)

	_, err := f.meter.AdvanceBy(f.ctx, f.tenantID, dec("5"))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
