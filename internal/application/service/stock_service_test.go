package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"github.com/stationhq/fuelops-api/pkg/apperror"
)

func TestRecordStockIn(t *testing.T) {
	f := newForecourt(t)

	entry, err := f.stock.RecordStockIn(f.ctx, &StockInInput{
		TankID:     f.tankID,
		Quantity:   dec("2000"),
		RecordedBy: f.managerID,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.StockEntryTypeStockIn, entry.Type)
	assert.True(t, entry.StockBefore.Equal(dec("5000")))
	assert.True(t, entry.StockAfter.Equal(dec("7000")))
	assert.True(t, entry.Balanced())
	assert.False(t, entry.Flagged)
	assert.NotNil(t, entry.Reference)
	assert.True(t, f.tankStock().Equal(dec("7000")))
}

func TestRecordStockInRejectsNonPositive(t *testing.T) {
	f := newForecourt(t)

	_, err := f.stock.RecordStockIn(f.ctx, &StockInInput{
		TankID:     f.tankID,
		Quantity:   dec("-10"),
		RecordedBy: f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.True(t, f.tankStock().Equal(dec("5000")))
}

func TestStockInOverCapacityIsFlaggedNotBlocked(t *testing.T) {
	f := newForecourt(t)

	entry, err := f.stock.RecordStockIn(f.ctx, &StockInInput{
		TankID:     f.tankID,
		Quantity:   dec("6000"),
		RecordedBy: f.managerID,
	})
	require.NoError(t, err)
	assert.True(t, entry.Flagged)
	assert.True(t, f.tankStock().Equal(dec("11000")))
}

func TestRecordAdjustment(t *testing.T) {
	f := newForecourt(t)
	notes := "dip test found 20 litres less"

	entry, err := f.stock.RecordAdjustment(f.ctx, &AdjustmentInput{
		TankID:     f.tankID,
		Quantity:   dec("-20"),
		Notes:      &notes,
		RecordedBy: f.managerID,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.StockEntryTypeAdjustment, entry.Type)
	assert.True(t, entry.Balanced())
	assert.True(t, f.tankStock().Equal(dec("4980")))
}

func TestRecordAdjustmentRequiresNote(t *testing.T) {
	f := newForecourt(t)

	_, err := f.stock.RecordAdjustment(f.ctx, &AdjustmentInput{
		TankID:     f.tankID,
		Quantity:   dec("-20"),
		RecordedBy: f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestRecordAdjustmentRejectsZero(t *testing.T) {
	f := newForecourt(t)
	notes := "noop"

	_, err := f.stock.RecordAdjustment(f.ctx, &AdjustmentInput{
		TankID:     f.tankID,
		Quantity:   dec("0"),
		Notes:      &notes,
		RecordedBy: f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestTransferStock(t *testing.T) {
	f := newForecourt(t)
	otherTank := uuid.New()
	f.tanks.tanks[otherTank] = tankFor(f, otherTank, "Tank B", "1000")

	entries, err := f.stock.TransferStock(f.ctx, &TransferInput{
		FromTankID: f.tankID,
		ToTankID:   otherTank,
		Quantity:   dec("300"),
		RecordedBy: f.managerID,
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	out, in := entries[0], entries[1]
	assert.True(t, out.Quantity.Equal(dec("-300")))
	assert.True(t, in.Quantity.Equal(dec("300")))
	assert.Equal(t, *out.Reference, *in.Reference, "both legs share one reference")
	assert.True(t, out.Balanced())
	assert.True(t, in.Balanced())
	assert.True(t, f.tankStock().Equal(dec("4700")))
	assert.True(t, f.tanks.tanks[otherTank].CurrentStock.Equal(dec("1300")))
}

func TestTransferStockRejectsMismatchedFuel(t *testing.T) {
	f := newForecourt(t)
	dieselTank := uuid.New()
	tank := tankFor(f, dieselTank, "Diesel Tank", "1000")
	tank.FuelTypeID = uuid.New()
	f.tanks.tanks[dieselTank] = tank

	_, err := f.stock.TransferStock(f.ctx, &TransferInput{
		FromTankID: f.tankID,
		ToTankID:   dieselTank,
		Quantity:   dec("100"),
		RecordedBy: f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.True(t, f.tankStock().Equal(dec("5000")))
}

func TestTransferStockRejectsSelf(t *testing.T) {
	f := newForecourt(t)

	_, err := f.stock.TransferStock(f.ctx, &TransferInput{
		FromTankID: f.tankID,
		ToTankID:   f.tankID,
		Quantity:   dec("100"),
		RecordedBy: f.managerID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

// Every entry's StockBefore must equal the previous entry's StockAfter; the
// ledger is a chain, not a set of independent snapshots.
func TestStockLedgerChains(t *testing.T) {
	f := newForecourt(t)
	notes := "calibration loss"

	_, err := f.stock.RecordStockIn(f.ctx, &StockInInput{
		TankID: f.tankID, Quantity: dec("1000"), RecordedBy: f.managerID,
	})
	require.NoError(t, err)
	_, err = f.stock.RecordAdjustment(f.ctx, &AdjustmentInput{
		TankID: f.tankID, Quantity: dec("-15.5"), Notes: &notes, RecordedBy: f.managerID,
	})
	require.NoError(t, err)
	_, err = f.stock.RecordStockIn(f.ctx, &StockInInput{
		TankID: f.tankID, Quantity: dec("250"), RecordedBy: f.managerID,
	})
	require.NoError(t, err)

	entries, _, err := f.stock.ListEntries(f.ctx, f.tankID, nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, e := range entries {
		assert.True(t, e.Balanced(), "entry %d out of balance", i)
		if i > 0 {
			assert.True(t, e.StockBefore.Equal(entries[i-1].StockAfter),
				"entry %d does not chain from entry %d", i, i-1)
		}
	}
	assert.True(t, f.tankStock().Equal(entries[2].StockAfter))
}

func tankFor(f *forecourt, id uuid.UUID, name, stock string) *entity.Tank {
	return &entity.Tank{
		ID: id, TenantID: f.tenantID, FuelTypeID: f.fuelTypeID,
		Name: name, Capacity: dec("10000"), CurrentStock: dec(stock), MinimumLevel: dec("100"),
	}
}
