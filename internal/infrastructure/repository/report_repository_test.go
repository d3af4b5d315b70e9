package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The report queries are raw aggregations, so they get a real database
// underneath them instead of fakes. SQLite is close enough to exercise the
// joins, grouping and tenant scoping; everything in the queries is written
// to run on both engines.

func openReportTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "reports.db")), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Tenant{},
		&entity.User{},
		&entity.Machine{},
		&entity.FuelType{},
		&entity.Tank{},
		&entity.Nozzle{},
		&entity.Shift{},
		&entity.FuelSale{},
	))
	return db
}

type reportFixture struct {
	db       *gorm.DB
	tenantID uuid.UUID
	worker   entity.User
	shift    entity.Shift
	petrol   entity.FuelType
	diesel   entity.FuelType
	nozzleMS entity.Nozzle
	nozzleHS entity.Nozzle
}

func seedReportFixture(t *testing.T, db *gorm.DB) *reportFixture {
	t.Helper()
	f := &reportFixture{db: db, tenantID: uuid.New()}

	f.worker = entity.User{
		TenantID:  f.tenantID,
		FirstName: "Asha",
		LastName:  "Negi",
		Email:     "asha@example.test",
		Role:      entity.RoleWorker,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&f.worker).Error)

	machine := entity.Machine{TenantID: f.tenantID, Name: "Pump 1", Code: "P1", IsActive: true}
	require.NoError(t, db.Create(&machine).Error)

	f.petrol = entity.FuelType{TenantID: f.tenantID, Name: "Petrol", Code: "MS"}
	f.diesel = entity.FuelType{TenantID: f.tenantID, Name: "Diesel", Code: "HSD"}
	require.NoError(t, db.Create(&f.petrol).Error)
	require.NoError(t, db.Create(&f.diesel).Error)

	tank := entity.Tank{
		TenantID:   f.tenantID,
		FuelTypeID: f.petrol.ID,
		Name:       "Tank 1",
		Capacity:   decimal.NewFromInt(20000),
	}
	require.NoError(t, db.Create(&tank).Error)

	f.nozzleMS = entity.Nozzle{
		TenantID:   f.tenantID,
		MachineID:  machine.ID,
		FuelTypeID: f.petrol.ID,
		TankID:     tank.ID,
		Name:       "N1",
		IsActive:   true,
	}
	f.nozzleHS = entity.Nozzle{
		TenantID:   f.tenantID,
		MachineID:  machine.ID,
		FuelTypeID: f.diesel.ID,
		TankID:     tank.ID,
		Name:       "N2",
		IsActive:   true,
	}
	require.NoError(t, db.Create(&f.nozzleMS).Error)
	require.NoError(t, db.Create(&f.nozzleHS).Error)

	f.shift = entity.Shift{
		TenantID:  f.tenantID,
		WorkerID:  f.worker.ID,
		MachineID: machine.ID,
		ShiftDate: dateOf(time.Now().UTC()),
		StartTime: time.Now().UTC(),
		Status:    enum.ShiftStatusActive,
	}
	require.NoError(t, db.Create(&f.shift).Error)
	return f
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sale inserts one fuel sale; rate is fixed so amount = quantity * 100.
func (f *reportFixture) sale(t *testing.T, nozzleID uuid.UUID, day time.Time, number int, qty int64, voided bool) {
	t.Helper()
	quantity := decimal.NewFromInt(qty)
	rate := decimal.NewFromInt(100)
	s := entity.FuelSale{
		TenantID:      f.tenantID,
		ShiftID:       f.shift.ID,
		NozzleID:      nozzleID,
		SaleDate:      day,
		SaleNumber:    number,
		Quantity:      quantity,
		Rate:          rate,
		Amount:        quantity.Mul(rate),
		PaymentMethod: enum.PaymentMethodCash,
		RecordedBy:    f.worker.ID,
		IsVoided:      voided,
	}
	require.NoError(t, f.db.Create(&s).Error)
}

func TestGetSalesByFuelTypeAggregatesThroughNozzle(t *testing.T) {
	db := openReportTestDB(t)
	f := seedReportFixture(t, db)
	repo := NewReportRepository(db)

	day := dateOf(time.Now().UTC())
	f.sale(t, f.nozzleMS.ID, day, 1, 10, false)
	f.sale(t, f.nozzleMS.ID, day, 2, 4, false)
	f.sale(t, f.nozzleMS.ID, day, 3, 50, true) // voided, must not count
	f.sale(t, f.nozzleHS.ID, day, 4, 8, false)

	// Same nozzle, different tenant. The tenant scope must keep it out.
	foreign := entity.FuelSale{
		TenantID:   uuid.New(),
		ShiftID:    f.shift.ID,
		NozzleID:   f.nozzleMS.ID,
		SaleDate:   day,
		SaleNumber: 1,
		Quantity:   decimal.NewFromInt(999),
		Rate:       decimal.NewFromInt(100),
		Amount:     decimal.NewFromInt(99900),
		RecordedBy: f.worker.ID,
	}
	require.NoError(t, db.Create(&foreign).Error)

	ctx := WithTenant(context.Background(), f.tenantID)
	rows, err := repo.GetSalesByFuelType(ctx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by amount descending: petrol 1400 ahead of diesel 800.
	require.Equal(t, f.petrol.ID, rows[0].FuelTypeID)
	require.Equal(t, "Petrol", rows[0].FuelTypeName)
	require.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(14)), "petrol quantity %s", rows[0].Quantity)
	require.True(t, rows[0].Amount.Equal(decimal.NewFromInt(1400)), "petrol amount %s", rows[0].Amount)

	require.Equal(t, f.diesel.ID, rows[1].FuelTypeID)
	require.Equal(t, "Diesel", rows[1].FuelTypeName)
	require.True(t, rows[1].Amount.Equal(decimal.NewFromInt(800)), "diesel amount %s", rows[1].Amount)
}

func TestGetDailySalesGroupsByDayAndSkipsVoided(t *testing.T) {
	db := openReportTestDB(t)
	f := seedReportFixture(t, db)
	repo := NewReportRepository(db)

	dayOne := dateOf(time.Now().UTC().AddDate(0, 0, -2))
	dayTwo := dateOf(time.Now().UTC().AddDate(0, 0, -1))
	f.sale(t, f.nozzleMS.ID, dayOne, 1, 10, false)
	f.sale(t, f.nozzleMS.ID, dayOne, 2, 5, false)
	f.sale(t, f.nozzleMS.ID, dayTwo, 1, 7, false)
	f.sale(t, f.nozzleMS.ID, dayTwo, 2, 30, true) // voided, must not count

	ctx := WithTenant(context.Background(), f.tenantID)
	rows, err := repo.GetDailySales(ctx, 7)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Oldest day first.
	require.Equal(t, dayOne.Format("2006-01-02"), rows[0].Date.Format("2006-01-02"))
	require.Equal(t, 2, rows[0].Count)
	require.True(t, rows[0].Amount.Equal(decimal.NewFromInt(1500)), "day one amount %s", rows[0].Amount)

	require.Equal(t, dayTwo.Format("2006-01-02"), rows[1].Date.Format("2006-01-02"))
	require.Equal(t, 1, rows[1].Count)
	require.True(t, rows[1].Quantity.Equal(decimal.NewFromInt(7)), "day two quantity %s", rows[1].Quantity)
}

func TestGetShiftVariancesWorstFirst(t *testing.T) {
	db := openReportTestDB(t)
	f := seedReportFixture(t, db)
	repo := NewReportRepository(db)

	day := dateOf(time.Now().UTC())
	closed := func(variance int64) entity.Shift {
		s := entity.Shift{
			TenantID:   f.tenantID,
			WorkerID:   f.worker.ID,
			MachineID:  f.shift.MachineID,
			ShiftDate:  day,
			StartTime:  time.Now().UTC(),
			Status:     enum.ShiftStatusClosed,
			TotalSales: decimal.NewFromInt(5000),
			Variance:   decimal.NewFromInt(variance),
		}
		require.NoError(t, db.Create(&s).Error)
		return s
	}
	small := closed(40)
	large := closed(-120)
	// The fixture's active shift is in range but must stay out of the report.

	ctx := WithTenant(context.Background(), f.tenantID)
	rows, err := repo.GetShiftVariances(ctx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, large.ID, rows[0].ShiftID)
	require.Equal(t, "Asha Negi", rows[0].WorkerName)
	require.True(t, rows[0].Variance.Equal(decimal.NewFromInt(-120)), "variance %s", rows[0].Variance)
	require.Equal(t, small.ID, rows[1].ShiftID)
}

func TestReportQueriesFailSafeWithoutTenant(t *testing.T) {
	db := openReportTestDB(t)
	f := seedReportFixture(t, db)
	repo := NewReportRepository(db)

	day := dateOf(time.Now().UTC())
	f.sale(t, f.nozzleMS.ID, day, 1, 10, false)

	rows, err := repo.GetSalesByFuelType(context.Background(), day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Empty(t, rows)

	daily, err := repo.GetDailySales(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, daily)
}
