package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	infraRepo "github.com/stationhq/fuelops-api/internal/infrastructure/repository"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tenantCtx(tenantID uuid.UUID) context.Context {
	return infraRepo.WithTenant(context.Background(), tenantID)
}

// forecourt is a one-machine station: one fuel type at rate 100, one tank
// holding 5000 litres, one nozzle with its meter at 100.
type forecourt struct {
	ctx      context.Context
	tenantID uuid.UUID

	workerID   uuid.UUID
	managerID  uuid.UUID
	machineID  uuid.UUID
	fuelTypeID uuid.UUID
	tankID     uuid.UUID
	nozzleID   uuid.UUID

	txm       *fakeTxManager
	nozzles   *fakeNozzleRepo
	tanks     *fakeTankRepo
	entries   *fakeStockEntryRepo
	shifts    *fakeShiftRepo
	readings  *fakeReadingRepo
	sales     *fakeSaleRepo
	machines  *fakeMachineRepo
	fuelTypes *fakeFuelTypeRepo
	rates     *fakeFuelRateRepo
	users     *fakeUserRepo

	meter    *MeterLedger
	stock    *StockService
	saleSvc  *SaleService
	shiftSvc *ShiftService
}

func newForecourt(t *testing.T) *forecourt {
	t.Helper()

	f := &forecourt{
		tenantID:   uuid.New(),
		workerID:   uuid.New(),
		managerID:  uuid.New(),
		machineID:  uuid.New(),
		fuelTypeID: uuid.New(),
		tankID:     uuid.New(),
		nozzleID:   uuid.New(),
		txm:        &fakeTxManager{},
		nozzles:    newFakeNozzleRepo(),
		tanks:      newFakeTankRepo(),
		entries:    &fakeStockEntryRepo{},
		shifts:     newFakeShiftRepo(),
		readings:   &fakeReadingRepo{},
		sales:      newFakeSaleRepo(),
		machines:   newFakeMachineRepo(),
		fuelTypes:  newFakeFuelTypeRepo(),
		rates:      &fakeFuelRateRepo{},
		users:      newFakeUserRepo(),
	}
	f.ctx = infraRepo.WithTenant(context.Background(), f.tenantID)

	f.users.users[f.workerID] = &entity.User{
		ID: f.workerID, TenantID: f.tenantID,
		FirstName: "Ravi", LastName: "Kumar",
		Email: "ravi@station.test", Role: entity.RoleWorker, IsActive: true,
	}
	f.users.users[f.managerID] = &entity.User{
		ID: f.managerID, TenantID: f.tenantID,
		FirstName: "Meena", LastName: "Iyer",
		Email: "meena@station.test", Role: entity.RoleManager, IsActive: true,
	}
	f.machines.machines[f.machineID] = &entity.Machine{
		ID: f.machineID, TenantID: f.tenantID, Name: "Pump 1", Code: "P1", IsActive: true,
	}
	f.fuelTypes.fuelTypes[f.fuelTypeID] = &entity.FuelType{
		ID: f.fuelTypeID, TenantID: f.tenantID, Name: "Petrol", Code: "MS",
	}
	f.tanks.tanks[f.tankID] = &entity.Tank{
		ID: f.tankID, TenantID: f.tenantID, FuelTypeID: f.fuelTypeID,
		Name: "Tank A", Capacity: dec("10000"), CurrentStock: dec("5000"), MinimumLevel: dec("500"),
	}
	f.nozzles.nozzles[f.nozzleID] = &entity.Nozzle{
		ID: f.nozzleID, TenantID: f.tenantID, MachineID: f.machineID,
		FuelTypeID: f.fuelTypeID, TankID: f.tankID,
		Name: "N1", CurrentMeterReading: dec("100"), IsActive: true,
	}
	f.rates.rates = append(f.rates.rates, entity.FuelRate{
		ID: uuid.New(), TenantID: f.tenantID, FuelTypeID: f.fuelTypeID,
		Rate: dec("100"), EffectiveFrom: time.Now().Add(-24 * time.Hour),
	})

	f.meter = NewMeterLedger(f.nozzles)
	f.stock = NewStockService(f.txm, f.tanks, f.entries)
	f.saleSvc = NewSaleService(f.txm, f.shifts, f.readings, f.sales, f.entries, f.meter, f.stock)
	f.shiftSvc = NewShiftService(f.txm, f.shifts, f.readings, f.nozzles, f.machines,
		f.rates, f.sales, f.users, f.meter)

	return f
}

// startShift opens a shift for the fixture worker and returns it.
func (f *forecourt) startShift(t *testing.T) *entity.Shift {
	t.Helper()
	shift, err := f.shiftSvc.StartShift(f.ctx, &StartShiftInput{
		WorkerID:  f.workerID,
		MachineID: f.machineID,
	})
	if err != nil {
		t.Fatalf("start shift: %v", err)
	}
	return shift
}

// recordSale records a cash sale on the fixture nozzle.
func (f *forecourt) recordSale(t *testing.T, shiftID uuid.UUID, qty string) *entity.FuelSale {
	t.Helper()
	sale, err := f.saleSvc.RecordSale(f.ctx, &RecordSaleInput{
		ShiftID:    shiftID,
		NozzleID:   f.nozzleID,
		Quantity:   dec(qty),
		RecordedBy: f.workerID,
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	return sale
}

func (f *forecourt) nozzleMeter() decimal.Decimal {
	return f.nozzles.nozzles[f.nozzleID].CurrentMeterReading
}

func (f *forecourt) tankStock() decimal.Decimal {
	return f.tanks.tanks[f.tankID].CurrentStock
}
