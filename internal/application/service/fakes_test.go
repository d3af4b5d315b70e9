package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"github.com/stationhq/fuelops-api/internal/domain/repository"
	infraRepo "github.com/stationhq/fuelops-api/internal/infrastructure/repository"
	"github.com/stationhq/fuelops-api/pkg/pagination"
)

// fakeTxManager runs the function directly; rollback behavior is asserted by
// checking that failed operations left the fakes untouched.
type fakeTxManager struct {
	doErr error
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.doErr != nil {
		return f.doErr
	}
	return fn(ctx)
}

func sameTenant(ctx context.Context, tenantID uuid.UUID) bool {
	id, ok := infraRepo.GetTenantID(ctx)
	return ok && id == tenantID
}

type fakeNozzleRepo struct {
	nozzles   map[uuid.UUID]*entity.Nozzle
	updateErr error
}

func newFakeNozzleRepo() *fakeNozzleRepo {
	return &fakeNozzleRepo{nozzles: make(map[uuid.UUID]*entity.Nozzle)}
}

func (f *fakeNozzleRepo) Create(ctx context.Context, nozzle *entity.Nozzle) error {
	if nozzle.ID == uuid.Nil {
		nozzle.ID = uuid.New()
	}
	cp := *nozzle
	f.nozzles[nozzle.ID] = &cp
	return nil
}

func (f *fakeNozzleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Nozzle, error) {
	n, ok := f.nozzles[id]
	if !ok || !sameTenant(ctx, n.TenantID) {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNozzleRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Nozzle, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeNozzleRepo) Update(ctx context.Context, nozzle *entity.Nozzle) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	cp := *nozzle
	f.nozzles[nozzle.ID] = &cp
	return nil
}

func (f *fakeNozzleRepo) UpdateMeterReading(ctx context.Context, id uuid.UUID, reading decimal.Decimal) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if n, ok := f.nozzles[id]; ok {
		n.CurrentMeterReading = reading
	}
	return nil
}

func (f *fakeNozzleRepo) ListByMachine(ctx context.Context, machineID uuid.UUID) ([]entity.Nozzle, error) {
	var out []entity.Nozzle
	for _, n := range f.nozzles {
		if n.MachineID == machineID && sameTenant(ctx, n.TenantID) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNozzleRepo) ListActiveByMachine(ctx context.Context, machineID uuid.UUID) ([]entity.Nozzle, error) {
	var out []entity.Nozzle
	for _, n := range f.nozzles {
		if n.MachineID == machineID && n.IsActive && sameTenant(ctx, n.TenantID) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNozzleRepo) List(ctx context.Context) ([]entity.Nozzle, error) {
	var out []entity.Nozzle
	for _, n := range f.nozzles {
		if sameTenant(ctx, n.TenantID) {
			out = append(out, *n)
		}
	}
	return out, nil
}

type fakeTankRepo struct {
	tanks map[uuid.UUID]*entity.Tank
}

func newFakeTankRepo() *fakeTankRepo {
	return &fakeTankRepo{tanks: make(map[uuid.UUID]*entity.Tank)}
}

func (f *fakeTankRepo) Create(ctx context.Context, tank *entity.Tank) error {
	if tank.ID == uuid.Nil {
		tank.ID = uuid.New()
	}
	cp := *tank
	f.tanks[tank.ID] = &cp
	return nil
}

func (f *fakeTankRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tank, error) {
	t, ok := f.tanks[id]
	if !ok || !sameTenant(ctx, t.TenantID) {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTankRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Tank, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeTankRepo) Update(ctx context.Context, tank *entity.Tank) error {
	cp := *tank
	f.tanks[tank.ID] = &cp
	return nil
}

func (f *fakeTankRepo) UpdateStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error {
	if t, ok := f.tanks[id]; ok {
		t.CurrentStock = stock
	}
	return nil
}

func (f *fakeTankRepo) List(ctx context.Context) ([]entity.Tank, error) {
	var out []entity.Tank
	for _, t := range f.tanks {
		if sameTenant(ctx, t.TenantID) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTankRepo) ListLow(ctx context.Context) ([]entity.Tank, error) {
	var out []entity.Tank
	for _, t := range f.tanks {
		if t.IsLow() && sameTenant(ctx, t.TenantID) {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeStockEntryRepo struct {
	entries []entity.StockEntry
}

func (f *fakeStockEntryRepo) Create(ctx context.Context, entry *entity.StockEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeStockEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			cp := f.entries[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStockEntryRepo) GetSaleDebit(ctx context.Context, fuelSaleID uuid.UUID) (*entity.StockEntry, error) {
	for i := range f.entries {
		e := f.entries[i]
		if e.Type == enum.StockEntryTypeStockOut && e.FuelSaleID != nil && *e.FuelSaleID == fuelSaleID {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeStockEntryRepo) ListByTank(ctx context.Context, tankID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockEntry, int64, error) {
	var out []entity.StockEntry
	for _, e := range f.entries {
		if e.TankID == tankID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

type fakeShiftRepo struct {
	shifts map[uuid.UUID]*entity.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[uuid.UUID]*entity.Shift)}
}

func (f *fakeShiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	cp := *shift
	f.shifts[shift.ID] = &cp
	return nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	s, ok := f.shifts[id]
	if !ok || !sameTenant(ctx, s.TenantID) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeShiftRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeShiftRepo) GetWithReadings(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeShiftRepo) GetActiveByWorker(ctx context.Context, workerID uuid.UUID) (*entity.Shift, error) {
	for _, s := range f.shifts {
		if s.WorkerID == workerID && s.Status == enum.ShiftStatusActive && sameTenant(ctx, s.TenantID) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, shift *entity.Shift) error {
	cp := *shift
	f.shifts[shift.ID] = &cp
	return nil
}

func (f *fakeShiftRepo) List(ctx context.Context, params *repository.ShiftFilterParams) ([]entity.Shift, int64, error) {
	var out []entity.Shift
	for _, s := range f.shifts {
		if sameTenant(ctx, s.TenantID) {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

type fakeReadingRepo struct {
	readings []entity.ShiftNozzleReading
}

func (f *fakeReadingRepo) CreateBatch(ctx context.Context, readings []entity.ShiftNozzleReading) error {
	for i := range readings {
		if readings[i].ID == uuid.Nil {
			readings[i].ID = uuid.New()
		}
	}
	f.readings = append(f.readings, readings...)
	return nil
}

func (f *fakeReadingRepo) GetByShiftAndNozzle(ctx context.Context, shiftID, nozzleID uuid.UUID) (*entity.ShiftNozzleReading, error) {
	for i := range f.readings {
		if f.readings[i].ShiftID == shiftID && f.readings[i].NozzleID == nozzleID {
			cp := f.readings[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReadingRepo) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.ShiftNozzleReading, error) {
	var out []entity.ShiftNozzleReading
	for _, r := range f.readings {
		if r.ShiftID == shiftID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReadingRepo) Update(ctx context.Context, reading *entity.ShiftNozzleReading) error {
	for i := range f.readings {
		if f.readings[i].ID == reading.ID {
			f.readings[i] = *reading
			return nil
		}
	}
	return nil
}

type fakeSaleRepo struct {
	sales map[uuid.UUID]*entity.FuelSale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.FuelSale)}
}

func (f *fakeSaleRepo) Create(ctx context.Context, sale *entity.FuelSale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	cp := *sale
	f.sales[sale.ID] = &cp
	return nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelSale, error) {
	s, ok := f.sales[id]
	if !ok || !sameTenant(ctx, s.TenantID) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSaleRepo) NextSaleNumber(ctx context.Context, saleDate time.Time) (int, error) {
	max := 0
	tenantID, _ := infraRepo.GetTenantID(ctx)
	for _, s := range f.sales {
		if s.TenantID == tenantID && s.SaleDate.Equal(saleDate) && s.SaleNumber > max {
			max = s.SaleNumber
		}
	}
	return max + 1, nil
}

func (f *fakeSaleRepo) MarkVoided(ctx context.Context, id uuid.UUID, reason string, actor uuid.UUID, at time.Time) error {
	if s, ok := f.sales[id]; ok {
		s.IsVoided = true
		s.VoidReason = &reason
		s.VoidedBy = &actor
		s.VoidedAt = &at
	}
	return nil
}

func (f *fakeSaleRepo) SumQuantityByShiftNozzle(ctx context.Context, shiftID, nozzleID uuid.UUID, includeVoided bool) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range f.sales {
		if s.ShiftID != shiftID || s.NozzleID != nozzleID {
			continue
		}
		if s.IsVoided && !includeVoided {
			continue
		}
		total = total.Add(s.Quantity)
	}
	return total, nil
}

func (f *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.FuelSale, int64, error) {
	var out []entity.FuelSale
	for _, s := range f.sales {
		if sameTenant(ctx, s.TenantID) {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

type fakeMachineRepo struct {
	machines map[uuid.UUID]*entity.Machine
}

func newFakeMachineRepo() *fakeMachineRepo {
	return &fakeMachineRepo{machines: make(map[uuid.UUID]*entity.Machine)}
}

func (f *fakeMachineRepo) Create(ctx context.Context, machine *entity.Machine) error {
	if machine.ID == uuid.Nil {
		machine.ID = uuid.New()
	}
	cp := *machine
	f.machines[machine.ID] = &cp
	return nil
}

func (f *fakeMachineRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Machine, error) {
	m, ok := f.machines[id]
	if !ok || !sameTenant(ctx, m.TenantID) {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMachineRepo) Update(ctx context.Context, machine *entity.Machine) error {
	cp := *machine
	f.machines[machine.ID] = &cp
	return nil
}

func (f *fakeMachineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.machines, id)
	return nil
}

func (f *fakeMachineRepo) List(ctx context.Context) ([]entity.Machine, error) {
	var out []entity.Machine
	for _, m := range f.machines {
		if sameTenant(ctx, m.TenantID) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMachineRepo) GetWithNozzles(ctx context.Context, id uuid.UUID) (*entity.Machine, error) {
	return f.GetByID(ctx, id)
}

type fakeFuelTypeRepo struct {
	fuelTypes map[uuid.UUID]*entity.FuelType
}

func newFakeFuelTypeRepo() *fakeFuelTypeRepo {
	return &fakeFuelTypeRepo{fuelTypes: make(map[uuid.UUID]*entity.FuelType)}
}

func (f *fakeFuelTypeRepo) Create(ctx context.Context, fuelType *entity.FuelType) error {
	if fuelType.ID == uuid.Nil {
		fuelType.ID = uuid.New()
	}
	cp := *fuelType
	f.fuelTypes[fuelType.ID] = &cp
	return nil
}

func (f *fakeFuelTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelType, error) {
	ft, ok := f.fuelTypes[id]
	if !ok || !sameTenant(ctx, ft.TenantID) {
		return nil, nil
	}
	cp := *ft
	return &cp, nil
}

func (f *fakeFuelTypeRepo) List(ctx context.Context) ([]entity.FuelType, error) {
	var out []entity.FuelType
	for _, ft := range f.fuelTypes {
		if sameTenant(ctx, ft.TenantID) {
			out = append(out, *ft)
		}
	}
	return out, nil
}

type fakeFuelRateRepo struct {
	rates []entity.FuelRate
}

func (f *fakeFuelRateRepo) Create(ctx context.Context, rate *entity.FuelRate) error {
	if rate.ID == uuid.Nil {
		rate.ID = uuid.New()
	}
	f.rates = append(f.rates, *rate)
	return nil
}

func (f *fakeFuelRateRepo) GetEffectiveRate(ctx context.Context, fuelTypeID uuid.UUID, asOf time.Time) (*entity.FuelRate, error) {
	for i := range f.rates {
		r := f.rates[i]
		if r.FuelTypeID == fuelTypeID && r.Covers(asOf) {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeFuelRateRepo) CloseCurrentWindow(ctx context.Context, fuelTypeID uuid.UUID, at time.Time) error {
	for i := range f.rates {
		if f.rates[i].FuelTypeID == fuelTypeID && f.rates[i].EffectiveTo == nil {
			closeAt := at
			f.rates[i].EffectiveTo = &closeAt
		}
	}
	return nil
}

func (f *fakeFuelRateRepo) ListByFuelType(ctx context.Context, fuelTypeID uuid.UUID) ([]entity.FuelRate, error) {
	var out []entity.FuelRate
	for _, r := range f.rates {
		if r.FuelTypeID == fuelTypeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok || !sameTenant(ctx, u.TenantID) {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetForAuth(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]entity.User, error) {
	var out []entity.User
	for _, u := range f.users {
		if sameTenant(ctx, u.TenantID) {
			out = append(out, *u)
		}
	}
	return out, nil
}
