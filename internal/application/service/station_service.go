package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/internal/domain/repository"
	infraRepo "github.com/stationhq/fuelops-api/internal/infrastructure/repository"
	"github.com/stationhq/fuelops-api/pkg/apperror"
)

// StationService manages the forecourt configuration: machines, nozzles,
// tanks, fuel types and the rate history. Meter readings and stock levels
// are ledger-owned and deliberately not editable here.
type StationService struct {
	txManager    repository.TxManager
	machineRepo  repository.MachineRepository
	nozzleRepo   repository.NozzleRepository
	tankRepo     repository.TankRepository
	fuelTypeRepo repository.FuelTypeRepository
	rateRepo     repository.FuelRateRepository
}

// NewStationService creates a new station service
func NewStationService(
	txManager repository.TxManager,
	machineRepo repository.MachineRepository,
	nozzleRepo repository.NozzleRepository,
	tankRepo repository.TankRepository,
	fuelTypeRepo repository.FuelTypeRepository,
	rateRepo repository.FuelRateRepository,
) *StationService {
	return &StationService{
		txManager:    txManager,
		machineRepo:  machineRepo,
		nozzleRepo:   nozzleRepo,
		tankRepo:     tankRepo,
		fuelTypeRepo: fuelTypeRepo,
		rateRepo:     rateRepo,
	}
}

// CreateMachineInput represents the create machine input
type CreateMachineInput struct {
	Name string
	Code string
}

// CreateMachine creates a new dispenser machine
func (s *StationService) CreateMachine(ctx context.Context, input *CreateMachineInput) (*entity.Machine, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	machine := &entity.Machine{
		TenantID: tenantID,
		Name:     input.Name,
		Code:     input.Code,
		IsActive: true,
	}
	if err := s.machineRepo.Create(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

// UpdateMachineInput represents the update machine input
type UpdateMachineInput struct {
	Name     *string
	Code     *string
	IsActive *bool
}

// UpdateMachine updates a machine
func (s *StationService) UpdateMachine(ctx context.Context, id uuid.UUID, input *UpdateMachineInput) (*entity.Machine, error) {
	machine, err := s.machineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, apperror.NewNotFoundError("Machine")
	}

	if input.Name != nil {
		machine.Name = *input.Name
	}
	if input.Code != nil {
		machine.Code = *input.Code
	}
	if input.IsActive != nil {
		machine.IsActive = *input.IsActive
	}
	if err := s.machineRepo.Update(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

// GetMachine retrieves a machine with its nozzles
func (s *StationService) GetMachine(ctx context.Context, id uuid.UUID) (*entity.Machine, error) {
	machine, err := s.machineRepo.GetWithNozzles(ctx, id)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, apperror.NewNotFoundError("Machine")
	}
	return machine, nil
}

// ListMachines retrieves all machines for the tenant
func (s *StationService) ListMachines(ctx context.Context) ([]entity.Machine, error) {
	return s.machineRepo.List(ctx)
}

// DeleteMachine soft-deletes a machine
func (s *StationService) DeleteMachine(ctx context.Context, id uuid.UUID) error {
	machine, err := s.machineRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if machine == nil {
		return apperror.NewNotFoundError("Machine")
	}
	return s.machineRepo.Delete(ctx, id)
}

// CreateNozzleInput represents the create nozzle input
type CreateNozzleInput struct {
	MachineID      uuid.UUID
	FuelTypeID     uuid.UUID
	TankID         uuid.UUID
	Name           string
	InitialReading decimal.Decimal
}

// CreateNozzle creates a nozzle on a machine. The initial meter reading is
// whatever the physical dispenser shows at installation; after this moment
// the meter only moves through sales and shift closes.
func (s *StationService) CreateNozzle(ctx context.Context, input *CreateNozzleInput) (*entity.Nozzle, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if input.InitialReading.IsNegative() {
		return nil, apperror.NewValidationMessage("Initial meter reading cannot be negative")
	}

	machine, err := s.machineRepo.GetByID(ctx, input.MachineID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, apperror.NewNotFoundError("Machine")
	}

	fuelType, err := s.fuelTypeRepo.GetByID(ctx, input.FuelTypeID)
	if err != nil {
		return nil, err
	}
	if fuelType == nil {
		return nil, apperror.NewNotFoundError("Fuel type")
	}

	tank, err := s.tankRepo.GetByID(ctx, input.TankID)
	if err != nil {
		return nil, err
	}
	if tank == nil {
		return nil, apperror.NewNotFoundError("Tank")
	}
	if tank.FuelTypeID != input.FuelTypeID {
		return nil, apperror.NewValidationMessage("Tank holds a different fuel type")
	}

	nozzle := &entity.Nozzle{
		TenantID:            tenantID,
		MachineID:           input.MachineID,
		FuelTypeID:          input.FuelTypeID,
		TankID:              input.TankID,
		Name:                input.Name,
		CurrentMeterReading: input.InitialReading,
		IsActive:            true,
	}
	if err := s.nozzleRepo.Create(ctx, nozzle); err != nil {
		return nil, err
	}
	return nozzle, nil
}

// UpdateNozzleInput represents the update nozzle input. Meter readings are
// not updatable; only the ledger moves them.
type UpdateNozzleInput struct {
	Name     *string
	IsActive *bool
}

// UpdateNozzle updates a nozzle's name or active flag
func (s *StationService) UpdateNozzle(ctx context.Context, id uuid.UUID, input *UpdateNozzleInput) (*entity.Nozzle, error) {
	nozzle, err := s.nozzleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if nozzle == nil {
		return nil, apperror.NewNotFoundError("Nozzle")
	}

	if input.Name != nil {
		nozzle.Name = *input.Name
	}
	if input.IsActive != nil {
		nozzle.IsActive = *input.IsActive
	}
	if err := s.nozzleRepo.Update(ctx, nozzle); err != nil {
		return nil, err
	}
	return nozzle, nil
}

// ListNozzles retrieves all nozzles for the tenant
func (s *StationService) ListNozzles(ctx context.Context) ([]entity.Nozzle, error) {
	return s.nozzleRepo.List(ctx)
}

// CreateTankInput represents the create tank input
type CreateTankInput struct {
	FuelTypeID   uuid.UUID
	Name         string
	Capacity     decimal.Decimal
	OpeningStock decimal.Decimal
	MinimumLevel decimal.Decimal
}

// CreateTank creates a storage tank
func (s *StationService) CreateTank(ctx context.Context, input *CreateTankInput) (*entity.Tank, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if !input.Capacity.IsPositive() {
		return nil, apperror.NewValidationMessage("Tank capacity must be positive")
	}
	if input.OpeningStock.IsNegative() || input.MinimumLevel.IsNegative() {
		return nil, apperror.NewValidationMessage("Stock levels cannot be negative")
	}

	fuelType, err := s.fuelTypeRepo.GetByID(ctx, input.FuelTypeID)
	if err != nil {
		return nil, err
	}
	if fuelType == nil {
		return nil, apperror.NewNotFoundError("Fuel type")
	}

	tank := &entity.Tank{
		TenantID:     tenantID,
		FuelTypeID:   input.FuelTypeID,
		Name:         input.Name,
		Capacity:     input.Capacity,
		CurrentStock: input.OpeningStock,
		MinimumLevel: input.MinimumLevel,
	}
	if err := s.tankRepo.Create(ctx, tank); err != nil {
		return nil, err
	}
	return tank, nil
}

// UpdateTankInput represents the update tank input. CurrentStock is ledger
// owned; corrections go through stock adjustments.
type UpdateTankInput struct {
	Name         *string
	Capacity     *decimal.Decimal
	MinimumLevel *decimal.Decimal
}

// UpdateTank updates a tank's configuration
func (s *StationService) UpdateTank(ctx context.Context, id uuid.UUID, input *UpdateTankInput) (*entity.Tank, error) {
	tank, err := s.tankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tank == nil {
		return nil, apperror.NewNotFoundError("Tank")
	}

	if input.Name != nil {
		tank.Name = *input.Name
	}
	if input.Capacity != nil {
		if !input.Capacity.IsPositive() {
			return nil, apperror.NewValidationMessage("Tank capacity must be positive")
		}
		tank.Capacity = *input.Capacity
	}
	if input.MinimumLevel != nil {
		tank.MinimumLevel = *input.MinimumLevel
	}
	if err := s.tankRepo.Update(ctx, tank); err != nil {
		return nil, err
	}
	return tank, nil
}

// GetTank retrieves a tank by ID
func (s *StationService) GetTank(ctx context.Context, id uuid.UUID) (*entity.Tank, error) {
	tank, err := s.tankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tank == nil {
		return nil, apperror.NewNotFoundError("Tank")
	}
	return tank, nil
}

// ListTanks retrieves all tanks for the tenant
func (s *StationService) ListTanks(ctx context.Context) ([]entity.Tank, error) {
	return s.tankRepo.List(ctx)
}

// ListLowTanks retrieves tanks at or below their minimum level
func (s *StationService) ListLowTanks(ctx context.Context) ([]entity.Tank, error) {
	return s.tankRepo.ListLow(ctx)
}

// CreateFuelTypeInput represents the create fuel type input
type CreateFuelTypeInput struct {
	Name string
	Code string
}

// CreateFuelType creates a fuel type
func (s *StationService) CreateFuelType(ctx context.Context, input *CreateFuelTypeInput) (*entity.FuelType, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	fuelType := &entity.FuelType{
		TenantID: tenantID,
		Name:     input.Name,
		Code:     input.Code,
	}
	if err := s.fuelTypeRepo.Create(ctx, fuelType); err != nil {
		return nil, err
	}
	return fuelType, nil
}

// ListFuelTypes retrieves all fuel types for the tenant
func (s *StationService) ListFuelTypes(ctx context.Context) ([]entity.FuelType, error) {
	return s.fuelTypeRepo.List(ctx)
}

// SetRateInput represents the set fuel rate input
type SetRateInput struct {
	FuelTypeID    uuid.UUID
	Rate          decimal.Decimal
	EffectiveFrom *time.Time
	SetBy         uuid.UUID
}

// SetFuelRate opens a new rate window for a fuel type, closing the current
// one at the same instant so windows keep tiling the timeline. Shifts
// already running keep their frozen rate; the new rate applies to shifts
// started after EffectiveFrom.
func (s *StationService) SetFuelRate(ctx context.Context, input *SetRateInput) (*entity.FuelRate, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if !input.Rate.IsPositive() {
		return nil, apperror.NewValidationMessage("Rate must be positive")
	}

	fuelType, err := s.fuelTypeRepo.GetByID(ctx, input.FuelTypeID)
	if err != nil {
		return nil, err
	}
	if fuelType == nil {
		return nil, apperror.NewNotFoundError("Fuel type")
	}

	effectiveFrom := nowFunc()
	if input.EffectiveFrom != nil {
		effectiveFrom = *input.EffectiveFrom
	}

	current, err := s.rateRepo.GetEffectiveRate(ctx, input.FuelTypeID, effectiveFrom)
	if err != nil {
		return nil, err
	}
	if current != nil && effectiveFrom.Before(current.EffectiveFrom) {
		return nil, apperror.NewValidationMessage("New rate cannot start before the current window")
	}

	rate := &entity.FuelRate{
		TenantID:      tenantID,
		FuelTypeID:    input.FuelTypeID,
		Rate:          input.Rate,
		EffectiveFrom: effectiveFrom,
		SetBy:         input.SetBy,
	}
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.rateRepo.CloseCurrentWindow(ctx, input.FuelTypeID, effectiveFrom); err != nil {
			return err
		}
		return s.rateRepo.Create(ctx, rate)
	})
	if err != nil {
		return nil, err
	}
	return rate, nil
}

// ListFuelRates retrieves the rate history for a fuel type
func (s *StationService) ListFuelRates(ctx context.Context, fuelTypeID uuid.UUID) ([]entity.FuelRate, error) {
	return s.rateRepo.ListByFuelType(ctx, fuelTypeID)
}

// GetEffectiveRate returns the rate effective now for a fuel type
func (s *StationService) GetEffectiveRate(ctx context.Context, fuelTypeID uuid.UUID) (*entity.FuelRate, error) {
	rate, err := s.rateRepo.GetEffectiveRate(ctx, fuelTypeID, nowFunc())
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, apperror.NewNotFoundError("Effective rate")
	}
	return rate, nil
}
