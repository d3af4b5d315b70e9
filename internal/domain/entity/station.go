package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Machine represents one dispenser unit on the forecourt. A machine carries
// one or more nozzles; a shift assigns a worker to a machine.
type Machine struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"size:100;not null" json:"code"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant  Tenant   `gorm:"foreignKey:TenantID" json:"-"`
	Nozzles []Nozzle `gorm:"foreignKey:MachineID" json:"nozzles,omitempty"`
}

// BeforeCreate generates a UUID before creating a new machine
func (m *Machine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Machine model
func (Machine) TableName() string {
	return "machines"
}

// FuelType represents a fuel product (petrol, diesel, premium...)
type FuelType struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"size:50;not null" json:"code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new fuel type
func (f *FuelType) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FuelType model
func (FuelType) TableName() string {
	return "fuel_types"
}

// FuelRate is one row of the per-fuel-type rate history. At any timestamp
// exactly one rate per fuel type must be effective: rows tile the timeline,
// the open-ended current rate has a null EffectiveTo. Setting a new rate
// closes the previous window at the new rate's EffectiveFrom.
type FuelRate struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	FuelTypeID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"fuel_type_id"`
	Rate          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	EffectiveFrom time.Time       `gorm:"not null;index" json:"effective_from"`
	EffectiveTo   *time.Time      `gorm:"index" json:"effective_to,omitempty"`
	SetBy         uuid.UUID       `gorm:"type:uuid" json:"set_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Tenant   Tenant   `gorm:"foreignKey:TenantID" json:"-"`
	FuelType FuelType `gorm:"foreignKey:FuelTypeID" json:"fuel_type,omitempty"`
}

// BeforeCreate generates a UUID before creating a new fuel rate
func (r *FuelRate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FuelRate model
func (FuelRate) TableName() string {
	return "fuel_rates"
}

// Covers reports whether asOf falls inside this rate's effective window,
// i.e. EffectiveFrom <= asOf < EffectiveTo (unset EffectiveTo is open-ended).
func (r *FuelRate) Covers(asOf time.Time) bool {
	if asOf.Before(r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo == nil {
		return true
	}
	return asOf.Before(*r.EffectiveTo)
}
