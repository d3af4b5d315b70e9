package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Shift is one worker's tour of duty at one machine. Settlement fields are
// written exactly once, at close, and frozen thereafter. Shifts are never
// deleted; they are the audit trail the daily reports hang off.
type Shift struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	WorkerID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"worker_id"`
	MachineID uuid.UUID        `gorm:"type:uuid;not null;index" json:"machine_id"`
	ShiftDate time.Time        `gorm:"type:date;not null;index" json:"shift_date"`
	StartTime time.Time        `gorm:"not null" json:"start_time"`
	EndTime   *time.Time       `json:"end_time,omitempty"`
	Status    enum.ShiftStatus `gorm:"default:1;index" json:"status"`

	// Settlement, populated only at close.
	TotalSales      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_sales"`
	CashCollected   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cash_collected"`
	CreditSales     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"credit_sales"`
	DigitalPayments decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"digital_payments"`
	Borrowing       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"borrowing"`
	Variance        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"variance"`
	Notes           *string         `gorm:"type:text" json:"notes,omitempty"`
	ClosedBy        *uuid.UUID      `gorm:"type:uuid" json:"closed_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Tenant   Tenant               `gorm:"foreignKey:TenantID" json:"-"`
	Worker   User                 `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	Machine  Machine              `gorm:"foreignKey:MachineID" json:"machine,omitempty"`
	Readings []ShiftNozzleReading `gorm:"foreignKey:ShiftID" json:"readings,omitempty"`
	Sales    []FuelSale           `gorm:"foreignKey:ShiftID" json:"sales,omitempty"`
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}

// IsActive reports whether sales may still be recorded against the shift
func (s *Shift) IsActive() bool {
	return s.Status == enum.ShiftStatusActive
}

// ShiftNozzleReading is the per-nozzle snapshot a shift carries: the opening
// meter reading and the fuel rate frozen at shift start. Sales within the
// shift use the frozen rate; a mid-shift rate change never retroactively
// affects an in-progress shift. ClosingReading, QuantitySold and
// ExpectedAmount are written at close.
type ShiftNozzleReading struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TenantID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ShiftID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"shift_id"`
	NozzleID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"nozzle_id"`
	OpeningReading decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"opening_reading"`
	ClosingReading *decimal.Decimal `gorm:"type:decimal(20,4)" json:"closing_reading,omitempty"`
	QuantitySold   decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"quantity_sold"`
	RateAtShift    decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"rate_at_shift"`
	ExpectedAmount decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"expected_amount"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Relationships
	Shift  Shift  `gorm:"foreignKey:ShiftID" json:"-"`
	Nozzle Nozzle `gorm:"foreignKey:NozzleID" json:"nozzle,omitempty"`
}

// BeforeCreate generates a UUID before creating a new shift nozzle reading
func (r *ShiftNozzleReading) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ShiftNozzleReading model
func (ShiftNozzleReading) TableName() string {
	return "shift_nozzle_readings"
}
