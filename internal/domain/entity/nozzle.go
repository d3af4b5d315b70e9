package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Nozzle is one fuel-dispensing point on a machine. CurrentMeterReading is
// the cumulative, never-reset counter on the physical dispenser; it only
// moves forward, and only through the meter ledger (sale creation or shift
// closing-reading acceptance). Quantity sold is always a difference of two
// readings, never a raw number.
type Nozzle struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	MachineID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"machine_id"`
	FuelTypeID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"fuel_type_id"`
	TankID              uuid.UUID       `gorm:"type:uuid;not null;index" json:"tank_id"`
	Name                string          `gorm:"size:100;not null" json:"name"`
	CurrentMeterReading decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"current_meter_reading"`
	IsActive            bool            `gorm:"default:true" json:"is_active"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	DeletedAt           gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Tenant   Tenant   `gorm:"foreignKey:TenantID" json:"-"`
	Machine  Machine  `gorm:"foreignKey:MachineID" json:"-"`
	FuelType FuelType `gorm:"foreignKey:FuelTypeID" json:"fuel_type,omitempty"`
	Tank     Tank     `gorm:"foreignKey:TankID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new nozzle
func (n *Nozzle) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Nozzle model
func (Nozzle) TableName() string {
	return "nozzles"
}
