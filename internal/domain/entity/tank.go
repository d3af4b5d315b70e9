package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tank is a fuel storage unit shared by every nozzle drawing its fuel type.
// CurrentStock is a materialized cache of the stock ledger's latest entry
// and is only ever written in the same transaction as a StockEntry row.
type Tank struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	FuelTypeID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"fuel_type_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Capacity     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"capacity"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"current_stock"`
	MinimumLevel decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"minimum_level"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Tenant   Tenant   `gorm:"foreignKey:TenantID" json:"-"`
	FuelType FuelType `gorm:"foreignKey:FuelTypeID" json:"fuel_type,omitempty"`
	Nozzles  []Nozzle `gorm:"foreignKey:TankID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tank
func (t *Tank) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tank model
func (Tank) TableName() string {
	return "tanks"
}

// IsLow reports whether stock has fallen to or below the minimum level
func (t *Tank) IsLow() bool {
	return t.CurrentStock.LessThanOrEqual(t.MinimumLevel)
}

// ExceedsCapacity reports whether a stock level would overrun the recorded
// capacity. Recorded capacity is a soft bound: deliveries are flagged, not
// blocked, because the physical tank can hold more than what was configured.
func (t *Tank) ExceedsCapacity(stock decimal.Decimal) bool {
	return stock.GreaterThan(t.Capacity)
}
