package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockEntry is one immutable row of a tank's movement ledger. Quantity is
// signed (debits negative, credits positive) and the row carries the running
// balance: StockAfter = StockBefore + Quantity, with StockBefore equal to the
// tank's CurrentStock at the instant the entry was appended. Entries are
// never updated or deleted; a reversal is a new compensating entry.
type StockEntry struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"tenant_id"`
	TankID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"tank_id"`
	Type        enum.StockEntryType `gorm:"default:0" json:"type"`
	Quantity    decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"quantity"`
	StockBefore decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"stock_before"`
	StockAfter  decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"stock_after"`
	ShiftID     *uuid.UUID          `gorm:"type:uuid;index" json:"shift_id,omitempty"`
	FuelSaleID  *uuid.UUID          `gorm:"type:uuid;index" json:"fuel_sale_id,omitempty"`
	Reference   *string             `gorm:"size:255" json:"reference,omitempty"`
	Notes       *string             `gorm:"type:text" json:"notes,omitempty"`
	Flagged     bool                `gorm:"default:false" json:"flagged"`
	RecordedBy  uuid.UUID           `gorm:"type:uuid;not null" json:"recorded_by"`
	CreatedAt   time.Time           `json:"created_at"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	Tank   Tank   `gorm:"foreignKey:TankID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock entry
func (e *StockEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockEntry model
func (StockEntry) TableName() string {
	return "stock_entries"
}

// Balanced reports whether the running balance on the row adds up.
func (e *StockEntry) Balanced() bool {
	return e.StockAfter.Equal(e.StockBefore.Add(e.Quantity))
}
