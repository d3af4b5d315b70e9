package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationhq/fuelops-api/internal/domain/enum"
	"gorm.io/gorm"
)

// FuelSale is one point-of-sale transaction against an active shift. Rate is
// copied from the shift's frozen per-nozzle rate, never looked up live.
// Sales are never physically deleted: a void keeps the row and marks it,
// because the meter movement behind it cannot be undone.
type FuelSale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID          `gorm:"type:uuid;not null;index:idx_sale_number,unique" json:"tenant_id"`
	ShiftID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"shift_id"`
	NozzleID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"nozzle_id"`
	SaleDate      time.Time          `gorm:"type:date;not null;index:idx_sale_number,unique" json:"sale_date"`
	SaleNumber    int                `gorm:"not null;index:idx_sale_number,unique" json:"sale_number"`
	Quantity      decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Rate          decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"rate"`
	Amount        decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"amount"`
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	CustomerName  *string            `gorm:"size:255" json:"customer_name,omitempty"`
	VehicleNumber *string            `gorm:"size:50" json:"vehicle_number,omitempty"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	RecordedBy    uuid.UUID          `gorm:"type:uuid;not null" json:"recorded_by"`

	// Void bookkeeping. A void is an accounting correction, not a physical
	// undo: stock is credited back, the nozzle meter stays where it is.
	IsVoided   bool       `gorm:"default:false;index" json:"is_voided"`
	VoidReason *string    `gorm:"type:text" json:"void_reason,omitempty"`
	VoidedBy   *uuid.UUID `gorm:"type:uuid" json:"voided_by,omitempty"`
	VoidedAt   *time.Time `json:"voided_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	Shift  Shift  `gorm:"foreignKey:ShiftID" json:"-"`
	Nozzle Nozzle `gorm:"foreignKey:NozzleID" json:"nozzle,omitempty"`
}

// BeforeCreate generates a UUID before creating a new fuel sale
func (s *FuelSale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FuelSale model
func (FuelSale) TableName() string {
	return "fuel_sales"
}
