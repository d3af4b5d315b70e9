package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant represents one petrol-station operator in the multitenant system.
// Every station asset and ledger row hangs off a tenant; queries are scoped
// through the request context so cross-tenant rows are simply never visible.
type Tenant struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Settings  TenantSettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner    *User     `gorm:"foreignKey:OwnerID" json:"-"`
	Machines []Machine `gorm:"foreignKey:TenantID" json:"-"`
	Tanks    []Tank    `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tenant
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// TenantSettings holds customizable per-station configuration
type TenantSettings struct {
	Currency   string `json:"currency,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	Locale     string `json:"locale,omitempty"`
	DateFormat string `json:"date_format,omitempty"`

	// Feature entitlements, maintained by the subscription layer. The
	// engine only reads them.
	Features TenantFeatures `json:"features,omitempty"`
}

// Scan implements the sql.Scanner interface for TenantSettings
func (ts *TenantSettings) Scan(value interface{}) error {
	if value == nil {
		*ts = TenantSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan TenantSettings: unsupported type")
	}

	return json.Unmarshal(bytes, ts)
}

// Value implements the driver.Valuer interface for TenantSettings
func (ts TenantSettings) Value() (driver.Value, error) {
	return json.Marshal(ts)
}

// TenantFeatures holds feature flags for a tenant
type TenantFeatures struct {
	EnableShifts      bool `json:"shifts"`
	EnableStockLedger bool `json:"stock_ledger"`
	EnableReports     bool `json:"reports"`
	EnableMultiUser   bool `json:"multi_user"`
	EnableAPIAccess   bool `json:"api_access"`
}

// DefaultTenantSettings returns default settings for new tenants
func DefaultTenantSettings() TenantSettings {
	return TenantSettings{
		Currency:   "INR",
		Timezone:   "Asia/Kolkata",
		Locale:     "en-IN",
		DateFormat: "DD/MM/YYYY",
		Features: TenantFeatures{
			EnableShifts:      true,
			EnableStockLedger: true,
			EnableReports:     true,
			EnableMultiUser:   true,
			EnableAPIAccess:   false,
		},
	}
}
