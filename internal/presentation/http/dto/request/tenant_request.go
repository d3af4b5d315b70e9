package request

import "github.com/google/uuid"

// CreateTenantRequest represents a tenant creation request
type CreateTenantRequest struct {
	Name     string                 `json:"name" binding:"required,min=1,max=255"`
	Slug     string                 `json:"slug" binding:"required,min=3,max=255"`
	OwnerID  uuid.UUID              `json:"owner_id" binding:"required"`
	Settings *TenantSettingsRequest `json:"settings"`
}

// UpdateTenantRequest represents a tenant update request
type UpdateTenantRequest struct {
	Name     string                 `json:"name" binding:"omitempty,min=1,max=255"`
	Settings *TenantSettingsRequest `json:"settings"`
}

// TenantSettingsRequest represents per-station configuration overrides
type TenantSettingsRequest struct {
	Currency   string `json:"currency" binding:"omitempty,len=3"`
	Timezone   string `json:"timezone" binding:"omitempty,max=64"`
	Locale     string `json:"locale" binding:"omitempty,max=16"`
	DateFormat string `json:"date_format" binding:"omitempty,max=32"`
}
