package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
)

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	// IsMember reports whether the user belongs to the tenant.
	IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)
}
