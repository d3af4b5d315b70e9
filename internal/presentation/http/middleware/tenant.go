package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stationhq/fuelops-api/internal/domain/repository"
	infraRepo "github.com/stationhq/fuelops-api/internal/infrastructure/repository"
	"github.com/stationhq/fuelops-api/internal/presentation/http/dto/response"
)

// ExtractTenantFromHost extracts tenant slug from subdomain
// e.g., "hillview.fuelops.com" -> "hillview"
func ExtractTenantFromHost(host string) (string, error) {
	// Remove port if present
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return "", errors.New("invalid subdomain")
	}
	return parts[0], nil
}

// TenantMiddleware resolves the tenant and stashes it in both the Gin
// context and the request context the repositories scope on. The access
// token's tenant claim is authoritative; a station subdomain, when present,
// must agree with it.
func TenantMiddleware(tenantRepo repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := uuid.Nil
		if claimVal, exists := c.Get("token_tenant_id"); exists {
			if id, ok := claimVal.(uuid.UUID); ok {
				tenantID = id
			}
		}

		if slug, err := ExtractTenantFromHost(c.Request.Host); err == nil {
			tenant, err := tenantRepo.GetBySlug(c.Request.Context(), slug)
			if err != nil || tenant == nil {
				response.NotFound(c, "Tenant not found")
				c.Abort()
				return
			}
			if tenantID != uuid.Nil && tenant.ID != tenantID {
				response.Forbidden(c, "Access denied to this tenant")
				c.Abort()
				return
			}
			tenantID = tenant.ID
			c.Set("tenant", tenant)
		}

		// Set tenant ID in Gin context (for middleware/handlers)
		c.Set("tenant_id", tenantID)

		if tenantID != uuid.Nil {
			// Also set tenant ID in request context (for services/repositories)
			ctx := infraRepo.WithTenant(c.Request.Context(), tenantID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// RequireTenant ensures a valid tenant context exists
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, exists := c.Get("tenant_id")
		if !exists {
			response.BadRequest(c, "Tenant context required")
			c.Abort()
			return
		}

		id, ok := tenantID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid tenant context")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
