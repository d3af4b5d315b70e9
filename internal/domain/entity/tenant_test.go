package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTenantOwnerBackReferenceIsOptional(t *testing.T) {
	owner := &User{
		ID:        uuid.New(),
		FirstName: "Ravi",
		LastName:  "Menon",
		Email:     "ravi@example.test",
		Role:      RoleOwner,
	}

	tenant := Tenant{
		ID:      uuid.New(),
		Name:    "Highway Fuels",
		Slug:    "highway-fuels",
		OwnerID: owner.ID,
		Owner:   owner,
	}
	owner.TenantID = tenant.ID

	// The back-reference is a pointer so a tenant can be loaded or
	// serialized without dragging the owner row along.
	require.NotNil(t, tenant.Owner)
	require.Equal(t, tenant.OwnerID, tenant.Owner.ID)

	bare := Tenant{ID: uuid.New(), Name: "Bare", Slug: "bare", OwnerID: owner.ID}
	body, err := json.Marshal(bare)
	require.NoError(t, err)
	require.NotContains(t, string(body), "Owner")
}

func TestDefaultTenantSettingsRoundTrip(t *testing.T) {
	settings := DefaultTenantSettings()
	require.Equal(t, "INR", settings.Currency)
	require.Equal(t, "Asia/Kolkata", settings.Timezone)
	require.True(t, settings.Features.EnableShifts)
	require.False(t, settings.Features.EnableAPIAccess)

	raw, err := settings.Value()
	require.NoError(t, err)

	var scanned TenantSettings
	require.NoError(t, scanned.Scan(raw))
	require.Equal(t, settings, scanned)
}
