package identity

import (
	"strings"
	"testing"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	userID := uuid.New()
	profile := NewProfile(userID, "Ana", "")

	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, DefaultStoreName, profile.StoreName)
	assert.Equal(t, DefaultAccentColor, profile.AccentColor)
	assert.Equal(t, PlanFree, profile.Plan)
	assert.True(t, profile.IsCatalogPublic())
	assert.Equal(t, DefaultStoreName, profile.PublicName())
}

func TestProfile_UpdateStore(t *testing.T) {
	profile := NewProfile(uuid.New(), "Ana", "Loja")

	t.Run("valid update", func(t *testing.T) {
		err := profile.UpdateStore("Ana B", "Ateliê Ana", "#00aa11", "+55 11 99999-0000")
		require.NoError(t, err)
		assert.Equal(t, "Ana B", profile.DisplayName)
		assert.Equal(t, "Ateliê Ana", profile.StoreName)
		assert.Equal(t, "#00AA11", profile.AccentColor)
		assert.Equal(t, "+55 11 99999-0000", profile.WhatsAppPhone)
	})

	t.Run("empty color falls back to default", func(t *testing.T) {
		require.NoError(t, profile.UpdateStore("", "Ateliê Ana", "", ""))
		assert.Equal(t, DefaultAccentColor, profile.AccentColor)
		assert.Equal(t, "Ana B", profile.DisplayName)
	})

	t.Run("rejects bad color", func(t *testing.T) {
		assert.Error(t, profile.UpdateStore("", "Loja", "orange", ""))
	})

	t.Run("store name limit counts characters", func(t *testing.T) {
		require.NoError(t, profile.UpdateStore("", strings.Repeat("ê", 100), "", ""))
		assert.Error(t, profile.UpdateStore("", strings.Repeat("ê", 101), "", ""))
	})

	t.Run("rejects empty store name", func(t *testing.T) {
		assert.Error(t, profile.UpdateStore("", "  ", "", ""))
	})
}

func TestProfile_SelectPlan(t *testing.T) {
	profile := NewProfile(uuid.New(), "Ana", "")

	assert.NoError(t, profile.SelectPlan(PlanFree))
	assert.Error(t, profile.SelectPlan(Plan("gold")))

	err := profile.SelectPlan(PlanPro)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PLAN_UPGRADE_UNAVAILABLE", domainErr.Code)
	assert.Equal(t, PlanFree, profile.Plan)
}

func TestPlanLimits(t *testing.T) {
	assert.Equal(t, 5, PlanFree.MaxProducts())
	assert.Equal(t, 3, PlanFree.MaxImagesPerProduct())
	assert.False(t, PlanFree.HasFeature(FeatureAIDescription))

	assert.Equal(t, 0, PlanPro.MaxProducts())
	assert.Equal(t, 15, PlanPro.MaxImagesPerProduct())
	assert.True(t, PlanPro.HasFeature(FeatureAIDescription))

	assert.Equal(t, PlanFree, Plan("unknown").Definition().ID)
	assert.Len(t, AvailablePlans(), 2)
}
