package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	userID := uuid.New()

	category, err := NewCategory(userID, "  Imóveis ", "Casas e apartamentos")
	require.NoError(t, err)
	assert.Equal(t, "Imóveis", category.Name)
	assert.Equal(t, userID, category.UserID)

	_, err = NewCategory(userID, "", "")
	assert.Error(t, err)

	_, err = NewCategory(userID, strings.Repeat("x", MaxCategoryNameLength+1), "")
	assert.Error(t, err)

	_, err = NewCategory(userID, strings.Repeat("ô", MaxCategoryNameLength), "")
	assert.NoError(t, err)

	_, err = NewCategory(userID, "Moda", strings.Repeat("x", MaxCategoryDescriptionLength+1))
	assert.Error(t, err)
}

func TestCategory_Update(t *testing.T) {
	category, err := NewCategory(uuid.New(), "Moda", "")
	require.NoError(t, err)

	require.NoError(t, category.Update("Moda feminina", "Roupas"))
	assert.Equal(t, "Moda feminina", category.Name)
	assert.Equal(t, "Roupas", category.Description)
	assert.Equal(t, 2, category.GetVersion())

	assert.Error(t, category.Update(" ", ""))
	assert.Equal(t, "Moda feminina", category.Name)
}

func TestCategory_NewSubcategory(t *testing.T) {
	category, err := NewCategory(uuid.New(), "Veículos", "")
	require.NoError(t, err)

	sub, err := category.NewSubcategory("Motos")
	require.NoError(t, err)
	assert.Equal(t, category.ID, sub.CategoryID)
	assert.Equal(t, category.UserID, sub.UserID)
	assert.Equal(t, "Motos", sub.Name)

	require.NoError(t, sub.Rename("Motocicletas"))
	assert.Equal(t, "Motocicletas", sub.Name)

	_, err = category.NewSubcategory("")
	assert.Error(t, err)
}
