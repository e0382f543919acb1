package models

import (
	"testing"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList(t *testing.T) {
	t.Run("nil stores an empty array", func(t *testing.T) {
		v, err := StringList(nil).Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("scans text and bytes", func(t *testing.T) {
		var l StringList
		require.NoError(t, l.Scan(`["a.png","b.png"]`))
		assert.Equal(t, StringList{"a.png", "b.png"}, l)

		require.NoError(t, l.Scan([]byte(`null`)))
		assert.Equal(t, StringList{}, l)

		require.NoError(t, l.Scan(nil))
		assert.Equal(t, StringList{}, l)
	})

	t.Run("rejects other types", func(t *testing.T) {
		var l StringList
		assert.Error(t, l.Scan(42))
		assert.Error(t, l.Scan(`{"not":"a list"}`))
	})
}

func TestJSONMap(t *testing.T) {
	v, err := JSONMap(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	var m JSONMap
	require.NoError(t, m.Scan([]byte(`{"size":"M","stock":3}`)))
	assert.Equal(t, "M", m["size"])
	assert.Equal(t, float64(3), m["stock"])

	require.NoError(t, m.Scan(nil))
	assert.Empty(t, m)
	assert.NotNil(t, m)

	assert.Error(t, m.Scan(`[1,2]`))
}

func TestProductModel_RoundTrip(t *testing.T) {
	product, err := catalog.NewProduct(uuid.New(), "A1", "Anel")
	require.NoError(t, err)
	price := decimal.RequireFromString("19.99")
	require.NoError(t, product.SetPrice(&price))
	require.NoError(t, product.AddImages([]string{"x.png"}, 3))

	model := ProductModelFromDomain(product)
	assert.True(t, model.Price.Valid)
	assert.Equal(t, product.UserID, model.UserID)

	back := model.ToDomain()
	assert.Equal(t, product.ID, back.ID)
	assert.Equal(t, product.Version, back.Version)
	assert.True(t, price.Equal(*back.Price))
	assert.Equal(t, []string{"x.png"}, back.Images)

	back.Images[0] = "changed.png"
	assert.Equal(t, StringList{"x.png"}, model.Images, "conversion copies slices")

	require.NoError(t, product.SetPrice(nil))
	assert.False(t, ProductModelFromDomain(product).Price.Valid)
}
