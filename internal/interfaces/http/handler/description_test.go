package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionHandler_Generate(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ai@example.com")
	body := map[string]any{"productName": "Vestido floral", "category": "Vestidos", "price": 129.9}

	t.Run("free plan is refused", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/ai/product-description", body, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "PLAN_FEATURE_UNAVAILABLE", errorCode(t, w))
		assert.Empty(t, env.generator.prompts)
	})

	env.upgradeToPro(t, userID)

	t.Run("generates for pro sellers", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/ai/product-description", body, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Uma descrição irresistível.", dataMap(t, w)["description"])
		require.Len(t, env.generator.prompts, 1)
		assert.Contains(t, env.generator.prompts[0], "Vestido floral")
	})

	t.Run("product name is required", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/ai/product-description", map[string]any{"category": "Vestidos"}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("generator not configured", func(t *testing.T) {
		env.generator.available = false
		defer func() { env.generator.available = true }()

		w := env.do(t, http.MethodPost, "/ai/product-description", body, token)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "AI_UNAVAILABLE", errorCode(t, w))
	})

	t.Run("upstream failure", func(t *testing.T) {
		env.generator.err = errors.New("model overloaded")
		defer func() { env.generator.err = nil }()

		w := env.do(t, http.MethodPost, "/ai/product-description", body, token)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "AI_UPSTREAM_ERROR", errorCode(t, w))
	})
}
