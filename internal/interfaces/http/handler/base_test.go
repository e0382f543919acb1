package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	identityapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/dto"
	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// withSession simulates the JWT middleware for an authenticated seller
func withSession(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := &identityapp.Session{UserID: userID, Email: "seller@example.com"}
		c.Set(middleware.JWTSessionKey, session)
		c.Request = c.Request.WithContext(identityapp.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.SuccessWithMeta(c, []string{"item1", "item2"}, 100, 1, 10)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(100), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.TotalPages)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Created(c, map[string]string{"id": "123"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandlerNoContent(t *testing.T) {
	h := &BaseHandler{}

	router := gin.New()
	router.DELETE("/test", func(c *gin.Context) {
		h.NoContent(c)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/test", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestBaseHandlerErrorMethods(t *testing.T) {
	tests := []struct {
		name         string
		method       func(*BaseHandler, *gin.Context)
		expectedCode int
		expectedErr  string
	}{
		{"BadRequest", func(h *BaseHandler, c *gin.Context) { h.BadRequest(c, "bad") }, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"NotFound", func(h *BaseHandler, c *gin.Context) { h.NotFound(c, "missing") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"Unauthorized", func(h *BaseHandler, c *gin.Context) { h.Unauthorized(c, "who") }, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"InternalError", func(h *BaseHandler, c *gin.Context) { h.InternalError(c, "boom") }, http.StatusInternalServerError, dto.ErrCodeInternal},
		{"ErrorWithCode", func(h *BaseHandler, c *gin.Context) { h.ErrorWithCode(c, "PRODUCT_NOT_FOUND", "gone") }, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			c.Set(middleware.RequestIDKey, "req-"+tt.name)

			tt.method(h, c)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
			assert.Equal(t, "req-"+tt.name, resp.Error.RequestID)
		})
	}
}

func TestBaseHandlerValidationError(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	h.ValidationError(c, []dto.ValidationDetail{{Field: "code", Message: "This field is required"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "code", resp.Error.Details[0].Field)
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{"invalid input", shared.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, "INVALID_STATE"},
		{"concurrency", shared.ErrConcurrencyConflict, http.StatusConflict, "CONCURRENCY_CONFLICT"},
		{"product limit", shared.NewDomainError("PRODUCT_LIMIT_EXCEEDED", "limit"), http.StatusUnprocessableEntity, "PRODUCT_LIMIT_EXCEEDED"},
		{"plan feature", shared.NewDomainError("PLAN_FEATURE_UNAVAILABLE", "upgrade"), http.StatusForbidden, "PLAN_FEATURE_UNAVAILABLE"},
		{"wrapped", fmt.Errorf("lookup: %w", shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")), http.StatusNotFound, "CATEGORY_NOT_FOUND"},
		{"legacy code", shared.NewDomainError("DUPLICATE", "dup"), http.StatusConflict, "ALREADY_EXISTS"},
		{"plain error", assert.AnError, http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
		})
	}
}

func TestBaseHandlerHandleError_HidesInternalCause(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	h.HandleError(c, fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"))

	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")
}

func TestBaseHandlerHandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.HandleError(c, nil)

	assert.Empty(t, w.Body.Bytes())
}

func TestBaseHandlerRequireSession(t *testing.T) {
	h := &BaseHandler{}
	userID := uuid.New()

	router := gin.New()
	router.GET("/open", func(c *gin.Context) {
		if _, ok := h.requireSession(c); ok {
			c.Status(http.StatusOK)
		}
	})
	router.GET("/auth", withSession(userID), func(c *gin.Context) {
		session, ok := h.requireSession(c)
		require.True(t, ok)
		c.String(http.StatusOK, session.UserID.String())
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/open", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/auth", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
}

func TestBaseHandlerParseID(t *testing.T) {
	h := &BaseHandler{}
	router := gin.New()
	router.GET("/items/:id", func(c *gin.Context) {
		if id, ok := h.parseID(c, "id", "product"); ok {
			c.String(http.StatusOK, id.String())
		}
	})

	id := uuid.New()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/items/"+id.String(), nil))
	assert.Equal(t, id.String(), w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/items/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidID, decodeResponse(t, w).Error.Code)
}

func TestBaseHandlerBindJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name" binding:"required,max=5"`
	}
	h := &BaseHandler{}
	router := gin.New()
	router.POST("/items", func(c *gin.Context) {
		var req payload
		if h.bindJSON(c, &req) {
			c.String(http.StatusOK, req.Name)
		}
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{"valid", `{"name":"ok"}`, http.StatusOK, ""},
		{"missing field", `{}`, http.StatusBadRequest, "name"},
		{"too long", `{"name":"toolong"}`, http.StatusBadRequest, "name"},
		{"malformed", `{"name":`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/items", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantField != "" {
				resp := decodeResponse(t, w)
				require.NotEmpty(t, resp.Error.Details)
				assert.Equal(t, tt.wantField, resp.Error.Details[0].Field)
			}
		})
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, 20},
		{-3, 10, 1, 10},
		{2, 500, 2, 100},
		{4, 25, 4, 25},
	}
	for _, tt := range tests {
		page, size := normalizePage(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantSize, size)
	}
}
