package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeTokenRevoked, http.StatusUnauthorized},
		{ErrCodeAccountLocked, http.StatusForbidden},
		{ErrCodePlanFeatureUnavailable, http.StatusForbidden},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"EMAIL_ALREADY_REGISTERED", http.StatusConflict},
		{ErrCodeCategoryInUse, http.StatusConflict},
		{ErrCodeProductLimitExceeded, http.StatusUnprocessableEntity},
		{ErrCodeImageLimitExceeded, http.StatusUnprocessableEntity},
		{ErrCodePlanUpgradeUnavailable, http.StatusUnprocessableEntity},
		{ErrCodeImageTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeInvalidImageType, http.StatusUnsupportedMediaType},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeUploadFailed, http.StatusBadGateway},
		{ErrCodeAIUpstreamError, http.StatusBadGateway},
		{ErrCodeAIUnavailable, http.StatusServiceUnavailable},
		// suffix and prefix rules
		{"PRODUCT_NOT_FOUND", http.StatusNotFound},
		{"PRODUCTS_NOT_FOUND", http.StatusNotFound},
		{"SELLER_NOT_FOUND", http.StatusNotFound},
		{"PRODUCT_CODE_EXISTS", http.StatusConflict},
		{"CATEGORY_EXISTS", http.StatusConflict},
		{"INVALID_PRICE", http.StatusBadRequest},
		{"INVALID_ACCENT_COLOR", http.StatusBadRequest},
		{"CODES_REQUIRED", http.StatusBadRequest},
		{"PRODUCT_NAME_REQUIRED", http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"INVALID_TOKEN", ErrCodeTokenInvalid},
		{"VALIDATION_FAILED", ErrCodeValidation},
		{"RATE_LIMITED", ErrCodeRateLimited},
		{"DUPLICATE", "ALREADY_EXISTS"},
		{"PRODUCT_NOT_FOUND", "PRODUCT_NOT_FOUND"},
		{ErrCodeTokenInvalid, ErrCodeTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestLegacyCodesMapToKnownStatuses(t *testing.T) {
	for legacy, canonical := range LegacyErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[canonical]
		assert.True(t, ok, "legacy code %s maps to %s which has no status", legacy, canonical)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("PRODUCT_NOT_FOUND", "Product not found", "req-1")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "data")

	errBody := body["error"].(map[string]any)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errBody["code"])
	assert.Equal(t, "Product not found", errBody["message"])
	assert.Equal(t, "req-1", errBody["request_id"])
	assert.NotContains(t, errBody, "details")
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{{Field: "name", Message: "This field is required"}}
	resp := NewValidationErrorResponse("Request validation failed", "req-2", details)

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-2", resp.Error.RequestID)
	assert.Equal(t, details, resp.Error.Details)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		pageSize      int
		expectedPages int
	}{
		{"exact pages", 40, 20, 2},
		{"partial last page", 41, 20, 3},
		{"empty", 0, 20, 0},
		{"zero page size", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponseWithMeta([]string{}, tt.total, 1, tt.pageSize)
			assert.True(t, resp.Success)
			require.NotNil(t, resp.Meta)
			assert.Equal(t, tt.total, resp.Meta.Total)
			assert.Equal(t, tt.expectedPages, resp.Meta.TotalPages)
		})
	}
}
