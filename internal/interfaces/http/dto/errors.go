package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself. Domain errors keep the code
// they were raised with.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidID       = "INVALID_ID"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	ErrCodeAuthRateLimited = "AUTH_RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenRevoked       = "TOKEN_REVOKED"
	ErrCodeTokenMaxRefresh    = "TOKEN_MAX_REFRESH"
	ErrCodeAccountLocked      = "ACCOUNT_LOCKED"
	ErrCodeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	ErrCodeAccountInactive    = "ACCOUNT_INACTIVE"
)

// Plan and upload error codes
const (
	ErrCodePlanFeatureUnavailable = "PLAN_FEATURE_UNAVAILABLE"
	ErrCodePlanUpgradeUnavailable = "PLAN_UPGRADE_UNAVAILABLE"
	ErrCodeProductLimitExceeded   = "PRODUCT_LIMIT_EXCEEDED"
	ErrCodeImageLimitExceeded     = "IMAGE_LIMIT_EXCEEDED"
	ErrCodeImageTooLarge          = "IMAGE_TOO_LARGE"
	ErrCodeInvalidImageType       = "INVALID_IMAGE_TYPE"
	ErrCodeUploadFailed           = "UPLOAD_FAILED"
	ErrCodeCategoryInUse          = "CATEGORY_IN_USE"
)

// AI description error codes
const (
	ErrCodeAIUnavailable   = "AI_UNAVAILABLE"
	ErrCodeAIUpstreamError = "AI_UPSTREAM_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Codes missing
// here fall back to the suffix and prefix rules in GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:       http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeInvalidID:  http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeTokenMaxRefresh:    http.StatusUnauthorized,

	ErrCodeForbidden:              http.StatusForbidden,
	ErrCodeAccountLocked:          http.StatusForbidden,
	ErrCodeAccountDeactivated:     http.StatusForbidden,
	ErrCodeAccountInactive:        http.StatusForbidden,
	ErrCodePlanFeatureUnavailable: http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,

	ErrCodeConflict:            http.StatusConflict,
	"ALREADY_EXISTS":           http.StatusConflict,
	"CONCURRENCY_CONFLICT":     http.StatusConflict,
	"EMAIL_ALREADY_REGISTERED": http.StatusConflict,
	ErrCodeCategoryInUse:       http.StatusConflict,

	"INVALID_STATE":               http.StatusUnprocessableEntity,
	ErrCodePlanUpgradeUnavailable: http.StatusUnprocessableEntity,
	ErrCodeProductLimitExceeded:   http.StatusUnprocessableEntity,
	ErrCodeImageLimitExceeded:     http.StatusUnprocessableEntity,

	ErrCodeImageTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeInvalidImageType: http.StatusUnsupportedMediaType,

	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeAuthRateLimited: http.StatusTooManyRequests,

	ErrCodeUploadFailed:    http.StatusBadGateway,
	ErrCodeAIUpstreamError: http.StatusBadGateway,
	ErrCodeAIUnavailable:   http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// *_NOT_FOUND maps to 404, *_EXISTS to 409, INVALID_* and *_REQUIRED to 400.
// Anything else is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_EXISTS"):
		return http.StatusConflict
	case strings.HasPrefix(code, "INVALID_"), strings.HasSuffix(code, "_REQUIRED"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps alternate spellings to the canonical codes
var LegacyErrorCodeMapping = map[string]string{
	"INVALID_TOKEN":     ErrCodeTokenInvalid,
	"VALIDATION_FAILED": ErrCodeValidation,
	"RATE_LIMITED":      ErrCodeRateLimited,
	"DUPLICATE":         "ALREADY_EXISTS",
	"INTERNAL":          ErrCodeInternal,
}

// NormalizeErrorCode converts an alternate code to its canonical form.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
