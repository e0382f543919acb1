package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	identityapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/auth"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/logger"
	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTSessionKey = "jwt_session"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// Revocations, when set, refuses logged-out tokens and tokens issued
	// before a password change
	Revocations auth.RevocationList
	Logger      *zap.Logger
}

// JWTAuthMiddleware authenticates without revocation checks
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService})
}

// JWTAuthMiddlewareWithConfig authenticates the bearer token and attaches an
// identity.Session to the request context
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token, reason := bearerToken(c.GetHeader(AuthHeaderKey))
		if reason != "" {
			rejectToken(c, cfg, auth.ErrInvalidToken, reason)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			rejectToken(c, cfg, err, "Token validation failed")
			return
		}
		userID, err := claims.GetUserUUID()
		if err != nil {
			rejectToken(c, cfg, auth.ErrInvalidClaims, "Invalid user ID in token")
			return
		}
		if reason := revoked(c.Request.Context(), cfg, claims); reason != "" {
			rejectToken(c, cfg, auth.ErrTokenRevoked, reason)
			return
		}

		session := &identityapp.Session{
			UserID:    userID,
			Email:     claims.Email,
			TokenJTI:  claims.ID,
			IssuedAt:  claims.GetIssuedAtTime(),
			ExpiresAt: claims.GetExpiresAtTime(),
		}
		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTSessionKey, session)

		ctx := identityapp.WithSession(c.Request.Context(), session)
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// bearerToken extracts the token, or returns why the header is unusable
func bearerToken(header string) (token, reason string) {
	if header == "" {
		return "", "Missing authorization header"
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", "Invalid authorization header format"
	}
	token = strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return "", "Missing token"
	}
	return token, ""
}

// revoked returns the rejection message for a revoked token, or "".
// Lookups fail open so a Redis outage does not sign every seller out.
func revoked(ctx context.Context, cfg JWTMiddlewareConfig, claims *auth.Claims) string {
	if cfg.Revocations == nil {
		return ""
	}

	if claims.ID != "" {
		isRevoked, err := cfg.Revocations.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			cfg.Logger.Warn("Token revocation lookup failed", zap.String("jti", claims.ID), zap.Error(err))
		} else if isRevoked {
			return "Token has been revoked"
		}
	}

	isRevoked, err := cfg.Revocations.UserTokenRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		cfg.Logger.Warn("Seller revocation lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
	} else if isRevoked {
		return "User session has been invalidated"
	}
	return ""
}

// rejectToken aborts with 401 and a code describing the failure
func rejectToken(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	cfg.Logger.Debug("JWT authentication failed",
		zap.Error(err),
		zap.String("message", message),
		zap.String("path", c.Request.URL.Path),
	)

	code, text := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, text = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		code, text = dto.ErrCodeTokenRevoked, message
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrMissingUserID),
		errors.Is(err, auth.ErrTokenNotYetValid):
		code, text = dto.ErrCodeTokenInvalid, message
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, text, GetRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetSession returns the authenticated seller's session, if any
func GetSession(c *gin.Context) (*identityapp.Session, bool) {
	if v, exists := c.Get(JWTSessionKey); exists {
		if session, ok := v.(*identityapp.Session); ok && session != nil {
			return session, true
		}
	}
	return identityapp.SessionFromContext(c.Request.Context())
}
