package handler

import (
	"time"

	identityapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/identity"
	"github.com/google/uuid"
)

// RegisterRequest represents the request body for seller sign-up
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email,max=254" example:"seller@example.com"`
	Password    string `json:"password" binding:"required,min=8,max=128" example:"s3cretPass"`
	DisplayName string `json:"display_name" binding:"max=100" example:"Maria"`
	StoreName   string `json:"store_name" binding:"max=100" example:"Loja da Maria"`
}

// LoginRequest represents the request body for seller login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=254" example:"seller@example.com"`
	Password string `json:"password" binding:"required,max=128" example:"s3cretPass"`
}

// RefreshTokenRequest represents the request body for token refresh.
// The token may instead arrive in the refresh cookie.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents the request body for password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// TokenResponse represents the token data in auth responses
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthUserResponse represents the seller account in auth responses
type AuthUserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	StoreName   string    `json:"store_name"`
	Plan        string    `json:"plan"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginResponse represents the response body for register and login
type LoginResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

// RefreshTokenResponse represents the response body for successful token refresh
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

// CurrentUserResponse represents the response body for current user info
type CurrentUserResponse struct {
	User AuthUserResponse `json:"user"`
}

func toAuthUserResponse(u identityapp.UserInfo) AuthUserResponse {
	return AuthUserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		StoreName:   u.StoreName,
		Plan:        string(u.Plan),
		CreatedAt:   u.CreatedAt,
	}
}

func toLoginResponse(r *identityapp.LoginResult) LoginResponse {
	return LoginResponse{
		Token: TokenResponse{
			AccessToken:           r.AccessToken,
			RefreshToken:          r.RefreshToken,
			AccessTokenExpiresAt:  r.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: r.RefreshTokenExpiresAt,
			TokenType:             r.TokenType,
		},
		User: toAuthUserResponse(r.User),
	}
}

// MessageData carries a human readable confirmation
// @Description Confirmation message
type MessageData struct {
	Message string `json:"message" example:"Logged out successfully"`
}
