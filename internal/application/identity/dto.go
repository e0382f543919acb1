package identity

import (
	"time"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterInput contains the input for seller sign-up
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	StoreName   string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the tokens and account of a signed-in seller
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo is the account summary returned to the dashboard
type UserInfo struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	StoreName   string
	Plan        identity.Plan
	CreatedAt   time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// StoreInfo is the seller's storefront as shown in the dashboard
type StoreInfo struct {
	UserID        uuid.UUID
	DisplayName   string
	StoreName     string
	LogoURL       string
	AccentColor   string
	WhatsAppPhone string
	Plan          identity.Plan
	UpdatedAt     time.Time
}

// UpdateStoreInput contains editable storefront fields
type UpdateStoreInput struct {
	DisplayName   string
	StoreName     string
	AccentColor   string
	WhatsAppPhone string
}

// UploadLogoInput carries an uploaded logo file
type UploadLogoInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        []byte
}

// CurrentPlan describes the seller's plan with its features
type CurrentPlan struct {
	Plan       identity.PlanDefinition
	Selectable []identity.Plan
}

// ToStoreInfo converts a profile into StoreInfo
func ToStoreInfo(p *identity.Profile) StoreInfo {
	return StoreInfo{
		UserID:        p.UserID,
		DisplayName:   p.DisplayName,
		StoreName:     p.StoreName,
		LogoURL:       p.LogoURL,
		AccentColor:   p.AccentColor,
		WhatsAppPhone: p.WhatsAppPhone,
		Plan:          p.Plan,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toUserInfo(u *identity.User, p *identity.Profile) UserInfo {
	info := UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Plan:        identity.PlanFree,
		CreatedAt:   u.CreatedAt,
	}
	if p != nil {
		if p.DisplayName != "" {
			info.DisplayName = p.DisplayName
		}
		info.StoreName = p.StoreName
		info.Plan = p.Plan
	}
	return info
}
