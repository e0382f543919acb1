package identity

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	// DefaultStoreName is used until the seller names the store
	DefaultStoreName = "Minha Loja"
	// DefaultAccentColor is the storefront theme color
	DefaultAccentColor = "#FF6F00"
)

var accentColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// StoreSettings holds the seller's preference toggles
type StoreSettings struct {
	Notifications      bool `json:"notifications"`
	AutoBackup         bool `json:"auto_backup"`
	PublicCatalog      bool `json:"public_catalog"`
	EmailNotifications bool `json:"email_notifications"`
}

// DefaultStoreSettings returns the settings for a new store
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		Notifications:      true,
		AutoBackup:         false,
		PublicCatalog:      true,
		EmailNotifications: true,
	}
}

// Profile is the public seller identity and store metadata, 1:1 with a User.
type Profile struct {
	shared.BaseEntity
	UserID        uuid.UUID
	DisplayName   string
	StoreName     string
	LogoURL       string
	AccentColor   string
	WhatsAppPhone string
	Plan          Plan
	Settings      StoreSettings
}

// NewProfile creates the profile for a freshly registered user
func NewProfile(userID uuid.UUID, displayName, storeName string) *Profile {
	storeName = strings.TrimSpace(storeName)
	if storeName == "" {
		storeName = DefaultStoreName
	}
	return &Profile{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		DisplayName: strings.TrimSpace(displayName),
		StoreName:   storeName,
		AccentColor: DefaultAccentColor,
		Plan:        PlanFree,
		Settings:    DefaultStoreSettings(),
	}
}

// PublicName is the name buyers see for this seller
func (p *Profile) PublicName() string {
	if p.StoreName != "" {
		return p.StoreName
	}
	return p.DisplayName
}

// UpdateStore changes the storefront details
func (p *Profile) UpdateStore(displayName, storeName, accentColor, whatsappPhone string) error {
	displayName = strings.TrimSpace(displayName)
	storeName = strings.TrimSpace(storeName)
	accentColor = strings.TrimSpace(accentColor)

	if storeName == "" {
		return shared.NewDomainError("STORE_NAME_REQUIRED", "Store name is required")
	}
	if utf8.RuneCountInString(storeName) > 100 {
		return shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot exceed 100 characters")
	}
	if utf8.RuneCountInString(displayName) > 200 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}
	if accentColor == "" {
		accentColor = DefaultAccentColor
	}
	if !accentColorPattern.MatchString(accentColor) {
		return shared.NewDomainError("INVALID_ACCENT_COLOR", "Accent color must look like #RRGGBB")
	}
	if len(whatsappPhone) > 30 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 30 characters")
	}

	if displayName != "" {
		p.DisplayName = displayName
	}
	p.StoreName = storeName
	p.AccentColor = strings.ToUpper(accentColor)
	p.WhatsAppPhone = strings.TrimSpace(whatsappPhone)
	p.Touch()
	return nil
}

// SetLogo stores the uploaded logo URL
func (p *Profile) SetLogo(url string) {
	p.LogoURL = url
	p.Touch()
}

// UpdateSettings replaces the preference toggles
func (p *Profile) UpdateSettings(settings StoreSettings) {
	p.Settings = settings
	p.Touch()
}

// SelectPlan switches plans. Only the free plan can be picked directly;
// paid plans need a billing flow that does not exist yet.
func (p *Profile) SelectPlan(plan Plan) error {
	if !plan.IsValid() {
		return shared.NewDomainError("INVALID_PLAN", "Unknown plan")
	}
	if plan != PlanFree {
		return shared.NewDomainError("PLAN_UPGRADE_UNAVAILABLE", "Upgrades will be available soon")
	}
	p.Plan = plan
	p.UpdatedAt = time.Now()
	return nil
}

// IsCatalogPublic reports whether the seller's products may be listed publicly
func (p *Profile) IsCatalogPublic() bool {
	return p.Settings.PublicCatalog
}
