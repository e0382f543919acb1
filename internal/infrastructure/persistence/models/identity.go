package models

import (
	"time"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Email             string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash      string              `gorm:"type:varchar(255);not null"`
	DisplayName       string              `gorm:"type:varchar(200)"`
	Status            identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt       *time.Time
	LastLoginIP       string `gorm:"type:varchar(45)"`
	FailedAttempts    int    `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		DisplayName:       m.DisplayName,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
		PasswordChangedAt: m.PasswordChangedAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
	m.PasswordChangedAt = u.PasswordChangedAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// ProfileModel is the persistence model for the seller Profile.
// Store settings are flattened into columns so the public marketplace
// can filter on public_catalog.
type ProfileModel struct {
	BaseModel
	UserID             uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	DisplayName        string        `gorm:"type:varchar(200)"`
	StoreName          string        `gorm:"type:varchar(100);not null"`
	LogoURL            string        `gorm:"type:varchar(1000)"`
	AccentColor        string        `gorm:"type:varchar(7);not null;default:'#FF6F00'"`
	WhatsAppPhone      string        `gorm:"column:whatsapp_phone;type:varchar(30)"`
	Plan               identity.Plan `gorm:"type:varchar(20);not null;default:'free'"`
	Notifications      bool          `gorm:"not null"`
	AutoBackup         bool          `gorm:"not null"`
	PublicCatalog      bool          `gorm:"not null;index"`
	EmailNotifications bool          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the persistence model to a domain Profile.
func (m *ProfileModel) ToDomain() *identity.Profile {
	return &identity.Profile{
		BaseEntity:    shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		UserID:        m.UserID,
		DisplayName:   m.DisplayName,
		StoreName:     m.StoreName,
		LogoURL:       m.LogoURL,
		AccentColor:   m.AccentColor,
		WhatsAppPhone: m.WhatsAppPhone,
		Plan:          m.Plan,
		Settings: identity.StoreSettings{
			Notifications:      m.Notifications,
			AutoBackup:         m.AutoBackup,
			PublicCatalog:      m.PublicCatalog,
			EmailNotifications: m.EmailNotifications,
		},
	}
}

// FromDomain populates the persistence model from a domain Profile.
func (m *ProfileModel) FromDomain(p *identity.Profile) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.UserID = p.UserID
	m.DisplayName = p.DisplayName
	m.StoreName = p.StoreName
	m.LogoURL = p.LogoURL
	m.AccentColor = p.AccentColor
	m.WhatsAppPhone = p.WhatsAppPhone
	m.Plan = p.Plan
	m.Notifications = p.Settings.Notifications
	m.AutoBackup = p.Settings.AutoBackup
	m.PublicCatalog = p.Settings.PublicCatalog
	m.EmailNotifications = p.Settings.EmailNotifications
}

// ProfileModelFromDomain creates a new persistence model from a domain Profile.
func ProfileModelFromDomain(p *identity.Profile) *ProfileModel {
	m := &ProfileModel{}
	m.FromDomain(p)
	return m
}
