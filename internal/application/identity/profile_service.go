package identity

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogoStorage stores uploaded store logos
type LogoStorage interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	DeleteObject(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

// PublicCatalogCache holds public product reads that depend on a seller's
// catalog visibility
type PublicCatalogCache interface {
	InvalidatePublic(ctx context.Context)
}

// ProfileService manages the seller's store, settings and plan
type ProfileService struct {
	profileRepo identity.ProfileRepository
	userRepo    identity.UserRepository
	storage     LogoStorage
	publicCache PublicCatalogCache
	logger      *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	profileRepo identity.ProfileRepository,
	userRepo identity.UserRepository,
	storage LogoStorage,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		storage:     storage,
		logger:      logger,
	}
}

// WithPublicCatalogCache makes visibility changes drop cached public reads
func (s *ProfileService) WithPublicCatalogCache(cache PublicCatalogCache) *ProfileService {
	s.publicCache = cache
	return s
}

// Profile returns the seller's profile, creating a default one for accounts
// that predate profiles.
func (s *ProfileService) Profile(ctx context.Context, userID uuid.UUID) (*identity.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}

	profile = identity.NewProfile(user.ID, user.DisplayName, "")
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("Created missing profile", zap.String("user_id", userID.String()))
	return profile, nil
}

// PlanFor returns the seller's current plan
func (s *ProfileService) PlanFor(ctx context.Context, userID uuid.UUID) (identity.Plan, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return "", err
	}
	return profile.Plan, nil
}

// GetStore returns the storefront details
func (s *ProfileService) GetStore(ctx context.Context, userID uuid.UUID) (*StoreInfo, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := ToStoreInfo(profile)
	return &info, nil
}

// UpdateStore changes the storefront details
func (s *ProfileService) UpdateStore(ctx context.Context, userID uuid.UUID, input UpdateStoreInput) (*StoreInfo, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := profile.UpdateStore(input.DisplayName, input.StoreName, input.AccentColor, input.WhatsAppPhone); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	info := ToStoreInfo(profile)
	return &info, nil
}

// UploadLogo stores a new logo and removes the previous one
func (s *ProfileService) UploadLogo(ctx context.Context, userID uuid.UUID, input UploadLogoInput) (*StoreInfo, error) {
	if err := catalog.ValidateImage(input.ContentType, input.Size); err != nil {
		return nil, err
	}

	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := catalog.ImageObjectKey(userID, "logo-"+input.FileName)
	url, err := s.storage.PutObject(ctx, key, input.ContentType, bytes.NewReader(input.Body), input.Size)
	if err != nil {
		return nil, shared.WrapDomainError("UPLOAD_FAILED", "Failed to upload logo", err)
	}

	previous := profile.LogoURL
	profile.SetLogo(url)
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		if delErr := s.storage.DeleteObject(context.WithoutCancel(ctx), key); delErr != nil {
			s.logger.Warn("Failed to delete unsaved logo", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	if previous != "" {
		if oldKey, ok := s.storage.KeyFromURL(previous); ok {
			if err := s.storage.DeleteObject(ctx, oldKey); err != nil {
				s.logger.Warn("Failed to delete previous logo", zap.String("key", oldKey), zap.Error(err))
			}
		}
	}

	info := ToStoreInfo(profile)
	return &info, nil
}

// GetSettings returns the preference toggles
func (s *ProfileService) GetSettings(ctx context.Context, userID uuid.UUID) (*identity.StoreSettings, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	settings := profile.Settings
	return &settings, nil
}

// UpdateSettings replaces the preference toggles
func (s *ProfileService) UpdateSettings(ctx context.Context, userID uuid.UUID, settings identity.StoreSettings) (*identity.StoreSettings, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	wasPublic := profile.IsCatalogPublic()
	profile.UpdateSettings(settings)
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	if s.publicCache != nil && wasPublic != profile.IsCatalogPublic() {
		s.publicCache.InvalidatePublic(ctx)
	}

	updated := profile.Settings
	return &updated, nil
}

// ListPlans returns every available plan
func (s *ProfileService) ListPlans() []identity.PlanDefinition {
	return identity.AvailablePlans()
}

// SelectPlan switches the seller's plan
func (s *ProfileService) SelectPlan(ctx context.Context, userID uuid.UUID, plan identity.Plan) (*CurrentPlan, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := profile.SelectPlan(plan); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	return &CurrentPlan{
		Plan:       profile.Plan.Definition(),
		Selectable: []identity.Plan{identity.PlanFree},
	}, nil
}
