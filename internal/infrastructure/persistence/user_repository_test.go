package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	identityapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("Ana.Silva@Example.com", "secret123", "Ana")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	t.Run("finds by normalized email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "  ANA.SILVA@example.COM ")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "ana.silva@example.com", found.Email)
		assert.True(t, found.VerifyPassword("secret123"))

		exists, err := repo.ExistsByEmail(ctx, "ana.silva@EXAMPLE.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("reports unknown accounts", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		exists, err := repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("persists lockout state", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			user.RecordLoginFailure(5, 30*time.Minute)
		}
		require.NoError(t, repo.Save(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, found.FailedAttempts)
		assert.Equal(t, identity.UserStatusLocked, found.Status)
		require.NotNil(t, found.LockedUntil)
		assert.True(t, found.IsLocked())
	})
}

func TestGormProfileRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProfileRepository(db)
	ctx := context.Background()

	open := seedSeller(t, db, "ana@example.com", true)
	hidden := seedSeller(t, db, "bia@example.com", false)

	t.Run("keeps disabled settings", func(t *testing.T) {
		profile, err := repo.FindByUserID(ctx, hidden)
		require.NoError(t, err)
		assert.False(t, profile.Settings.PublicCatalog)
		assert.False(t, profile.IsCatalogPublic())
		assert.True(t, profile.Settings.Notifications)
		assert.False(t, profile.Settings.AutoBackup)
	})

	t.Run("updates store details", func(t *testing.T) {
		profile, err := repo.FindByUserID(ctx, open)
		require.NoError(t, err)
		require.NoError(t, profile.UpdateStore("Ana", "Ateliê da Ana", "#112233", "(11) 98765-4321"))
		require.NoError(t, repo.Save(ctx, profile))

		found, err := repo.FindByUserID(ctx, open)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, found.ID)
		assert.Equal(t, "Ateliê da Ana", found.StoreName)
		assert.Equal(t, "#112233", found.AccentColor)
		assert.Equal(t, profile.WhatsAppPhone, found.WhatsAppPhone)
		assert.Equal(t, identity.PlanFree, found.Plan)
	})

	t.Run("finds several profiles", func(t *testing.T) {
		profiles, err := repo.FindByUserIDs(ctx, []uuid.UUID{open, hidden, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, profiles, 2)

		profiles, err = repo.FindByUserIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, profiles)
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := repo.FindByUserID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormTransactionScope(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()

	register := func(email string, fail error) (uuid.UUID, error) {
		var id uuid.UUID
		err := scope.Execute(ctx, func(repos identityapp.TransactionalRepositories) error {
			user, err := identity.NewUser(email, "secret123", "")
			if err != nil {
				return err
			}
			id = user.ID
			if err := repos.UserRepo().Save(ctx, user); err != nil {
				return err
			}
			if err := repos.ProfileRepo().Save(ctx, identity.NewProfile(user.ID, user.DisplayName, "")); err != nil {
				return err
			}
			return fail
		})
		return id, err
	}

	t.Run("commits user and profile together", func(t *testing.T) {
		id, err := register("ana@example.com", nil)
		require.NoError(t, err)

		_, err = NewGormUserRepository(db).FindByID(ctx, id)
		require.NoError(t, err)
		profile, err := NewGormProfileRepository(db).FindByUserID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, identity.DefaultStoreName, profile.StoreName)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("mail server down")
		id, err := register("bia@example.com", boom)
		assert.ErrorIs(t, err, boom)

		_, err = NewGormUserRepository(db).FindByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = NewGormProfileRepository(db).FindByUserID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
