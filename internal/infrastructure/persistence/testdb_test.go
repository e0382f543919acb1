package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	identity.PasswordHashCost = bcrypt.MinCost
}

// newTestDB opens an isolated in-memory sqlite database with the schema applied
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// seedSeller stores a user with a profile and returns the user ID
func seedSeller(t *testing.T, db *gorm.DB, email string, publicCatalog bool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	user, err := identity.NewUser(email, "secret123", "")
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(ctx, user))

	profile := identity.NewProfile(user.ID, user.DisplayName, "Loja "+user.DisplayName)
	settings := identity.DefaultStoreSettings()
	settings.PublicCatalog = publicCatalog
	profile.UpdateSettings(settings)
	require.NoError(t, NewGormProfileRepository(db).Save(ctx, profile))

	return user.ID
}

// seedProduct stores a product for userID
func seedProduct(t *testing.T, db *gorm.DB, userID uuid.UUID, code, name string, price string, public bool) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(userID, code, name)
	require.NoError(t, err)
	if price != "" {
		p := decimal.RequireFromString(price)
		require.NoError(t, product.SetPrice(&p))
	}
	product.SetVisibility(public)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), product))
	return product
}
