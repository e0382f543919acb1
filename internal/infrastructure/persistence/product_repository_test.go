package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func codesOf(products []catalog.Product) []string {
	codes := make([]string, len(products))
	for i, p := range products {
		codes[i] = p.Code
	}
	return codes
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	seller := seedSeller(t, db, "ana@example.com", true)

	category, err := catalog.NewCategory(seller, "Roupas", "")
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(ctx, category))
	sub, err := category.NewSubcategory("Vestidos")
	require.NoError(t, err)
	require.NoError(t, NewGormSubcategoryRepository(db).Save(ctx, sub))

	product, err := catalog.NewProduct(seller, "VST-01", "Vestido Floral")
	require.NoError(t, err)
	price := decimal.RequireFromString("129.90")
	require.NoError(t, product.SetPrice(&price))
	require.NoError(t, product.SetCategory(&category.ID, &sub.ID))
	require.NoError(t, product.SetCustomFields(catalog.CustomFields{"size": "M", "stock": float64(3)}))
	require.NoError(t, product.AddImages([]string{"https://cdn/a.png", "https://cdn/b.png"}, 3))
	require.NoError(t, repo.Save(ctx, product))

	t.Run("round-trips every column", func(t *testing.T) {
		found, err := repo.FindByIDForUser(ctx, seller, product.ID)
		require.NoError(t, err)

		assert.Equal(t, "VST-01", found.Code)
		assert.Equal(t, "Vestido Floral", found.Name)
		require.NotNil(t, found.Price)
		assert.True(t, price.Equal(*found.Price))
		assert.Equal(t, []string{"https://cdn/a.png", "https://cdn/b.png"}, found.Images)
		assert.Equal(t, category.ID, *found.CategoryID)
		assert.Equal(t, sub.ID, *found.SubcategoryID)
		assert.Equal(t, "M", found.CustomFields["size"])
		assert.Equal(t, float64(3), found.CustomFields["stock"])
		assert.True(t, found.IsPublic)
	})

	t.Run("another seller cannot read it", func(t *testing.T) {
		_, err := repo.FindByIDForUser(ctx, uuid.New(), product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("updates in place", func(t *testing.T) {
		require.NoError(t, product.Update("VST-01", "Vestido Floral Longo", "Algodão"))
		require.NoError(t, product.SetPrice(nil))
		product.SetVisibility(false)
		require.NoError(t, repo.Save(ctx, product))

		found, err := repo.FindByIDForUser(ctx, seller, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Vestido Floral Longo", found.Name)
		assert.Equal(t, "Algodão", found.Description)
		assert.Nil(t, found.Price)
		assert.False(t, found.IsPublic)

		count, err := repo.CountForUser(ctx, seller, catalog.ProductFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("counts products by category", func(t *testing.T) {
		count, err := repo.CountByCategory(ctx, seller, category.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		all, err := repo.CountAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), all)
	})
}

func TestGormProductRepository_ExistsByCode(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	seller := seedSeller(t, db, "ana@example.com", true)
	other := seedSeller(t, db, "bia@example.com", true)
	product := seedProduct(t, db, seller, "A1", "Anel", "", true)

	exists, err := repo.ExistsByCode(ctx, seller, "A1", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(ctx, seller, "A1", &product.ID)
	require.NoError(t, err)
	assert.False(t, exists, "the product itself is excluded")

	exists, err = repo.ExistsByCode(ctx, other, "A1", nil)
	require.NoError(t, err)
	assert.False(t, exists, "codes are unique per seller only")
}

func TestGormProductRepository_FindAllForUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	seller := seedSeller(t, db, "ana@example.com", true)
	other := seedSeller(t, db, "bia@example.com", true)

	seedProduct(t, db, seller, "B2", "Brinco Dourado", "50", true)
	seedProduct(t, db, seller, "A1", "Anel Prata", "80", false)
	seedProduct(t, db, seller, "C3", "Colar 50% off", "30", true)
	seedProduct(t, db, other, "A1", "Anel de outro", "10", true)

	t.Run("lists only the seller's products in the requested order", func(t *testing.T) {
		filter := catalog.ProductFilter{Filter: shared.Filter{Page: 1, PageSize: 10, OrderBy: "code", OrderDir: "asc"}}
		products, err := repo.FindAllForUser(ctx, seller, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{"A1", "B2", "C3"}, codesOf(products))
	})

	t.Run("paginates", func(t *testing.T) {
		filter := catalog.ProductFilter{Filter: shared.Filter{Page: 2, PageSize: 2, OrderBy: "code", OrderDir: "asc"}}
		products, err := repo.FindAllForUser(ctx, seller, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{"C3"}, codesOf(products))
	})

	t.Run("searches name and code case-insensitively", func(t *testing.T) {
		filter := catalog.ProductFilter{Filter: shared.Filter{Search: "anel"}}
		products, err := repo.FindAllForUser(ctx, seller, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{"A1"}, codesOf(products))
	})

	t.Run("treats wildcard characters literally", func(t *testing.T) {
		filter := catalog.ProductFilter{Filter: shared.Filter{Search: "50%"}}
		products, err := repo.FindAllForUser(ctx, seller, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{"C3"}, codesOf(products))
	})

	t.Run("filters by visibility", func(t *testing.T) {
		public := true
		count, err := repo.CountForUser(ctx, seller, catalog.ProductFilter{IsPublic: &public})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("ignores unknown sort columns", func(t *testing.T) {
		filter := catalog.ProductFilter{Filter: shared.Filter{OrderBy: "user_id; DROP TABLE products"}}
		products, err := repo.FindAllForUser(ctx, seller, filter)
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("lists everything ordered by code", func(t *testing.T) {
		products, err := repo.ListAllForUser(ctx, seller)
		require.NoError(t, err)
		assert.Equal(t, []string{"A1", "B2", "C3"}, codesOf(products))
	})
}

func TestGormProductRepository_Public(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	open := seedSeller(t, db, "ana@example.com", true)
	hidden := seedSeller(t, db, "bia@example.com", false)

	category, err := catalog.NewCategory(open, "Joias", "")
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(ctx, category))

	ring := seedProduct(t, db, open, "A1", "Anel", "80", true)
	require.NoError(t, ring.SetCategory(&category.ID, nil))
	require.NoError(t, repo.Save(ctx, ring))
	seedProduct(t, db, open, "B2", "Brinco", "20", true)
	private := seedProduct(t, db, open, "P9", "Rascunho", "5", false)
	hiddenProduct := seedProduct(t, db, hidden, "A1", "Anel escondido", "10", true)

	t.Run("lists public products of public sellers", func(t *testing.T) {
		filter := catalog.MarketplaceFilter{Filter: shared.Filter{Page: 1, PageSize: 20, OrderBy: "code", OrderDir: "asc"}}
		products, err := repo.FindPublic(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{"A1", "B2"}, codesOf(products))

		total, err := repo.CountPublic(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("filters by category name and price", func(t *testing.T) {
		min := decimal.NewFromInt(50)
		filter := catalog.MarketplaceFilter{CategoryName: "JOIAS", MinPrice: &min}
		products, err := repo.FindPublic(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{"A1"}, codesOf(products))

		max := decimal.NewFromInt(50)
		filter = catalog.MarketplaceFilter{MaxPrice: &max}
		products, err = repo.FindPublic(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{"B2"}, codesOf(products))
	})

	t.Run("finds a public product by id", func(t *testing.T) {
		found, err := repo.FindPublicByID(ctx, ring.ID)
		require.NoError(t, err)
		assert.Equal(t, "Anel", found.Name)

		_, err = repo.FindPublicByID(ctx, private.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindPublicByID(ctx, hiddenProduct.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("resolves exact codes", func(t *testing.T) {
		products, err := repo.FindPublicByCodes(ctx, []string{"A1", "P9", "a1", "Z0"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A1"}, codesOf(products))
		assert.Equal(t, open, products[0].UserID)

		products, err = repo.FindPublicByCodes(ctx, []string{"A1", "B2"}, &hidden)
		require.NoError(t, err)
		assert.Empty(t, products)

		products, err = repo.FindPublicByCodes(ctx, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestGormProductRepository_SaveWithLock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	seller := seedSeller(t, db, "ana@example.com", true)
	seeded := seedProduct(t, db, seller, "A1", "Anel", "59.90", true)

	first, err := repo.FindByIDForUser(ctx, seller, seeded.ID)
	require.NoError(t, err)
	second, err := repo.FindByIDForUser(ctx, seller, seeded.ID)
	require.NoError(t, err)
	loaded := first.Version

	first.SetVisibility(false)
	require.NoError(t, repo.SaveWithLock(ctx, first, loaded))

	require.NoError(t, second.Update("A1", "Anel dourado", ""))
	assert.ErrorIs(t, repo.SaveWithLock(ctx, second, loaded), shared.ErrConcurrencyConflict)

	found, err := repo.FindByIDForUser(ctx, seller, seeded.ID)
	require.NoError(t, err)
	assert.False(t, found.IsPublic, "false is written, not skipped as a zero value")
	assert.Equal(t, "Anel", found.Name)
	assert.Equal(t, loaded+1, found.Version)
}

func TestGormProductRepository_DeleteForUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	seller := seedSeller(t, db, "ana@example.com", true)
	product := seedProduct(t, db, seller, "A1", "Anel", "", true)

	assert.ErrorIs(t, repo.DeleteForUser(ctx, uuid.New(), product.ID), shared.ErrNotFound)
	require.NoError(t, repo.DeleteForUser(ctx, seller, product.ID))

	_, err := repo.FindByIDForUser(ctx, seller, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_DatabaseError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}),
		&gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	repo := NewGormProductRepository(gormDB)

	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE products.user_id = \$1 AND products.id = \$2`).
		WillReturnError(boom)

	_, err = repo.FindByIDForUser(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
