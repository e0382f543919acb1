package persistence

import (
	"context"
	"errors"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const productsTable = "products"

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForUser finds a product by ID within one seller's catalog
func (r *GormProductRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(productsTable, userID)).
		Where("products.id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByCode reports whether the seller already uses a code
func (r *GormProductRepository) ExistsByCode(ctx context.Context, userID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Scopes(OwnedBy(productsTable, userID)).
		Where("products.code = ?", code)
	if excludeID != nil {
		query = query.Where("products.id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAllForUser lists a seller's products page by page
func (r *GormProductRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter catalog.ProductFilter) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.ownerQuery(ctx, userID, filter).
		Scopes(
			OrderBy(productsTable, filter.Filter, ProductSort),
			Paginate(filter.Filter),
		).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// CountForUser counts a seller's products matching the filter
func (r *GormProductRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter catalog.ProductFilter) (int64, error) {
	var count int64
	if err := r.ownerQuery(ctx, userID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAllForUser returns every product of a seller ordered by code
func (r *GormProductRepository) ListAllForUser(ctx context.Context, userID uuid.UUID) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(productsTable, userID)).
		Order("products.code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// CountByCategory counts a seller's products referencing a category
func (r *GormProductRepository) CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Scopes(OwnedBy(productsTable, userID)).
		Where("products.category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountAll counts every stored product
func (r *GormProductRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindPublic lists marketplace products page by page
func (r *GormProductRepository) FindPublic(ctx context.Context, filter catalog.MarketplaceFilter) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.marketplaceQuery(ctx, filter).
		Select("products.*").
		Scopes(
			OrderBy(productsTable, filter.Filter, ProductSort),
			Paginate(filter.Filter),
		).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// CountPublic counts marketplace products matching the filter
func (r *GormProductRepository) CountPublic(ctx context.Context, filter catalog.MarketplaceFilter) (int64, error) {
	var count int64
	if err := r.marketplaceQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindPublicByID finds a single marketplace product
func (r *GormProductRepository) FindPublicByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.publicQuery(ctx).
		Select("products.*").
		Where("products.id = ?", id).
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPublicByCodes resolves exact codes among public products
func (r *GormProductRepository) FindPublicByCodes(ctx context.Context, codes []string, sellerID *uuid.UUID) ([]catalog.Product, error) {
	if len(codes) == 0 {
		return []catalog.Product{}, nil
	}

	query := r.publicQuery(ctx).
		Select("products.*").
		Where("products.code IN ?", codes)
	if sellerID != nil {
		query = query.Where("products.user_id = ?", *sellerID)
	}

	var rows []models.ProductModel
	if err := query.Order("products.code ASC, products.created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock writes every column when the row still carries expectedVersion
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product, expectedVersion int) error {
	model := models.ProductModelFromDomain(product)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND version = ?", product.UserID, expectedVersion).
		Select("*").
		Omit("created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForUser deletes a product within one seller's catalog
func (r *GormProductRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.ProductModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) ownerQuery(ctx context.Context, userID uuid.UUID, filter catalog.ProductFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Scopes(OwnedBy(productsTable, userID))

	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			`LOWER(products.name) LIKE ? ESCAPE '\' OR LOWER(products.code) LIKE ? ESCAPE '\' OR LOWER(products.description) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.SubcategoryID != nil {
		query = query.Where("products.subcategory_id = ?", *filter.SubcategoryID)
	}
	if filter.IsPublic != nil {
		query = query.Where("products.is_public = ?", *filter.IsPublic)
	}
	return query
}

// publicQuery selects public products of sellers whose catalog is public
func (r *GormProductRepository) publicQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Joins("JOIN profiles ON profiles.user_id = products.user_id").
		Where("products.is_public = ? AND profiles.public_catalog = ?", true, true)
}

func (r *GormProductRepository) marketplaceQuery(ctx context.Context, filter catalog.MarketplaceFilter) *gorm.DB {
	query := r.publicQuery(ctx)

	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			`LOWER(products.name) LIKE ? ESCAPE '\' OR LOWER(products.description) LIKE ? ESCAPE '\' OR LOWER(products.code) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}
	if filter.SellerID != nil {
		query = query.Where("products.user_id = ?", *filter.SellerID)
	}
	if filter.CategoryName != "" {
		query = query.Where(
			"products.category_id IN (?)",
			r.db.Model(&models.CategoryModel{}).
				Select("id").
				Where("LOWER(name) = LOWER(?)", filter.CategoryName),
		)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	return query
}

func toProducts(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
