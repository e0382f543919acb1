package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	categoriesTable    = "categories"
	subcategoriesTable = "subcategories"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByIDForUser finds a category by ID within one seller's catalog
func (r *GormCategoryRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(categoriesTable, userID)).
		Where("categories.id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds categories by ID regardless of owner
func (r *GormCategoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Category, error) {
	if len(ids) == 0 {
		return []catalog.Category{}, nil
	}
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCategories(rows), nil
}

// FindAllForUser lists a seller's categories
func (r *GormCategoryRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.Category, error) {
	var rows []models.CategoryModel
	if err := r.ownerQuery(ctx, userID, filter).
		Scopes(
			OrderBy(categoriesTable, filter, CategorySort),
			Paginate(filter),
		).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCategories(rows), nil
}

// CountForUser counts a seller's categories
func (r *GormCategoryRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.ownerQuery(ctx, userID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName reports whether the seller already has a category with this name
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CategoryModel{}).
		Scopes(OwnedBy(categoriesTable, userID)).
		Where("LOWER(categories.name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		query = query.Where("categories.id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	model := models.CategoryModelFromDomain(category)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForUser deletes a category and its subcategories in one transaction
func (r *GormCategoryRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&models.CategoryModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("user_id = ? AND category_id = ?", userID, id).
			Delete(&models.SubcategoryModel{}).Error
	})
}

// Sample returns up to limit categories of any seller. It backs the
// database connectivity probe.
func (r *GormCategoryRepository) Sample(ctx context.Context, limit int) ([]catalog.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCategories(rows), nil
}

func (r *GormCategoryRepository) ownerQuery(ctx context.Context, userID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.CategoryModel{}).
		Scopes(OwnedBy(categoriesTable, userID))
	if filter.Search != "" {
		query = query.Where(`LOWER(categories.name) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	return query
}

func toCategories(rows []models.CategoryModel) []catalog.Category {
	categories := make([]catalog.Category, len(rows))
	for i := range rows {
		categories[i] = *rows[i].ToDomain()
	}
	return categories
}

// GormSubcategoryRepository implements catalog.SubcategoryRepository using GORM
type GormSubcategoryRepository struct {
	db *gorm.DB
}

// NewGormSubcategoryRepository creates a new GormSubcategoryRepository
func NewGormSubcategoryRepository(db *gorm.DB) *GormSubcategoryRepository {
	return &GormSubcategoryRepository{db: db}
}

// FindByIDForUser finds a subcategory by ID within one seller's catalog
func (r *GormSubcategoryRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Subcategory, error) {
	var model models.SubcategoryModel
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(subcategoriesTable, userID)).
		Where("subcategories.id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCategories lists the subcategories of the given categories by name
func (r *GormSubcategoryRepository) FindByCategories(ctx context.Context, userID uuid.UUID, categoryIDs []uuid.UUID) ([]catalog.Subcategory, error) {
	if len(categoryIDs) == 0 {
		return []catalog.Subcategory{}, nil
	}
	var rows []models.SubcategoryModel
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(subcategoriesTable, userID)).
		Where("subcategories.category_id IN ?", categoryIDs).
		Order("subcategories.name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	subcategories := make([]catalog.Subcategory, len(rows))
	for i := range rows {
		subcategories[i] = *rows[i].ToDomain()
	}
	return subcategories, nil
}

// ExistsByName reports whether the category already has a subcategory with this name
func (r *GormSubcategoryRepository) ExistsByName(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SubcategoryModel{}).
		Where("category_id = ? AND LOWER(name) = ?", categoryID, strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a subcategory
func (r *GormSubcategoryRepository) Save(ctx context.Context, subcategory *catalog.Subcategory) error {
	model := models.SubcategoryModelFromDomain(subcategory)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForUser deletes a subcategory and clears it from the seller's products
func (r *GormSubcategoryRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&models.SubcategoryModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Model(&models.ProductModel{}).
			Where("user_id = ? AND subcategory_id = ?", userID, id).
			Update("subcategory_id", nil).Error
	})
}

var (
	_ catalog.CategoryRepository    = (*GormCategoryRepository)(nil)
	_ catalog.SubcategoryRepository = (*GormSubcategoryRepository)(nil)
)
