package catalog

import (
	"context"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductFilter narrows a seller's dashboard product listing
type ProductFilter struct {
	shared.Filter
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	IsPublic      *bool
}

// MarketplaceFilter narrows the cross-seller public listing
type MarketplaceFilter struct {
	shared.Filter
	SellerID     *uuid.UUID
	CategoryName string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
}

// ProductRepository defines the interface for product persistence.
// Public lookups only return products that are flagged public and whose
// seller has not turned the public catalog off.
type ProductRepository interface {
	// FindByIDForUser finds a product by ID within one seller's catalog
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Product, error)

	// ExistsByCode reports whether the seller already uses a code,
	// ignoring excludeID when set
	ExistsByCode(ctx context.Context, userID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error)

	// FindAllForUser lists a seller's products page by page
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter ProductFilter) ([]Product, error)

	// CountForUser counts a seller's products matching the filter
	CountForUser(ctx context.Context, userID uuid.UUID, filter ProductFilter) (int64, error)

	// ListAllForUser returns every product of a seller, unpaginated
	ListAllForUser(ctx context.Context, userID uuid.UUID) ([]Product, error)

	// CountByCategory counts a seller's products referencing a category
	CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)

	// FindPublic lists marketplace products page by page
	FindPublic(ctx context.Context, filter MarketplaceFilter) ([]Product, error)

	// CountPublic counts marketplace products matching the filter
	CountPublic(ctx context.Context, filter MarketplaceFilter) (int64, error)

	// FindPublicByID finds a single marketplace product
	FindPublicByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindPublicByCodes resolves exact codes among public products,
	// optionally within a single seller
	FindPublicByCodes(ctx context.Context, codes []string, sellerID *uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product only if its stored version is still
	// expectedVersion. Otherwise it returns shared.ErrConcurrencyConflict.
	SaveWithLock(ctx context.Context, product *Product, expectedVersion int) error

	// DeleteForUser deletes a product within one seller's catalog
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByIDForUser finds a category by ID within one seller's catalog
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Category, error)

	// FindByIDs finds categories by ID regardless of owner
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Category, error)

	// FindAllForUser lists a seller's categories
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Category, error)

	// CountForUser counts a seller's categories
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByName reports whether the seller already has a category
	// with this name, ignoring case and excludeID when set
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// DeleteForUser deletes a category and its subcategories
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

// SubcategoryRepository defines the interface for subcategory persistence
type SubcategoryRepository interface {
	// FindByIDForUser finds a subcategory by ID within one seller's catalog
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Subcategory, error)

	// FindByCategories lists the subcategories of the given categories
	FindByCategories(ctx context.Context, userID uuid.UUID, categoryIDs []uuid.UUID) ([]Subcategory, error)

	// ExistsByName reports whether the category already has a
	// subcategory with this name, ignoring case and excludeID when set
	ExistsByName(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a subcategory
	Save(ctx context.Context, subcategory *Subcategory) error

	// DeleteForUser deletes a subcategory within one seller's catalog
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
