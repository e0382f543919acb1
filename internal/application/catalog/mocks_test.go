package catalog

import (
	"context"
	"io"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, userID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter catalog.ProductFilter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ListAllForUser(ctx context.Context, userID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindPublic(ctx context.Context, filter catalog.MarketplaceFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountPublic(ctx context.Context, filter catalog.MarketplaceFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindPublicByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindPublicByCodes(ctx context.Context, codes []string, sellerID *uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, codes, sellerID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product, expectedVersion int) error {
	args := m.Called(ctx, product, expectedVersion)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockSubcategoryRepository is a mock implementation of SubcategoryRepository
type MockSubcategoryRepository struct {
	mock.Mock
}

func (m *MockSubcategoryRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Subcategory, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) FindByCategories(ctx context.Context, userID uuid.UUID, categoryIDs []uuid.UUID) ([]catalog.Subcategory, error) {
	args := m.Called(ctx, userID, categoryIDs)
	return args.Get(0).([]catalog.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) ExistsByName(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubcategoryRepository) Save(ctx context.Context, sub *catalog.Subcategory) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubcategoryRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of identity.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]identity.Profile, error) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).([]identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *identity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PutObject(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, body, size)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) KeyFromURL(url string) (string, bool) {
	args := m.Called(url)
	return args.String(0), args.Bool(1)
}

// MockDescriptionGenerator is a mock implementation of DescriptionGenerator
type MockDescriptionGenerator struct {
	mock.Mock
}

func (m *MockDescriptionGenerator) Available() bool {
	return m.Called().Bool(0)
}

func (m *MockDescriptionGenerator) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, prompt)
	return args.String(0), args.Error(1)
}

// fixedPlan is a PlanProvider that always answers the same plan
type fixedPlan identity.Plan

func (p fixedPlan) PlanFor(context.Context, uuid.UUID) (identity.Plan, error) {
	return identity.Plan(p), nil
}

func newTestProduct(t interface{ Helper() }, userID uuid.UUID, code, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(userID, code, name)
	if err != nil {
		panic(err)
	}
	return product
}
