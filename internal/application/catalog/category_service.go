package catalog

import (
	"context"
	"errors"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService handles category and subcategory operations
type CategoryService struct {
	categoryRepo    catalog.CategoryRepository
	subcategoryRepo catalog.SubcategoryRepository
	productRepo     catalog.ProductRepository
	logger          *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	subcategoryRepo catalog.SubcategoryRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		productRepo:     productRepo,
		logger:          logger,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(userID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, userID, category.Name, nil); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category, nil)
	return &response, nil
}

// GetByID retrieves a category with its subcategories
func (s *CategoryService) GetByID(ctx context.Context, userID, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForUser(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	subs, err := s.subcategoryRepo.FindByCategories(ctx, userID, []uuid.UUID{category.ID})
	if err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category, subs)
	return &response, nil
}

// List retrieves the seller's categories, each with its subcategories
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID, filter CategoryListFilter) ([]CategoryResponse, int64, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}
	domainFilter.Normalize()

	categories, err := s.categoryRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.categoryRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(categories))
	for i := range categories {
		ids[i] = categories[i].ID
	}
	subs, err := s.subcategoryRepo.FindByCategories(ctx, userID, ids)
	if err != nil {
		return nil, 0, err
	}

	byCategory := make(map[uuid.UUID][]catalog.Subcategory, len(categories))
	for _, sub := range subs {
		byCategory[sub.CategoryID] = append(byCategory[sub.CategoryID], sub)
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i], byCategory[categories[i].ID])
	}
	return responses, total, nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, userID, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForUser(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, userID, category.Name, &category.ID); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, userID, category.ID)
}

// Delete removes a category and its subcategories. Categories still used
// by products cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByIDForUser(ctx, userID, categoryID); err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category has products assigned; move or delete them first")
	}

	if err := s.categoryRepo.DeleteForUser(ctx, userID, categoryID); err != nil {
		return err
	}
	s.logger.Info("Category deleted", zap.String("category_id", categoryID.String()))
	return nil
}

// ListSubcategories returns the subcategories of one category
func (s *CategoryService) ListSubcategories(ctx context.Context, userID, categoryID uuid.UUID) ([]SubcategoryResponse, error) {
	if _, err := s.categoryRepo.FindByIDForUser(ctx, userID, categoryID); err != nil {
		return nil, err
	}

	subs, err := s.subcategoryRepo.FindByCategories(ctx, userID, []uuid.UUID{categoryID})
	if err != nil {
		return nil, err
	}

	responses := make([]SubcategoryResponse, len(subs))
	for i := range subs {
		responses[i] = ToSubcategoryResponse(&subs[i])
	}
	return responses, nil
}

// CreateSubcategory adds a subcategory under a category
func (s *CategoryService) CreateSubcategory(ctx context.Context, userID, categoryID uuid.UUID, req SubcategoryRequest) (*SubcategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForUser(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	sub, err := category.NewSubcategory(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSubcategoryNameAvailable(ctx, categoryID, sub.Name, nil); err != nil {
		return nil, err
	}

	if err := s.subcategoryRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	response := ToSubcategoryResponse(sub)
	return &response, nil
}

// UpdateSubcategory renames a subcategory
func (s *CategoryService) UpdateSubcategory(ctx context.Context, userID, subcategoryID uuid.UUID, req SubcategoryRequest) (*SubcategoryResponse, error) {
	sub, err := s.subcategoryRepo.FindByIDForUser(ctx, userID, subcategoryID)
	if err != nil {
		return nil, err
	}

	if err := sub.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.ensureSubcategoryNameAvailable(ctx, sub.CategoryID, sub.Name, &sub.ID); err != nil {
		return nil, err
	}

	if err := s.subcategoryRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	response := ToSubcategoryResponse(sub)
	return &response, nil
}

// DeleteSubcategory removes a subcategory; products keep their category
func (s *CategoryService) DeleteSubcategory(ctx context.Context, userID, subcategoryID uuid.UUID) error {
	return s.subcategoryRepo.DeleteForUser(ctx, userID, subcategoryID)
}

func (s *CategoryService) ensureNameAvailable(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsByName(ctx, userID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("CATEGORY_EXISTS", "A category with this name already exists")
	}
	return nil
}

func (s *CategoryService) ensureSubcategoryNameAvailable(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) error {
	exists, err := s.subcategoryRepo.ExistsByName(ctx, categoryID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("SUBCATEGORY_EXISTS", "A subcategory with this name already exists")
	}
	return nil
}

// isNotFound reports whether err is a not-found error from a repository
func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
