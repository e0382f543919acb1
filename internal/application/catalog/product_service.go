package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo     catalog.ProductRepository
	categoryRepo    catalog.CategoryRepository
	subcategoryRepo catalog.SubcategoryRepository
	plans           PlanProvider
	storage         ObjectStorage
	metrics         Metrics
	events          shared.EventPublisher
	logger          *zap.Logger
	now             func() time.Time
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	subcategoryRepo catalog.SubcategoryRepository,
	plans PlanProvider,
	storage ObjectStorage,
	metrics Metrics,
	logger *zap.Logger,
) *ProductService {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &ProductService{
		productRepo:     productRepo,
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		plans:           plans,
		storage:         storage,
		metrics:         metrics,
		logger:          logger,
		now:             time.Now,
	}
}

// WithEventPublisher makes the service publish product events after each
// successful write
func (s *ProductService) WithEventPublisher(publisher shared.EventPublisher) *ProductService {
	s.events = publisher
	return s
}

// GenerateCode returns a new PRD code for the product form
func (s *ProductService) GenerateCode() GeneratedCodeResponse {
	return GeneratedCodeResponse{Code: catalog.GenerateProductCode(s.now())}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	code := req.Code
	if code == "" && req.AutoCode {
		code = catalog.GenerateProductCode(s.now())
	}

	// Form validation happens before any storage access
	product, err := catalog.NewProduct(userID, code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.applyDetails(product, req.Description, req); err != nil {
		return nil, err
	}

	plan, err := planLimits(ctx, s.plans, userID)
	if err != nil {
		return nil, err
	}
	if limit := plan.MaxProducts(); limit > 0 {
		count, err := s.productRepo.CountForUser(ctx, userID, catalog.ProductFilter{})
		if err != nil {
			return nil, err
		}
		if count >= int64(limit) {
			return nil, shared.NewDomainError("PRODUCT_LIMIT_EXCEEDED",
				fmt.Sprintf("Your plan allows at most %d products", limit))
		}
	}

	if err := s.ensureCodeAvailable(ctx, userID, product.Code, nil); err != nil {
		return nil, err
	}
	if err := s.validateCategory(ctx, userID, req.CategoryID, req.SubcategoryID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.metrics.ProductCreated(ctx)
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves one of the seller's products
func (s *ProductService) GetByID(ctx context.Context, userID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForUser(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves the seller's products with filtering and pagination
func (s *ProductService) List(ctx context.Context, userID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		if filter.OrderDir == "" {
			filter.OrderDir = "desc"
		}
	}

	domainFilter := catalog.ProductFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		CategoryID:    filter.CategoryID,
		SubcategoryID: filter.SubcategoryID,
		IsPublic:      filter.IsPublic,
	}
	domainFilter.Normalize()

	products, err := s.productRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update replaces the product's editable fields
func (s *ProductService) Update(ctx context.Context, userID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForUser(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	loadedVersion := product.Version
	previousCode := product.Code
	if err := product.Update(req.Code, req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.applyDetails(product, req.Description, CreateProductRequest{
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		CustomFields:  req.CustomFields,
		IsPublic:      req.IsPublic,
	}); err != nil {
		return nil, err
	}

	if product.Code != previousCode {
		if err := s.ensureCodeAvailable(ctx, userID, product.Code, &product.ID); err != nil {
			return nil, err
		}
	}
	if err := s.validateCategory(ctx, userID, req.CategoryID, req.SubcategoryID); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product, loadedVersion); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// SetVisibility shows or hides the product in public listings
func (s *ProductService) SetVisibility(ctx context.Context, userID, productID uuid.UUID, public bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForUser(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	loadedVersion := product.Version
	product.SetVisibility(public)
	if err := s.productRepo.SaveWithLock(ctx, product, loadedVersion); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes the product and, best-effort, its stored images
func (s *ProductService) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDForUser(ctx, userID, productID)
	if err != nil {
		return err
	}

	product.MarkDeleted()
	if err := s.productRepo.DeleteForUser(ctx, userID, productID); err != nil {
		return err
	}
	s.metrics.ProductDeleted(ctx)
	s.publishEvents(ctx, product)

	for _, url := range product.Images {
		s.deleteStoredImage(ctx, url)
	}
	return nil
}

// publishEvents hands pending events to the publisher and clears them.
// Delivery failures are logged; the write already succeeded.
func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	events := product.PullDomainEvents()
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish product events",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
}

// WhatsAppLink builds the "interested in this product" message link
func (s *ProductService) WhatsAppLink(ctx context.Context, userID, productID uuid.UUID) (*ContactLinkResponse, error) {
	product, err := s.productRepo.FindByIDForUser(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	message := catalog.ProductInterestMessage(product.Name, product.Code)
	return &ContactLinkResponse{
		Link:    catalog.WhatsAppLink("", message),
		Message: message,
	}, nil
}

func (s *ProductService) applyDetails(product *catalog.Product, description string, req CreateProductRequest) error {
	if err := product.SetDescription(description); err != nil {
		return err
	}
	if err := product.SetPrice(req.Price); err != nil {
		return err
	}
	if err := product.SetCategory(req.CategoryID, req.SubcategoryID); err != nil {
		return err
	}
	if err := product.SetCustomFields(req.CustomFields); err != nil {
		return err
	}
	if req.IsPublic != nil {
		product.SetVisibility(*req.IsPublic)
	}
	return nil
}

func (s *ProductService) ensureCodeAvailable(ctx context.Context, userID uuid.UUID, code string, excludeID *uuid.UUID) error {
	exists, err := s.productRepo.ExistsByCode(ctx, userID, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("PRODUCT_CODE_EXISTS", "A product with this code already exists")
	}
	return nil
}

func (s *ProductService) validateCategory(ctx context.Context, userID uuid.UUID, categoryID, subcategoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByIDForUser(ctx, userID, *categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	if subcategoryID == nil {
		return nil
	}
	sub, err := s.subcategoryRepo.FindByIDForUser(ctx, userID, *subcategoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_SUBCATEGORY", "Subcategory not found")
		}
		return err
	}
	if sub.CategoryID != *categoryID {
		return shared.NewDomainError("INVALID_SUBCATEGORY", "Subcategory does not belong to the selected category")
	}
	return nil
}

func (s *ProductService) deleteStoredImage(ctx context.Context, url string) {
	if s.storage == nil {
		return
	}
	key, ok := s.storage.KeyFromURL(url)
	if !ok {
		return
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to delete product image", zap.String("key", key), zap.Error(err))
	}
}

// planLimits resolves the plan used for cap checks; unknown plans fall back to free
func planLimits(ctx context.Context, plans PlanProvider, userID uuid.UUID) (identity.Plan, error) {
	plan, err := plans.PlanFor(ctx, userID)
	if err != nil {
		return "", err
	}
	if !plan.IsValid() {
		return identity.PlanFree, nil
	}
	return plan, nil
}
