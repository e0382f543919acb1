package catalog

import (
	"context"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
)

// PublicProductAssembler decorates public products with seller and
// category names
type PublicProductAssembler struct {
	profileRepo  identity.ProfileRepository
	categoryRepo catalog.CategoryRepository
}

// NewPublicProductAssembler creates the assembler shared by public services
func NewPublicProductAssembler(profileRepo identity.ProfileRepository, categoryRepo catalog.CategoryRepository) *PublicProductAssembler {
	return &PublicProductAssembler{profileRepo: profileRepo, categoryRepo: categoryRepo}
}

func (a *PublicProductAssembler) assemble(ctx context.Context, products []catalog.Product) ([]PublicProductResponse, error) {
	visible, sellers, err := a.visible(ctx, products)
	if err != nil {
		return nil, err
	}
	return a.build(ctx, visible, sellers)
}

// visible drops products whose seller has no profile or has hidden the
// public catalog. It returns the remaining sellers keyed by user ID.
func (a *PublicProductAssembler) visible(ctx context.Context, products []catalog.Product) ([]catalog.Product, map[uuid.UUID]*identity.Profile, error) {
	sellers := make(map[uuid.UUID]*identity.Profile)
	if len(products) == 0 {
		return products, sellers, nil
	}

	sellerIDs := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]struct{})
	for i := range products {
		if _, ok := seen[products[i].UserID]; !ok {
			seen[products[i].UserID] = struct{}{}
			sellerIDs = append(sellerIDs, products[i].UserID)
		}
	}

	profiles, err := a.profileRepo.FindByUserIDs(ctx, sellerIDs)
	if err != nil {
		return nil, nil, err
	}
	for i := range profiles {
		if profiles[i].IsCatalogPublic() {
			sellers[profiles[i].UserID] = &profiles[i]
		}
	}

	kept := make([]catalog.Product, 0, len(products))
	for i := range products {
		if _, ok := sellers[products[i].UserID]; ok {
			kept = append(kept, products[i])
		}
	}
	return kept, sellers, nil
}

func (a *PublicProductAssembler) build(ctx context.Context, products []catalog.Product, sellers map[uuid.UUID]*identity.Profile) ([]PublicProductResponse, error) {
	responses := make([]PublicProductResponse, len(products))
	if len(products) == 0 {
		return responses, nil
	}

	categoryIDs := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]struct{})
	for i := range products {
		if id := products[i].CategoryID; id != nil {
			if _, ok := seen[*id]; !ok {
				seen[*id] = struct{}{}
				categoryIDs = append(categoryIDs, *id)
			}
		}
	}

	categoryNames := make(map[uuid.UUID]string)
	if len(categoryIDs) > 0 {
		categories, err := a.categoryRepo.FindByIDs(ctx, categoryIDs)
		if err != nil {
			return nil, err
		}
		for i := range categories {
			categoryNames[categories[i].ID] = categories[i].Name
		}
	}

	for i := range products {
		r := ToPublicProductResponse(&products[i])
		if seller, ok := sellers[products[i].UserID]; ok {
			r.SellerName = seller.PublicName()
		}
		if products[i].CategoryID != nil {
			r.CategoryName = categoryNames[*products[i].CategoryID]
		}
		responses[i] = r
	}
	return responses, nil
}

// MarketplaceService serves the public, cross-seller storefront
type MarketplaceService struct {
	productRepo catalog.ProductRepository
	profileRepo identity.ProfileRepository
	assembler   *PublicProductAssembler
}

// NewMarketplaceService creates a new MarketplaceService
func NewMarketplaceService(
	productRepo catalog.ProductRepository,
	profileRepo identity.ProfileRepository,
	assembler *PublicProductAssembler,
) *MarketplaceService {
	return &MarketplaceService{
		productRepo: productRepo,
		profileRepo: profileRepo,
		assembler:   assembler,
	}
}

// List returns public products matching the filter
func (s *MarketplaceService) List(ctx context.Context, filter MarketplaceListFilter) ([]PublicProductResponse, int64, error) {
	domainFilter := toMarketplaceFilter(filter, nil)

	products, err := s.productRepo.FindPublic(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountPublic(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.assembler.assemble(ctx, products)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// GetProduct returns a public product with seller info and a contact link
func (s *MarketplaceService) GetProduct(ctx context.Context, productID uuid.UUID) (*PublicProductDetail, error) {
	product, err := s.productRepo.FindPublicByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByUserID(ctx, product.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	if !profile.IsCatalogPublic() {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	assembled, err := s.assembler.assemble(ctx, []catalog.Product{*product})
	if err != nil {
		return nil, err
	}
	if len(assembled) == 0 {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	message := catalog.ProductInterestMessage(product.Name, product.Code)
	return &PublicProductDetail{
		PublicProductResponse: assembled[0],
		Seller:                toSellerSummary(profile),
		Contact: ContactLinkResponse{
			Link:    catalog.WhatsAppLink(profile.WhatsAppPhone, message),
			Message: message,
		},
	}, nil
}

// GetSeller returns a seller's public page with a page of products
func (s *MarketplaceService) GetSeller(ctx context.Context, sellerID uuid.UUID, filter MarketplaceListFilter) (*SellerPageResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, sellerID)
	if err != nil {
		if isNotFound(err) {
			return nil, shared.NewDomainError("SELLER_NOT_FOUND", "Seller not found")
		}
		return nil, err
	}
	if !profile.IsCatalogPublic() {
		return nil, shared.NewDomainError("SELLER_NOT_FOUND", "Seller not found")
	}

	domainFilter := toMarketplaceFilter(filter, &sellerID)
	products, err := s.productRepo.FindPublic(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.CountPublic(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses, err := s.assembler.assemble(ctx, products)
	if err != nil {
		return nil, err
	}

	seller := toSellerSummary(profile)
	message := catalog.SellerContactMessage(seller.Name)
	return &SellerPageResponse{
		Seller:   seller,
		Products: responses,
		Total:    total,
		Contact: ContactLinkResponse{
			Link:    catalog.WhatsAppLink(profile.WhatsAppPhone, message),
			Message: message,
		},
	}, nil
}

func toMarketplaceFilter(filter MarketplaceListFilter, sellerID *uuid.UUID) catalog.MarketplaceFilter {
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		if filter.OrderDir == "" {
			filter.OrderDir = "desc"
		}
	}
	f := catalog.MarketplaceFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		SellerID:     sellerID,
		CategoryName: filter.Category,
		MinPrice:     filter.MinPrice,
		MaxPrice:     filter.MaxPrice,
	}
	f.Normalize()
	return f
}

func toSellerSummary(p *identity.Profile) SellerSummary {
	return SellerSummary{
		ID:          p.UserID,
		Name:        p.PublicName(),
		StoreName:   p.StoreName,
		LogoURL:     p.LogoURL,
		AccentColor: p.AccentColor,
	}
}
