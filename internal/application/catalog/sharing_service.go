package catalog

import (
	"context"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
)

// SharingService finds products by code and builds shareable catalog links
type SharingService struct {
	productRepo  catalog.ProductRepository
	assembler    *PublicProductAssembler
	publicOrigin string
	metrics      Metrics
}

// NewSharingService creates a new SharingService. publicOrigin is the
// storefront base URL, e.g. https://loja.example.com.
func NewSharingService(
	productRepo catalog.ProductRepository,
	assembler *PublicProductAssembler,
	publicOrigin string,
	metrics Metrics,
) *SharingService {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &SharingService{
		productRepo:  productRepo,
		assembler:    assembler,
		publicOrigin: publicOrigin,
		metrics:      metrics,
	}
}

// Search returns the seller's products whose code contains any token of
// the query, ignoring case.
func (s *SharingService) Search(ctx context.Context, userID uuid.UUID, query string) ([]ProductResponse, error) {
	tokens := catalog.ParseCodeQuery(query)
	if len(tokens) == 0 {
		return []ProductResponse{}, nil
	}

	products, err := s.productRepo.ListAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToProductResponses(catalog.SearchByCodes(products, query)), nil
}

// BuildLink returns the catalog link for the given codes, as given
func (s *SharingService) BuildLink(codes []string) CatalogLinkResponse {
	return CatalogLinkResponse{
		Link:  catalog.BuildCatalogLink(s.publicOrigin, codes),
		Codes: codes,
	}
}

// Share matches the query against the seller's codes and returns the link
// and WhatsApp message for the matched selection.
func (s *SharingService) Share(ctx context.Context, userID uuid.UUID, query string) (*ShareCatalogResponse, error) {
	matched, err := s.Search(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, shared.NewDomainError("PRODUCTS_NOT_FOUND", "No products match the given codes")
	}

	codes := make([]string, len(matched))
	for i := range matched {
		codes[i] = matched[i].Code
	}
	link := catalog.BuildCatalogLink(s.publicOrigin, codes)
	message := catalog.CatalogShareMessage(link)
	s.metrics.CatalogShared(ctx, len(codes))

	return &ShareCatalogResponse{
		Products:     matched,
		Codes:        codes,
		Link:         link,
		Message:      message,
		WhatsAppLink: catalog.WhatsAppLink("", message),
	}, nil
}

// ResolveCatalog loads the public products named by a shared link. Codes
// match exactly; codes with no public product are listed in NotFound.
func (s *SharingService) ResolveCatalog(ctx context.Context, rawCodes string, sellerID *uuid.UUID) (*PublicCatalogResponse, error) {
	codes := catalog.ParseCatalogCodes(rawCodes)
	if len(codes) == 0 {
		return nil, shared.NewDomainError("CODES_REQUIRED", "At least one product code is required")
	}

	products, err := s.productRepo.FindPublicByCodes(ctx, codes, sellerID)
	if err != nil {
		return nil, err
	}

	products, sellers, err := s.assembler.visible(ctx, products)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string][]catalog.Product, len(products))
	for _, p := range products {
		byCode[p.Code] = append(byCode[p.Code], p)
	}

	ordered := make([]catalog.Product, 0, len(products))
	notFound := make([]string, 0)
	for _, code := range codes {
		found, ok := byCode[code]
		if !ok {
			notFound = append(notFound, code)
			continue
		}
		ordered = append(ordered, found...)
	}

	responses, err := s.assembler.build(ctx, ordered, sellers)
	if err != nil {
		return nil, err
	}

	return &PublicCatalogResponse{
		Products: responses,
		NotFound: notFound,
	}, nil
}
