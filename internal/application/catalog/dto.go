package catalog

import (
	"time"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product.
// Code may be empty only when AutoCode is set.
type CreateProductRequest struct {
	Code          string           `json:"code" binding:"max=50"`
	AutoCode      bool             `json:"auto_code"`
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description" binding:"max=5000"`
	Price         *decimal.Decimal `json:"price"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	SubcategoryID *uuid.UUID       `json:"subcategory_id"`
	CustomFields  map[string]any   `json:"custom_fields"`
	IsPublic      *bool            `json:"is_public"`
}

// UpdateProductRequest replaces the editable fields of a product
type UpdateProductRequest struct {
	Code          string           `json:"code" binding:"required,min=1,max=50"`
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description" binding:"max=5000"`
	Price         *decimal.Decimal `json:"price"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	SubcategoryID *uuid.UUID       `json:"subcategory_id"`
	CustomFields  map[string]any   `json:"custom_fields"`
	IsPublic      *bool            `json:"is_public"`
}

// UpdateVisibilityRequest toggles marketplace visibility
type UpdateVisibilityRequest struct {
	IsPublic *bool `json:"is_public" binding:"required"`
}

// ProductListFilter represents filter options for the dashboard product list
type ProductListFilter struct {
	Search        string     `form:"search"`
	CategoryID    *uuid.UUID `form:"category_id"`
	SubcategoryID *uuid.UUID `form:"subcategory_id"`
	IsPublic      *bool      `form:"is_public"`
	Page          int        `form:"page" binding:"min=0"`
	PageSize      int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in dashboard responses
type ProductResponse struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Images        []string         `json:"images"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	SubcategoryID *uuid.UUID       `json:"subcategory_id"`
	CustomFields  map[string]any   `json:"custom_fields"`
	IsPublic      bool             `json:"is_public"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Version       int              `json:"version"`
}

// GeneratedCodeResponse carries a freshly generated product code
type GeneratedCodeResponse struct {
	Code string `json:"code"`
}

// ImageFile is one uploaded image
type ImageFile struct {
	FileName    string
	ContentType string
	Size        int64
	Body        []byte
}

// FailedUpload describes a file that was skipped
type FailedUpload struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// UploadImagesResponse reports the outcome of an image upload batch
type UploadImagesResponse struct {
	Product  ProductResponse `json:"product"`
	Uploaded []string        `json:"uploaded"`
	Failed   []FailedUpload  `json:"failed"`
}

// RemoveImageRequest identifies an image to detach
type RemoveImageRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ContactLinkResponse is a WhatsApp deep link with its message
type ContactLinkResponse struct {
	Link    string `json:"link"`
	Message string `json:"message"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// SubcategoryRequest creates or renames a subcategory
type SubcategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryListFilter represents filter options for the category list
type CategoryListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SubcategoryResponse represents a subcategory in API responses
type SubcategoryResponse struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// CategoryResponse represents a category with its subcategories
type CategoryResponse struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// CodeQueryRequest carries a free-text list of product codes
type CodeQueryRequest struct {
	Query string `json:"query" binding:"required,max=2000"`
}

// CatalogLinkRequest carries explicit codes for a catalog link
type CatalogLinkRequest struct {
	Codes []string `json:"codes" binding:"required,min=1,max=200,dive,required,max=50"`
}

// CatalogLinkResponse is a shareable catalog URL
type CatalogLinkResponse struct {
	Link  string   `json:"link"`
	Codes []string `json:"codes"`
}

// ShareCatalogResponse is what the send page needs to share a selection
type ShareCatalogResponse struct {
	Products     []ProductResponse `json:"products"`
	Codes        []string          `json:"codes"`
	Link         string            `json:"link"`
	Message      string            `json:"message"`
	WhatsAppLink string            `json:"whatsapp_link"`
}

// SellerSummary is the public face of a seller
type SellerSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	StoreName   string    `json:"store_name"`
	LogoURL     string    `json:"logo_url"`
	AccentColor string    `json:"accent_color"`
}

// PublicProductResponse represents a product in public listings
type PublicProductResponse struct {
	ID           uuid.UUID        `json:"id"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Images       []string         `json:"images"`
	CategoryID   *uuid.UUID       `json:"category_id"`
	CategoryName string           `json:"category_name,omitempty"`
	CustomFields map[string]any   `json:"custom_fields"`
	SellerID     uuid.UUID        `json:"seller_id"`
	SellerName   string           `json:"seller_name,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// PublicProductDetail adds seller and contact data to a public product
type PublicProductDetail struct {
	PublicProductResponse
	Seller  SellerSummary       `json:"seller"`
	Contact ContactLinkResponse `json:"contact"`
}

// PublicCatalogResponse resolves a shared catalog link
type PublicCatalogResponse struct {
	Products []PublicProductResponse `json:"products"`
	NotFound []string                `json:"not_found"`
}

// MarketplaceListFilter represents the public listing query
type MarketplaceListFilter struct {
	Search   string           `form:"search"`
	Category string           `form:"category"`
	MinPrice *decimal.Decimal `form:"min_price"`
	MaxPrice *decimal.Decimal `form:"max_price"`
	Page     int              `form:"page" binding:"min=0"`
	PageSize int              `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string           `form:"order_by"`
	OrderDir string           `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SellerPageResponse is the public seller storefront
type SellerPageResponse struct {
	Seller   SellerSummary           `json:"seller"`
	Products []PublicProductResponse `json:"products"`
	Total    int64                   `json:"total"`
	Contact  ContactLinkResponse     `json:"contact"`
}

// DashboardStats summarizes the seller's catalog
type DashboardStats struct {
	TotalProducts     int64  `json:"total_products"`
	PublicProducts    int64  `json:"public_products"`
	TotalCategories   int64  `json:"total_categories"`
	Plan              string `json:"plan"`
	ProductLimit      int    `json:"product_limit"`
	RemainingProducts *int   `json:"remaining_products"`
	ImageLimit        int    `json:"image_limit"`
}

// GenerateDescriptionRequest is the AI description input
type GenerateDescriptionRequest struct {
	ProductName string   `json:"productName"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
}

// GenerateDescriptionResponse is the AI description output
type GenerateDescriptionResponse struct {
	Description string `json:"description"`
}

// ToProductResponse converts a domain product into a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Images:        images,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		CustomFields:  p.CustomFields.Clone(),
		IsPublic:      p.IsPublic,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToPublicProductResponse converts a product for public listings
func ToPublicProductResponse(p *catalog.Product) PublicProductResponse {
	r := ToProductResponse(p)
	return PublicProductResponse{
		ID:           r.ID,
		Code:         r.Code,
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Images:       r.Images,
		CategoryID:   r.CategoryID,
		CustomFields: r.CustomFields,
		SellerID:     r.UserID,
		CreatedAt:    r.CreatedAt,
	}
}

// ToCategoryResponse converts a category and its subcategories
func ToCategoryResponse(c *catalog.Category, subs []catalog.Subcategory) CategoryResponse {
	subResponses := make([]SubcategoryResponse, 0, len(subs))
	for i := range subs {
		subResponses = append(subResponses, ToSubcategoryResponse(&subs[i]))
	}
	return CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Subcategories: subResponses,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToSubcategoryResponse converts a subcategory
func ToSubcategoryResponse(s *catalog.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:         s.ID,
		CategoryID: s.CategoryID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
	}
}
