package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// MaxProductCodeLength is the longest code a seller can assign
	MaxProductCodeLength = 50
	// MaxProductNameLength is the longest product name accepted
	MaxProductNameLength = 200
	// MaxDescriptionLength caps free-text product descriptions
	MaxDescriptionLength = 5000
	// MaxCustomFields caps the number of custom attribute keys
	MaxCustomFields = 50
	// GeneratedCodePrefix is prepended to auto-generated product codes
	GeneratedCodePrefix = "PRD"
)

// Codes are split on commas and whitespace when searched or shared,
// so neither may appear inside a code.
var productCodePattern = regexp.MustCompile(`^[A-Za-z0-9._\-/#]+$`)

// CustomFields holds category-specific attributes (bedrooms, brand, size...)
type CustomFields map[string]any

// Clone returns a shallow copy of the fields
func (f CustomFields) Clone() CustomFields {
	if f == nil {
		return CustomFields{}
	}
	out := make(CustomFields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Product is a seller's catalog item, publicly addressed by its code.
type Product struct {
	shared.OwnedAggregateRoot
	Code          string
	Name          string
	Description   string
	Price         *decimal.Decimal
	Images        []string
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	CustomFields  CustomFields
	IsPublic      bool
}

// NewProduct creates a new product owned by userID
func NewProduct(userID uuid.UUID, code, name string) (*Product, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Code:               code,
		Name:               name,
		Images:             make([]string, 0),
		CustomFields:       CustomFields{},
		IsPublic:           true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// GenerateProductCode builds a PRD code from the last six digits of the
// millisecond clock.
func GenerateProductCode(now time.Time) string {
	ms := fmt.Sprintf("%d", now.UnixMilli())
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return GeneratedCodePrefix + ms
}

// Update replaces the editable details of the product
func (p *Product) Update(code, name, description string) error {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if err := validateProductCode(code); err != nil {
		return err
	}
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}

	p.Code = code
	p.Name = name
	p.Description = description
	p.changed()

	return nil
}

// SetDescription sets the free-text description
func (p *Product) SetDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}
	p.Description = description
	p.changed()
	return nil
}

// SetPrice sets the price; nil clears it ("price on request")
func (p *Product) SetPrice(price *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price
	p.changed()
	return nil
}

// SetCategory assigns the category and optional subcategory
func (p *Product) SetCategory(categoryID, subcategoryID *uuid.UUID) error {
	if categoryID == nil && subcategoryID != nil {
		return shared.NewDomainError("INVALID_SUBCATEGORY", "Subcategory requires a category")
	}
	p.CategoryID = categoryID
	p.SubcategoryID = subcategoryID
	p.changed()
	return nil
}

// SetCustomFields replaces the custom attribute map
func (p *Product) SetCustomFields(fields CustomFields) error {
	if len(fields) > MaxCustomFields {
		return shared.NewDomainError("INVALID_CUSTOM_FIELDS",
			fmt.Sprintf("Products support at most %d custom fields", MaxCustomFields))
	}
	for key := range fields {
		if strings.TrimSpace(key) == "" {
			return shared.NewDomainError("INVALID_CUSTOM_FIELDS", "Custom field names cannot be empty")
		}
	}
	p.CustomFields = fields.Clone()
	p.changed()
	return nil
}

// SetVisibility toggles whether the product appears in the marketplace
func (p *Product) SetVisibility(public bool) {
	if p.IsPublic == public {
		return
	}
	p.IsPublic = public
	p.changed()
	p.AddDomainEvent(NewProductVisibilityChangedEvent(p))
}

// CanAddImages reports whether count more images fit within maxImages
func (p *Product) CanAddImages(count, maxImages int) bool {
	if maxImages <= 0 {
		return true
	}
	return len(p.Images)+count <= maxImages
}

// AddImages appends uploaded image URLs, enforcing the plan maximum.
// On rejection the existing images are left untouched.
func (p *Product) AddImages(urls []string, maxImages int) error {
	if len(urls) == 0 {
		return nil
	}
	if !p.CanAddImages(len(urls), maxImages) {
		return NewImageLimitExceededError(maxImages)
	}
	p.Images = append(p.Images, urls...)
	p.changed()
	return nil
}

// RemoveImage drops one image URL; it reports whether the URL was present
func (p *Product) RemoveImage(url string) bool {
	for i, existing := range p.Images {
		if existing == url {
			p.Images = append(p.Images[:i:i], p.Images[i+1:]...)
			p.changed()
			return true
		}
	}
	return false
}

// MarkDeleted records the deletion event before the row is removed
func (p *Product) MarkDeleted() {
	p.AddDomainEvent(NewProductDeletedEvent(p))
}

// MatchesAnyToken reports whether the code contains any of the tokens,
// ignoring case.
func (p *Product) MatchesAnyToken(tokens []string) bool {
	return CodeMatchesAny(p.Code, tokens)
}

func (p *Product) changed() {
	p.IncrementVersion()
}

// NewImageLimitExceededError reports that the plan image cap was hit
func NewImageLimitExceededError(maxImages int) *shared.DomainError {
	return shared.NewDomainError("IMAGE_LIMIT_EXCEEDED",
		fmt.Sprintf("Maximum of %d images per product", maxImages))
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("CODE_REQUIRED", "Product code cannot be empty")
	}
	if utf8.RuneCountInString(code) > MaxProductCodeLength {
		return shared.NewDomainError("INVALID_CODE",
			fmt.Sprintf("Product code cannot exceed %d characters", MaxProductCodeLength))
	}
	if !productCodePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot contain spaces or commas")
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("NAME_REQUIRED", "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxProductNameLength {
		return shared.NewDomainError("INVALID_NAME",
			fmt.Sprintf("Product name cannot exceed %d characters", MaxProductNameLength))
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return shared.NewDomainError("INVALID_DESCRIPTION",
			fmt.Sprintf("Description cannot exceed %d characters", MaxDescriptionLength))
	}
	return nil
}
