package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	// MaxCategoryNameLength is the longest category or subcategory name
	MaxCategoryNameLength = 100
	// MaxCategoryDescriptionLength caps category descriptions
	MaxCategoryDescriptionLength = 500
)

// Category groups a seller's products. Names are unique per seller,
// ignoring case.
type Category struct {
	shared.OwnedAggregateRoot
	Name        string
	Description string
}

// NewCategory creates a new category owned by userID
func NewCategory(userID uuid.UUID, name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateCategoryDescription(description); err != nil {
		return nil, err
	}

	return &Category{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		Description:        strings.TrimSpace(description),
	}, nil
}

// Update updates the category's name and description
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if err := validateCategoryDescription(description); err != nil {
		return err
	}

	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.IncrementVersion()

	return nil
}

// NewSubcategory creates a subcategory under this category
func (c *Category) NewSubcategory(name string) (*Subcategory, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return &Subcategory{
		BaseEntity: shared.NewBaseEntity(),
		CategoryID: c.ID,
		UserID:     c.UserID,
		Name:       name,
	}, nil
}

// Subcategory is a named subdivision of one category
type Subcategory struct {
	shared.BaseEntity
	CategoryID uuid.UUID
	UserID     uuid.UUID
	Name       string
}

// Rename changes the subcategory name
func (s *Subcategory) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	s.Name = name
	s.Touch()
	return nil
}

// CategoryWithSubcategories is a read model used by listings
type CategoryWithSubcategories struct {
	Category      Category
	Subcategories []Subcategory
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("NAME_REQUIRED", "Category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return shared.NewDomainError("INVALID_NAME",
			fmt.Sprintf("Category name cannot exceed %d characters", MaxCategoryNameLength))
	}
	return nil
}

func validateCategoryDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxCategoryDescriptionLength {
		return shared.NewDomainError("INVALID_DESCRIPTION",
			fmt.Sprintf("Category description cannot exceed %d characters", MaxCategoryDescriptionLength))
	}
	return nil
}
