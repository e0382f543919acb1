package models

import (
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	OwnedAggregateModel
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Name:               m.Name,
		Description:        m.Description,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainOwnedAggregateRoot(c.OwnedAggregateRoot)
	m.Name = c.Name
	m.Description = c.Description
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// SubcategoryModel is the persistence model for the Subcategory entity.
type SubcategoryModel struct {
	BaseModel
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (SubcategoryModel) TableName() string {
	return "subcategories"
}

// ToDomain converts the persistence model to a domain Subcategory.
func (m *SubcategoryModel) ToDomain() *catalog.Subcategory {
	return &catalog.Subcategory{
		BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		CategoryID: m.CategoryID,
		UserID:     m.UserID,
		Name:       m.Name,
	}
}

// FromDomain populates the persistence model from a domain Subcategory.
func (m *SubcategoryModel) FromDomain(s *catalog.Subcategory) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.CategoryID = s.CategoryID
	m.UserID = s.UserID
	m.Name = s.Name
}

// SubcategoryModelFromDomain creates a new persistence model from a domain Subcategory.
func SubcategoryModelFromDomain(s *catalog.Subcategory) *SubcategoryModel {
	m := &SubcategoryModel{}
	m.FromDomain(s)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	OwnedAggregateModel
	Code          string              `gorm:"type:varchar(50);not null;index"`
	Name          string              `gorm:"type:varchar(200);not null"`
	Description   string              `gorm:"type:text"`
	Price         decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	Images        StringList          `gorm:"not null"`
	CategoryID    *uuid.UUID          `gorm:"type:uuid;index"`
	SubcategoryID *uuid.UUID          `gorm:"type:uuid;index"`
	CustomFields  JSONMap             `gorm:"not null"`
	IsPublic      bool                `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	var price *decimal.Decimal
	if m.Price.Valid {
		p := m.Price.Decimal
		price = &p
	}
	images := make([]string, len(m.Images))
	copy(images, m.Images)

	return &catalog.Product{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Code:               m.Code,
		Name:               m.Name,
		Description:        m.Description,
		Price:              price,
		Images:             images,
		CategoryID:         m.CategoryID,
		SubcategoryID:      m.SubcategoryID,
		CustomFields:       catalog.CustomFields(m.CustomFields).Clone(),
		IsPublic:           m.IsPublic,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.Description = p.Description
	m.Price = decimal.NullDecimal{}
	if p.Price != nil {
		m.Price = decimal.NewNullDecimal(*p.Price)
	}
	m.Images = StringList(append([]string{}, p.Images...))
	m.CategoryID = p.CategoryID
	m.SubcategoryID = p.SubcategoryID
	m.CustomFields = JSONMap(p.CustomFields.Clone())
	m.IsPublic = p.IsPublic
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
