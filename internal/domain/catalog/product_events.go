package catalog

import (
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated           = "ProductCreated"
	EventTypeProductVisibilityChanged = "ProductVisibilityChanged"
	EventTypeProductDeleted           = "ProductDeleted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID, product.UserID),
		ProductID:       product.ID,
		Code:            product.Code,
		Name:            product.Name,
	}
}

// ProductVisibilityChangedEvent is published when a product is shown or hidden in the marketplace
type ProductVisibilityChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	IsPublic  bool      `json:"is_public"`
}

// NewProductVisibilityChangedEvent creates a new ProductVisibilityChangedEvent
func NewProductVisibilityChangedEvent(product *Product) *ProductVisibilityChangedEvent {
	return &ProductVisibilityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductVisibilityChanged, AggregateTypeProduct, product.ID, product.UserID),
		ProductID:       product.ID,
		IsPublic:        product.IsPublic,
	}
}

// ProductDeletedEvent is published when a product is removed
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Images    []string  `json:"images,omitempty"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(product *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, product.ID, product.UserID),
		ProductID:       product.ID,
		Code:            product.Code,
		Images:          append([]string(nil), product.Images...),
	}
}
