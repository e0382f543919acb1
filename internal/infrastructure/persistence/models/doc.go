// Package models contains GORM persistence models that map to database tables.
// They are kept apart from domain entities so the domain stays free of ORM
// tags; each model converts to and from its entity with ToDomain/FromDomain.
//
// Structure:
//   - base.go: shared columns (BaseModel, AggregateModel, OwnedAggregateModel)
//   - identity.go: users and seller profiles
//   - catalog.go: categories, subcategories and products
//   - types.go: JSON column types
package models
