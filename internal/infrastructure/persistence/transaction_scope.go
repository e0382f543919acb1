package persistence

import (
	"context"

	identityapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"gorm.io/gorm"
)

// GormTransactionScope runs account writes inside one database transaction
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn with repositories bound to a transaction. The
// transaction is rolled back when fn returns an error.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos identityapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTxRepositories{tx: tx})
	})
}

type gormTxRepositories struct {
	tx *gorm.DB
}

func (r *gormTxRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormTxRepositories) ProfileRepo() identity.ProfileRepository {
	return NewGormProfileRepository(r.tx)
}

var _ identityapp.TransactionScope = (*GormTransactionScope)(nil)
