package identity

import (
	"context"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
)

// TransactionScope runs account writes atomically. Registration uses it so a
// user never exists without a profile.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to one transaction
type TransactionalRepositories interface {
	UserRepo() identity.UserRepository
	ProfileRepo() identity.ProfileRepository
}

// NoOpTransactionScope runs the function directly against the given repositories
type NoOpTransactionScope struct {
	userRepo    identity.UserRepository
	profileRepo identity.ProfileRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(userRepo identity.UserRepository, profileRepo identity.ProfileRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{userRepo: userRepo, profileRepo: profileRepo}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// UserRepo returns the user repository
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository {
	return s.userRepo
}

// ProfileRepo returns the profile repository
func (s *NoOpTransactionScope) ProfileRepo() identity.ProfileRepository {
	return s.profileRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
