package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultProductCacheTTL bounds how stale a cached read can be
	DefaultProductCacheTTL = 5 * time.Minute

	publicGenerationKey = "products:public:gen"

	loadTimeout = 30 * time.Second
)

// CachedProductRepository decorates a ProductRepository with a read cache.
// Concurrent misses for the same key share one database query.
//
// Every key carries a generation. A product write rotates the seller's
// generation and the public one, so a read that raced the write can only
// store its result under a key nobody looks up again. InvalidatePublic
// rotates the public generation for writes that live elsewhere, such as a
// seller hiding the public catalog.
type CachedProductRepository struct {
	catalog.ProductRepository

	store  cache.Store
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

// NewCachedProductRepository wraps next with store
func NewCachedProductRepository(next catalog.ProductRepository, store cache.Store, ttl time.Duration, logger *zap.Logger) *CachedProductRepository {
	if ttl <= 0 {
		ttl = DefaultProductCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProductRepository{
		ProductRepository: next,
		store:             store,
		ttl:               ttl,
		logger:            logger,
	}
}

// ListAllForUser returns every product of a seller, served from cache when possible
func (r *CachedProductRepository) ListAllForUser(ctx context.Context, userID uuid.UUID) ([]catalog.Product, error) {
	key := "products:seller:" + userID.String() + ":" + r.generation(ctx, sellerGenerationKey(userID)) + ":all"
	return cachedRead(ctx, r, key, func(ctx context.Context) ([]catalog.Product, error) {
		return r.ProductRepository.ListAllForUser(ctx, userID)
	})
}

// FindPublicByID finds a marketplace product, caching misses as well as hits
func (r *CachedProductRepository) FindPublicByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	key := "products:public:" + r.generation(ctx, publicGenerationKey) + ":id:" + id.String()
	product, err := cachedRead(ctx, r, key, func(ctx context.Context) (*catalog.Product, error) {
		p, err := r.ProductRepository.FindPublicByID(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return p, err
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

// FindPublicByCodes resolves codes among public products through the cache
func (r *CachedProductRepository) FindPublicByCodes(ctx context.Context, codes []string, sellerID *uuid.UUID) ([]catalog.Product, error) {
	if len(codes) == 0 {
		return []catalog.Product{}, nil
	}
	sorted := slices.Clone(codes)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	scope := "all"
	if sellerID != nil {
		scope = sellerID.String()
	}
	key := "products:public:" + r.generation(ctx, publicGenerationKey) + ":codes:" + scope + ":" + strings.Join(sorted, ",")
	return cachedRead(ctx, r, key, func(ctx context.Context) ([]catalog.Product, error) {
		return r.ProductRepository.FindPublicByCodes(ctx, sorted, sellerID)
	})
}

// Save writes through and invalidates the seller's cached reads
func (r *CachedProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if err := r.ProductRepository.Save(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx, product.UserID)
	return nil
}

// SaveWithLock writes through and invalidates on success only
func (r *CachedProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product, expectedVersion int) error {
	if err := r.ProductRepository.SaveWithLock(ctx, product, expectedVersion); err != nil {
		return err
	}
	r.invalidate(ctx, product.UserID)
	return nil
}

// DeleteForUser deletes through and invalidates the seller's cached reads
func (r *CachedProductRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	if err := r.ProductRepository.DeleteForUser(ctx, userID, id); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

// InvalidatePublic drops every cached public lookup
func (r *CachedProductRepository) InvalidatePublic(ctx context.Context) {
	if err := r.store.Delete(ctx, publicGenerationKey); err != nil {
		r.logger.Warn("Failed to invalidate public product cache", zap.Error(err))
	}
}

func (r *CachedProductRepository) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := r.store.Delete(ctx, sellerGenerationKey(userID), publicGenerationKey); err != nil {
		r.logger.Warn("Failed to invalidate product cache",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

// generation returns the generation stored at genKey, starting a new one
// when none is stored
func (r *CachedProductRepository) generation(ctx context.Context, genKey string) string {
	if gen, ok, err := r.store.Get(ctx, genKey); err == nil && ok {
		return string(gen)
	}
	gen := ulid.Make().String()
	if err := r.store.Set(ctx, genKey, []byte(gen), 2*r.ttl); err != nil {
		r.logger.Warn("Failed to store cache generation", zap.String("key", genKey), zap.Error(err))
	}
	return gen
}

func sellerGenerationKey(userID uuid.UUID) string {
	return "products:seller:" + userID.String() + ":gen"
}

// cachedRead serves key from the store, or loads it once for all concurrent
// callers and stores the JSON result. Cache failures fall back to load.
func cachedRead[T any](ctx context.Context, r *CachedProductRepository, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T

	if raw, ok, err := r.store.Get(ctx, key); err != nil {
		r.logger.Warn("Product cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var out T
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		r.logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
	}

	// The shared load must outlive any single caller, so it runs detached
	// and each caller waits on its own context.
	ch := r.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return value, nil
		}
		if err := r.store.Set(loadCtx, key, raw, r.ttl); err != nil {
			r.logger.Warn("Product cache write failed", zap.String("key", key), zap.Error(err))
		}
		return value, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

var _ catalog.ProductRepository = (*CachedProductRepository)(nil)
