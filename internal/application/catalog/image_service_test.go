package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pngFile(name string) ImageFile {
	return ImageFile{FileName: name, ContentType: "image/png", Size: 4, Body: []byte("\x89PNG")}
}

func TestImageService_Upload_LimitExceededLeavesProductUntouched(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productRepo := new(MockProductRepository)
	storage := new(MockObjectStorage)
	svc := NewImageService(productRepo, fixedPlan(identity.PlanFree), storage, nil, zap.NewNop())

	product := newTestProduct(t, userID, "A1", "Vaso")
	product.Images = []string{"https://cdn/1.png", "https://cdn/2.png"}
	productRepo.On("FindByIDForUser", ctx, userID, product.ID).Return(product, nil)

	_, err := svc.Upload(ctx, userID, product.ID, []ImageFile{pngFile("a.png"), pngFile("b.png")})

	assertDomainCode(t, err, "IMAGE_LIMIT_EXCEEDED")
	assert.Equal(t, "Maximum of 3 images per product", err.Error())
	assert.Equal(t, []string{"https://cdn/1.png", "https://cdn/2.png"}, product.Images)
	storage.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	productRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything, mock.Anything)
}

func TestImageService_Upload_PartialFailureKeepsSuccessfulImages(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productRepo := new(MockProductRepository)
	storage := new(MockObjectStorage)
	svc := NewImageService(productRepo, fixedPlan(identity.PlanPro), storage, nil, zap.NewNop())

	product := newTestProduct(t, userID, "A1", "Vaso")
	productRepo.On("FindByIDForUser", ctx, userID, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", ctx, product, product.Version).Return(nil)

	storage.On("PutObject", ctx, mock.MatchedBy(func(key string) bool { return hasSuffix(key, "-ok.png") }),
		"image/png", mock.Anything, int64(4)).Return("https://cdn/ok.png", nil)
	storage.On("PutObject", ctx, mock.MatchedBy(func(key string) bool { return hasSuffix(key, "-broken.png") }),
		"image/png", mock.Anything, int64(4)).Return("", errors.New("network"))

	svg := ImageFile{FileName: "x.svg", ContentType: "image/svg+xml", Size: 10}
	result, err := svc.Upload(ctx, userID, product.ID, []ImageFile{pngFile("ok.png"), pngFile("broken.png"), svg})

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/ok.png"}, result.Uploaded)
	assert.Len(t, result.Failed, 2)
	assert.Equal(t, "broken.png", result.Failed[0].FileName)
	assert.Equal(t, "x.svg", result.Failed[1].FileName)
	assert.Equal(t, []string{"https://cdn/ok.png"}, product.Images)
}

func TestImageService_Upload_AllFailed(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productRepo := new(MockProductRepository)
	storage := new(MockObjectStorage)
	svc := NewImageService(productRepo, fixedPlan(identity.PlanPro), storage, nil, zap.NewNop())

	product := newTestProduct(t, userID, "A1", "Vaso")
	productRepo.On("FindByIDForUser", ctx, userID, product.ID).Return(product, nil)
	storage.On("PutObject", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("down"))

	_, err := svc.Upload(ctx, userID, product.ID, []ImageFile{pngFile("a.png")})

	assertDomainCode(t, err, "UPLOAD_FAILED")
	productRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything, mock.Anything)
}

func TestImageService_Upload_LostRaceDeletesStoredObjects(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productRepo := new(MockProductRepository)
	storage := new(MockObjectStorage)
	svc := NewImageService(productRepo, fixedPlan(identity.PlanPro), storage, nil, zap.NewNop())

	product := newTestProduct(t, userID, "A1", "Vaso")
	productRepo.On("FindByIDForUser", ctx, userID, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", ctx, product, product.Version).Return(shared.ErrConcurrencyConflict)

	var stored []string
	storage.On("PutObject", ctx, mock.Anything, "image/png", mock.Anything, int64(4)).
		Run(func(args mock.Arguments) { stored = append(stored, args.String(1)) }).
		Return("https://cdn/a.png", nil)
	storage.On("DeleteObject", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Upload(ctx, userID, product.ID, []ImageFile{pngFile("a.png"), pngFile("b.png")})

	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	require.Len(t, stored, 2)
	for _, key := range stored {
		storage.AssertCalled(t, "DeleteObject", mock.Anything, key)
	}
	storage.AssertNumberOfCalls(t, "DeleteObject", 2)
}

func TestImageService_Upload_CleanupFailureKeepsOriginalError(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productRepo := new(MockProductRepository)
	storage := new(MockObjectStorage)
	svc := NewImageService(productRepo, fixedPlan(identity.PlanPro), storage, nil, zap.NewNop())

	product := newTestProduct(t, userID, "A1", "Vaso")
	productRepo.On("FindByIDForUser", ctx, userID, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", ctx, product, product.Version).Return(errors.New("db down"))
	storage.On("PutObject", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("https://cdn/a.png", nil)
	storage.On("DeleteObject", mock.Anything, mock.Anything).Return(errors.New("s3 down"))

	_, err := svc.Upload(ctx, userID, product.ID, []ImageFile{pngFile("a.png")})

	assert.EqualError(t, err, "db down")
	storage.AssertNumberOfCalls(t, "DeleteObject", 1)
}

func TestImageService_Remove(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productRepo := new(MockProductRepository)
	storage := new(MockObjectStorage)
	svc := NewImageService(productRepo, fixedPlan(identity.PlanFree), storage, nil, zap.NewNop())

	product := newTestProduct(t, userID, "A1", "Vaso")
	product.Images = []string{"https://cdn/u/a.png"}
	productRepo.On("FindByIDForUser", ctx, userID, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", ctx, product, product.Version).Return(nil)
	storage.On("KeyFromURL", "https://cdn/u/a.png").Return("u/a.png", true)
	storage.On("DeleteObject", ctx, "u/a.png").Return(nil)

	result, err := svc.Remove(ctx, userID, product.ID, "https://cdn/u/a.png")
	require.NoError(t, err)
	assert.Empty(t, result.Images)

	_, err = svc.Remove(ctx, userID, product.ID, "https://cdn/u/missing.png")
	assertDomainCode(t, err, "IMAGE_NOT_FOUND")
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
