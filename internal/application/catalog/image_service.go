package catalog

import (
	"bytes"
	"context"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageService uploads and detaches product images
type ImageService struct {
	productRepo catalog.ProductRepository
	plans       PlanProvider
	storage     ObjectStorage
	metrics     Metrics
	logger      *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(
	productRepo catalog.ProductRepository,
	plans PlanProvider,
	storage ObjectStorage,
	metrics Metrics,
	logger *zap.Logger,
) *ImageService {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &ImageService{
		productRepo: productRepo,
		plans:       plans,
		storage:     storage,
		metrics:     metrics,
		logger:      logger,
	}
}

// Upload stores the files one at a time and attaches the ones that succeed.
// A batch that would exceed the plan's per-product cap is rejected whole and
// the product is left as it was. A file that fails to upload is logged and
// reported in Failed; the rest are still saved.
func (s *ImageService) Upload(ctx context.Context, userID, productID uuid.UUID, files []ImageFile) (*UploadImagesResponse, error) {
	if len(files) == 0 {
		return nil, shared.NewDomainError("IMAGES_REQUIRED", "Select at least one image")
	}

	product, err := s.productRepo.FindByIDForUser(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	loadedVersion := product.Version

	plan, err := planLimits(ctx, s.plans, userID)
	if err != nil {
		return nil, err
	}
	maxImages := plan.MaxImagesPerProduct()
	if !product.CanAddImages(len(files), maxImages) {
		return nil, catalog.NewImageLimitExceededError(maxImages)
	}

	uploaded := make([]string, 0, len(files))
	keys := make([]string, 0, len(files))
	failed := make([]FailedUpload, 0)
	for _, file := range files {
		if err := catalog.ValidateImage(file.ContentType, file.Size); err != nil {
			failed = append(failed, FailedUpload{FileName: file.FileName, Reason: err.Error()})
			continue
		}

		key := catalog.ImageObjectKey(userID, file.FileName)
		url, err := s.storage.PutObject(ctx, key, file.ContentType, bytes.NewReader(file.Body), file.Size)
		if err != nil {
			s.logger.Warn("Image upload failed",
				zap.String("product_id", productID.String()),
				zap.String("file_name", file.FileName),
				zap.Error(err))
			failed = append(failed, FailedUpload{FileName: file.FileName, Reason: "upload failed"})
			continue
		}
		uploaded = append(uploaded, url)
		keys = append(keys, key)
	}
	s.metrics.ImagesUploaded(ctx, len(uploaded), len(failed))

	if len(uploaded) == 0 {
		return nil, shared.NewDomainError("UPLOAD_FAILED", "None of the images could be uploaded")
	}

	if err := product.AddImages(uploaded, maxImages); err != nil {
		s.discard(ctx, keys)
		return nil, err
	}
	if err := s.productRepo.SaveWithLock(ctx, product, loadedVersion); err != nil {
		s.discard(ctx, keys)
		return nil, err
	}

	return &UploadImagesResponse{
		Product:  ToProductResponse(product),
		Uploaded: uploaded,
		Failed:   failed,
	}, nil
}

// Remove detaches one image and deletes its object best-effort
func (s *ImageService) Remove(ctx context.Context, userID, productID uuid.UUID, url string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForUser(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	loadedVersion := product.Version

	if !product.RemoveImage(url) {
		return nil, shared.NewDomainError("IMAGE_NOT_FOUND", "Image does not belong to this product")
	}
	if err := s.productRepo.SaveWithLock(ctx, product, loadedVersion); err != nil {
		return nil, err
	}

	if key, ok := s.storage.KeyFromURL(url); ok {
		if err := s.storage.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("Failed to delete image object", zap.String("key", key), zap.Error(err))
		}
	}

	response := ToProductResponse(product)
	return &response, nil
}

// discard deletes objects stored for a batch that was never attached.
// It runs detached so a cancelled request still cleans up.
func (s *ImageService) discard(ctx context.Context, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := s.storage.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("Failed to delete unattached image", zap.String("key", key), zap.Error(err))
		}
	}
}
