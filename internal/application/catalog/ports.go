package catalog

import (
	"context"
	"io"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/google/uuid"
)

// ObjectStorage stores product images. The infrastructure layer implements
// it on S3-compatible storage.
type ObjectStorage interface {
	// PutObject uploads body under key and returns its public URL
	PutObject(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, key string) error

	// KeyFromURL maps a public URL back to its object key
	KeyFromURL(url string) (string, bool)
}

// DescriptionGenerator produces marketing copy from a prompt
type DescriptionGenerator interface {
	// Available reports whether the generator is configured
	Available() bool

	// Generate returns the generated text
	Generate(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// PlanProvider resolves the seller's subscription plan
type PlanProvider interface {
	PlanFor(ctx context.Context, userID uuid.UUID) (identity.Plan, error)
}

// Metrics records catalog business events
type Metrics interface {
	ProductCreated(ctx context.Context)
	ProductDeleted(ctx context.Context)
	ImagesUploaded(ctx context.Context, uploaded, failed int)
	CatalogShared(ctx context.Context, codes int)
	DescriptionGenerated(ctx context.Context, success bool)
}

// NoopMetrics discards every event
type NoopMetrics struct{}

func (NoopMetrics) ProductCreated(context.Context)            {}
func (NoopMetrics) ProductDeleted(context.Context)            {}
func (NoopMetrics) ImagesUploaded(context.Context, int, int)  {}
func (NoopMetrics) CatalogShared(context.Context, int)        {}
func (NoopMetrics) DescriptionGenerated(context.Context, bool) {}

var _ Metrics = NoopMetrics{}
