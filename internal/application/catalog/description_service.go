package catalog

import (
	"context"
	"strings"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DescriptionService writes product descriptions with a language model
type DescriptionService struct {
	generator DescriptionGenerator
	plans     PlanProvider
	metrics   Metrics
	logger    *zap.Logger
}

// NewDescriptionService creates a new DescriptionService
func NewDescriptionService(
	generator DescriptionGenerator,
	plans PlanProvider,
	metrics Metrics,
	logger *zap.Logger,
) *DescriptionService {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &DescriptionService{
		generator: generator,
		plans:     plans,
		metrics:   metrics,
		logger:    logger,
	}
}

// Generate validates the request, checks the plan and calls the model once.
// Failures are returned as errors without retrying.
func (s *DescriptionService) Generate(ctx context.Context, userID uuid.UUID, req GenerateDescriptionRequest) (*GenerateDescriptionResponse, error) {
	input := catalog.DescriptionRequest{
		ProductName: req.ProductName,
		Category:    req.Category,
		Price:       req.Price,
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	plan, err := planLimits(ctx, s.plans, userID)
	if err != nil {
		return nil, err
	}
	if !plan.HasFeature(identity.FeatureAIDescription) {
		return nil, shared.NewDomainError("PLAN_FEATURE_UNAVAILABLE", "AI descriptions are available on the Professional plan")
	}

	if s.generator == nil || !s.generator.Available() {
		return nil, shared.NewDomainError("AI_UNAVAILABLE", "AI service not configured")
	}

	text, err := s.generator.Generate(ctx, catalog.DescriptionSystemPrompt, input.BuildPrompt())
	if err != nil {
		s.metrics.DescriptionGenerated(ctx, false)
		s.logger.Error("Description generation failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.WrapDomainError("AI_UPSTREAM_ERROR", "Failed to generate description", err)
	}
	s.metrics.DescriptionGenerated(ctx, true)

	return &GenerateDescriptionResponse{Description: strings.TrimSpace(text)}, nil
}
