package catalog

import (
	"context"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/catalog"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
)

// DashboardService computes the seller's dashboard figures
type DashboardService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	plans        PlanProvider
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	plans PlanProvider,
) *DashboardService {
	return &DashboardService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		plans:        plans,
	}
}

// Stats counts the seller's products and categories. Figures are computed
// on every call.
func (s *DashboardService) Stats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	totalProducts, err := s.productRepo.CountForUser(ctx, userID, catalog.ProductFilter{})
	if err != nil {
		return nil, err
	}

	public := true
	publicProducts, err := s.productRepo.CountForUser(ctx, userID, catalog.ProductFilter{IsPublic: &public})
	if err != nil {
		return nil, err
	}

	totalCategories, err := s.categoryRepo.CountForUser(ctx, userID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	plan, err := planLimits(ctx, s.plans, userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts:   totalProducts,
		PublicProducts:  publicProducts,
		TotalCategories: totalCategories,
		Plan:            string(plan),
		ProductLimit:    plan.MaxProducts(),
		ImageLimit:      plan.MaxImagesPerProduct(),
	}
	if limit := plan.MaxProducts(); limit > 0 {
		remaining := limit - int(totalProducts)
		if remaining < 0 {
			remaining = 0
		}
		stats.RemainingProducts = &remaining
	}
	return stats, nil
}
