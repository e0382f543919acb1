package identity

// Plan is a subscription tier
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// IsValid reports whether the plan is known
func (p Plan) IsValid() bool {
	return p == PlanFree || p == PlanPro
}

// FeatureKey identifies a plan feature
type FeatureKey string

const (
	FeatureProducts         FeatureKey = "products"
	FeatureProductImages    FeatureKey = "product_images"
	FeatureLinkSharing      FeatureKey = "link_sharing"
	FeatureCodeSharing      FeatureKey = "code_sharing"
	FeatureAIDescription    FeatureKey = "ai_description"
	FeatureCustomBranding   FeatureKey = "custom_branding"
	FeatureFeaturedProducts FeatureKey = "featured_products"
	FeatureViewReports      FeatureKey = "view_reports"
	FeaturePrioritySupport  FeatureKey = "priority_support"
)

// PlanFeature says whether a feature is on for a plan and its limit
type PlanFeature struct {
	Key         FeatureKey `json:"key"`
	Enabled     bool       `json:"enabled"`
	Limit       *int       `json:"limit,omitempty"` // nil = unlimited
	Description string     `json:"description"`
}

// PlanDefinition is the catalog entry shown on the plans page
type PlanDefinition struct {
	ID          Plan          `json:"id"`
	Name        string        `json:"name"`
	Price       string        `json:"price"`
	Period      string        `json:"period"`
	Highlighted bool          `json:"highlighted"`
	Badge       string        `json:"badge,omitempty"`
	Features    []PlanFeature `json:"features"`
}

func limited(key FeatureKey, limit int, description string) PlanFeature {
	return PlanFeature{Key: key, Enabled: true, Limit: &limit, Description: description}
}

func feature(key FeatureKey, enabled bool, description string) PlanFeature {
	return PlanFeature{Key: key, Enabled: enabled, Description: description}
}

// AvailablePlans returns every plan in display order
func AvailablePlans() []PlanDefinition {
	return []PlanDefinition{
		{
			ID:     PlanFree,
			Name:   "Gratuito",
			Price:  "R$ 0",
			Period: "para sempre",
			Features: []PlanFeature{
				limited(FeatureProducts, 5, "Até 5 produtos cadastrados"),
				limited(FeatureProductImages, 3, "Até 3 fotos por produto"),
				feature(FeatureLinkSharing, true, "Compartilhamento via link"),
				feature(FeatureCodeSharing, true, "Compartilhamento por código"),
				feature(FeatureAIDescription, false, "Descrição gerada por IA"),
				feature(FeatureCustomBranding, false, "Personalização visual avançada"),
			},
		},
		{
			ID:          PlanPro,
			Name:        "Profissional",
			Price:       "R$ 39",
			Period:      "/mês",
			Highlighted: true,
			Badge:       "Mais Popular",
			Features: []PlanFeature{
				feature(FeatureProducts, true, "Produtos ilimitados"),
				limited(FeatureProductImages, 15, "Até 15 fotos por produto"),
				feature(FeatureLinkSharing, true, "Compartilhamento via link"),
				feature(FeatureCodeSharing, true, "Compartilhamento por código"),
				feature(FeatureAIDescription, true, "Descrição gerada por IA"),
				feature(FeatureCustomBranding, true, "Personalização visual avançada"),
				feature(FeatureFeaturedProducts, true, "Destaque de produtos em links públicos"),
				feature(FeatureViewReports, true, "Relatórios de visualização"),
				feature(FeaturePrioritySupport, true, "Suporte prioritário"),
			},
		},
	}
}

// Definition returns the plan's catalog entry, falling back to free
func (p Plan) Definition() PlanDefinition {
	plans := AvailablePlans()
	for _, def := range plans {
		if def.ID == p {
			return def
		}
	}
	return plans[0]
}

// Feature looks up one feature of the plan
func (p Plan) Feature(key FeatureKey) (PlanFeature, bool) {
	for _, f := range p.Definition().Features {
		if f.Key == key {
			return f, true
		}
	}
	return PlanFeature{}, false
}

// HasFeature reports whether the feature is enabled on the plan
func (p Plan) HasFeature(key FeatureKey) bool {
	f, ok := p.Feature(key)
	return ok && f.Enabled
}

// FeatureLimit returns the limit of a feature, or 0 when unlimited
func (p Plan) FeatureLimit(key FeatureKey) int {
	f, ok := p.Feature(key)
	if !ok || f.Limit == nil {
		return 0
	}
	return *f.Limit
}

// MaxProducts returns the product cap, 0 meaning unlimited
func (p Plan) MaxProducts() int {
	return p.FeatureLimit(FeatureProducts)
}

// MaxImagesPerProduct returns the per-product image cap
func (p Plan) MaxImagesPerProduct() int {
	return p.FeatureLimit(FeatureProductImages)
}
