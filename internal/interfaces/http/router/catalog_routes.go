package router

import (
	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// CatalogHandlers groups the handlers served by the catalog API
type CatalogHandlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	Store       *handler.StoreHandler
	Dashboard   *handler.DashboardHandler
	Category    *handler.CategoryHandler
	Product     *handler.ProductHandler
	Catalog     *handler.CatalogHandler
	Marketplace *handler.MarketplaceHandler
	Description *handler.DescriptionHandler
}

// CatalogMiddleware holds the route-level middleware of the catalog API
type CatalogMiddleware struct {
	// Authenticate is required and guards every seller route
	Authenticate gin.HandlerFunc
	// AuthRateLimit, when set, throttles sign-up, sign-in and refresh
	AuthRateLimit gin.HandlerFunc
}

// CatalogRoutes returns the route groups of the catalog API
func CatalogRoutes(h CatalogHandlers, mw CatalogMiddleware) []*DomainGroup {
	public := NewDomainGroup("public", "")
	public.GET("/health", h.System.Health)
	public.GET("/check-db", h.System.CheckDB)
	public.GET("/catalog", h.Catalog.Public)
	public.GET("/plans", h.Store.ListPlans)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	system.GET("/ping", h.System.Ping)

	marketplace := NewDomainGroup("marketplace", "/marketplace")
	marketplace.GET("/products", h.Marketplace.List)
	marketplace.GET("/products/:id", h.Marketplace.GetProduct)
	marketplace.GET("/sellers/:sellerId", h.Marketplace.GetSeller)

	signIn := NewDomainGroup("auth", "/auth")
	if mw.AuthRateLimit != nil {
		signIn.Use(mw.AuthRateLimit)
	}
	signIn.POST("/register", h.Auth.Register)
	signIn.POST("/login", h.Auth.Login)
	signIn.POST("/refresh", h.Auth.RefreshToken)

	session := NewDomainGroup("session", "/auth").Use(mw.Authenticate)
	session.POST("/logout", h.Auth.Logout)
	session.GET("/me", h.Auth.GetCurrentUser)
	session.PUT("/password", h.Auth.ChangePassword)

	dashboard := NewDomainGroup("dashboard", "/dashboard").Use(mw.Authenticate)
	dashboard.GET("/stats", h.Dashboard.Stats)

	dashboard.GET("/store", h.Store.GetStore)
	dashboard.PUT("/store", h.Store.UpdateStore)
	dashboard.POST("/store/logo", h.Store.UploadLogo)
	dashboard.GET("/settings", h.Store.GetSettings)
	dashboard.PUT("/settings", h.Store.UpdateSettings)
	dashboard.PUT("/plans/current", h.Store.SelectPlan)

	dashboard.GET("/categories", h.Category.List)
	dashboard.POST("/categories", h.Category.Create)
	dashboard.GET("/categories/:id", h.Category.GetByID)
	dashboard.PUT("/categories/:id", h.Category.Update)
	dashboard.DELETE("/categories/:id", h.Category.Delete)
	dashboard.GET("/categories/:id/subcategories", h.Category.ListSubcategories)
	dashboard.POST("/categories/:id/subcategories", h.Category.CreateSubcategory)
	dashboard.PUT("/subcategories/:id", h.Category.UpdateSubcategory)
	dashboard.DELETE("/subcategories/:id", h.Category.DeleteSubcategory)

	dashboard.GET("/products", h.Product.List)
	dashboard.POST("/products", h.Product.Create)
	dashboard.GET("/products/generate-code", h.Product.GenerateCode)
	dashboard.GET("/products/:id", h.Product.GetByID)
	dashboard.PUT("/products/:id", h.Product.Update)
	dashboard.DELETE("/products/:id", h.Product.Delete)
	dashboard.PATCH("/products/:id/visibility", h.Product.SetVisibility)
	dashboard.POST("/products/:id/images", h.Product.UploadImages)
	dashboard.DELETE("/products/:id/images", h.Product.RemoveImage)
	dashboard.GET("/products/:id/whatsapp", h.Product.WhatsAppLink)

	dashboard.POST("/catalog/search", h.Catalog.Search)
	dashboard.POST("/catalog/link", h.Catalog.Link)
	dashboard.POST("/catalog/share", h.Catalog.Share)

	ai := NewDomainGroup("ai", "/ai").Use(mw.Authenticate)
	ai.POST("/product-description", h.Description.Generate)

	return []*DomainGroup{public, system, marketplace, signIn, session, dashboard, ai}
}
