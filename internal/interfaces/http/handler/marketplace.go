package handler

import (
	"net/http"

	catalogapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MarketplaceHandler serves the public marketplace
type MarketplaceHandler struct {
	BaseHandler
	marketplaceService *catalogapp.MarketplaceService
}

// NewMarketplaceHandler creates a new MarketplaceHandler
func NewMarketplaceHandler(marketplaceService *catalogapp.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceService: marketplaceService}
}

// MarketplaceQuery represents the public listing query. Prices are parsed
// by the handler.
type MarketplaceQuery struct {
	Search   string `form:"search" example:"vestido"`
	Category string `form:"category" example:"Roupas"`
	MinPrice string `form:"min_price" example:"10.00"`
	MaxPrice string `form:"max_price" example:"250.00"`
	Page     int    `form:"page" binding:"min=0" example:"1"`
	PageSize int    `form:"page_size" binding:"min=0,max=100" example:"20"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at updated_at code name price" example:"created_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc" example:"desc"`
}

// List godoc
// @Summary      List marketplace products
// @Description  Public products across sellers with a public catalog. Search covers name, description and code.
// @Tags         marketplace
// @Produce      json
// @Param        search query string false "Search text"
// @Param        category query string false "Category name"
// @Param        min_price query number false "Minimum price"
// @Param        max_price query number false "Maximum price"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" Enums(created_at, updated_at, code, name, price)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.PublicProductResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /marketplace/products [get]
func (h *MarketplaceHandler) List(c *gin.Context) {
	filter, ok := h.bindMarketplaceFilter(c)
	if !ok {
		return
	}

	products, total, err := h.marketplaceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// GetProduct godoc
// @Summary      Get marketplace product
// @Description  A public product with its seller and a WhatsApp contact link
// @Tags         marketplace
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.PublicProductDetail}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /marketplace/products/{id} [get]
func (h *MarketplaceHandler) GetProduct(c *gin.Context) {
	id, ok := h.parseID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.marketplaceService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GetSeller godoc
// @Summary      Get seller page
// @Description  The seller's public profile, a page of public products and a contact link
// @Tags         marketplace
// @Produce      json
// @Param        sellerId path string true "Seller ID" format(uuid)
// @Param        search query string false "Search text"
// @Param        category query string false "Category name"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=catalogapp.SellerPageResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /marketplace/sellers/{sellerId} [get]
func (h *MarketplaceHandler) GetSeller(c *gin.Context) {
	sellerID, ok := h.parseID(c, "sellerId", "seller")
	if !ok {
		return
	}
	filter, ok := h.bindMarketplaceFilter(c)
	if !ok {
		return
	}

	page, err := h.marketplaceService.GetSeller(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page, page.Total, filter.Page, filter.PageSize)
}

func (h *MarketplaceHandler) bindMarketplaceFilter(c *gin.Context) (catalogapp.MarketplaceListFilter, bool) {
	var query MarketplaceQuery
	if !h.bindQuery(c, &query) {
		return catalogapp.MarketplaceListFilter{}, false
	}

	minPrice, ok := h.parsePrice(c, query.MinPrice, "min_price")
	if !ok {
		return catalogapp.MarketplaceListFilter{}, false
	}
	maxPrice, ok := h.parsePrice(c, query.MaxPrice, "max_price")
	if !ok {
		return catalogapp.MarketplaceListFilter{}, false
	}
	if minPrice != nil && maxPrice != nil && minPrice.GreaterThan(*maxPrice) {
		h.Error(c, http.StatusBadRequest, "INVALID_PRICE_RANGE", "min_price must not exceed max_price")
		return catalogapp.MarketplaceListFilter{}, false
	}

	page, pageSize := normalizePage(query.Page, query.PageSize)
	return catalogapp.MarketplaceListFilter{
		Search:   query.Search,
		Category: query.Category,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     page,
		PageSize: pageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
	}, true
}

func (h *MarketplaceHandler) parsePrice(c *gin.Context, raw, field string) (*decimal.Decimal, bool) {
	if raw == "" {
		return nil, true
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		h.Error(c, http.StatusBadRequest, "INVALID_PRICE", field+" must be a non-negative number")
		return nil, false
	}
	return &price, true
}
