package handler

import (
	catalogapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles code search, catalog links and shared catalogs
type CatalogHandler struct {
	BaseHandler
	sharingService *catalogapp.SharingService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(sharingService *catalogapp.SharingService) *CatalogHandler {
	return &CatalogHandler{sharingService: sharingService}
}

// PublicCatalogQuery represents the query of a shared catalog link
type PublicCatalogQuery struct {
	Codes    string `form:"codes" binding:"required,max=4000" example:"A1,B2"`
	SellerID string `form:"seller_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// Search godoc
// @Summary      Search products by code
// @Description  Split the query on commas and whitespace and return the seller's products whose code contains any token, ignoring case
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CodeQueryRequest true "Code query"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/catalog/search [post]
func (h *CatalogHandler) Search(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req catalogapp.CodeQueryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	products, err := h.sharingService.Search(c.Request.Context(), session.UserID, req.Query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// Link godoc
// @Summary      Build catalog link
// @Description  Join the codes, as given, into a shareable catalog URL
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CatalogLinkRequest true "Product codes"
// @Success      200 {object} dto.Response{data=catalogapp.CatalogLinkResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/catalog/link [post]
func (h *CatalogHandler) Link(c *gin.Context) {
	if _, ok := h.requireSession(c); !ok {
		return
	}

	var req catalogapp.CatalogLinkRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.Success(c, h.sharingService.BuildLink(req.Codes))
}

// Share godoc
// @Summary      Share a selection
// @Description  Match the code query and return the products, the catalog link and a WhatsApp share link
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CodeQueryRequest true "Code query"
// @Success      200 {object} dto.Response{data=catalogapp.ShareCatalogResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/catalog/share [post]
func (h *CatalogHandler) Share(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req catalogapp.CodeQueryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.sharingService.Share(c.Request.Context(), session.UserID, req.Query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Public godoc
// @Summary      Open a shared catalog
// @Description  Resolve the codes of a catalog link against public products. Codes match exactly; missing codes are listed in not_found.
// @Tags         catalog
// @Produce      json
// @Param        codes query string true "Comma separated product codes"
// @Param        seller_id query string false "Restrict to one seller" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.PublicCatalogResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog [get]
func (h *CatalogHandler) Public(c *gin.Context) {
	var query PublicCatalogQuery
	if !h.bindQuery(c, &query) {
		return
	}
	sellerID, ok := h.parseOptionalID(c, query.SellerID, "seller")
	if !ok {
		return
	}

	result, err := h.sharingService.ResolveCatalog(c.Request.Context(), query.Codes, sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
