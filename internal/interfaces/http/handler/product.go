package handler

import (
	catalogapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles the seller's product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	imageService   *catalogapp.ImageService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, imageService *catalogapp.ImageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		imageService:   imageService,
	}
}

// ProductListQuery represents the query parameters for listing products.
// IDs are parsed by the handler.
type ProductListQuery struct {
	Search        string `form:"search" example:"camiseta"`
	CategoryID    string `form:"category_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SubcategoryID string `form:"subcategory_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	IsPublic      *bool  `form:"is_public" example:"true"`
	Page          int    `form:"page" binding:"min=0" example:"1"`
	PageSize      int    `form:"page_size" binding:"min=0,max=100" example:"20"`
	OrderBy       string `form:"order_by" binding:"omitempty,oneof=created_at updated_at code name price" example:"created_at"`
	OrderDir      string `form:"order_dir" binding:"omitempty,oneof=asc desc" example:"desc"`
}

// GenerateCode godoc
// @Summary      Generate product code
// @Description  Generate a PRD code from the current timestamp
// @Tags         products
// @Produce      json
// @Success      200 {object} dto.Response{data=catalogapp.GeneratedCodeResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products/generate-code [get]
func (h *ProductHandler) GenerateCode(c *gin.Context) {
	if _, ok := h.requireSession(c); !ok {
		return
	}
	h.Success(c, h.productService.GenerateCode())
}

// Create godoc
// @Summary      Create product
// @Description  Create a product. An empty code is accepted only with auto_code.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product data"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req catalogapp.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), session.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID godoc
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), session.UserID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List godoc
// @Summary      List products
// @Description  List the seller's products with filtering and pagination
// @Tags         products
// @Produce      json
// @Param        search query string false "Search by code, name or description"
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        subcategory_id query string false "Subcategory ID" format(uuid)
// @Param        is_public query bool false "Visibility filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" Enums(created_at, updated_at, code, name, price)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var query ProductListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	categoryID, ok := h.parseOptionalID(c, query.CategoryID, "category")
	if !ok {
		return
	}
	subcategoryID, ok := h.parseOptionalID(c, query.SubcategoryID, "subcategory")
	if !ok {
		return
	}
	page, pageSize := normalizePage(query.Page, query.PageSize)

	products, total, err := h.productService.List(c.Request.Context(), session.UserID, catalogapp.ProductListFilter{
		Search:        query.Search,
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		IsPublic:      query.IsPublic,
		Page:          page,
		PageSize:      pageSize,
		OrderBy:       query.OrderBy,
		OrderDir:      query.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// Update godoc
// @Summary      Update product
// @Description  Replace the product's editable fields
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateProductRequest true "Product data"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "product")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), session.UserID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// SetVisibility godoc
// @Summary      Set product visibility
// @Description  Show or hide the product on the marketplace
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateVisibilityRequest true "Visibility"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products/{id}/visibility [patch]
func (h *ProductHandler) SetVisibility(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "product")
	if !ok {
		return
	}

	var req catalogapp.UpdateVisibilityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.SetVisibility(c.Request.Context(), session.UserID, id, *req.IsPublic)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete godoc
// @Summary      Delete product
// @Description  Delete a product and its stored images
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "product")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), session.UserID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// WhatsAppLink godoc
// @Summary      Product WhatsApp link
// @Description  Build a wa.me link asking about the product
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ContactLinkResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products/{id}/whatsapp [get]
func (h *ProductHandler) WhatsAppLink(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "product")
	if !ok {
		return
	}

	link, err := h.productService.WhatsAppLink(c.Request.Context(), session.UserID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, link)
}

// UploadImages godoc
// @Summary      Upload product images
// @Description  Upload images one by one. Files over the plan limit are rejected and failed files are reported without aborting the batch.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        images[] formData file true "Image files (JPEG, PNG, WebP or GIF, 5 MiB each)"
// @Success      200 {object} dto.Response{data=catalogapp.UploadImagesResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products/{id}/images [post]
func (h *ProductHandler) UploadImages(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "product")
	if !ok {
		return
	}

	uploaded, ok := h.readFormFiles(c, "images[]")
	if !ok {
		return
	}
	files := make([]catalogapp.ImageFile, len(uploaded))
	for i, f := range uploaded {
		files[i] = catalogapp.ImageFile{
			FileName:    f.FileName,
			ContentType: f.ContentType,
			Size:        f.Size,
			Body:        f.Body,
		}
	}

	result, err := h.imageService.Upload(c.Request.Context(), session.UserID, id, files)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveImage godoc
// @Summary      Remove product image
// @Description  Detach one image from the product and delete the stored object
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.RemoveImageRequest true "Image URL"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products/{id}/images [delete]
func (h *ProductHandler) RemoveImage(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "product")
	if !ok {
		return
	}

	var req catalogapp.RemoveImageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.imageService.Remove(c.Request.Context(), session.UserID, id, req.URL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}
