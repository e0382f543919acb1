package handler

import (
	catalogapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category and subcategory endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CategoryListQuery represents the query parameters for listing categories
type CategoryListQuery struct {
	Search   string `form:"search" example:"roupas"`
	Page     int    `form:"page" binding:"min=0" example:"1"`
	PageSize int    `form:"page_size" binding:"min=0,max=100" example:"20"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name created_at updated_at" example:"name"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc" example:"asc"`
}

// Create godoc
// @Summary      Create category
// @Description  Create a category. Names are unique per seller, case-insensitively.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCategoryRequest true "Category data"
// @Success      201 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req catalogapp.CreateCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), session.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// GetByID godoc
// @Summary      Get category
// @Description  Get a category with its subcategories
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "category")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), session.UserID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// List godoc
// @Summary      List categories
// @Description  List the seller's categories with their subcategories
// @Tags         categories
// @Produce      json
// @Param        search query string false "Search by name"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" Enums(name, created_at, updated_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var query CategoryListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	page, pageSize := normalizePage(query.Page, query.PageSize)

	categories, total, err := h.categoryService.List(c.Request.Context(), session.UserID, catalogapp.CategoryListFilter{
		Search:   query.Search,
		Page:     page,
		PageSize: pageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, categories, total, page, pageSize)
}

// Update godoc
// @Summary      Update category
// @Description  Rename a category or change its description
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body catalogapp.UpdateCategoryRequest true "Category data"
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "category")
	if !ok {
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), session.UserID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete godoc
// @Summary      Delete category
// @Description  Delete a category and its subcategories. Rejected while products reference it.
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "category")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), session.UserID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListSubcategories godoc
// @Summary      List subcategories
// @Description  List the subcategories of a category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.SubcategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/categories/{id}/subcategories [get]
func (h *CategoryHandler) ListSubcategories(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "category")
	if !ok {
		return
	}

	subcategories, err := h.categoryService.ListSubcategories(c.Request.Context(), session.UserID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, subcategories)
}

// CreateSubcategory godoc
// @Summary      Create subcategory
// @Description  Add a subcategory to a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body catalogapp.SubcategoryRequest true "Subcategory data"
// @Success      201 {object} dto.Response{data=catalogapp.SubcategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/categories/{id}/subcategories [post]
func (h *CategoryHandler) CreateSubcategory(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "category")
	if !ok {
		return
	}

	var req catalogapp.SubcategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	subcategory, err := h.categoryService.CreateSubcategory(c.Request.Context(), session.UserID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, subcategory)
}

// UpdateSubcategory godoc
// @Summary      Rename subcategory
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Subcategory ID" format(uuid)
// @Param        request body catalogapp.SubcategoryRequest true "Subcategory data"
// @Success      200 {object} dto.Response{data=catalogapp.SubcategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/subcategories/{id} [put]
func (h *CategoryHandler) UpdateSubcategory(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "subcategory")
	if !ok {
		return
	}

	var req catalogapp.SubcategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	subcategory, err := h.categoryService.UpdateSubcategory(c.Request.Context(), session.UserID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, subcategory)
}

// DeleteSubcategory godoc
// @Summary      Delete subcategory
// @Tags         categories
// @Produce      json
// @Param        id path string true "Subcategory ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/subcategories/{id} [delete]
func (h *CategoryHandler) DeleteSubcategory(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "subcategory")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteSubcategory(c.Request.Context(), session.UserID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
