package handler

import (
	catalogapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// DescriptionHandler generates product descriptions with the language model
type DescriptionHandler struct {
	BaseHandler
	descriptionService *catalogapp.DescriptionService
}

// NewDescriptionHandler creates a new DescriptionHandler
func NewDescriptionHandler(descriptionService *catalogapp.DescriptionService) *DescriptionHandler {
	return &DescriptionHandler{descriptionService: descriptionService}
}

// Generate godoc
// @Summary      Generate product description
// @Description  Write a short sales description from the product name, category and price. Requires a plan with AI descriptions.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.GenerateDescriptionRequest true "Product data"
// @Success      200 {object} dto.Response{data=catalogapp.GenerateDescriptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ai/product-description [post]
func (h *DescriptionHandler) Generate(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req catalogapp.GenerateDescriptionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.descriptionService.Generate(c.Request.Context(), session.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
