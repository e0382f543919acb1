package handler

import (
	"time"

	identityapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UpdateStoreRequest represents the editable storefront fields
type UpdateStoreRequest struct {
	DisplayName   string `json:"display_name" binding:"max=100" example:"Maria"`
	StoreName     string `json:"store_name" binding:"required,min=1,max=100" example:"Loja da Maria"`
	AccentColor   string `json:"accent_color" binding:"omitempty,hexcolor,len=7" example:"#FF6F00"`
	WhatsAppPhone string `json:"whatsapp_phone" binding:"max=20" example:"5511999990000"`
}

// SelectPlanRequest selects a subscription plan
type SelectPlanRequest struct {
	Plan string `json:"plan" binding:"required,oneof=free pro" example:"free"`
}

// StoreResponse represents the seller's storefront
type StoreResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	DisplayName   string    `json:"display_name"`
	StoreName     string    `json:"store_name"`
	LogoURL       string    `json:"logo_url"`
	AccentColor   string    `json:"accent_color"`
	WhatsAppPhone string    `json:"whatsapp_phone"`
	Plan          string    `json:"plan"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CurrentPlanResponse represents the seller's plan after a switch
type CurrentPlanResponse struct {
	Plan       identity.PlanDefinition `json:"plan"`
	Selectable []string                `json:"selectable"`
}

func toStoreResponse(s *identityapp.StoreInfo) StoreResponse {
	return StoreResponse{
		UserID:        s.UserID,
		DisplayName:   s.DisplayName,
		StoreName:     s.StoreName,
		LogoURL:       s.LogoURL,
		AccentColor:   s.AccentColor,
		WhatsAppPhone: s.WhatsAppPhone,
		Plan:          string(s.Plan),
		UpdatedAt:     s.UpdatedAt,
	}
}

// StoreHandler handles the seller's store, settings and plan
type StoreHandler struct {
	BaseHandler
	profileService *identityapp.ProfileService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(profileService *identityapp.ProfileService) *StoreHandler {
	return &StoreHandler{profileService: profileService}
}

// GetStore godoc
// @Summary      Get store
// @Description  Get the signed-in seller's storefront
// @Tags         store
// @Produce      json
// @Success      200 {object} dto.Response{data=StoreResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/store [get]
func (h *StoreHandler) GetStore(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	store, err := h.profileService.GetStore(c.Request.Context(), session.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStoreResponse(store))
}

// UpdateStore godoc
// @Summary      Update store
// @Description  Update store name, display name, accent color and WhatsApp phone
// @Tags         store
// @Accept       json
// @Produce      json
// @Param        request body UpdateStoreRequest true "Store data"
// @Success      200 {object} dto.Response{data=StoreResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/store [put]
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req UpdateStoreRequest
	if !h.bindJSON(c, &req) {
		return
	}

	store, err := h.profileService.UpdateStore(c.Request.Context(), session.UserID, identityapp.UpdateStoreInput{
		DisplayName:   req.DisplayName,
		StoreName:     req.StoreName,
		AccentColor:   req.AccentColor,
		WhatsAppPhone: req.WhatsAppPhone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStoreResponse(store))
}

// UploadLogo godoc
// @Summary      Upload store logo
// @Description  Replace the store logo with an uploaded image
// @Tags         store
// @Accept       multipart/form-data
// @Produce      json
// @Param        logo formData file true "Logo image (JPEG, PNG, WebP or GIF)"
// @Success      200 {object} dto.Response{data=StoreResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      415 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/store/logo [post]
func (h *StoreHandler) UploadLogo(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	files, ok := h.readFormFiles(c, "logo")
	if !ok {
		return
	}
	if len(files) != 1 {
		h.BadRequest(c, "Exactly one logo file is required")
		return
	}

	f := files[0]
	store, err := h.profileService.UploadLogo(c.Request.Context(), session.UserID, identityapp.UploadLogoInput{
		FileName:    f.FileName,
		ContentType: f.ContentType,
		Size:        f.Size,
		Body:        f.Body,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStoreResponse(store))
}

// GetSettings godoc
// @Summary      Get store settings
// @Description  Get the seller's preference toggles
// @Tags         store
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.StoreSettings}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/settings [get]
func (h *StoreHandler) GetSettings(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	settings, err := h.profileService.GetSettings(c.Request.Context(), session.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// UpdateSettings godoc
// @Summary      Update store settings
// @Description  Replace the seller's preference toggles. Turning public_catalog off hides the seller from the marketplace.
// @Tags         store
// @Accept       json
// @Produce      json
// @Param        request body identity.StoreSettings true "Settings"
// @Success      200 {object} dto.Response{data=identity.StoreSettings}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/settings [put]
func (h *StoreHandler) UpdateSettings(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req identity.StoreSettings
	if !h.bindJSON(c, &req) {
		return
	}

	settings, err := h.profileService.UpdateSettings(c.Request.Context(), session.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// ListPlans godoc
// @Summary      List plans
// @Description  List the subscription plans with their features
// @Tags         plans
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identity.PlanDefinition}
// @Router       /plans [get]
func (h *StoreHandler) ListPlans(c *gin.Context) {
	h.Success(c, h.profileService.ListPlans())
}

// SelectPlan godoc
// @Summary      Select plan
// @Description  Switch the seller's plan. Only the free plan can be selected directly.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        request body SelectPlanRequest true "Plan"
// @Success      200 {object} dto.Response{data=CurrentPlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/plans/current [put]
func (h *StoreHandler) SelectPlan(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req SelectPlanRequest
	if !h.bindJSON(c, &req) {
		return
	}

	current, err := h.profileService.SelectPlan(c.Request.Context(), session.UserID, identity.Plan(req.Plan))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	selectable := make([]string, len(current.Selectable))
	for i, p := range current.Selectable {
		selectable[i] = string(p)
	}
	h.Success(c, CurrentPlanResponse{Plan: current.Plan, Selectable: selectable})
}
