package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	catalogapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/catalog"
	identityapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/auth"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/cache"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/config"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/persistence"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/persistence/models"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/storage"
	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPublicOrigin = "https://vitrine.example.com"

func init() {
	identity.PasswordHashCost = bcrypt.MinCost
}

// stubGenerator answers description prompts without a network call
type stubGenerator struct {
	available bool
	text      string
	err       error
	prompts   []string
}

func (g *stubGenerator) Available() bool { return g.available }

func (g *stubGenerator) Generate(_ context.Context, _, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

// testEnv runs the handlers against real services on an in-memory database
type testEnv struct {
	engine    *gin.Engine
	db        *gorm.DB
	storage   *storage.MemoryObjectStorage
	generator *stubGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	objects, err := storage.NewMemoryObjectStorage("https://cdn.example.com/catalog")
	require.NoError(t, err)
	generator := &stubGenerator{available: true, text: "Uma descrição irresistível."}
	log := zap.NewNop()

	userRepo := persistence.NewGormUserRepository(db)
	profileRepo := persistence.NewGormProfileRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	subcategoryRepo := persistence.NewGormSubcategoryRepository(db)
	productCache := cache.NewMemoryStore(0)
	t.Cleanup(func() { _ = productCache.Close() })
	productRepo := persistence.NewCachedProductRepository(persistence.NewGormProductRepository(db), productCache, time.Minute, log)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "catalog-test",
		MaxRefreshCount:        10,
	})
	revocations := auth.NewMemoryRevocationList()

	authService := identityapp.NewAuthService(userRepo, profileRepo, persistence.NewGormTransactionScope(db),
		jwtService, revocations, identityapp.DefaultAuthServiceConfig(), log)
	profileService := identityapp.NewProfileService(profileRepo, userRepo, objects, log).
		WithPublicCatalogCache(productRepo)
	assembler := catalogapp.NewPublicProductAssembler(profileRepo, categoryRepo)

	authHandler := NewAuthHandler(authService, config.CookieConfig{Path: "/", SameSite: "lax"})
	storeHandler := NewStoreHandler(profileService)
	dashboardHandler := NewDashboardHandler(catalogapp.NewDashboardService(productRepo, categoryRepo, profileService))
	categoryHandler := NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo, subcategoryRepo, productRepo, log))
	productHandler := NewProductHandler(
		catalogapp.NewProductService(productRepo, categoryRepo, subcategoryRepo, profileService, objects, nil, log),
		catalogapp.NewImageService(productRepo, profileService, objects, nil, log),
	)
	catalogHandler := NewCatalogHandler(catalogapp.NewSharingService(productRepo, assembler, testPublicOrigin, nil))
	marketplaceHandler := NewMarketplaceHandler(catalogapp.NewMarketplaceService(productRepo, profileRepo, assembler))
	descriptionHandler := NewDescriptionHandler(catalogapp.NewDescriptionService(generator, profileService, nil, log))

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")
	api.GET("/catalog", catalogHandler.Public)
	api.GET("/plans", storeHandler.ListPlans)
	api.GET("/marketplace/products", marketplaceHandler.List)
	api.GET("/marketplace/products/:id", marketplaceHandler.GetProduct)
	api.GET("/marketplace/sellers/:sellerId", marketplaceHandler.GetSeller)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.RefreshToken)

	jwt := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:  jwtService,
		Revocations: revocations,
	})
	session := api.Group("/auth", jwt)
	session.POST("/logout", authHandler.Logout)
	session.GET("/me", authHandler.GetCurrentUser)
	session.PUT("/password", authHandler.ChangePassword)

	dash := api.Group("/dashboard", jwt)
	dash.GET("/stats", dashboardHandler.Stats)
	dash.GET("/store", storeHandler.GetStore)
	dash.PUT("/store", storeHandler.UpdateStore)
	dash.POST("/store/logo", storeHandler.UploadLogo)
	dash.GET("/settings", storeHandler.GetSettings)
	dash.PUT("/settings", storeHandler.UpdateSettings)
	dash.PUT("/plans/current", storeHandler.SelectPlan)
	dash.GET("/categories", categoryHandler.List)
	dash.POST("/categories", categoryHandler.Create)
	dash.GET("/categories/:id", categoryHandler.GetByID)
	dash.PUT("/categories/:id", categoryHandler.Update)
	dash.DELETE("/categories/:id", categoryHandler.Delete)
	dash.GET("/categories/:id/subcategories", categoryHandler.ListSubcategories)
	dash.POST("/categories/:id/subcategories", categoryHandler.CreateSubcategory)
	dash.PUT("/subcategories/:id", categoryHandler.UpdateSubcategory)
	dash.DELETE("/subcategories/:id", categoryHandler.DeleteSubcategory)
	dash.GET("/products", productHandler.List)
	dash.POST("/products", productHandler.Create)
	dash.GET("/products/generate-code", productHandler.GenerateCode)
	dash.GET("/products/:id", productHandler.GetByID)
	dash.PUT("/products/:id", productHandler.Update)
	dash.DELETE("/products/:id", productHandler.Delete)
	dash.PATCH("/products/:id/visibility", productHandler.SetVisibility)
	dash.POST("/products/:id/images", productHandler.UploadImages)
	dash.DELETE("/products/:id/images", productHandler.RemoveImage)
	dash.GET("/products/:id/whatsapp", productHandler.WhatsAppLink)
	dash.POST("/catalog/search", catalogHandler.Search)
	dash.POST("/catalog/link", catalogHandler.Link)
	dash.POST("/catalog/share", catalogHandler.Share)
	api.POST("/ai/product-description", jwt, descriptionHandler.Generate)

	return &testEnv{engine: engine, db: db, storage: objects, generator: generator}
}

// do sends a JSON request; body may be nil, a string or any JSON value
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// testFile is one part of a multipart upload
type testFile struct {
	name        string
	contentType string
	data        []byte
}

// upload sends files as multipart parts named field
func (e *testEnv) upload(t *testing.T, path, field string, files []testFile, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, f.name))
		header.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// register signs a seller up and returns the access token and user ID
func (e *testEnv) register(t *testing.T, email string) (string, uuid.UUID) {
	t.Helper()

	w := e.do(t, http.MethodPost, "/auth/register", RegisterRequest{
		Email:       email,
		Password:    "secret123",
		DisplayName: "Maria",
		StoreName:   "Loja da Maria",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data.Token.AccessToken, body.Data.User.ID
}

// upgradeToPro switches a seller to the pro plan directly in the database
func (e *testEnv) upgradeToPro(t *testing.T, userID uuid.UUID) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.ProfileModel{}).
		Where("user_id = ?", userID).
		Update("plan", string(identity.PlanPro)).Error)
}

// createProduct creates a product through the API and returns its data
func (e *testEnv) createProduct(t *testing.T, token string, req map[string]any) map[string]any {
	t.Helper()
	w := e.do(t, http.MethodPost, "/dashboard/products", req, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return dataMap(t, w)
}

// dataMap decodes the data object of a success response
func dataMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "response data is not an object: %s", w.Body.String())
	return data
}

// dataList decodes the data array of a success response
func dataList(t *testing.T, w *httptest.ResponseRecorder) []any {
	t.Helper()
	resp := decodeResponse(t, w)
	data, ok := resp.Data.([]any)
	require.True(t, ok, "response data is not a list: %s", w.Body.String())
	return data
}

// errorCode returns the error code of a failed response
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error, "expected an error response: %s", w.Body.String())
	return resp.Error.Code
}
