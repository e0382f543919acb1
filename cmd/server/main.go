package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/catalog"
	identityapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/identity"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/ai"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/auth"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/cache"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/config"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/event"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/logger"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/migration"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/persistence"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/storage"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/telemetry"
	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/handler"
	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/middleware"
	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/router"
	"github.com/SiteOrganizo/organize-your-catalog/migrations"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/SiteOrganizo/organize-your-catalog/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Catalog API
//	@version		1.0
//	@description	Storefront backend: seller catalogs, shareable product links and a public marketplace
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/SiteOrganizo/organize-your-catalog

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	providers, err := telemetry.Setup(ctx, cfg.Telemetry, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			bootLog.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	// Tee logs to the OTLP pipeline once it exists
	log, err := logger.New(logCfg, providers.ZapCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()
	zap.ReplaceGlobals(log)

	log.Info("Starting catalog API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.InstrumentDB(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := migrateSchema(db, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Redis is optional: without it revocations and the read cache stay in process
	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var revocations auth.RevocationList
	if redisClient != nil {
		revocations = auth.NewRedisRevocationList(redisClient)
	} else {
		log.Warn("Redis not configured, token revocations are kept in memory")
		revocations = auth.NewMemoryRevocationList()
	}

	cacheStore, err := cache.NewStore(cfg.Catalog.CacheBackend, redisClient, log)
	if err != nil {
		log.Fatal("Failed to create catalog cache", zap.Error(err))
	}
	defer func() {
		_ = cacheStore.Close()
	}()

	objectStorage, err := newObjectStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	descriptionClient := ai.NewOpenAIClient(cfg.AI, log)
	if !descriptionClient.Available() {
		log.Warn("AI API key not configured, product descriptions are disabled")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	subcategoryRepo := persistence.NewGormSubcategoryRepository(db.DB)
	gormProductRepo := persistence.NewGormProductRepository(db.DB)
	productRepo := persistence.NewCachedProductRepository(gormProductRepo, cacheStore, cfg.Catalog.CacheTTL, log)

	catalogMetrics, err := telemetry.NewCatalogMetrics(providers.Meter("catalog"), gormProductRepo, log)
	if err != nil {
		log.Fatal("Failed to create catalog metrics", zap.Error(err))
	}
	defer catalogMetrics.Stop()

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(
		userRepo,
		profileRepo,
		persistence.NewGormTransactionScope(db.DB),
		jwtService,
		revocations,
		identityapp.AuthServiceConfig{
			MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
			LockDuration:     cfg.Auth.LockDuration,
		},
		log,
	)
	profileService := identityapp.NewProfileService(profileRepo, userRepo, objectStorage, log).
		WithPublicCatalogCache(productRepo)
	assembler := catalogapp.NewPublicProductAssembler(profileRepo, categoryRepo)

	categoryService := catalogapp.NewCategoryService(categoryRepo, subcategoryRepo, productRepo, log)
	eventBus := event.NewBus(log)
	eventBus.Subscribe(event.NewActivityLog(log))

	productService := catalogapp.NewProductService(productRepo, categoryRepo, subcategoryRepo, profileService, objectStorage, catalogMetrics, log).
		WithEventPublisher(eventBus)
	imageService := catalogapp.NewImageService(productRepo, profileService, objectStorage, catalogMetrics, log)
	sharingService := catalogapp.NewSharingService(productRepo, assembler, cfg.Catalog.PublicOrigin, catalogMetrics)
	marketplaceService := catalogapp.NewMarketplaceService(productRepo, profileRepo, assembler)
	dashboardService := catalogapp.NewDashboardService(productRepo, categoryRepo, profileService)
	descriptionService := catalogapp.NewDescriptionService(descriptionClient, profileService, catalogMetrics, log)

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     providers.Enabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/api/v1/health"))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		Meter:   providers.Meter("http"),
		Enabled: cfg.Telemetry.MetricsEnabled,
	}))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimitWithUploads(cfg.HTTP.MaxBodySize, cfg.HTTP.MaxUploadSize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
	}

	authenticate := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:  jwtService,
		Revocations: revocations,
		Logger:      log,
	})

	routeMiddleware := router.CatalogMiddleware{Authenticate: authenticate}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		routeMiddleware.AuthRateLimit = middleware.AuthRateLimit(authLimiter)
	}

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(middleware.SwaggerConfig{
				Enabled:     cfg.Swagger.Enabled,
				RequireAuth: cfg.Swagger.RequireAuth,
				AllowedIPs:  cfg.Swagger.AllowedIPs,
			}, authenticate),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}

	handlers := router.CatalogHandlers{
		System:      handler.NewSystemHandler(db, categoryRepo, version),
		Auth:        handler.NewAuthHandler(authService, cfg.Cookie),
		Store:       handler.NewStoreHandler(profileService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Category:    handler.NewCategoryHandler(categoryService),
		Product:     handler.NewProductHandler(productService, imageService),
		Catalog:     handler.NewCatalogHandler(sharingService),
		Marketplace: handler.NewMarketplaceHandler(marketplaceService),
		Description: handler.NewDescriptionHandler(descriptionService),
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.RegisterAll(router.CatalogRoutes(handlers, routeMiddleware))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrateSchema applies the embedded migrations. The migrator is left open:
// closing it would close the shared connection pool.
func migrateSchema(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.NewEmbedded(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	return m.Up()
}

// newObjectStorage returns the S3 backend, or process memory for local runs
func newObjectStorage(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (catalogapp.ObjectStorage, error) {
	if cfg.Backend != "s3" {
		log.Warn("Using in-memory object storage, uploads are lost on restart")
		return storage.NewMemoryObjectStorage(cfg.PublicBaseURL)
	}

	s3Storage, err := storage.NewS3ObjectStorage(ctx, cfg, storage.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		log.Warn("Could not verify storage bucket", zap.String("bucket", s3Storage.Bucket()), zap.Error(err))
	}
	log.Info("Using S3 object storage", zap.String("bucket", s3Storage.Bucket()))
	return s3Storage, nil
}
