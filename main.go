// @title Modeva Storefront API
// @version 1.0
// @description Storefront backend: product browsing with URL-encoded filter state, customer sessions and saved searches on top of the Modeva catalog API.
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	_ "github.com/Modeva-Ecommerce/modeva-storefront/docs"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/routes/storefront_routes"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	if err := config.InitLogger(); err != nil {
		panic(err)
	}
	defer config.SyncLogger()
	log := config.Log

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if err := config.InitFacets(); err != nil {
		log.Fatal("❌ Failed to load facet table", zap.Error(err))
	}

	settings, err := config.Catalog()
	if err != nil {
		log.Fatal("❌ Catalog API not configured", zap.Error(err))
	}
	if err := services.InitCatalogClient(); err != nil {
		log.Fatal("❌ Failed to initialize catalog client", zap.Error(err))
	}
	log.Info("✅ Catalog client initialized", zap.String("base_url", settings.BaseURL))

	if err := config.ConnectRedis(); err != nil {
		log.Fatal("❌ Redis", zap.Error(err))
	}
	defer config.CloseRedis()
	cache.InitCatalogCache(settings.CacheTTL)

	if err := config.InitDB(); err != nil {
		log.Fatal("❌ Database", zap.Error(err))
	}
	defer config.CloseDB()
	if err := config.Migrate(&models.SavedSearch{}); err != nil {
		log.Fatal("❌ Migration failed", zap.Error(err))
	}
	migrateCtx, cancel := config.WithTimeout()
	if err := utils.EnsureLoginEventsTable(migrateCtx); err != nil {
		log.Fatal("❌ login_events table", zap.Error(err))
	}
	cancel()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		if config.IsProduction() {
			log.Fatal("❌ JWT_SECRET environment variable not set")
		}
		log.Warn("⚠️  JWT_SECRET not set, using development secret")
		jwtSecret = "dev-secret-key-change-in-production"
	}
	if err := services.InitJWTService(jwtSecret, config.JWTExpiry()); err != nil {
		log.Fatal("❌ Failed to initialize JWT service", zap.Error(err))
	}
	log.Info("✅ JWT Service initialized")

	if err := services.InitCloudinary(config.CloudinaryCredentials()); err != nil {
		log.Warn("⚠️  Cloudinary disabled, serving original image URLs", zap.Error(err))
	} else if services.Cloudinary() != nil {
		log.Info("✅ Cloudinary image delivery enabled")
	}

	oauthCtx, cancel := config.WithTimeout()
	if err := config.InitGoogleOAuth(oauthCtx); err != nil {
		log.Warn("⚠️  Google sign-in disabled", zap.Error(err))
	}
	cancel()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := setupRouter()

	srv := &http.Server{
		Addr:              ":" + config.Port(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("🚀 Server is running", zap.String("addr", "http://localhost:"+config.Port()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("❌ Forced shutdown", zap.Error(err))
	}
}

func setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.Tracing())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "ok", nil))
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	storefront_routes.SetupStorefrontRoutes(api)
	storefront_routes.SetupAuthRoutes(api)
	storefront_routes.SetupUserRoutes(api)

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
