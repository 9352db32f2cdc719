package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/eficaz-commerce/eficaz-api/api/swagger"
	"github.com/eficaz-commerce/eficaz-api/internal/handler"
	"github.com/eficaz-commerce/eficaz-api/internal/middleware"
	"github.com/eficaz-commerce/eficaz-api/internal/repository"
	"github.com/eficaz-commerce/eficaz-api/internal/service"
	"github.com/eficaz-commerce/eficaz-api/pkg/cache"
	"github.com/eficaz-commerce/eficaz-api/pkg/config"
	"github.com/eficaz-commerce/eficaz-api/pkg/database"
	"github.com/eficaz-commerce/eficaz-api/pkg/logger"
	corsmiddleware "github.com/eficaz-commerce/eficaz-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eficaz-commerce/eficaz-api/pkg/middleware/requestid"
	"github.com/eficaz-commerce/eficaz-api/pkg/signing"
)

// @title Eficaz Commerce API
// @version 1.0.0
// @description E-commerce backend with token-based authentication
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	if err := database.Migrate(context.Background(), db); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	keys := signing.NewKeyProvider(cfg.JWT)
	codec, err := service.NewTokenCodec(keys)
	if err != nil {
		logr.Sugar().Fatalw("failed to init token codec", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Catalog.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr, cacheRepo != nil)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	productRepo := repository.NewProductRepository(db)
	brandRepo := repository.NewBrandRepository(db)

	authSvc := service.NewAuthService(userRepo, tokenRepo, codec, validate, logr, cfg.JWT.Expiration)
	userSvc := service.NewUserService(userRepo, validate, logr)
	productSvc := service.NewProductService(productRepo, brandRepo, cacheSvc, metricsSvc, validate, logr)
	brandSvc := service.NewBrandService(brandRepo, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	productHandler := handler.NewProductHandler(productSvc, cfg.Catalog.ExportEnabled)
	brandHandler := handler.NewBrandHandler(brandSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
			auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
		}

		users := api.Group("/users", middleware.JWT(authSvc))
		{
			users.GET("/:id", userHandler.Get)
			users.GET("/:id/profile", userHandler.Profile)
			users.PUT("/:id", userHandler.Update)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/export", middleware.JWT(authSvc), productHandler.Export)
			products.GET("/:id", productHandler.Get)
			products.POST("", middleware.JWT(authSvc), productHandler.Create)
			products.PUT("/:id", middleware.JWT(authSvc), productHandler.Update)
			products.DELETE("/:id", middleware.JWT(authSvc), productHandler.Delete)
		}

		brands := api.Group("/brands")
		{
			brands.GET("", brandHandler.List)
			brands.POST("", middleware.JWT(authSvc), brandHandler.Create)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
