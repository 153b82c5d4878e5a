package main

import (
	"log"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"teahouse/internal/api"
	"teahouse/internal/auth"
	"teahouse/internal/config"
	"teahouse/internal/export"
	"teahouse/internal/repository"
	"teahouse/internal/service"
	"teahouse/internal/storage"
)

func main() {
	cfg := config.Load()

	store := storage.NewStore(cfg.DataDir)
	if err := store.Bootstrap(); err != nil {
		log.Fatalf("Failed to prepare data directory: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
	}

	kafkaWriter := config.NewKafkaWriter("order-events")

	orderRepo := repository.NewOrderRepository(store)
	productRepo := repository.NewProductRepository(store)
	ratingRepo := repository.NewRatingRepository(store)

	exporter := export.NewLogger(filepath.Join(cfg.DataDir, cfg.ExportFile))

	orderService := service.NewOrderService(*orderRepo, *productRepo, exporter, kafkaWriter, rdb, cfg.WhatsAppNumber)
	catalogService := service.NewCatalogService(*productRepo)
	ratingService := service.NewRatingService(*ratingRepo)

	authenticator := auth.NewAuthenticator(cfg.AdminUser, cfg.AdminPass, cfg.JWTSecret)
	handler := api.NewHandler(*orderService, *catalogService, *ratingService, *authenticator)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(1),
				Burst:     3,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.GET("/products", handler.ListCatalog)
	e.POST("/orders", handler.SubmitOrder)
	e.GET("/orders/:id", handler.GetOrder)
	e.POST("/ratings", handler.SubmitRating)
	e.POST("/login", handler.Login)

	admin := e.Group("/admin", authenticator.Middleware())
	admin.GET("/orders", handler.ListOrders)
	admin.DELETE("/orders/:id", handler.DeleteOrder)
	admin.PUT("/orders/:id/status", handler.UpdateOrderStatus)
	admin.POST("/products", handler.AddProduct)
	admin.PUT("/products", handler.ReplaceProducts)
	admin.DELETE("/products/:name", handler.DeleteProduct)

	e.GET("/orders/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "teahouse",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
