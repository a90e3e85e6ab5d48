package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/adintl/catalog-api/internal/config"
	"github.com/adintl/catalog-api/internal/database"
	"github.com/adintl/catalog-api/internal/handlers"
	"github.com/adintl/catalog-api/internal/identity"
	"github.com/adintl/catalog-api/internal/imaging"
	"github.com/adintl/catalog-api/internal/middleware"
	"github.com/adintl/catalog-api/internal/types"

	_ "github.com/adintl/catalog-api/docs/api" // Swagger docs
)

// @title Catalog API
// @version 1.0.0
// @description Product catalog and storefront content service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/adintl/catalog-api

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Identity service and bootstrap administrator
	ids := identity.NewService(db, cfg)
	if err := ids.EnsureAdmin(); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	// Image host
	var images imaging.Service
	if cfg.CloudinaryCloudName != "" {
		images, err = imaging.NewCloudinary(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize image host: %v", err)
		}
	} else {
		log.Println("CLOUDINARY_CLOUD_NAME not set, using in-memory image store")
		images = imaging.NewMemory()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    25 * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("catalog-api")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	accountHandler := &handlers.AccountHandler{Identity: ids}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db, Images: images}
	bannerHandler := &handlers.BannerHandler{DB: db, Images: images}
	metaHandler := &handlers.MetaDataHandler{DB: db}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	auth := middleware.Authenticate(ids)
	admin := middleware.RequireRole(identity.RoleAdministrator)

	// Health and admin ping
	api.Get("/health", healthHandler.GetHealth)
	api.Get("/admin", auth, admin, healthHandler.AdminPing)

	// Account routes
	account := api.Group("/account")
	account.Post("/login", accountHandler.Login)
	account.Post("/register", auth, admin, accountHandler.Register)
	account.Post("/change-role", auth, admin, accountHandler.ChangeRole)
	account.Get("/user-roles/:username", auth, admin, accountHandler.GetUserRoles)

	// Category routes (public reads and create, admin mutation)
	category := api.Group("/category")
	category.Get("/", categoryHandler.GetCategories)
	category.Get("/stats", auth, admin, categoryHandler.GetCategoryStats)
	category.Get("/:id", categoryHandler.GetCategory)
	category.Post("/", categoryHandler.CreateCategory)
	category.Put("/:id", auth, admin, categoryHandler.UpdateCategory)
	category.Delete("/:id", auth, admin, categoryHandler.DeleteCategory)
	category.Patch("/:id/status", auth, admin, categoryHandler.UpdateCategoryStatus)

	// Product routes
	product := api.Group("/product")
	product.Get("/", productHandler.GetProducts)
	product.Get("/categories", productHandler.GetActiveCategories)
	product.Get("/stats", auth, admin, productHandler.GetProductStats)
	product.Get("/:id", productHandler.GetProduct)
	product.Post("/", auth, admin, productHandler.CreateProduct)
	product.Put("/:id", auth, admin, productHandler.UpdateProduct)
	product.Delete("/:id", auth, admin, productHandler.DeleteProduct)

	// Banner routes
	banner := api.Group("/banner")
	banner.Get("/public", bannerHandler.GetPublicBanners)
	banner.Get("/", auth, admin, bannerHandler.GetBanners)
	banner.Get("/:id", auth, admin, bannerHandler.GetBanner)
	banner.Post("/", auth, admin, bannerHandler.CreateBanner)
	banner.Put("/:id", auth, admin, bannerHandler.UpdateBanner)
	banner.Delete("/:id", auth, admin, bannerHandler.DeleteBanner)
	banner.Patch("/:id/toggle-status", auth, admin, bannerHandler.ToggleBannerStatus)

	// Business information routes
	metadata := api.Group("/metadata")
	metadata.Get("/current", metaHandler.GetCurrentMetaData)
	metadata.Get("/public", auth, admin, metaHandler.GetPublicMetaData)
	metadata.Get("/", auth, admin, metaHandler.GetMetaDataList)
	metadata.Get("/:id", auth, admin, metaHandler.GetMetaData)
	metadata.Post("/", auth, admin, metaHandler.CreateMetaData)
	metadata.Put("/:id", auth, admin, metaHandler.UpdateMetaData)
	metadata.Delete("/:id", auth, admin, metaHandler.DeleteMetaData)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var ce *types.CustomError
	if errors.As(err, &ce) {
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
