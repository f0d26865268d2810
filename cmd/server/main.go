package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/mkidawa/smAIcznego/internal/config"
	"github.com/mkidawa/smAIcznego/internal/database"
	"github.com/mkidawa/smAIcznego/internal/handlers"
	"github.com/mkidawa/smAIcznego/internal/logging"
	"github.com/mkidawa/smAIcznego/internal/middleware"
	"github.com/mkidawa/smAIcznego/internal/openrouter"
	"go.uber.org/zap"

	_ "github.com/mkidawa/smAIcznego/docs/api" // Swagger docs
)

// @title smAIcznego API
// @version 1.0.0
// @description AI-assisted diet planning service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/mkidawa/smAIcznego

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logging.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Connect to database
	db, err := database.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	client := openrouter.NewClient(cfg, zlog)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(requestid.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("smaicznego")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg, Log: zlog}
	generationHandler := &handlers.GenerationHandler{DB: db, Cfg: cfg, Client: client, Log: zlog}
	dietHandler := &handlers.DietHandler{DB: db, Log: zlog}
	mealHandler := &handlers.MealHandler{DB: db, Log: zlog}
	shoppingListHandler := &handlers.ShoppingListHandler{DB: db, Log: zlog}
	profileHandler := &handlers.ProfileHandler{DB: db, Log: zlog}

	app.Get("/health", healthHandler.GetHealth)

	// API routes under /api, all behind session auth
	api := app.Group("/api", middleware.AuthUser(cfg, zlog))

	api.Post("/generations", generationHandler.CreateGeneration)
	api.Get("/generations/:id", generationHandler.GetGeneration)
	api.Post("/generations/:id/approve", generationHandler.ApproveGeneration)

	api.Post("/diets", dietHandler.CreateDiet)
	api.Get("/diets", dietHandler.ListDiets)
	api.Get("/diets/:id", dietHandler.GetDiet)
	api.Delete("/diets/:id", dietHandler.ArchiveDiet)

	api.Post("/diets/:id/meals", mealHandler.CreateMeals)
	api.Get("/diets/:id/meals", mealHandler.ListMeals)

	api.Post("/diets/:id/shopping-list", shoppingListHandler.CreateShoppingList)
	api.Get("/diets/:id/shopping-list", shoppingListHandler.GetShoppingList)

	api.Get("/profile", profileHandler.GetProfile)
	api.Put("/profile", profileHandler.UpsertProfile)

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

	// The Authorizer client is initialized lazily on the first authenticated
	// request so the server can start while the identity provider is booting.
	zlog.Info("authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		zlog.Info("gracefully shutting down")
		_ = app.Shutdown()
	}()

	zlog.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}

	zlog.Info("server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
