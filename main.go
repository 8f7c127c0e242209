package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"productsapi/internal/docs"
	"productsapi/internal/handlers"
	"productsapi/internal/middleware"
	"productsapi/internal/models"
	"productsapi/internal/repositories"
	"productsapi/internal/services"
	"productsapi/pkg/events"
)

func main() {
	// --- Configuration ---
	// .env is optional; real environment variables always win.
	_ = godotenv.Load()

	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=products port=5432 sslmode=disable")
	viper.SetDefault("FRONTEND_ORIGIN", "http://localhost:5173")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	frontendOrigin := viper.GetString("FRONTEND_ORIGIN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Store ---
	// A connection failure is logged and the process keeps serving: every
	// request then surfaces the outage as a per-request storage failure.
	productRepo := connectDatabase(databaseDSN)

	// --- Initialize Event Publisher (best effort) ---
	var publisher services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err := events.NewClient(events.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Failed to initialize RabbitMQ client, product events disabled: %v", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	// --- Initialize Services and Handlers ---
	productService := services.NewProductService(productRepo, publisher)
	productHandler := handlers.NewProductHandler(productService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${locals:requestid} | ${method} | ${path}\n",
	}))
	// Only the configured frontend origin is admitted.
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return origin == frontendOrigin
		},
	}))

	// --- API Routes ---
	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	// --- Docs ---
	app.Get("/docs/openapi.json", docs.Handler)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// connectDatabase opens the store and runs migrations. On failure it returns
// the degraded repository instead of aborting the process.
func connectDatabase(dsn string) repositories.ProductRepository {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err == nil {
		err = db.AutoMigrate(&models.Product{})
	}
	if err != nil {
		log.Printf("There was an error connecting to the database! %v", err)
		return repositories.NewUnavailableProductRepository(err)
	}
	return repositories.NewGORMProductRepository(db)
}
