package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/servicehub/servicehub-api/cache"
	"github.com/servicehub/servicehub-api/config"
	"github.com/servicehub/servicehub-api/controllers"
	"github.com/servicehub/servicehub-api/cron"
	"github.com/servicehub/servicehub-api/db"
	"github.com/servicehub/servicehub-api/routes"
	"github.com/servicehub/servicehub-api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(conn)

	if err := db.Migrate(conn); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	availability, err := cache.New(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer availability.Close()

	mailer := utils.NewMailer(cfg)
	uploader, err := utils.NewUploader(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Server is running"})
	})

	authCtl := controllers.NewAuthController(conn, mailer, uploader, cfg.JWTSecret)
	providerCtl := controllers.NewProviderController(conn, uploader, availability)
	bookingCtl := controllers.NewBookingController(conn, availability, mailer)
	reviewCtl := controllers.NewReviewController(conn)
	chatCtl := controllers.NewChatController(conn)

	routes.SetupAuthRoutes(app, authCtl, cfg.JWTSecret)
	routes.SetupProviderRoutes(app, providerCtl, reviewCtl, cfg.JWTSecret)
	routes.SetupBookingRoutes(app, bookingCtl, reviewCtl, cfg.JWTSecret)
	routes.SetupChatRoutes(app, chatCtl, cfg.JWTSecret)

	scheduler := cron.StartReminderScheduler(conn, mailer)
	defer scheduler.Stop()

	// Shut the listener down cleanly so the deferred closes run.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
