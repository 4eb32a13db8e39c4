package main

import (
	"log"
	"os"
	"time"

	"github.com/pr-poehali-dev/world-news-hub/database"
	"github.com/pr-poehali-dev/world-news-hub/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
)

// newRateLimiter caps requests per IP per minute. The 429 keeps the API's
// CORS envelope so browser clients can read it.
func newRateLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() // Limit by IP
		},
		LimitReached: func(c *fiber.Ctx) error {
			c.Set("Access-Control-Allow-Origin", "*")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	})
}

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if os.Getenv("ADMIN_PASSWORD") == "" {
		log.Println("WARNING: ADMIN_PASSWORD not set, admin endpoint will refuse all requests")
	}

	app := fiber.New()

	// Security Middleware
	app.Use(helmet.New())

	// Rate Limiting (100 reqs / min)
	app.Use(newRateLimiter(100))

	// Serve uploaded news images
	app.Static("/uploads", "public/uploads")

	// Database
	database.Connect()

	// Routes
	handlers.Register(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Println("Starting server on :" + port + "...")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Server Listen Error: ", err)
	}
}
