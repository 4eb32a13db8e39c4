package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Register mounts the API routes. Each endpoint is a single dispatcher keyed
// on HTTP method plus an "action" discriminator, so the frontend can keep
// calling the same URLs it used against the serverless deployment.
func Register(app *fiber.App) {
	api := app.Group("/api")

	api.All("/admin", Admin)
	api.All("/auth", Auth)
	api.All("/news", News)

	api.Post("/admin/upload", UploadImage)
}

// The CORS headers are set by hand rather than via the fiber cors middleware:
// the frontend contract expects Access-Control-Allow-Origin on every response
// (even errors, even without an Origin header) and a 200 preflight for any
// OPTIONS request, neither of which the middleware produces.

// allowCORS marks a response as callable from any origin
func allowCORS(c *fiber.Ctx) {
	c.Set("Access-Control-Allow-Origin", "*")
}

// preflight answers a CORS preflight with an empty body
func preflight(c *fiber.Ctx, methods string, headers string) error {
	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Methods", methods)
	c.Set("Access-Control-Allow-Headers", headers)
	c.Set("Access-Control-Max-Age", "86400")
	return c.Status(fiber.StatusOK).SendString("")
}

// respond writes a success envelope: {<key>: <value>}
func respond(c *fiber.Ctx, status int, key string, value interface{}) error {
	allowCORS(c)
	return c.Status(status).JSON(fiber.Map{key: value})
}

// respondError writes an error envelope: {"error": <message>}
func respondError(c *fiber.Ctx, status int, message string) error {
	allowCORS(c)
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// methodNotAllowed is the fallthrough for unrecognized method/action combos
func methodNotAllowed(c *fiber.Ctx) error {
	return respondError(c, fiber.StatusMethodNotAllowed, "Method not allowed")
}
