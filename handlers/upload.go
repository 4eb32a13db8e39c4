package handlers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadImage stores an image for use as a news image_url. Gated by the same
// admin secret as the moderation endpoint.
func UploadImage(c *fiber.Ctx) error {
	// An unset secret fails closed: the empty string never matches a header
	secret := os.Getenv("ADMIN_PASSWORD")
	if secret == "" || c.Get("X-Admin-Password") != secret {
		return respondError(c, fiber.StatusUnauthorized, "Invalid admin password")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "No file uploaded")
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return respondError(c, fiber.StatusBadRequest, "Invalid file type. Only images allowed.")
	}

	filename := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.New().String(), ext)
	savePath := filepath.Join("public", "uploads", filename)

	if err := c.SaveFile(file, savePath); err != nil {
		log.Println("Upload Error:", err)
		return respondError(c, fiber.StatusInternalServerError, "Failed to save file")
	}

	return respond(c, fiber.StatusOK, "url", fmt.Sprintf("/uploads/%s", filename))
}
