package handlers

import (
	"os"
	"time"

	"github.com/pr-poehali-dev/world-news-hub/database"
	"github.com/pr-poehali-dev/world-news-hub/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// SpawnerEmail is the sentinel address of the synthetic account that authors
// admin-originated news posts. The row is created lazily, at most once.
const SpawnerEmail = "spawner@system"

const aboutKey = "about_app"

// Admin handles the moderation endpoint. Every call except the CORS
// preflight must carry the shared secret in X-Admin-Password.
func Admin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodOptions {
		return preflight(c, "GET, POST, PUT, OPTIONS", "Content-Type, X-Admin-Password")
	}

	// An unset secret fails closed: the empty string never matches a header
	secret := os.Getenv("ADMIN_PASSWORD")
	if secret == "" || c.Get("X-Admin-Password") != secret {
		return respondError(c, fiber.StatusUnauthorized, "Invalid admin password")
	}

	switch c.Method() {
	case fiber.MethodGet:
		switch c.Query("action") {
		case "users":
			return adminListUsers(c)
		case "settings":
			return adminGetAbout(c)
		}

	case fiber.MethodPost:
		var req struct {
			Action   string `json:"action"`
			UserID   uint   `json:"user_id"`
			Title    string `json:"title"`
			Content  string `json:"content"`
			Category string `json:"category"`
		}
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, fiber.StatusBadRequest, "Invalid input")
		}
		switch req.Action {
		case "verify_user":
			return adminVerifyUser(c, req.UserID)
		case "post_as_spawner":
			return adminPostAsSpawner(c, req.Title, req.Content, req.Category)
		}

	case fiber.MethodPut:
		var req struct {
			Action string `json:"action"`
			About  string `json:"about"`
		}
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, fiber.StatusBadRequest, "Invalid input")
		}
		if req.Action == "update_about" {
			return adminUpdateAbout(c, req.About)
		}
	}

	return methodNotAllowed(c)
}

// adminListUsers returns all users, newest first
func adminListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Database error")
	}

	userList := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		userList = append(userList, fiber.Map{
			"id":          user.ID,
			"email":       user.Email,
			"name":        user.Name,
			"is_verified": user.IsVerified,
			"created_at":  user.CreatedAt,
		})
	}

	return respond(c, fiber.StatusOK, "users", userList)
}

// adminGetAbout returns the current "about" text, empty string if unset
func adminGetAbout(c *fiber.Ctx) error {
	var setting models.Setting
	if err := database.DB.Where("key = ?", aboutKey).First(&setting).Error; err != nil {
		return respond(c, fiber.StatusOK, "about", "")
	}
	return respond(c, fiber.StatusOK, "about", setting.Value)
}

// adminVerifyUser flips is_verified for one user
func adminVerifyUser(c *fiber.Ctx, userID uint) error {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "User not found")
	}

	user.IsVerified = true
	if err := database.DB.Save(&user).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Database error")
	}

	return respond(c, fiber.StatusOK, "user", user)
}

func adminPostAsSpawner(c *fiber.Ctx, title, content, category string) error {
	var spawner models.User
	if err := database.DB.Where("email = ?", SpawnerEmail).First(&spawner).Error; err != nil {
		spawner = models.User{
			Email:      SpawnerEmail,
			Name:       "Spawner",
			IsVerified: true,
			IsAdmin:    true,
		}
		if err := database.DB.Create(&spawner).Error; err != nil {
			return respondError(c, fiber.StatusInternalServerError, "Failed to create spawner account")
		}
	}

	if category == "" {
		category = "Announcement"
	}

	item := models.News{
		Title:       title,
		Content:     content,
		Category:    category,
		AuthorID:    &spawner.ID,
		IsAdminPost: true,
		PublishedAt: time.Now(),
	}
	if err := database.DB.Create(&item).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to create news")
	}

	return respond(c, fiber.StatusCreated, "news", item)
}

// adminUpdateAbout upserts the "about" text, last writer wins
func adminUpdateAbout(c *fiber.Ctx, about string) error {
	setting := models.Setting{Key: aboutKey, Value: about, UpdatedAt: time.Now()}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to update setting")
	}

	return respond(c, fiber.StatusOK, "message", "About updated")
}
