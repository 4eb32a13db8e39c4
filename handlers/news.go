package handlers

import (
	"strconv"
	"time"

	"github.com/pr-poehali-dev/world-news-hub/database"
	"github.com/pr-poehali-dev/world-news-hub/models"

	"github.com/gofiber/fiber/v2"
)

// News handles the public feed: list, create, delete.
func News(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodOptions {
		return preflight(c, "GET, POST, DELETE, OPTIONS", "Content-Type, X-User-Id")
	}

	switch c.Method() {
	case fiber.MethodGet:
		return newsList(c)
	case fiber.MethodPost:
		return newsCreate(c)
	case fiber.MethodDelete:
		return newsDelete(c)
	}

	return methodNotAllowed(c)
}

// newsList returns the most recent items, each with its author's name and
// verification flag (null when the author row is gone)
func newsList(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit <= 0 {
		limit = 50
	}

	var items []models.News
	err := database.DB.Preload("Author").
		Order("published_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Database error")
	}

	newsList := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		entry := fiber.Map{
			"id":            item.ID,
			"title":         item.Title,
			"content":       item.Content,
			"category":      item.Category,
			"image_url":     item.ImageURL,
			"author_id":     item.AuthorID,
			"is_admin_post": item.IsAdminPost,
			"published_at":  item.PublishedAt,
			"created_at":    item.CreatedAt,
			"author_name":   nil,
			"is_verified":   nil,
		}
		if item.Author != nil {
			entry["author_name"] = item.Author.Name
			entry["is_verified"] = item.Author.IsVerified
		}
		newsList = append(newsList, entry)
	}

	return respond(c, fiber.StatusOK, "news", newsList)
}

func newsCreate(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		Category    string `json:"category"`
		ImageURL    string `json:"image_url"`
		AuthorID    *uint  `json:"author_id"`
		IsAdminPost bool   `json:"is_admin_post"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid input")
	}

	if req.Category == "" {
		req.Category = "General"
	}

	item := models.News{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		AuthorID:    req.AuthorID,
		IsAdminPost: req.IsAdminPost,
		PublishedAt: time.Now(),
	}
	if err := database.DB.Create(&item).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to create news")
	}

	return respond(c, fiber.StatusCreated, "news", item)
}

// newsDelete removes an item by id. Deliberately lenient: deleting an id
// that never existed still answers 200.
func newsDelete(c *fiber.Ctx) error {
	var req struct {
		NewsID uint `json:"news_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid input")
	}

	if err := database.DB.Delete(&models.News{}, req.NewsID).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Database error")
	}

	return respond(c, fiber.StatusOK, "message", "News deleted")
}
