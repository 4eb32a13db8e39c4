package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/pr-poehali-dev/world-news-hub/database"
	"github.com/pr-poehali-dev/world-news-hub/models"
)

func TestNewsFeedNewestFirst(t *testing.T) {
	app := setupApp(t)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"oldest", "middle", "newest"} {
		item := models.News{Title: title, Content: "c", PublishedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := database.DB.Create(&item).Error; err != nil {
			t.Fatal(err)
		}
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/news?limit=2", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	items, ok := body["news"].([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("news = %v, want 2 entries", body["news"])
	}
	first := items[0].(map[string]interface{})
	second := items[1].(map[string]interface{})
	if first["title"] != "newest" || second["title"] != "middle" {
		t.Errorf("order = [%v, %v], want newest first", first["title"], second["title"])
	}

	// Bad limit falls back to the default and returns everything here
	_, body = doJSON(t, app, http.MethodGet, "/api/news?limit=oops", nil, nil)
	if got := len(body["news"].([]interface{})); got != 3 {
		t.Errorf("default limit: entries = %d, want 3", got)
	}
}

func TestNewsAuthorJoin(t *testing.T) {
	app := setupApp(t)

	author := models.User{Email: "writer@example.com", Name: "Writer", IsVerified: true}
	if err := database.DB.Create(&author).Error; err != nil {
		t.Fatal(err)
	}
	authored := models.News{Title: "signed", Content: "c", AuthorID: &author.ID, PublishedAt: time.Now()}
	orphan := models.News{Title: "orphan", Content: "c", PublishedAt: time.Now().Add(-time.Minute)}
	if err := database.DB.Create(&authored).Error; err != nil {
		t.Fatal(err)
	}
	if err := database.DB.Create(&orphan).Error; err != nil {
		t.Fatal(err)
	}

	_, body := doJSON(t, app, http.MethodGet, "/api/news", nil, nil)
	items := body["news"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("entries = %d, want 2", len(items))
	}

	signed := items[0].(map[string]interface{})
	if signed["author_name"] != "Writer" || signed["is_verified"] != true {
		t.Errorf("author fields = %v / %v", signed["author_name"], signed["is_verified"])
	}
	unsigned := items[1].(map[string]interface{})
	if unsigned["author_name"] != nil || unsigned["is_verified"] != nil {
		t.Errorf("orphan author fields = %v / %v, want nulls", unsigned["author_name"], unsigned["is_verified"])
	}
}

func TestNewsCreateDefaults(t *testing.T) {
	app := setupApp(t)

	payload := map[string]interface{}{"title": "hello", "content": "world"}
	resp, body := doJSON(t, app, http.MethodPost, "/api/news", payload, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %v", resp.StatusCode, body)
	}
	item := body["news"].(map[string]interface{})
	if item["category"] != "General" {
		t.Errorf("category = %v, want General", item["category"])
	}
	if item["is_admin_post"] != false {
		t.Errorf("is_admin_post = %v, want false", item["is_admin_post"])
	}
	if item["author_id"] != nil {
		t.Errorf("author_id = %v, want null", item["author_id"])
	}
}

func TestNewsDeleteIsLenient(t *testing.T) {
	app := setupApp(t)

	item := models.News{Title: "doomed", Content: "c", PublishedAt: time.Now()}
	if err := database.DB.Create(&item).Error; err != nil {
		t.Fatal(err)
	}

	// Deleting a row that never existed still succeeds
	resp, body := doJSON(t, app, http.MethodDelete, "/api/news", map[string]interface{}{"news_id": 9999}, nil)
	if resp.StatusCode != http.StatusOK || body["message"] != "News deleted" {
		t.Fatalf("missing id: status = %d, body = %v", resp.StatusCode, body)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/news", map[string]interface{}{"news_id": item.ID}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var count int64
	database.DB.Model(&models.News{}).Count(&count)
	if count != 0 {
		t.Errorf("news rows = %d, want 0", count)
	}
}
