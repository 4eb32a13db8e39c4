package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRateLimitResponseKeepsCORS(t *testing.T) {
	app := fiber.New()
	app.Use(newRateLimiter(2))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	var resp *http.Response
	for i := 0; i < 3; i++ {
		var err error
		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
		if err != nil {
			t.Fatal(err)
		}
	}

	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 after the limit", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want * on rate-limit responses", got)
	}
}
