package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func multipartFile(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("not really an image")); err != nil {
		t.Fatal(err)
	}
	w.Close()
	return buf, w.FormDataContentType()
}

func TestUploadRequiresAdminPassword(t *testing.T) {
	app := setupApp(t)

	body, contentType := multipartFile(t, "pic.png")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestUploadFailsClosedWithoutSecret(t *testing.T) {
	app := setupApp(t)
	t.Setenv("ADMIN_PASSWORD", "")

	body, contentType := multipartFile(t, "pic.png")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Admin-Password", "")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestUploadRejectsNonImages(t *testing.T) {
	app := setupApp(t)

	body, contentType := multipartFile(t, "script.sh")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Admin-Password", testAdminPassword)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(raw, []byte("Invalid file type")) {
		t.Errorf("body = %s", raw)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", nil)
	req.Header.Set("X-Admin-Password", testAdminPassword)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
