package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/db"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T, now time.Time) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "bloom-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	handler, err := NewHandler(database, time.UTC)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return now }

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func sendJSON(t *testing.T, app *fiber.App, method string, path string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, ok := payload.([]byte)
		if !ok {
			encoded, err := json.Marshal(payload)
			if err != nil {
				t.Fatalf("encode payload: %v", err)
			}
			raw = encoded
		}
		body = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, path, err)
	}
	return response
}

func decodeResponse(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()

	payload := map[string]any{}
	decodeResponse(t, response, &payload)
	message, _ := payload["error"].(string)
	return message
}

func expectStatus(t *testing.T, response *http.Response, status int) {
	t.Helper()
	if response.StatusCode != status {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", status, response.StatusCode, string(raw))
	}
}

func putPeriodDays(t *testing.T, app *fiber.App, dates ...string) {
	t.Helper()
	for _, date := range dates {
		response := sendJSON(t, app, http.MethodPut, "/api/days/"+date, map[string]any{"isPeriod": true, "intensity": "moderate"})
		expectStatus(t, response, http.StatusOK)
		response.Body.Close()
	}
}

func newFormRequest(method string, path string, body string) *http.Request {
	request := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}
