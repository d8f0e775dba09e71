package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, fields []fieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "invalid input",
		"fields": fields,
	})
}

// requireJSONBody rejects writes that are not sent as JSON. Browsers must
// preflight such requests, so other origins cannot post to the local API.
func requireJSONBody(c *fiber.Ctx) error {
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
		return apiError(c, fiber.StatusUnsupportedMediaType, "content type must be application/json")
	}
	return c.Next()
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("bloom-export-%s.%s", now.Format("2006-01-02"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
