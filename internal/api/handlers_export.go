package api

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
)

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	now := handler.currentTime()
	document, err := handler.backupService.BuildBackup(now)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}

	serialized, err := services.MarshalBackup(document)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(now, "json"))
	return c.Send(serialized)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	exportRange, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExportFromDateInvalid):
			return apiError(c, fiber.StatusBadRequest, "invalid from date")
		case errors.Is(err, services.ErrExportToDateInvalid):
			return apiError(c, fiber.StatusBadRequest, "invalid to date")
		default:
			return apiError(c, fiber.StatusBadRequest, "invalid range")
		}
	}

	logs, err := handler.dayService.FetchAllLogs()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}
	logs = exportRange.Filter(logs)

	var output bytes.Buffer
	if err := services.WriteLogsCSV(&output, logs); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv; charset=utf-8", buildExportFilename(handler.currentTime(), "csv"))
	return c.Send(output.Bytes())
}

// ImportJSON replaces all stored data with the uploaded backup document.
func (handler *Handler) ImportJSON(c *fiber.Ctx) error {
	report, err := handler.backupService.RestoreBackup(c.Body())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBackupMalformed):
			return apiError(c, fiber.StatusBadRequest, "malformed backup")
		case errors.Is(err, services.ErrBackupVersionUnsupported):
			return apiError(c, fiber.StatusBadRequest, "unsupported backup version")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to restore backup")
		}
	}
	return c.JSON(report)
}
