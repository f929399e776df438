package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"jobradar/api-gateway/internal/export"
	"jobradar/api-gateway/utils"
)

// ExportData serves the full (unpaged) result set in the requested
// interchange format.
// GET /api/v1/export-data?format=json|csv&limit=
//
// CSV of zero rows is an error; JSON of zero rows is a valid empty export.
// That asymmetry is long-standing endpoint behavior and is kept as-is.
func (h *ApplicationHandler) ExportData(c *fiber.Ctx) error {
	format := c.Query("format", "json")
	if format != "json" && format != "csv" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Unsupported export format: %s", format))
	}
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}

	body, err := h.Store.FetchAllRaw(c.Context(), limit)
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to fetch data for export")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch data for export")
	}

	now := time.Now()

	if format == "csv" {
		csvBytes, err := export.CSV(body)
		if errors.Is(err, export.ErrNoData) {
			return utils.RespondWithError(c, fiber.StatusNotFound, "No data to export")
		}
		if err != nil {
			h.Logger.WithField("error", err.Error()).Error("Failed to render CSV export")
			return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to render export")
		}

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, export.Filename("csv", now)))
		return c.Status(fiber.StatusOK).Send(csvBytes)
	}

	jsonBytes, err := export.JSON(body, now)
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to render JSON export")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to render export")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, export.Filename("json", now)))
	return c.Status(fiber.StatusOK).Send(jsonBytes)
}
