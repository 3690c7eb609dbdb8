package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/msme-awards/adjudication-api/internal/applications"
	"github.com/msme-awards/adjudication-api/internal/dto"
)

type ApplicationDataHandler struct {
	data *applications.Service
}

func NewApplicationDataHandler(data *applications.Service) *ApplicationDataHandler {
	return &ApplicationDataHandler{data: data}
}

func (h *ApplicationDataHandler) List(c *fiber.Ctx) error {
	records, err := h.data.List(false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"count":   0,
			"data":    []applications.Record{},
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(records),
		"data":    records,
		"source":  "cached",
	})
}

func (h *ApplicationDataHandler) Refresh(c *fiber.Ctx) error {
	records, err := h.data.Refresh()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"count":   0,
			"data":    []applications.Record{},
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(records),
		"data":    records,
		"source":  "fresh_from_sheets",
		"message": fmt.Sprintf("Successfully refreshed %d records", len(records)),
	})
}

func (h *ApplicationDataHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	result, err := h.data.UpdateStatus(c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, applications.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		if errors.Is(err, applications.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	if !result.Succeeded() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":  false,
			"error":    "Status update failed in both Google Sheets and cache",
			"warnings": result.Warnings,
		})
	}

	return c.JSON(fiber.Map{
		"success":             true,
		"message":             fmt.Sprintf("Status updated to %s", result.NewStatus),
		"updatedRecord":       result.UpdatedRecord,
		"googleSheetsUpdated": result.GoogleSheetsUpdated,
		"cacheUpdated":        result.CacheUpdated,
		"warnings":            result.Warnings,
	})
}

func (h *ApplicationDataHandler) InitializePending(c *fiber.Ctx) error {
	result, err := h.data.InitializePending()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	message := fmt.Sprintf("Initialized %d records to Pending status", result.UpdatedCount)
	if result.UpdatedCount == 0 {
		message = "No records need status initialization"
	}

	return c.JSON(fiber.Map{
		"success":                       true,
		"message":                       message,
		"updatedCount":                  result.UpdatedCount,
		"successfulGoogleSheetsUpdates": result.SuccessfulSheetUpdates,
		"updatedRecords":                result.UpdatedRecords,
		"cacheUpdated":                  result.CacheUpdated,
		"warnings":                      result.Warnings,
	})
}

func (h *ApplicationDataHandler) Filter(c *fiber.Ctx) error {
	column := c.Query("column")
	value := c.Query("value")
	if column == "" || value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Missing required parameters: column and value",
		})
	}

	records, err := h.data.Filter(column, value)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(records),
		"data":    records,
		"filter":  fiber.Map{"column": column, "value": value},
	})
}
