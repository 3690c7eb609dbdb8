package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/middleware"
	"github.com/msme-awards/adjudication-api/internal/services"
)

type DecisionHandler struct {
	decisions *services.DecisionService
}

func NewDecisionHandler(decisions *services.DecisionService) *DecisionHandler {
	return &DecisionHandler{decisions: decisions}
}

func (h *DecisionHandler) FinalApproval(c *fiber.Ctx) error {
	actor := middleware.GetAccount(c)
	var req dto.FinalDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if err := h.decisions.FinalizeApproval(actor, &req); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "Missing required fields",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application approved and notification sent",
	})
}

func (h *DecisionHandler) FinalRejection(c *fiber.Ctx) error {
	actor := middleware.GetAccount(c)
	var req dto.FinalDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if err := h.decisions.FinalizeRejection(actor, &req); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "Missing required fields",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application rejected and notification sent",
	})
}

func (h *DecisionHandler) GetDecision(c *fiber.Ctx) error {
	decision, err := h.decisions.Get(c.Params("applicationId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch final decision",
		})
	}
	return c.JSON(fiber.Map{"success": true, "decision": decision})
}

func (h *DecisionHandler) AllDecisions(c *fiber.Ctx) error {
	decisions, err := h.decisions.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch final decisions",
		})
	}
	return c.JSON(fiber.Map{"success": true, "decisions": decisions})
}
