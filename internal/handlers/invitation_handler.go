package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/middleware"
	"github.com/msme-awards/adjudication-api/internal/services"
)

type InvitationHandler struct {
	invitations *services.InvitationService
}

func NewInvitationHandler(invitations *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

func (h *InvitationHandler) SendInvite(c *fiber.Ctx) error {
	actor := middleware.GetAccount(c)
	var req dto.SendInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if err := h.invitations.Send(actor, &req); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   "Failed to send invitation email",
			Details: err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Invitation sent successfully"})
}
