package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/identity"
	"github.com/msme-awards/adjudication-api/internal/middleware"
	"github.com/msme-awards/adjudication-api/internal/services"
)

type RegistrationHandler struct {
	registration *services.RegistrationService
}

func NewRegistrationHandler(registration *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration}
}

func (h *RegistrationHandler) GenerateLink(c *fiber.Ctx) error {
	actor := middleware.GetAccount(c)
	var req dto.GenerateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	link, url, err := h.registration.Issue(actor.UID, req.RequestedRole, req.ExpiresIn)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRole) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to generate registration link",
		})
	}

	return c.JSON(dto.RegistrationLinkResponse{
		Success:         true,
		RegistrationURL: url,
		Token:           link.Token,
		ExpiresAt:       link.ExpiresAt,
	})
}

func (h *RegistrationHandler) VerifyLink(c *fiber.Ctx) error {
	requestedRole, err := h.registration.Verify(c.Params("token"))
	if err != nil {
		if errors.Is(err, services.ErrLinkNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"valid": false,
				"error": err.Error(),
			})
		}
		if errors.Is(err, services.ErrLinkAlreadyUsed) || errors.Is(err, services.ErrLinkExpired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"valid": false,
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to verify registration link",
		})
	}

	return c.JSON(dto.VerifyLinkResponse{
		Valid:         true,
		RequestedRole: requestedRole,
	})
}

func (h *RegistrationHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	uid, err := h.registration.Consume(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLinkNotFound),
			errors.Is(err, services.ErrLinkAlreadyUsed),
			errors.Is(err, services.ErrLinkExpired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "Invalid or expired registration link",
			})
		case errors.Is(err, identity.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(dto.SignUpResponse{
		Success: true,
		Message: "Account created successfully. Awaiting admin approval.",
		UID:     uid,
	})
}
