package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/identity"
	"github.com/msme-awards/adjudication-api/internal/middleware"
	"github.com/msme-awards/adjudication-api/internal/services"
)

type AuthHandler struct {
	provider identity.Provider
	accounts *services.AccountService
}

func NewAuthHandler(provider identity.Provider, accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{provider: provider, accounts: accounts}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	token, principal, err := h.provider.IssueToken(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Login failed",
		})
	}

	status, err := h.accounts.CheckStatus(principal.UID)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to load user record",
		})
	}

	return c.JSON(dto.LoginResponse{
		Success: true,
		Token:   token,
		User:    *status,
	})
}

func (h *AuthHandler) CheckStatus(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	status, err := h.accounts.CheckStatus(principal.UID)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to check user status",
		})
	}

	return c.JSON(status)
}
