package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/middleware"
	"github.com/msme-awards/adjudication-api/internal/services"
)

type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) AssignRole(c *fiber.Ctx) error {
	actor := middleware.GetAccount(c)
	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if err := h.accounts.AssignRole(actor.UID, req.UserID, req.Role); err != nil {
		return accountError(c, err, "Failed to assign role")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Role assigned successfully"})
}

func (h *AccountHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.accounts.ListUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to list users",
		})
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *AccountHandler) ActivityLogs(c *fiber.Ctx) error {
	logs, err := h.accounts.ActivityLogs()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch activity logs",
		})
	}
	return c.JSON(fiber.Map{"logs": logs})
}

func (h *AccountHandler) TotalAdjudicators(c *fiber.Ctx) error {
	total, err := h.accounts.TotalAdjudicators()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to count adjudicators",
		})
	}
	return c.JSON(fiber.Map{"success": true, "total": total})
}

func (h *AccountHandler) PendingApplications(c *fiber.Ctx) error {
	applications, err := h.accounts.PendingApplications()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch pending applications",
		})
	}
	return c.JSON(fiber.Map{"applications": applications})
}

func (h *AccountHandler) Approve(c *fiber.Ctx) error {
	actor := middleware.GetAccount(c)
	var req dto.ApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if err := h.accounts.Approve(actor.UID, req.UserID); err != nil {
		return accountError(c, err, "Failed to approve application")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application approved successfully and user notified",
	})
}

func (h *AccountHandler) Reject(c *fiber.Ctx) error {
	actor := middleware.GetAccount(c)
	var req dto.RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if err := h.accounts.Reject(actor.UID, req.UserID, req.Reason); err != nil {
		return accountError(c, err, "Failed to reject application")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application rejected and user notified",
	})
}

func (h *AccountHandler) GetProfile(c *fiber.Ctx) error {
	actor := middleware.GetAccount(c)
	profile, err := h.accounts.GetProfile(actor.UID, actor.Role, c.Params("userId"))
	if err != nil {
		return accountError(c, err, "Failed to fetch profile")
	}
	return c.JSON(fiber.Map{"success": true, "profile": profile})
}

func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	actor := middleware.GetAccount(c)
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if err := h.accounts.UpdateProfile(actor.UID, c.Params("userId"), &req); err != nil {
		return accountError(c, err, "Failed to update profile")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Profile updated successfully"})
}

func (h *AccountHandler) UpdatePicture(c *fiber.Ctx) error {
	actor := middleware.GetAccount(c)
	var req dto.UpdatePictureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if err := h.accounts.UpdatePicture(actor.UID, c.Params("userId"), req.ImageData); err != nil {
		return accountError(c, err, "Failed to update profile picture")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Profile picture updated successfully"})
}

// accountError maps account-service sentinels onto the HTTP error
// contract; anything unrecognized becomes a 500 with a generic message.
func accountError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "User not found",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "Access denied",
		})
	case errors.Is(err, services.ErrInvalidRole), errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: fallback,
	})
}
