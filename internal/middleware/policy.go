package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/models"
)

// RequireApproved blocks every account whose application has not been
// approved, whatever role the account carries. It must run before any
// role check: a pending admin is still pending.
func RequireApproved() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := GetAccount(c)
		if account == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Unauthorized: No token provided",
			})
		}
		if account.Status != models.StatusApproved {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "Access denied. Your application is " + account.Status + ".",
			})
		}
		return c.Next()
	}
}

// RequireAdmin allows admins only.
func RequireAdmin() fiber.Handler {
	return requireRole("Admin access required", models.RoleAdmin)
}

// RequireAdjudicator allows adjudicators and admins.
func RequireAdjudicator() fiber.Handler {
	return requireRole("Adjudicator access required", models.RoleAdjudicator, models.RoleAdmin)
}

// RequireViewer allows viewers and admins.
func RequireViewer() fiber.Handler {
	return requireRole("Viewer access required", models.RoleViewer, models.RoleAdmin)
}

func requireRole(denied string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := GetAccount(c)
		if account == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Unauthorized: No token provided",
			})
		}
		for _, role := range roles {
			if account.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: denied,
		})
	}
}
