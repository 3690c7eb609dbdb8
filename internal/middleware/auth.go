package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/identity"
	"github.com/msme-awards/adjudication-api/internal/models"
	"github.com/msme-awards/adjudication-api/internal/store"
)

const (
	localPrincipal = "principal"
	localAccount   = "account"
)

// Authenticated verifies the bearer token and loads the caller's account
// record. Downstream handlers read both via GetPrincipal and GetAccount.
func Authenticated(provider identity.Provider, accounts store.Accounts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Unauthorized: No token provided",
			})
		}

		principal, err := provider.VerifyCredential(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:     "Unauthorized: Invalid token",
				ErrorCode: identity.SubCode(err),
			})
		}

		account, err := accounts.Get(principal.UID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: "User not found in database",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "Failed to load user record",
			})
		}

		c.Locals(localPrincipal, principal)
		c.Locals(localAccount, account)
		return c.Next()
	}
}

// GetPrincipal returns the verified identity set by Authenticated.
func GetPrincipal(c *fiber.Ctx) *identity.Principal {
	principal, _ := c.Locals(localPrincipal).(*identity.Principal)
	return principal
}

// GetAccount returns the caller's account record set by Authenticated.
func GetAccount(c *fiber.Ctx) *models.Account {
	account, _ := c.Locals(localAccount).(*models.Account)
	return account
}
