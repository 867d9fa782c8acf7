package middleware

import (
	"errors"

	"github.com/emrekaraca/family-portal/internal/authz"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/scope"
	"github.com/gofiber/fiber/v2"
)

// FamilyAdminRequired gates family-administrative routes. Runs after
// LoadPrincipal.
func FamilyAdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := scope.CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authorized",
			})
		}

		switch err := authz.RequireAdmin(user); {
		case errors.Is(err, authz.ErrNoFamily):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authorized, no family",
			})
		case errors.Is(err, authz.ErrNotAdmin):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authorized as family admin",
			})
		case err != nil:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authorized",
			})
		}

		return c.Next()
	}
}
