package middleware

import (
	"github.com/emrekaraca/family-portal/internal/config"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/emrekaraca/family-portal/internal/scope"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Not authorized: invalid or expired token",
			})
		},
	})
}

// LoadPrincipal resolves the authenticated user referenced by the verified
// token, with their family preloaded, and attaches it to the request
// context. A token pointing at a deleted user fails as unauthenticated.
func LoadPrincipal(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := scope.UserIDFromToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Not authorized: invalid token",
			})
		}

		var user models.User
		if err := db.Preload("Family").First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Not authorized: user not found",
			})
		}

		scope.SetCurrentUser(c, &user)
		return c.Next()
	}
}
