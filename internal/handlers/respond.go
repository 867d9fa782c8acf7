package handlers

import (
	"errors"
	"log/slog"

	"github.com/emrekaraca/family-portal/internal/authz"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service and authz errors onto the REST taxonomy:
// 400 validation, 401 auth, 403 forbidden, 404 not found. Anything
// unrecognized is logged and answered with a generic 500 so internal detail
// never leaks.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case services.IsValidation(err),
		errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrAlreadyInFamily),
		errors.Is(err, services.ErrAlreadyAdmin),
		errors.Is(err, authz.ErrNoFamily),
		errors.Is(err, authz.ErrLastAdmin):
		return respondStatus(c, fiber.StatusBadRequest, err)

	case errors.Is(err, services.ErrInvalidCredentials):
		return respondStatus(c, fiber.StatusUnauthorized, err)

	case errors.Is(err, authz.ErrWrongFamily),
		errors.Is(err, authz.ErrNotAdmin):
		return respondStatus(c, fiber.StatusForbidden, err)

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrFamilyNotFound),
		errors.Is(err, services.ErrInviteCodeNotFound),
		errors.Is(err, services.ErrDocumentNotFound),
		errors.Is(err, services.ErrPhotoNotFound),
		errors.Is(err, services.ErrAlbumNotFound),
		errors.Is(err, authz.ErrNotMember):
		return respondStatus(c, fiber.StatusNotFound, err)

	default:
		slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

func respondStatus(c *fiber.Ctx, code int, err error) error {
	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}
