package handlers

import (
	"errors"

	"github.com/emrekaraca/family-portal/internal/authz"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/scope"
	"github.com/emrekaraca/family-portal/internal/services"
	"github.com/emrekaraca/family-portal/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FamilyHandler struct {
	familyService *services.FamilyService
}

func NewFamilyHandler(familyService *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

func (h *FamilyHandler) MyFamily(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	family, err := h.familyService.MyFamily(user)
	if errors.Is(err, authz.ErrNoFamily) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "You are not part of any family",
		})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(family)
}

// Create starts a fresh family for an unaffiliated user.
func (h *FamilyHandler) Create(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	var req dto.CreateFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	family, err := h.familyService.Create(user, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Family created successfully",
		"family":  family,
	})
}

func (h *FamilyHandler) Join(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	var req dto.JoinFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	family, err := h.familyService.Join(user, req.InviteCode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Successfully joined family",
		"family":  family,
	})
}

func (h *FamilyHandler) RemoveMember(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	family, err := h.familyService.RemoveMember(user, targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Member removed successfully",
		"family":  family,
	})
}

func (h *FamilyHandler) MakeAdmin(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	family, err := h.familyService.MakeAdmin(user, targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User is now a family admin",
		"family":  family,
	})
}
