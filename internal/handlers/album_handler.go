package handlers

import (
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/scope"
	"github.com/emrekaraca/family-portal/internal/services"
	"github.com/emrekaraca/family-portal/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AlbumHandler struct {
	albumService *services.AlbumService
}

func NewAlbumHandler(albumService *services.AlbumService) *AlbumHandler {
	return &AlbumHandler{albumService: albumService}
}

func (h *AlbumHandler) Create(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	var req dto.CreateAlbumRequest
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

	album, err := h.albumService.Create(user, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Album created successfully",
		"album":   album,
	})
}

func (h *AlbumHandler) List(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	albums, err := h.albumService.List(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(albums)
}

func (h *AlbumHandler) Get(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Album not found",
		})
	}

	album, err := h.albumService.Get(user, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(album)
}

func (h *AlbumHandler) Delete(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Album not found",
		})
	}

	if err := h.albumService.Delete(user, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Album deleted successfully"})
}
