package handlers

import (
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/scope"
	"github.com/emrekaraca/family-portal/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PhotoHandler struct {
	photoService *services.PhotoService
}

func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// Upload accepts a multipart form with a "file" image part plus name,
// caption, albumId, tags and dateTaken fields.
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Please upload a file",
		})
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read uploaded file",
		})
	}

	in := &dto.UploadPhotoInput{
		Name:      c.FormValue("name"),
		Caption:   c.FormValue("caption"),
		AlbumID:   c.FormValue("albumId"),
		Tags:      c.FormValue("tags"),
		DateTaken: c.FormValue("dateTaken"),
		FileName:  fileHeader.Filename,
		MimeType:  fileHeader.Header.Get("Content-Type"),
		Size:      fileHeader.Size,
		Data:      data,
	}

	photo, err := h.photoService.Upload(c.UserContext(), user, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Photo uploaded successfully",
		"photo":   photo,
	})
}

func (h *PhotoHandler) List(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	photos, err := h.photoService.List(user, c.Query("albumId"), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(photos)
}

func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Photo not found",
		})
	}

	photo, err := h.photoService.Get(user, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(photo)
}

func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Photo not found",
		})
	}

	if err := h.photoService.Delete(c.UserContext(), user, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Photo deleted successfully"})
}
