package handlers

import (
	"fmt"
	"time"

	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/scope"
	"github.com/emrekaraca/family-portal/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	documentService *services.DocumentService
}

func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload accepts a multipart form with a "file" part plus name, category,
// description and tags fields.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
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

	in := &dto.UploadDocumentInput{
		Name:        c.FormValue("name"),
		Category:    c.FormValue("category"),
		Description: c.FormValue("description"),
		Tags:        c.FormValue("tags"),
		FileName:    fileHeader.Filename,
		MimeType:    fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	}

	doc, err := h.documentService.Upload(c.UserContext(), user, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Document uploaded successfully",
		"document": doc,
	})
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	docs, err := h.documentService.List(user, c.Query("category"), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(docs)
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Document not found",
		})
	}

	doc, err := h.documentService.Get(user, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Document not found",
		})
	}

	if err := h.documentService.Delete(c.UserContext(), user, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Document deleted successfully"})
}

// GenerateReport streams a PDF inventory of the family's documents.
func (h *DocumentHandler) GenerateReport(c *fiber.Ctx) error {
	user, err := scope.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authorized",
		})
	}

	pdf, err := h.documentService.GenerateReport(user)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("Family_Documents_Report_%d.pdf", time.Now().UnixMilli())
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Send(pdf)
}
