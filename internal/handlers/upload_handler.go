package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/storage"
)

type UploadHandler struct {
	uploader *storage.Uploader
}

func NewUploadHandler(uploader *storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func storageUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Error: true, Message: "Object storage is not configured",
	})
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if h.uploader == nil {
		return storageUnavailable(c)
	}

	var req dto.UploadRequest
	if err := c.BodyParser(&req); err != nil || req.File == "" {
		return badBody(c)
	}

	result, err := h.uploader.Upload(c.Context(), req.File, req.Folder)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(dto.UploadResponse{URL: result.URL, ID: result.Key})
}

func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	if h.uploader == nil {
		return storageUnavailable(c)
	}

	key := c.Query("id")
	if key == "" {
		return badBody(c)
	}

	if !h.uploader.Delete(c.Context(), key) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete file",
		})
	}
	return c.JSON(fiber.Map{"deleted": true})
}
