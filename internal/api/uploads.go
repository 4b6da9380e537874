package api

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/apperr"
)

// UploadImage handles POST /api/upload/image (admin, multipart)
func (h *Handlers) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperr.Validation("No file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperr.Internal(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperr.Internal(err)
	}

	result, err := h.uploads.SaveImage(c.Context(), fileHeader.Filename, data, requestBase(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"url":      result.URL,
		"filename": result.Filename,
		"size":     result.Size,
	})
}

// DeleteUpload handles DELETE /api/upload?url= (admin)
func (h *Handlers) DeleteUpload(c *fiber.Ctx) error {
	url := c.Query("url")
	if url == "" {
		return apperr.Validation("Missing url parameter")
	}

	if err := h.uploads.DeleteImage(c.Context(), url); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "File deleted",
	})
}
