package server

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"portfolio/internal/models"
	"portfolio/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadBytes = 20 << 20 // 20 MiB

var allowedUploadExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".pdf":  true,
}

// UploadFile handles POST /api/admin/uploads. The file lands in object
// storage under a random key; the response carries the public URL.
func (s *Server) UploadFile(c *fiber.Ctx) error {
	if s.store == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Object storage is not configured"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A file field is required"))
	}
	if fileHeader.Size > maxUploadBytes {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("File exceeds the 20MB upload limit"))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedUploadExtensions[ext] {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unsupported file type"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), ext)
	url, err := s.store.Put(c.Context(), key, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		observability.UploadsTotal.WithLabelValues("error").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.UploadsTotal.WithLabelValues("ok").Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"key": key,
		"url": url,
	})
}
