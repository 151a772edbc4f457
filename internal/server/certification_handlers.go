package server

import (
	"errors"
	"log/slog"

	"portfolio/internal/models"
	"portfolio/internal/seed"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCertifications handles GET /api/certifications
func (s *Server) GetCertifications(c *fiber.Ctx) error {
	certifications, err := s.certificationRepo.List(c.Context())
	if err != nil {
		slog.Warn("certification list falling back to sample dataset", "error", err)
		rows := seed.Certifications()
		certifications = make([]*models.Certification, len(rows))
		for i := range rows {
			certifications[i] = &rows[i]
		}
	}
	return c.JSON(certifications)
}

// AdminListCertifications handles GET /api/admin/certifications
func (s *Server) AdminListCertifications(c *fiber.Ctx) error {
	certifications, err := s.certificationRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(certifications)
}

// CreateCertification handles POST /api/admin/certifications
func (s *Server) CreateCertification(c *fiber.Ctx) error {
	var certification models.Certification
	if err := c.BodyParser(&certification); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if certification.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	existing, err := s.certificationRepo.GetByTitle(c.Context(), certification.Title)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("A certification with this title already exists"))
	}

	if err := s.certificationRepo.Create(c.Context(), &certification); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(certification)
}

// UpdateCertification handles PUT /api/admin/certifications/:id
func (s *Server) UpdateCertification(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	existing, err := s.certificationRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Certification", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var incoming models.Certification
	if err := c.BodyParser(&incoming); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	incoming.ID = existing.ID
	incoming.CreatedAt = existing.CreatedAt
	if err := s.certificationRepo.Update(c.Context(), &incoming); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(incoming)
}

// DeleteCertification handles DELETE /api/admin/certifications/:id
func (s *Server) DeleteCertification(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.certificationRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
