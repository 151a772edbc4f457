package server

import (
	"errors"
	"log/slog"

	"portfolio/internal/models"
	"portfolio/internal/seed"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetPublications handles GET /api/publications
func (s *Server) GetPublications(c *fiber.Ctx) error {
	publications, err := s.publicationRepo.List(c.Context())
	if err != nil {
		slog.Warn("publication list falling back to sample dataset", "error", err)
		rows := seed.Publications()
		publications = make([]*models.Publication, len(rows))
		for i := range rows {
			publications[i] = &rows[i]
		}
	}
	return c.JSON(publications)
}

// AdminListPublications handles GET /api/admin/publications
func (s *Server) AdminListPublications(c *fiber.Ctx) error {
	publications, err := s.publicationRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(publications)
}

// CreatePublication handles POST /api/admin/publications
func (s *Server) CreatePublication(c *fiber.Ctx) error {
	var publication models.Publication
	if err := c.BodyParser(&publication); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if publication.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	existing, err := s.publicationRepo.GetByTitle(c.Context(), publication.Title)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("A publication with this title already exists"))
	}

	if err := s.publicationRepo.Create(c.Context(), &publication); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(publication)
}

// UpdatePublication handles PUT /api/admin/publications/:id
func (s *Server) UpdatePublication(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	existing, err := s.publicationRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Publication", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var incoming models.Publication
	if err := c.BodyParser(&incoming); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	incoming.ID = existing.ID
	incoming.CreatedAt = existing.CreatedAt
	if err := s.publicationRepo.Update(c.Context(), &incoming); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(incoming)
}

// DeletePublication handles DELETE /api/admin/publications/:id
func (s *Server) DeletePublication(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.publicationRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
