package server

import (
	"errors"
	"strings"

	"portfolio/internal/models"
	"portfolio/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitContactMessage handles POST /api/contact
func (s *Server) SubmitContactMessage(c *fiber.Ctx) error {
	var req struct {
		Name              string `json:"name"`
		Email             string `json:"email"`
		Company           string `json:"company"`
		CollaborationType string `json:"collaboration_type"`
		Subject           string `json:"subject"`
		Message           string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Subject == "" || req.Message == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name, subject, and message are required"))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	message := &models.ContactMessage{
		Name:              req.Name,
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Company:           req.Company,
		CollaborationType: req.CollaborationType,
		Subject:           req.Subject,
		Message:           req.Message,
	}
	if err := s.contactRepo.Create(c.Context(), message); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Thanks for reaching out"})
}

// AdminListMessages handles GET /api/admin/messages
func (s *Server) AdminListMessages(c *fiber.Ctx) error {
	messages, err := s.contactRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(messages)
}

// ToggleMessageRead handles POST /api/admin/messages/:id/read
func (s *Server) ToggleMessageRead(c *fiber.Ctx) error {
	return s.toggleMessageFlag(c, func(m *models.ContactMessage) fiber.Map {
		m.IsRead = !m.IsRead
		return fiber.Map{"is_read": m.IsRead}
	})
}

// ToggleMessageStarred handles POST /api/admin/messages/:id/star
func (s *Server) ToggleMessageStarred(c *fiber.Ctx) error {
	return s.toggleMessageFlag(c, func(m *models.ContactMessage) fiber.Map {
		m.IsStarred = !m.IsStarred
		return fiber.Map{"is_starred": m.IsStarred}
	})
}

func (s *Server) toggleMessageFlag(c *fiber.Ctx, flip func(*models.ContactMessage) fiber.Map) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.contactRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("ContactMessage", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	result := flip(message)
	if err := s.contactRepo.Update(c.Context(), message); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(result)
}

// DeleteMessage handles DELETE /api/admin/messages/:id
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.contactRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
