package server

import (
	"errors"
	"strings"

	"portfolio/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateAccessRequest handles POST /api/access/requests.
// The project may be named by ID or slug. Re-submitting for a pair with a
// pending or approved request returns the existing row.
func (s *Server) CreateAccessRequest(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email"`
		ProjectID   uint   `json:"project_id"`
		ProjectSlug string `json:"project_slug"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	projectID := req.ProjectID
	if projectID == 0 && req.ProjectSlug != "" {
		project, err := s.projectRepo.GetBySlug(c.Context(), req.ProjectSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.RespondWithError(c, fiber.StatusNotFound,
					models.NewNotFoundError("Project", req.ProjectSlug))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		projectID = project.ID
	}
	if projectID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("project_id or project_slug is required"))
	}

	request, isNew, err := s.accessService.RequestAccess(c.Context(), req.Email, projectID)
	if err != nil {
		return respondAppError(c, err)
	}

	status := fiber.StatusOK
	if isNew {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(request)
}

// CheckAccess handles GET /api/access/check?email=&project_id=
func (s *Server) CheckAccess(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	projectID := c.QueryInt("project_id", 0)
	if email == "" || projectID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("email and project_id are required"))
	}

	decision, err := s.accessService.CheckAccess(c.Context(), email, uint(projectID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(decision)
}

// AdminListAccessRequests handles GET /api/admin/access-requests?status=
func (s *Server) AdminListAccessRequests(c *fiber.Ctx) error {
	status := models.AccessRequestStatus(c.Query("status"))

	requests, err := s.accessService.ListRequests(c.Context(), status)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(requests)
}

// ApproveAccessRequest handles POST /api/admin/access-requests/:id/approve.
// A request that was already reviewed yields a 409.
func (s *Server) ApproveAccessRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	request, err := s.accessService.Approve(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(request)
}

// RejectAccessRequest handles POST /api/admin/access-requests/:id/reject
func (s *Server) RejectAccessRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	request, err := s.accessService.Reject(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(request)
}
