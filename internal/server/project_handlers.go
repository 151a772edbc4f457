package server

import (
	"errors"
	"fmt"
	"log/slog"

	"portfolio/internal/models"
	"portfolio/internal/seed"
	"portfolio/internal/service"
	"portfolio/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// sampleProjects returns the curated dataset as a fallback so the public
// site still renders when the store is unreachable.
func sampleProjects() []*models.Project {
	rows := seed.Projects()
	projects := make([]*models.Project, len(rows))
	for i := range rows {
		projects[i] = &rows[i]
	}
	return projects
}

// GetProjects handles GET /api/projects?q=
func (s *Server) GetProjects(c *fiber.Ctx) error {
	query := c.Query("q")

	projects, err := s.projectService.Filter(c.Context(), query)
	if err != nil {
		slog.Warn("project list falling back to sample dataset", "error", err)
		projects = service.MatchProjects(sampleProjects(), query)
	}

	out := make([]*models.Project, len(projects))
	for i, p := range projects {
		out[i] = service.Redact(p, false)
	}
	return c.JSON(out)
}

// GetFeaturedProjects handles GET /api/projects/featured
func (s *Server) GetFeaturedProjects(c *fiber.Ctx) error {
	projects, err := s.projectRepo.ListFeatured(c.Context())
	if err != nil {
		slog.Warn("featured list falling back to sample dataset", "error", err)
		projects = nil
		for _, p := range sampleProjects() {
			if p.IsFeatured {
				projects = append(projects, p)
			}
		}
	}

	out := make([]*models.Project, len(projects))
	for i, p := range projects {
		out[i] = service.Redact(p, false)
	}
	return c.JSON(out)
}

// GetProject handles GET /api/projects/:slug?email=&token=
// Gated projects unlock when email+token verify against an approved access
// request; NDA projects have no unlock path.
func (s *Server) GetProject(c *fiber.Ctx) error {
	slug := c.Params("slug")

	project, err := s.projectRepo.GetBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Project", slug))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	hasAccess := false
	if project.Visibility == models.VisibilityGated {
		email := c.Query("email")
		token := c.Query("token")
		if email != "" && token != "" {
			ok, verifyErr := s.accessService.VerifyToken(c.Context(), slug, email, token)
			if verifyErr != nil {
				return models.RespondWithError(c, fiber.StatusInternalServerError, verifyErr)
			}
			hasAccess = ok
		}
	}

	return c.JSON(service.Redact(project, hasAccess))
}

// GetProjectDownloads handles GET /api/projects/:slug/downloads?email=&token=
// Every download URL is returned with the verified token appended, matching
// how the asset host authorizes the fetch.
func (s *Server) GetProjectDownloads(c *fiber.Ctx) error {
	slug := c.Params("slug")
	email := c.Query("email")
	token := c.Query("token")

	ok, err := s.accessService.VerifyToken(c.Context(), slug, email, token)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if !ok {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Access not granted for this project"))
	}

	project, err := s.projectRepo.GetBySlug(c.Context(), slug)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	downloads := make([]string, len(project.Downloads))
	for i, url := range project.Downloads {
		downloads[i] = fmt.Sprintf("%s?token=%s", url, token)
	}
	return c.JSON(fiber.Map{"downloads": downloads})
}

// AdminListProjects handles GET /api/admin/projects
func (s *Server) AdminListProjects(c *fiber.Ctx) error {
	projects, err := s.projectRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(projects)
}

// CreateProject handles POST /api/admin/projects
func (s *Server) CreateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if project.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}
	if err := validation.ValidateSlug(project.Slug); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if project.Visibility == "" {
		project.Visibility = models.VisibilityPublic
	}

	if existing, err := s.projectRepo.GetBySlug(c.Context(), project.Slug); err == nil && existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("A project with this slug already exists"))
	}

	if err := s.projectRepo.Create(c.Context(), &project); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// UpdateProject handles PUT /api/admin/projects/:id. The slug is immutable
// once created: published URLs and issued access tokens key on it.
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	existing, err := s.projectRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Project", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var incoming models.Project
	if err := c.BodyParser(&incoming); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if incoming.Slug != "" && incoming.Slug != existing.Slug {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Project slug cannot be changed"))
	}

	incoming.ID = existing.ID
	incoming.Slug = existing.Slug
	incoming.CreatedAt = existing.CreatedAt
	if err := s.projectRepo.Update(c.Context(), &incoming); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(incoming)
}

// DeleteProject handles DELETE /api/admin/projects/:id. Projects with an
// access-request history are kept for the audit trail.
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	hasRequests, err := s.projectRepo.HasAccessRequests(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if hasRequests {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Project has access requests; archive it instead of deleting"))
	}

	if err := s.projectRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CycleProjectVisibility handles POST /api/admin/projects/:id/visibility,
// stepping public -> gated -> nda -> public.
func (s *Server) CycleProjectVisibility(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	project, err := s.projectRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Project", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	project.Visibility = models.CycleVisibility(project.Visibility)
	if err := s.projectRepo.Update(c.Context(), project); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"visibility": project.Visibility})
}

// ToggleProjectFeatured handles POST /api/admin/projects/:id/feature
func (s *Server) ToggleProjectFeatured(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	project, err := s.projectRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Project", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	project.IsFeatured = !project.IsFeatured
	if err := s.projectRepo.Update(c.Context(), project); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"is_featured": project.IsFeatured})
}
