package server

import (
	"errors"
	"log/slog"

	"portfolio/internal/models"
	"portfolio/internal/seed"
	"portfolio/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetBlogPosts handles GET /api/blog — published posts only.
func (s *Server) GetBlogPosts(c *fiber.Ctx) error {
	posts, err := s.blogService.ListPublished(c.Context())
	if err != nil {
		slog.Warn("blog list falling back to sample dataset", "error", err)
		rows := seed.BlogPosts()
		posts = nil
		for i := range rows {
			if rows[i].Status == models.BlogPostStatusPublished {
				posts = append(posts, &rows[i])
			}
		}
	}
	return c.JSON(posts)
}

// GetBlogPost handles GET /api/blog/:slug. Drafts are invisible here.
func (s *Server) GetBlogPost(c *fiber.Ctx) error {
	slug := c.Params("slug")

	post, err := s.blogService.GetPublished(c.Context(), slug)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(post)
}

// AdminListBlogPosts handles GET /api/admin/blog — drafts included.
func (s *Server) AdminListBlogPosts(c *fiber.Ctx) error {
	posts, err := s.blogService.ListAll(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(posts)
}

// CreateBlogPost handles POST /api/admin/blog
func (s *Server) CreateBlogPost(c *fiber.Ctx) error {
	var post models.BlogPost
	if err := c.BodyParser(&post); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if post.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}
	if err := validation.ValidateSlug(post.Slug); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if post.Status == "" {
		post.Status = models.BlogPostStatusDraft
	}

	if existing, err := s.blogRepo.GetBySlug(c.Context(), post.Slug); err == nil && existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("A blog post with this slug already exists"))
	}

	if err := s.blogService.Create(c.Context(), &post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdateBlogPost handles PUT /api/admin/blog/:id
func (s *Server) UpdateBlogPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	existing, err := s.blogRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("BlogPost", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var incoming models.BlogPost
	if err := c.BodyParser(&incoming); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if incoming.Slug != "" && incoming.Slug != existing.Slug {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Blog post slug cannot be changed"))
	}

	incoming.ID = existing.ID
	incoming.Slug = existing.Slug
	incoming.CreatedAt = existing.CreatedAt
	// once published, the original timestamp sticks
	if existing.PublishedAt != nil {
		incoming.PublishedAt = existing.PublishedAt
	}
	if err := s.blogService.Update(c.Context(), &incoming); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(incoming)
}

// DeleteBlogPost handles DELETE /api/admin/blog/:id
func (s *Server) DeleteBlogPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.blogRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
