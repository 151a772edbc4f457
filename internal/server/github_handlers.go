package server

import (
	"errors"

	"portfolio/internal/github"
	"portfolio/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGithubRepo handles GET /api/github/:owner/:repo. Upstream failures
// surface as a 502 carrying the upstream status.
func (s *Server) GetGithubRepo(c *fiber.Ctx) error {
	owner := c.Params("owner")
	repo := c.Params("repo")
	if owner == "" || repo == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Owner and repo are required"))
	}

	info, err := s.githubClient.GetRepo(c.Context(), owner, repo)
	if err != nil {
		var upstream *github.UpstreamError
		if errors.As(err, &upstream) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":           "GitHub API request failed",
				"upstream_status": upstream.StatusCode,
			})
		}
		return models.RespondWithError(c, fiber.StatusBadGateway,
			models.NewInternalError(err))
	}
	return c.JSON(info)
}
