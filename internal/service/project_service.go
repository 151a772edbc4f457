package service

import (
	"context"
	"strings"

	"portfolio/internal/models"
	"portfolio/internal/repository"
)

// ProjectService layers search and redaction rules over the project store.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// Filter returns projects whose title, short description, or any tag
// contains the query, case-insensitively. An empty query matches everything.
func (s *ProjectService) Filter(ctx context.Context, query string) ([]*models.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return MatchProjects(projects, query), nil
}

// MatchProjects applies the substring filter to an already-loaded set.
func MatchProjects(projects []*models.Project, query string) []*models.Project {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return projects
	}

	matched := make([]*models.Project, 0, len(projects))
	for _, p := range projects {
		if projectMatches(p, query) {
			matched = append(matched, p)
		}
	}
	return matched
}

func projectMatches(p *models.Project, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.ShortDescription), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// Redact strips the fields a viewer without access must not see from a
// gated or NDA project. Public projects pass through untouched.
func Redact(p *models.Project, hasAccess bool) *models.Project {
	if p.Visibility == models.VisibilityPublic || hasAccess {
		return p
	}

	clone := *p
	clone.ProblemStatement = ""
	clone.Approach = ""
	clone.Results = ""
	clone.Limitations = ""
	clone.Metrics = nil
	clone.GatedCode = ""
	clone.Downloads = nil
	return &clone
}
