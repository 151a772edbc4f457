package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"portfolio/internal/models"

	"github.com/gofiber/fiber/v2"
)

func projectTestApp(s *Server) *fiber.App {
	app := fiber.New()
	app.Get("/api/projects", s.GetProjects)
	app.Get("/api/projects/featured", s.GetFeaturedProjects)
	app.Get("/api/projects/:slug", s.GetProject)
	app.Post("/api/admin/projects", s.CreateProject)
	app.Put("/api/admin/projects/:id", s.UpdateProject)
	app.Post("/api/admin/projects/:id/visibility", s.CycleProjectVisibility)
	app.Post("/api/admin/projects/:id/feature", s.ToggleProjectFeatured)
	return app
}

func TestGatedProjectRedaction(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	project := createGatedProject(t, s)
	app := projectTestApp(s)

	// locked: narrative fields are stripped, teaser survives
	var locked models.Project
	resp := getJSON(t, app, "/api/projects/"+project.Slug, &locked)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if locked.ProblemStatement != "" || locked.Downloads != nil {
		t.Fatalf("expected redacted project, got %#v", locked)
	}
	if locked.ShortDescription != "teaser" {
		t.Fatal("teaser fields must survive redaction")
	}

	// an approved email+token unlocks the full record
	request := models.AccessRequest{
		Email:       "viewer@example.com",
		ProjectID:   project.ID,
		Status:      models.AccessRequestStatusApproved,
		AccessToken: "tok-full",
	}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("create request: %v", err)
	}

	var unlocked models.Project
	getJSON(t, app, "/api/projects/"+project.Slug+"?email=viewer@example.com&token=tok-full", &unlocked)
	if unlocked.ProblemStatement != "secret problem" {
		t.Fatalf("expected full project with valid token, got %#v", unlocked)
	}

	// a bad token stays locked
	getJSON(t, app, "/api/projects/"+project.Slug+"?email=viewer@example.com&token=bogus", &locked)
	if locked.ProblemStatement != "" {
		t.Fatal("wrong token must not unlock")
	}
}

func TestNDAProjectHasNoUnlockPath(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	app := projectTestApp(s)

	project := &models.Project{
		Title:      "Fleet Screener",
		Slug:       "fleet-screener",
		Results:    "classified",
		Visibility: models.VisibilityNDA,
	}
	if err := s.db.Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	// even an approved row does not unlock nda content
	request := models.AccessRequest{
		Email: "viewer@example.com", ProjectID: project.ID,
		Status: models.AccessRequestStatusApproved, AccessToken: "tok",
	}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("create request: %v", err)
	}

	var got models.Project
	getJSON(t, app, "/api/projects/fleet-screener?email=viewer@example.com&token=tok", &got)
	if got.Results != "" {
		t.Fatal("nda projects must stay redacted")
	}
}

func TestProjectFiltering(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	app := projectTestApp(s)

	rows := []models.Project{
		{Title: "Latency Router", Slug: "latency-router", ShortDescription: "edge routing", Tags: []string{"go", "networking"}},
		{Title: "Log Store", Slug: "log-store", ShortDescription: "columnar compression", Tags: []string{"storage"}},
	}
	for i := range rows {
		if err := s.db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("create project: %v", err)
		}
	}

	cases := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"LATENCY", 1},
		{"columnar", 1},
		{"networking", 1},
		{"quantum", 0},
	}
	for _, tc := range cases {
		var got []models.Project
		getJSON(t, app, "/api/projects?q="+tc.query, &got)
		if len(got) != tc.want {
			t.Fatalf("query %q: expected %d projects, got %d", tc.query, tc.want, len(got))
		}
	}
}

func TestVisibilityCycleReturnsToStart(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	app := projectTestApp(s)

	project := &models.Project{Title: "Cycler", Slug: "cycler", Visibility: models.VisibilityPublic}
	if err := s.db.Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	want := []models.ProjectVisibility{models.VisibilityGated, models.VisibilityNDA, models.VisibilityPublic}
	for i, expected := range want {
		var payload struct {
			Visibility models.ProjectVisibility `json:"visibility"`
		}
		resp := postJSON(t, app, fmt.Sprintf("/api/admin/projects/%d/visibility", project.ID), nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("click %d: expected 200, got %d", i+1, resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		resp.Body.Close()
		if payload.Visibility != expected {
			t.Fatalf("click %d: expected %s, got %s", i+1, expected, payload.Visibility)
		}
	}
}

func TestCreateProjectValidation(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	app := projectTestApp(s)

	// bad slug
	resp := postJSON(t, app, "/api/admin/projects", fiber.Map{"title": "X", "slug": "Bad Slug!"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid slug, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// valid create
	resp = postJSON(t, app, "/api/admin/projects", fiber.Map{"title": "X", "slug": "fresh-project"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// duplicate slug conflicts
	resp = postJSON(t, app, "/api/admin/projects", fiber.Map{"title": "Y", "slug": "fresh-project"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate slug, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUpdateProjectSlugImmutable(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	app := projectTestApp(s)

	project := &models.Project{Title: "Keep", Slug: "keep-slug"}
	if err := s.db.Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	resp := putJSON(t, app, fmt.Sprintf("/api/admin/projects/%d", project.ID), fiber.Map{
		"title": "Renamed", "slug": "new-slug",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for slug change, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// same slug (or omitted) is accepted
	resp = putJSON(t, app, fmt.Sprintf("/api/admin/projects/%d", project.ID), fiber.Map{
		"title": "Renamed",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	var reloaded models.Project
	if err := s.db.First(&reloaded, project.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Slug != "keep-slug" || reloaded.Title != "Renamed" {
		t.Fatalf("unexpected row after update: %#v", reloaded)
	}
}
