package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio/internal/models"

	"github.com/gofiber/fiber/v2"
)

func accessTestApp(s *Server) *fiber.App {
	app := fiber.New()
	app.Post("/api/access/requests", s.CreateAccessRequest)
	app.Get("/api/access/check", s.CheckAccess)
	app.Post("/api/admin/access-requests/:id/approve", s.ApproveAccessRequest)
	app.Post("/api/admin/access-requests/:id/reject", s.RejectAccessRequest)
	app.Get("/api/admin/access-requests", s.AdminListAccessRequests)
	app.Get("/api/projects/:slug/downloads", s.GetProjectDownloads)
	return app
}

func createGatedProject(t *testing.T, s *Server) *models.Project {
	t.Helper()
	project := &models.Project{
		Title:            "Columnar Log Store",
		Slug:             "columnar-log-store",
		ShortDescription: "teaser",
		ProblemStatement: "secret problem",
		Visibility:       models.VisibilityGated,
		Downloads:        []string{"/assets/gated/benchmarks.pdf"},
	}
	if err := s.db.Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func putJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string, dest any) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if dest != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp
}

func TestAccessRequestLifecycle(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	project := createGatedProject(t, s)
	app := accessTestApp(s)

	// new request is created pending
	resp := postJSON(t, app, "/api/access/requests", fiber.Map{
		"email": "viewer@example.com", "project_id": project.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created models.AccessRequest
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if created.Status != models.AccessRequestStatusPending {
		t.Fatalf("expected pending, got %s", created.Status)
	}

	// duplicate submission returns the existing row
	resp = postJSON(t, app, "/api/access/requests", fiber.Map{
		"email": "viewer@example.com", "project_id": project.ID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for duplicate, got %d", resp.StatusCode)
	}
	var duplicate models.AccessRequest
	json.NewDecoder(resp.Body).Decode(&duplicate)
	resp.Body.Close()
	if duplicate.ID != created.ID {
		t.Fatalf("expected existing request %d, got %d", created.ID, duplicate.ID)
	}
	var rowCount int64
	db.Model(&models.AccessRequest{}).Count(&rowCount)
	if rowCount != 1 {
		t.Fatalf("expected 1 row, got %d", rowCount)
	}

	// pending request does not grant access
	var decision struct {
		Granted bool   `json:"granted"`
		Token   string `json:"access_token"`
	}
	getJSON(t, app, fmt.Sprintf("/api/access/check?email=viewer@example.com&project_id=%d", project.ID), &decision)
	if decision.Granted {
		t.Fatal("pending request must not grant access")
	}

	// approval mints a token
	resp = postJSON(t, app, fmt.Sprintf("/api/admin/access-requests/%d/approve", created.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var approved models.AccessRequest
	json.NewDecoder(resp.Body).Decode(&approved)
	resp.Body.Close()
	if approved.Status != models.AccessRequestStatusApproved || approved.AccessToken == "" {
		t.Fatalf("expected approved with token, got %#v", approved)
	}

	// approved pair now passes the check
	getJSON(t, app, fmt.Sprintf("/api/access/check?email=viewer@example.com&project_id=%d", project.ID), &decision)
	if !decision.Granted || decision.Token != approved.AccessToken {
		t.Fatalf("expected grant with token, got %#v", decision)
	}

	// approving an already-reviewed request conflicts
	resp = postJSON(t, app, fmt.Sprintf("/api/admin/access-requests/%d/approve", created.ID), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on double approve, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAccessCheckFailsClosed(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	project := createGatedProject(t, s)
	app := accessTestApp(s)

	// no request at all
	var decision struct {
		Granted bool `json:"granted"`
	}
	getJSON(t, app, fmt.Sprintf("/api/access/check?email=nobody@example.com&project_id=%d", project.ID), &decision)
	if decision.Granted {
		t.Fatal("missing request must deny")
	}

	// rejected request denies permanently
	request := models.AccessRequest{Email: "denied@example.com", ProjectID: project.ID, Status: models.AccessRequestStatusPending}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("create request: %v", err)
	}
	resp := postJSON(t, app, fmt.Sprintf("/api/admin/access-requests/%d/reject", request.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	getJSON(t, app, fmt.Sprintf("/api/access/check?email=denied@example.com&project_id=%d", project.ID), &decision)
	if decision.Granted {
		t.Fatal("rejected request must deny")
	}

	// re-requesting after rejection opens a fresh pending row
	resp = postJSON(t, app, "/api/access/requests", fiber.Map{
		"email": "denied@example.com", "project_id": project.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 after rejection, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAccessRequestRejectsPublicProject(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	app := accessTestApp(s)

	project := &models.Project{Title: "Open", Slug: "open-project", Visibility: models.VisibilityPublic}
	if err := s.db.Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	resp := postJSON(t, app, "/api/access/requests", fiber.Map{
		"email": "viewer@example.com", "project_id": project.ID,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDownloadsRequireVerifiedToken(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	project := createGatedProject(t, s)
	app := accessTestApp(s)

	// no token
	resp := getJSON(t, app, fmt.Sprintf("/api/projects/%s/downloads?email=viewer@example.com", project.Slug), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// approved token unlocks, and every URL carries the token
	request := models.AccessRequest{
		Email:       "viewer@example.com",
		ProjectID:   project.ID,
		Status:      models.AccessRequestStatusApproved,
		AccessToken: "tok-1234",
	}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("create request: %v", err)
	}

	var payload struct {
		Downloads []string `json:"downloads"`
	}
	resp = getJSON(t, app, fmt.Sprintf("/api/projects/%s/downloads?email=viewer@example.com&token=tok-1234", project.Slug), &payload)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(payload.Downloads) != 1 || !strings.HasSuffix(payload.Downloads[0], "?token=tok-1234") {
		t.Fatalf("expected token-suffixed URLs, got %v", payload.Downloads)
	}

	// wrong token still denies
	resp = getJSON(t, app, fmt.Sprintf("/api/projects/%s/downloads?email=viewer@example.com&token=wrong", project.Slug), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
