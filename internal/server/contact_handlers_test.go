package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"portfolio/internal/models"

	"github.com/gofiber/fiber/v2"
)

func contactTestApp(s *Server) *fiber.App {
	app := fiber.New()
	app.Post("/api/contact", s.SubmitContactMessage)
	app.Get("/api/admin/messages", s.AdminListMessages)
	app.Post("/api/admin/messages/:id/read", s.ToggleMessageRead)
	app.Post("/api/admin/messages/:id/star", s.ToggleMessageStarred)
	app.Delete("/api/admin/messages/:id", s.DeleteMessage)
	return app
}

func TestContactFormLandsUnreadInInbox(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	app := contactTestApp(s)

	resp := postJSON(t, app, "/api/contact", fiber.Map{
		"name":               "Ada",
		"email":              "ada@example.com",
		"collaboration_type": "research",
		"subject":            "Collaboration",
		"message":            "Interested in the log store work.",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	var inbox []models.ContactMessage
	getJSON(t, app, "/api/admin/messages", &inbox)
	if len(inbox) != 1 {
		t.Fatalf("expected 1 message, got %d", len(inbox))
	}
	msg := inbox[0]
	if msg.IsRead || msg.IsStarred {
		t.Fatalf("new message must arrive unread and unstarred: %#v", msg)
	}
	if msg.Email != "ada@example.com" || msg.CollaborationType != "research" {
		t.Fatalf("unexpected stored message: %#v", msg)
	}

	// read toggle flips both ways
	var flag struct {
		IsRead bool `json:"is_read"`
	}
	resp = postJSON(t, app, fmt.Sprintf("/api/admin/messages/%d/read", msg.ID), nil)
	json.NewDecoder(resp.Body).Decode(&flag)
	resp.Body.Close()
	if !flag.IsRead {
		t.Fatal("expected is_read true after toggle")
	}
	resp = postJSON(t, app, fmt.Sprintf("/api/admin/messages/%d/read", msg.ID), nil)
	json.NewDecoder(resp.Body).Decode(&flag)
	resp.Body.Close()
	if flag.IsRead {
		t.Fatal("expected is_read false after second toggle")
	}
}

func TestContactFormValidation(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	app := contactTestApp(s)

	cases := []struct {
		name    string
		payload fiber.Map
	}{
		{"missing name", fiber.Map{"email": "a@b.com", "subject": "s", "message": "m"}},
		{"missing subject", fiber.Map{"name": "A", "email": "a@b.com", "message": "m"}},
		{"bad email", fiber.Map{"name": "A", "email": "not-an-email", "subject": "s", "message": "m"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/contact", tc.payload)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
			resp.Body.Close()
		})
	}

	var count int64
	s.db.Model(&models.ContactMessage{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid submissions must not persist, found %d rows", count)
	}
}
