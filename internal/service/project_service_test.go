package service

import (
	"context"
	"testing"

	"portfolio/internal/models"
)

func filterFixture() []*models.Project {
	return []*models.Project{
		{ID: 1, Title: "Spectral Clustering Toolkit", ShortDescription: "Graph partitioning experiments", Tags: []string{"ml", "graphs"}},
		{ID: 2, Title: "Edge Cache", ShortDescription: "A CDN prototype", Tags: []string{"networking"}},
		{ID: 3, Title: "Notebook Renderer", ShortDescription: "Renders ML notebooks to HTML", Tags: []string{"tooling"}},
	}
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	repo := noopProjectRepo()
	repo.listFn = func(context.Context) ([]*models.Project, error) { return filterFixture(), nil }

	svc := NewProjectService(repo)
	got, err := svc.Filter(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected all 3 projects, got %d", len(got))
	}
}

func TestFilterMatchesTitleDescriptionAndTags(t *testing.T) {
	repo := noopProjectRepo()
	repo.listFn = func(context.Context) ([]*models.Project, error) { return filterFixture(), nil }
	svc := NewProjectService(repo)

	cases := []struct {
		query string
		want  []uint
	}{
		{"SPECTRAL", []uint{1}}, // title, case-insensitive
		{"cdn", []uint{2}},      // short description
		{"graphs", []uint{1}},   // tag
		{"ml", []uint{1, 3}},    // tag on one, substring on another
		{"quantum", nil},
	}

	for _, tc := range cases {
		got, err := svc.Filter(context.Background(), tc.query)
		if err != nil {
			t.Fatalf("query %q: unexpected error: %v", tc.query, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("query %q: expected %d matches, got %d", tc.query, len(tc.want), len(got))
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Fatalf("query %q: expected project %d at position %d, got %d", tc.query, id, i, got[i].ID)
			}
		}
	}
}

func TestRedactStripsGatedFields(t *testing.T) {
	project := &models.Project{
		ID:               1,
		Title:            "Hidden",
		ShortDescription: "teaser stays",
		ProblemStatement: "secret",
		Approach:         "secret",
		Results:          "secret",
		Limitations:      "secret",
		Metrics:          []models.ProjectMetric{{Label: "accuracy", Value: "0.98"}},
		GatedCode:        "secret",
		Downloads:        []string{"/assets/report.pdf"},
		Visibility:       models.VisibilityGated,
	}

	redacted := Redact(project, false)
	if redacted.ProblemStatement != "" || redacted.Approach != "" || redacted.Results != "" ||
		redacted.Limitations != "" || redacted.GatedCode != "" {
		t.Fatalf("expected gated narrative fields stripped, got %#v", redacted)
	}
	if redacted.Metrics != nil || redacted.Downloads != nil {
		t.Fatal("expected metrics and downloads stripped")
	}
	if redacted.ShortDescription != "teaser stays" {
		t.Fatal("teaser fields must survive redaction")
	}
	// the stored row is untouched
	if project.ProblemStatement != "secret" {
		t.Fatal("redaction must not mutate the source project")
	}
}

func TestRedactPassthrough(t *testing.T) {
	public := &models.Project{ID: 1, Visibility: models.VisibilityPublic, GatedCode: "visible"}
	if got := Redact(public, false); got.GatedCode != "visible" {
		t.Fatal("public projects must not be redacted")
	}

	gated := &models.Project{ID: 2, Visibility: models.VisibilityGated, GatedCode: "visible"}
	if got := Redact(gated, true); got.GatedCode != "visible" {
		t.Fatal("an approved viewer sees the full project")
	}
}
