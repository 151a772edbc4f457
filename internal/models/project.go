// Package models contains data structures for the application's domain models.
package models

import "time"

// ProjectVisibility controls how much of a project's detail content is shown.
type ProjectVisibility string

const (
	// VisibilityPublic shows the full project detail unconditionally.
	VisibilityPublic ProjectVisibility = "public"
	// VisibilityGated hides detail content behind the access-request workflow.
	VisibilityGated ProjectVisibility = "gated"
	// VisibilityNDA marks the project as restricted with no request flow.
	VisibilityNDA ProjectVisibility = "nda"
)

// ProjectMetric is a single ordered label/value pair displayed on a project page.
type ProjectMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ProjectImage is an ordered image entry with an optional caption.
type ProjectImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// Project represents a portfolio project.
type Project struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	Title            string            `gorm:"size:200;not null" json:"title"`
	Slug             string            `gorm:"size:120;not null;uniqueIndex" json:"slug"`
	ShortDescription string            `gorm:"type:text" json:"short_description"`
	FullDescription  string            `gorm:"type:text" json:"full_description"`
	ProblemStatement string            `gorm:"type:text" json:"problem_statement,omitempty"`
	Approach         string            `gorm:"type:text" json:"approach,omitempty"`
	Results          string            `gorm:"type:text" json:"results,omitempty"`
	Limitations      string            `gorm:"type:text" json:"limitations,omitempty"`
	Categories       []string          `gorm:"serializer:json" json:"categories"`
	Tags             []string          `gorm:"serializer:json" json:"tags"`
	Visibility       ProjectVisibility `gorm:"type:varchar(20);not null;default:'public';index" json:"visibility"`
	IsFeatured       bool              `gorm:"not null;default:false" json:"is_featured"`
	Metrics          []ProjectMetric   `gorm:"serializer:json" json:"metrics,omitempty"`
	// GatedCode is shown only to approved access requesters.
	GatedCode  string         `gorm:"type:text" json:"gated_code,omitempty"`
	GithubLink string         `json:"github_link"`
	Images     []ProjectImage `gorm:"serializer:json" json:"images,omitempty"`
	// Downloads are gated asset URLs; served with ?token= appended once unlocked.
	Downloads []string  `gorm:"serializer:json" json:"downloads,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CycleVisibility returns the next visibility in the admin toggle cycle
// public -> gated -> nda -> public.
func CycleVisibility(v ProjectVisibility) ProjectVisibility {
	switch v {
	case VisibilityPublic:
		return VisibilityGated
	case VisibilityGated:
		return VisibilityNDA
	default:
		return VisibilityPublic
	}
}
