package models

import "time"

// BlogPostStatus defines the publication state of a blog post.
type BlogPostStatus string

const (
	// BlogPostStatusDraft indicates the post is not publicly visible.
	BlogPostStatusDraft BlogPostStatus = "draft"
	// BlogPostStatusPublished indicates the post is live.
	BlogPostStatusPublished BlogPostStatus = "published"
)

// BlogPost represents a blog entry written in lightweight markup.
type BlogPost struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Title      string         `gorm:"size:300;not null" json:"title"`
	Slug       string         `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	Excerpt    string         `gorm:"type:text" json:"excerpt"`
	Content    string         `gorm:"type:text" json:"content"`
	CoverImage string         `json:"cover_image"`
	Tags       []string       `gorm:"serializer:json" json:"tags"`
	Status     BlogPostStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	// ReadingTime is derived from word count on every write; minutes, minimum 1.
	ReadingTime int        `gorm:"not null;default:1" json:"reading_time"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
