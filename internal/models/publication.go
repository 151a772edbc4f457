package models

import "time"

// PublicationStatus defines the editorial state of a publication.
type PublicationStatus string

const (
	// PublicationStatusUnderReview indicates the paper is in peer review.
	PublicationStatusUnderReview PublicationStatus = "under-review"
	// PublicationStatusPublished indicates the paper has been published.
	PublicationStatusPublished PublicationStatus = "published"
	// PublicationStatusPreprint indicates a preprint release.
	PublicationStatusPreprint PublicationStatus = "preprint"
	// PublicationStatusBookChapter indicates a book chapter.
	PublicationStatusBookChapter PublicationStatus = "book-chapter"
)

// Publication represents a research publication. Title is the natural key
// used by the seed loader's upsert.
type Publication struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Title         string            `gorm:"size:300;not null;uniqueIndex" json:"title"`
	Authors       []string          `gorm:"serializer:json" json:"authors"`
	Journal       string            `gorm:"size:300" json:"journal"`
	Year          int               `json:"year"`
	Status        PublicationStatus `gorm:"type:varchar(20);not null;default:'published'" json:"status"`
	Abstract      string            `gorm:"type:text" json:"abstract"`
	Contributions []string          `gorm:"serializer:json" json:"contributions"`
	PDFURL        string            `json:"pdf_url"`
	DOILink       string            `json:"doi_link"`
	CodeRepo      string            `json:"code_repo"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
