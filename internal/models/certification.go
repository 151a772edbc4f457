package models

import "time"

// Certification represents a professional certification. Title is the
// natural key; the seed loader never updates an existing row.
type Certification struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:300;not null;uniqueIndex" json:"title"`
	Issuer         string    `gorm:"size:200" json:"issuer"`
	Description    string    `gorm:"type:text" json:"description"`
	ImageURL       string    `json:"image_url"`
	CertificateURL string    `json:"certificate_url"`
	IssueDate      string    `gorm:"size:40" json:"issue_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
