package models

import "time"

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:200;not null" json:"name"`
	Email             string    `gorm:"size:254;not null" json:"email"`
	Company           string    `gorm:"size:200" json:"company,omitempty"`
	CollaborationType string    `gorm:"size:100" json:"collaboration_type,omitempty"`
	Subject           string    `gorm:"size:300;not null" json:"subject"`
	Message           string    `gorm:"type:text;not null" json:"message"`
	IsRead            bool      `gorm:"not null;default:false;index" json:"is_read"`
	IsStarred         bool      `gorm:"not null;default:false" json:"is_starred"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
