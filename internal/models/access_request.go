package models

import "time"

// AccessRequestStatus defines lifecycle states for gated-content access requests.
type AccessRequestStatus string

const (
	// AccessRequestStatusPending indicates the request is awaiting admin review.
	AccessRequestStatusPending AccessRequestStatus = "pending"
	// AccessRequestStatusApproved indicates the request was granted and a token minted.
	AccessRequestStatusApproved AccessRequestStatus = "approved"
	// AccessRequestStatusRejected indicates the request was permanently denied.
	AccessRequestStatusRejected AccessRequestStatus = "rejected"
)

// AccessRequest is a visitor's request to view a gated project's content.
// Rows are never deleted; they form the audit trail of the access workflow.
type AccessRequest struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	Email     string              `gorm:"size:254;not null;index:idx_access_email_project" json:"email"`
	ProjectID uint                `gorm:"not null;index:idx_access_email_project" json:"project_id"`
	Project   *Project            `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Status    AccessRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	// AccessToken is minted on approval and empty otherwise.
	AccessToken string     `gorm:"size:64" json:"access_token,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
