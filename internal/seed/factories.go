package seed

import (
	"fmt"
	"math/rand"
	"time"

	"portfolio/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// FakeContactMessage builds a plausible contact-form submission.
func FakeContactMessage() *models.ContactMessage {
	collaborationTypes := []string{"consulting", "research", "speaking", "open-source", "other"}
	msg := &models.ContactMessage{
		Name:              gofakeit.Name(),
		Email:             gofakeit.Email(),
		Company:           gofakeit.Company(),
		CollaborationType: collaborationTypes[rand.Intn(len(collaborationTypes))],
		Subject:           gofakeit.Sentence(6),
		Message:           gofakeit.Paragraph(1, 3, 8, "\n"),
		IsRead:            gofakeit.Bool(),
	}
	msg.CreatedAt = time.Now().Add(-time.Duration(rand.Intn(60*24)) * time.Hour)
	return msg
}

// FakeAccessRequest builds an access request against the given project in a
// random lifecycle state.
func FakeAccessRequest(projectID uint) *models.AccessRequest {
	request := &models.AccessRequest{
		Email:     gofakeit.Email(),
		ProjectID: projectID,
		Status:    models.AccessRequestStatusPending,
	}
	switch rand.Intn(3) {
	case 1:
		request.Status = models.AccessRequestStatusApproved
		request.AccessToken = gofakeit.UUID()
		reviewed := time.Now().Add(-time.Duration(rand.Intn(30*24)) * time.Hour)
		request.ReviewedAt = &reviewed
	case 2:
		request.Status = models.AccessRequestStatusRejected
		reviewed := time.Now().Add(-time.Duration(rand.Intn(30*24)) * time.Hour)
		request.ReviewedAt = &reviewed
	}
	return request
}

// seedDemoData adds synthetic inbox traffic and an access-request queue so
// the dashboard has something to show in development.
func seedDemoData(db *gorm.DB) error {
	gofakeit.Seed(time.Now().UnixNano())

	for i := 0; i < 8; i++ {
		if err := db.Create(FakeContactMessage()).Error; err != nil {
			return fmt.Errorf("contact message: %w", err)
		}
	}

	var gated []models.Project
	if err := db.Where("visibility = ?", models.VisibilityGated).Find(&gated).Error; err != nil {
		return err
	}
	for _, project := range gated {
		for i := 0; i < 3; i++ {
			if err := db.Create(FakeAccessRequest(project.ID)).Error; err != nil {
				return fmt.Errorf("access request: %w", err)
			}
		}
	}
	return nil
}
