package seed

import (
	"testing"

	"portfolio/internal/database"
	"portfolio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()
	db := openSeedDB(t)

	if err := Run(db, Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(db, Options{}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var projectCount, publicationCount, certificationCount, postCount int64
	db.Model(&models.Project{}).Count(&projectCount)
	db.Model(&models.Publication{}).Count(&publicationCount)
	db.Model(&models.Certification{}).Count(&certificationCount)
	db.Model(&models.BlogPost{}).Count(&postCount)

	if int(projectCount) != len(Projects()) {
		t.Fatalf("expected %d projects, got %d", len(Projects()), projectCount)
	}
	if int(publicationCount) != len(Publications()) {
		t.Fatalf("expected %d publications, got %d", len(Publications()), publicationCount)
	}
	if int(certificationCount) != len(Certifications()) {
		t.Fatalf("expected %d certifications, got %d", len(Certifications()), certificationCount)
	}
	if int(postCount) != len(BlogPosts()) {
		t.Fatalf("expected %d blog posts, got %d", len(BlogPosts()), postCount)
	}
}

func TestReplacePolicyOverwritesProjectEdits(t *testing.T) {
	t.Parallel()
	db := openSeedDB(t)

	if err := Run(db, Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	canonical := Projects()[0]
	if err := db.Model(&models.Project{}).
		Where("slug = ?", canonical.Slug).
		Update("title", "Hand Edited").Error; err != nil {
		t.Fatalf("edit: %v", err)
	}

	if err := Run(db, Options{}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var project models.Project
	if err := db.Where("slug = ?", canonical.Slug).First(&project).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if project.Title != canonical.Title {
		t.Fatalf("expected replace policy to restore %q, got %q", canonical.Title, project.Title)
	}
}

func TestMergeFieldsPolicyKeepsPublicationEdits(t *testing.T) {
	t.Parallel()
	db := openSeedDB(t)

	if err := Run(db, Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// the dataset leaves DOILink empty on this row; a hand edit must survive
	title := Publications()[1].Title
	if err := db.Model(&models.Publication{}).
		Where("title = ?", title).
		Update("doi_link", "https://doi.org/10.0000/hand-entered").Error; err != nil {
		t.Fatalf("edit: %v", err)
	}

	if err := Run(db, Options{}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var publication models.Publication
	if err := db.Where("title = ?", title).First(&publication).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if publication.DOILink != "https://doi.org/10.0000/hand-entered" {
		t.Fatalf("expected merge policy to keep hand edit, got %q", publication.DOILink)
	}
	if publication.Abstract == "" {
		t.Fatal("expected dataset fields to still be applied")
	}
}

func TestInsertOnlyPolicyKeepsCertificationEdits(t *testing.T) {
	t.Parallel()
	db := openSeedDB(t)

	if err := Run(db, Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	title := Certifications()[0].Title
	if err := db.Model(&models.Certification{}).
		Where("title = ?", title).
		Update("issuer", "Renamed Issuer").Error; err != nil {
		t.Fatalf("edit: %v", err)
	}

	if err := Run(db, Options{}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var certification models.Certification
	if err := db.Where("title = ?", title).First(&certification).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if certification.Issuer != "Renamed Issuer" {
		t.Fatalf("expected insert-only policy to keep hand edit, got %q", certification.Issuer)
	}
}

func TestSeedAdminProvisionsOnce(t *testing.T) {
	t.Parallel()
	db := openSeedDB(t)

	opts := Options{AdminEmail: "admin@example.com", AdminPassword: "FirstPassw0rd!extra"}
	if err := Run(db, opts); err != nil {
		t.Fatalf("first run: %v", err)
	}

	var user models.User
	if err := db.Where("email = ?", opts.AdminEmail).First(&user).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if !user.IsAdmin {
		t.Fatal("expected provisioned user to be admin")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(opts.AdminPassword)); err != nil {
		t.Fatalf("expected bcrypt hash of the configured password: %v", err)
	}

	// a second run with a different password must not rotate credentials
	opts.AdminPassword = "SecondPassw0rd!extra"
	if err := Run(db, opts); err != nil {
		t.Fatalf("second run: %v", err)
	}
	var reloaded models.User
	if err := db.Where("email = ?", opts.AdminEmail).First(&reloaded).Error; err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte("FirstPassw0rd!extra")); err != nil {
		t.Fatal("expected original password to survive reseeding")
	}
}

func TestDemoDataTargetsGatedProjects(t *testing.T) {
	t.Parallel()
	db := openSeedDB(t)

	if err := Run(db, Options{Demo: true}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var messageCount int64
	db.Model(&models.ContactMessage{}).Count(&messageCount)
	if messageCount == 0 {
		t.Fatal("expected demo contact messages")
	}

	var requests []models.AccessRequest
	if err := db.Find(&requests).Error; err != nil {
		t.Fatalf("load requests: %v", err)
	}
	if len(requests) == 0 {
		t.Fatal("expected demo access requests")
	}
	for _, request := range requests {
		var project models.Project
		if err := db.First(&project, request.ProjectID).Error; err != nil {
			t.Fatalf("request %d project: %v", request.ID, err)
		}
		if project.Visibility != models.VisibilityGated {
			t.Fatalf("demo request targets non-gated project %s", project.Slug)
		}
	}
}
