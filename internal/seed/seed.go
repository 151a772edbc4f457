// Package seed loads the curated portfolio dataset and provisions demo data
// for development environments.
package seed

import (
	"errors"
	"fmt"
	"log/slog"

	"portfolio/internal/models"
	"portfolio/internal/service"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertPolicy controls how the loader reconciles an incoming row with an
// existing one sharing the same natural key.
type UpsertPolicy string

const (
	// PolicyReplace overwrites every field of the existing row.
	PolicyReplace UpsertPolicy = "replace"
	// PolicyMergeFields overwrites only the fields the incoming row sets;
	// zero-valued incoming fields keep the stored value.
	PolicyMergeFields UpsertPolicy = "merge-fields"
	// PolicyInsertOnly never touches an existing row.
	PolicyInsertOnly UpsertPolicy = "insert-only"
)

// Options configures a seed run.
type Options struct {
	// AdminEmail/AdminPassword provision the dashboard login. Both must be
	// set together; an existing admin row is left untouched.
	AdminEmail    string
	AdminUsername string
	AdminPassword string

	// Demo adds synthetic contact messages and access requests on top of
	// the curated dataset. Development only.
	Demo bool
}

// Run loads the curated dataset into the database. It is idempotent: each
// entity type reconciles by its natural key under its upsert policy, so
// repeated runs converge instead of duplicating rows.
func Run(db *gorm.DB, opts Options) error {
	if err := seedProjects(db); err != nil {
		return fmt.Errorf("seed projects: %w", err)
	}
	if err := seedPublications(db); err != nil {
		return fmt.Errorf("seed publications: %w", err)
	}
	if err := seedCertifications(db); err != nil {
		return fmt.Errorf("seed certifications: %w", err)
	}
	if err := seedBlogPosts(db); err != nil {
		return fmt.Errorf("seed blog posts: %w", err)
	}
	if opts.AdminEmail != "" {
		if err := seedAdmin(db, opts); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}
	if opts.Demo {
		if err := seedDemoData(db); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}
	return nil
}

// seedProjects applies PolicyReplace keyed on slug: the dataset is the
// source of truth for project content.
func seedProjects(db *gorm.DB) error {
	for _, project := range Projects() {
		p := project
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "short_description", "full_description",
				"problem_statement", "approach", "results", "limitations",
				"categories", "tags", "visibility", "is_featured",
				"metrics", "gated_code", "github_link", "images",
				"downloads", "updated_at",
			}),
		}).Create(&p).Error
		if err != nil {
			return fmt.Errorf("project %s: %w", p.Slug, err)
		}
	}
	return nil
}

// seedPublications applies PolicyMergeFields keyed on title: hand edits made
// through the dashboard survive reseeding unless the dataset sets the field.
func seedPublications(db *gorm.DB) error {
	for _, publication := range Publications() {
		incoming := publication
		var existing models.Publication
		err := db.Where("title = ?", incoming.Title).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&incoming).Error; err != nil {
				return fmt.Errorf("publication %q: %w", incoming.Title, err)
			}
			continue
		case err != nil:
			return err
		}

		mergePublication(&existing, &incoming)
		if err := db.Save(&existing).Error; err != nil {
			return fmt.Errorf("publication %q: %w", incoming.Title, err)
		}
	}
	return nil
}

func mergePublication(existing, incoming *models.Publication) {
	if len(incoming.Authors) > 0 {
		existing.Authors = incoming.Authors
	}
	if incoming.Journal != "" {
		existing.Journal = incoming.Journal
	}
	if incoming.Year != 0 {
		existing.Year = incoming.Year
	}
	if incoming.Status != "" {
		existing.Status = incoming.Status
	}
	if incoming.Abstract != "" {
		existing.Abstract = incoming.Abstract
	}
	if len(incoming.Contributions) > 0 {
		existing.Contributions = incoming.Contributions
	}
	if incoming.PDFURL != "" {
		existing.PDFURL = incoming.PDFURL
	}
	if incoming.DOILink != "" {
		existing.DOILink = incoming.DOILink
	}
	if incoming.CodeRepo != "" {
		existing.CodeRepo = incoming.CodeRepo
	}
}

// seedCertifications applies PolicyInsertOnly keyed on title.
func seedCertifications(db *gorm.DB) error {
	for _, certification := range Certifications() {
		c := certification
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}},
			DoNothing: true,
		}).Create(&c).Error
		if err != nil {
			return fmt.Errorf("certification %q: %w", c.Title, err)
		}
	}
	return nil
}

// seedBlogPosts applies PolicyReplace keyed on slug, recomputing the
// reading-time estimate from the dataset content.
func seedBlogPosts(db *gorm.DB) error {
	for _, post := range BlogPosts() {
		p := post
		p.ReadingTime = service.ReadingTime(p.Content)
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "excerpt", "content", "cover_image", "tags",
				"status", "reading_time", "published_at", "updated_at",
			}),
		}).Create(&p).Error
		if err != nil {
			return fmt.Errorf("blog post %s: %w", p.Slug, err)
		}
	}
	return nil
}

// seedAdmin provisions the dashboard login once; an existing row with the
// same email is never overwritten, so password rotations stick.
func seedAdmin(db *gorm.DB, opts Options) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", opts.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Info("admin user already provisioned", "email", opts.AdminEmail)
		return nil
	}

	if opts.AdminPassword == "" {
		return errors.New("admin password required to provision a new admin user")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	username := opts.AdminUsername
	if username == "" {
		username = "admin"
	}
	user := models.User{
		Username:    username,
		Email:       opts.AdminEmail,
		Password:    string(hash),
		DisplayName: "Site Admin",
		IsAdmin:     true,
	}
	return db.Create(&user).Error
}
