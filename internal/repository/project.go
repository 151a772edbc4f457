// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"portfolio/internal/cache"
	"portfolio/internal/models"

	"gorm.io/gorm"
)

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	List(ctx context.Context) ([]*models.Project, error)
	ListFeatured(ctx context.Context) ([]*models.Project, error)
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	HasAccessRequests(ctx context.Context, projectID uint) (bool, error)
}

// projectRepository implements ProjectRepository
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) List(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) ListFeatured(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := cache.Aside(ctx, cache.ProjectKey(slug), &project, cache.ProjectTTL, func() error {
		return r.db.WithContext(ctx).Where("slug = ?", slug).First(&project).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	err := r.db.WithContext(ctx).Create(project).Error
	if err == nil {
		cache.InvalidateProject(ctx, project.Slug)
	}
	return err
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return err
	}
	cache.InvalidateProject(ctx, project.Slug)
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	project, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Project{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateProject(ctx, project.Slug)
	return nil
}

func (r *projectRepository) HasAccessRequests(ctx context.Context, projectID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AccessRequest{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
