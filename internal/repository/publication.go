package repository

import (
	"context"
	"errors"

	"portfolio/internal/models"

	"gorm.io/gorm"
)

// PublicationRepository defines the interface for publication data operations
type PublicationRepository interface {
	List(ctx context.Context) ([]*models.Publication, error)
	GetByID(ctx context.Context, id uint) (*models.Publication, error)
	GetByTitle(ctx context.Context, title string) (*models.Publication, error)
	Create(ctx context.Context, publication *models.Publication) error
	Update(ctx context.Context, publication *models.Publication) error
	Delete(ctx context.Context, id uint) error
}

type publicationRepository struct {
	db *gorm.DB
}

// NewPublicationRepository creates a new publication repository
func NewPublicationRepository(db *gorm.DB) PublicationRepository {
	return &publicationRepository{db: db}
}

func (r *publicationRepository) List(ctx context.Context) ([]*models.Publication, error) {
	var publications []*models.Publication
	err := r.db.WithContext(ctx).
		Order("year DESC, created_at DESC").
		Find(&publications).Error
	return publications, err
}

func (r *publicationRepository) GetByID(ctx context.Context, id uint) (*models.Publication, error) {
	var publication models.Publication
	if err := r.db.WithContext(ctx).First(&publication, id).Error; err != nil {
		return nil, err
	}
	return &publication, nil
}

// GetByTitle returns nil (no error) when no publication with the title exists.
func (r *publicationRepository) GetByTitle(ctx context.Context, title string) (*models.Publication, error) {
	var publication models.Publication
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&publication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &publication, nil
}

func (r *publicationRepository) Create(ctx context.Context, publication *models.Publication) error {
	return r.db.WithContext(ctx).Create(publication).Error
}

func (r *publicationRepository) Update(ctx context.Context, publication *models.Publication) error {
	return r.db.WithContext(ctx).Save(publication).Error
}

func (r *publicationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Publication{}, id).Error
}
