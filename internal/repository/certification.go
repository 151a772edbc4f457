package repository

import (
	"context"
	"errors"

	"portfolio/internal/models"

	"gorm.io/gorm"
)

// CertificationRepository defines the interface for certification data operations
type CertificationRepository interface {
	List(ctx context.Context) ([]*models.Certification, error)
	GetByID(ctx context.Context, id uint) (*models.Certification, error)
	GetByTitle(ctx context.Context, title string) (*models.Certification, error)
	Create(ctx context.Context, certification *models.Certification) error
	Update(ctx context.Context, certification *models.Certification) error
	Delete(ctx context.Context, id uint) error
}

type certificationRepository struct {
	db *gorm.DB
}

// NewCertificationRepository creates a new certification repository
func NewCertificationRepository(db *gorm.DB) CertificationRepository {
	return &certificationRepository{db: db}
}

func (r *certificationRepository) List(ctx context.Context) ([]*models.Certification, error) {
	var certifications []*models.Certification
	err := r.db.WithContext(ctx).
		Order("issue_date DESC, created_at DESC").
		Find(&certifications).Error
	return certifications, err
}

func (r *certificationRepository) GetByID(ctx context.Context, id uint) (*models.Certification, error) {
	var certification models.Certification
	if err := r.db.WithContext(ctx).First(&certification, id).Error; err != nil {
		return nil, err
	}
	return &certification, nil
}

// GetByTitle returns nil (no error) when no certification with the title exists.
func (r *certificationRepository) GetByTitle(ctx context.Context, title string) (*models.Certification, error) {
	var certification models.Certification
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&certification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &certification, nil
}

func (r *certificationRepository) Create(ctx context.Context, certification *models.Certification) error {
	return r.db.WithContext(ctx).Create(certification).Error
}

func (r *certificationRepository) Update(ctx context.Context, certification *models.Certification) error {
	return r.db.WithContext(ctx).Save(certification).Error
}

func (r *certificationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Certification{}, id).Error
}
