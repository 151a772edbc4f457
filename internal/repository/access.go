package repository

import (
	"context"
	"errors"
	"time"

	"portfolio/internal/models"

	"gorm.io/gorm"
)

// ErrStaleTransition is returned when a state transition finds the request
// no longer in pending state (already approved or rejected).
var ErrStaleTransition = errors.New("access request is not pending")

// AccessRepository defines the interface for access-request data operations
type AccessRepository interface {
	Create(ctx context.Context, request *models.AccessRequest) error
	GetByID(ctx context.Context, id uint) (*models.AccessRequest, error)
	List(ctx context.Context, status models.AccessRequestStatus) ([]*models.AccessRequest, error)
	// FindActive returns the pending or approved request for the pair, or nil.
	FindActive(ctx context.Context, email string, projectID uint) (*models.AccessRequest, error)
	// FindApproved returns the approved request for the pair, or nil.
	FindApproved(ctx context.Context, email string, projectID uint) (*models.AccessRequest, error)
	// Transition atomically moves a pending request to the target status,
	// recording the token and review time. Returns ErrStaleTransition when
	// the request was not pending.
	Transition(ctx context.Context, id uint, status models.AccessRequestStatus, token string) error
}

type accessRepository struct {
	db *gorm.DB
}

// NewAccessRepository creates a new access-request repository
func NewAccessRepository(db *gorm.DB) AccessRepository {
	return &accessRepository{db: db}
}

func (r *accessRepository) Create(ctx context.Context, request *models.AccessRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *accessRepository) GetByID(ctx context.Context, id uint) (*models.AccessRequest, error) {
	var request models.AccessRequest
	if err := r.db.WithContext(ctx).Preload("Project").First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *accessRepository) List(ctx context.Context, status models.AccessRequestStatus) ([]*models.AccessRequest, error) {
	q := r.db.WithContext(ctx).Preload("Project").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var requests []*models.AccessRequest
	err := q.Find(&requests).Error
	return requests, err
}

func (r *accessRepository) FindActive(ctx context.Context, email string, projectID uint) (*models.AccessRequest, error) {
	return r.findByStatus(ctx, email, projectID,
		[]models.AccessRequestStatus{models.AccessRequestStatusPending, models.AccessRequestStatusApproved})
}

func (r *accessRepository) FindApproved(ctx context.Context, email string, projectID uint) (*models.AccessRequest, error) {
	return r.findByStatus(ctx, email, projectID,
		[]models.AccessRequestStatus{models.AccessRequestStatusApproved})
}

func (r *accessRepository) findByStatus(ctx context.Context, email string, projectID uint, statuses []models.AccessRequestStatus) (*models.AccessRequest, error) {
	var request models.AccessRequest
	err := r.db.WithContext(ctx).
		Where("email = ? AND project_id = ? AND status IN ?", email, projectID, statuses).
		Order("created_at DESC").
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// Transition uses a guarded UPDATE so concurrent approvals of the same
// request cannot both succeed: only the first one finds the row pending.
func (r *accessRepository) Transition(ctx context.Context, id uint, status models.AccessRequestStatus, token string) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.AccessRequest{}).
		Where("id = ? AND status = ?", id, models.AccessRequestStatusPending).
		Updates(map[string]any{
			"status":       status,
			"access_token": token,
			"reviewed_at":  now,
			"updated_at":   now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleTransition
	}
	return nil
}
