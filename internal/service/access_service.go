// Package service holds the application's domain logic between handlers and repositories.
package service

import (
	"context"
	"errors"
	"strings"

	"portfolio/internal/cache"
	"portfolio/internal/models"
	"portfolio/internal/observability"
	"portfolio/internal/repository"
	"portfolio/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessService implements the gated-content access workflow:
// pending -> approved | rejected, both terminal.
type AccessService struct {
	accessRepo  repository.AccessRepository
	projectRepo repository.ProjectRepository
	capability  cache.Capability
}

// AccessDecision is the result of a checkAccess lookup.
type AccessDecision struct {
	Granted bool   `json:"granted"`
	Token   string `json:"access_token,omitempty"`
}

// NewAccessService creates a new access workflow service.
func NewAccessService(
	accessRepo repository.AccessRepository,
	projectRepo repository.ProjectRepository,
	capability cache.Capability,
) *AccessService {
	return &AccessService{
		accessRepo:  accessRepo,
		projectRepo: projectRepo,
		capability:  capability,
	}
}

// RequestAccess creates a pending access request for the email/project pair.
// A pair that already has a pending or approved request gets that row back
// instead of a new one, so double-submitting the form is harmless. The
// returned bool is true when a new row was created.
func (s *AccessService) RequestAccess(ctx context.Context, email string, projectID uint) (*models.AccessRequest, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, false, models.NewValidationError(err.Error())
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, models.NewNotFoundError("Project", projectID)
		}
		return nil, false, err
	}
	if project.Visibility != models.VisibilityGated {
		return nil, false, models.NewValidationError("project does not accept access requests")
	}

	existing, err := s.accessRepo.FindActive(ctx, email, projectID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	request := &models.AccessRequest{
		Email:     email,
		ProjectID: projectID,
		Status:    models.AccessRequestStatusPending,
	}
	if err := s.accessRepo.Create(ctx, request); err != nil {
		return nil, false, err
	}
	observability.AccessRequestTransitions.WithLabelValues(string(models.AccessRequestStatusPending)).Inc()
	return request, true, nil
}

// CheckAccess is the sole read path gating a project's full content.
// It fails closed: anything but an approved row for the exact pair denies.
func (s *AccessService) CheckAccess(ctx context.Context, email string, projectID uint) (AccessDecision, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return AccessDecision{}, nil
	}

	request, err := s.accessRepo.FindApproved(ctx, email, projectID)
	if err != nil {
		return AccessDecision{}, err
	}
	if request == nil || request.AccessToken == "" {
		return AccessDecision{}, nil
	}
	return AccessDecision{Granted: true, Token: request.AccessToken}, nil
}

// VerifyToken re-validates a presented token against the store. The
// capability cache only short-circuits the lookup for the happy path;
// a cached token is still compared against the approved row.
func (s *AccessService) VerifyToken(ctx context.Context, slug, email, token string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || token == "" {
		return false, nil
	}

	project, err := s.projectRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	request, err := s.accessRepo.FindApproved(ctx, email, project.ID)
	if err != nil {
		return false, err
	}
	if request == nil || request.AccessToken == "" || request.AccessToken != token {
		s.capability.Clear(ctx, slug, email)
		return false, nil
	}

	s.capability.Set(ctx, slug, email, token)
	return true, nil
}

// Approve transitions a pending request to approved and mints a fresh
// opaque token. A request that is no longer pending yields a CONFLICT.
func (s *AccessService) Approve(ctx context.Context, requestID uint) (*models.AccessRequest, error) {
	token := uuid.NewString()
	if err := s.transition(ctx, requestID, models.AccessRequestStatusApproved, token); err != nil {
		return nil, err
	}
	return s.accessRepo.GetByID(ctx, requestID)
}

// Reject transitions a pending request to rejected, permanently denying access.
func (s *AccessService) Reject(ctx context.Context, requestID uint) (*models.AccessRequest, error) {
	if err := s.transition(ctx, requestID, models.AccessRequestStatusRejected, ""); err != nil {
		return nil, err
	}
	return s.accessRepo.GetByID(ctx, requestID)
}

// ListRequests returns the admin review queue, optionally filtered by status.
func (s *AccessService) ListRequests(ctx context.Context, status models.AccessRequestStatus) ([]*models.AccessRequest, error) {
	switch status {
	case "", models.AccessRequestStatusPending, models.AccessRequestStatusApproved, models.AccessRequestStatusRejected:
	default:
		return nil, models.NewValidationError("unknown status filter")
	}
	return s.accessRepo.List(ctx, status)
}

func (s *AccessService) transition(ctx context.Context, requestID uint, status models.AccessRequestStatus, token string) error {
	if _, err := s.accessRepo.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("AccessRequest", requestID)
		}
		return err
	}

	if err := s.accessRepo.Transition(ctx, requestID, status, token); err != nil {
		if errors.Is(err, repository.ErrStaleTransition) {
			return models.NewConflictError("access request has already been reviewed")
		}
		return err
	}

	observability.AccessRequestTransitions.WithLabelValues(string(status)).Inc()
	return nil
}
