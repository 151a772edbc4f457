package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode"

	"portfolio/internal/models"
	"portfolio/internal/repository"

	"gorm.io/gorm"
)

// wordsPerMinute is the reading speed assumed for the reading_time estimate.
const wordsPerMinute = 200

// BlogService manages blog posts and derives their reading-time estimate.
type BlogService struct {
	blogRepo repository.BlogRepository
}

func NewBlogService(blogRepo repository.BlogRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo}
}

// ReadingTime estimates minutes to read the content, never below one.
func ReadingTime(content string) int {
	words := len(strings.FieldsFunc(content, unicode.IsSpace))
	if words == 0 {
		return 1
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// ListPublished returns published posts for the public blog index.
func (s *BlogService) ListPublished(ctx context.Context) ([]*models.BlogPost, error) {
	return s.blogRepo.ListPublished(ctx)
}

// ListAll returns every post regardless of status, for the admin dashboard.
func (s *BlogService) ListAll(ctx context.Context) ([]*models.BlogPost, error) {
	return s.blogRepo.ListAll(ctx)
}

// GetPublished returns a published post by slug for the public detail page.
func (s *BlogService) GetPublished(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("BlogPost", slug)
		}
		return nil, err
	}
	return post, nil
}

// Create persists a new post, deriving reading time and stamping
// published_at when the post is born published.
func (s *BlogService) Create(ctx context.Context, post *models.BlogPost) error {
	post.ReadingTime = ReadingTime(post.Content)
	if post.Status == models.BlogPostStatusPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	return s.blogRepo.Create(ctx, post)
}

// Update applies changes to an existing post. Reading time is recomputed
// from the new content, and the draft -> published transition stamps
// published_at exactly once; republishing keeps the original timestamp.
func (s *BlogService) Update(ctx context.Context, post *models.BlogPost) error {
	post.ReadingTime = ReadingTime(post.Content)
	if post.Status == models.BlogPostStatusPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	return s.blogRepo.Update(ctx, post)
}
