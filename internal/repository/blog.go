package repository

import (
	"context"

	"portfolio/internal/cache"
	"portfolio/internal/models"

	"gorm.io/gorm"
)

// BlogRepository defines the interface for blog post data operations
type BlogRepository interface {
	ListPublished(ctx context.Context) ([]*models.BlogPost, error)
	ListAll(ctx context.Context) ([]*models.BlogPost, error)
	GetByID(ctx context.Context, id uint) (*models.BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id uint) error
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) ListPublished(ctx context.Context) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.db.WithContext(ctx).
		Where("status = ?", models.BlogPostStatusPublished).
		Order("published_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *blogRepository) ListAll(ctx context.Context) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := cache.Aside(ctx, cache.BlogPostKey(slug), &post, cache.BlogPostTTL, func() error {
		return r.db.WithContext(ctx).
			Where("slug = ? AND status = ?", slug, models.BlogPostStatusPublished).
			First(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidateBlogPost(ctx, post.Slug)
	}
	return err
}

func (r *blogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.InvalidateBlogPost(ctx, post.Slug)
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.BlogPost{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateBlogPost(ctx, post.Slug)
	return nil
}
