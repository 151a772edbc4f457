package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"portfolio/internal/models"
)

type blogRepoStub struct {
	listPublishedFn      func(context.Context) ([]*models.BlogPost, error)
	listAllFn            func(context.Context) ([]*models.BlogPost, error)
	getByIDFn            func(context.Context, uint) (*models.BlogPost, error)
	getPublishedBySlugFn func(context.Context, string) (*models.BlogPost, error)
	getBySlugFn          func(context.Context, string) (*models.BlogPost, error)
	createFn             func(context.Context, *models.BlogPost) error
	updateFn             func(context.Context, *models.BlogPost) error
	deleteFn             func(context.Context, uint) error
}

func (s *blogRepoStub) ListPublished(ctx context.Context) ([]*models.BlogPost, error) {
	return s.listPublishedFn(ctx)
}
func (s *blogRepoStub) ListAll(ctx context.Context) ([]*models.BlogPost, error) {
	return s.listAllFn(ctx)
}
func (s *blogRepoStub) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	return s.getByIDFn(ctx, id)
}
func (s *blogRepoStub) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.getPublishedBySlugFn(ctx, slug)
}
func (s *blogRepoStub) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *blogRepoStub) Create(ctx context.Context, post *models.BlogPost) error {
	return s.createFn(ctx, post)
}
func (s *blogRepoStub) Update(ctx context.Context, post *models.BlogPost) error {
	return s.updateFn(ctx, post)
}
func (s *blogRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		listPublishedFn:      func(context.Context) ([]*models.BlogPost, error) { return nil, nil },
		listAllFn:            func(context.Context) ([]*models.BlogPost, error) { return nil, nil },
		getByIDFn:            func(context.Context, uint) (*models.BlogPost, error) { return &models.BlogPost{}, nil },
		getPublishedBySlugFn: func(context.Context, string) (*models.BlogPost, error) { return &models.BlogPost{}, nil },
		getBySlugFn:          func(context.Context, string) (*models.BlogPost, error) { return &models.BlogPost{}, nil },
		createFn:             func(context.Context, *models.BlogPost) error { return nil },
		updateFn:             func(context.Context, *models.BlogPost) error { return nil },
		deleteFn:             func(context.Context, uint) error { return nil },
	}
}

func TestReadingTime(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 1},
		{"whitespace only", "   \n\t  ", 1},
		{"one word", "hello", 1},
		{"exactly 200 words", strings.Repeat("word ", 200), 1},
		{"201 words rounds up", strings.Repeat("word ", 201), 2},
		{"600 words", strings.Repeat("word ", 600), 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReadingTime(tc.content); got != tc.want {
				t.Fatalf("ReadingTime = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBlogCreateDerivesReadingTime(t *testing.T) {
	svc := NewBlogService(noopBlogRepo())
	post := &models.BlogPost{
		Title:   "Notes",
		Slug:    "notes",
		Content: strings.Repeat("word ", 450),
		Status:  models.BlogPostStatusDraft,
	}
	if err := svc.Create(context.Background(), post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ReadingTime != 3 {
		t.Fatalf("expected reading time 3, got %d", post.ReadingTime)
	}
	if post.PublishedAt != nil {
		t.Fatal("draft must not get a published_at stamp")
	}
}

func TestBlogCreatePublishedStampsTimestamp(t *testing.T) {
	svc := NewBlogService(noopBlogRepo())
	post := &models.BlogPost{
		Title:   "Launch",
		Slug:    "launch",
		Content: "short post",
		Status:  models.BlogPostStatusPublished,
	}
	if err := svc.Create(context.Background(), post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.PublishedAt == nil {
		t.Fatal("expected published_at to be stamped")
	}
}

func TestBlogUpdatePreservesOriginalPublishedAt(t *testing.T) {
	svc := NewBlogService(noopBlogRepo())
	original := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	post := &models.BlogPost{
		ID:          2,
		Content:     "edited content",
		Status:      models.BlogPostStatusPublished,
		PublishedAt: &original,
	}
	if err := svc.Update(context.Background(), post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.PublishedAt == nil || !post.PublishedAt.Equal(original) {
		t.Fatalf("expected published_at to stay %v, got %v", original, post.PublishedAt)
	}
}
