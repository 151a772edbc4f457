package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProjectKeyPrefix  = "project:%s"
	ProjectsListKey   = "projects:list"
	BlogPostKeyPrefix = "blog:%s"
	GithubRepoPrefix  = "github:%s/%s"
)

const (
	ProjectTTL    = 10 * time.Minute
	ListTTL       = 2 * time.Minute
	BlogPostTTL   = 10 * time.Minute
	GithubRepoTTL = 10 * time.Minute
)

func ProjectKey(slug string) string {
	return fmt.Sprintf(ProjectKeyPrefix, slug)
}

func BlogPostKey(slug string) string {
	return fmt.Sprintf(BlogPostKeyPrefix, slug)
}

func GithubRepoKey(owner, repo string) string {
	return fmt.Sprintf(GithubRepoPrefix, owner, repo)
}

func InvalidateProject(ctx context.Context, slug string) {
	Invalidate(ctx, ProjectKey(slug))
	Invalidate(ctx, ProjectsListKey)
}

func InvalidateBlogPost(ctx context.Context, slug string) {
	Invalidate(ctx, BlogPostKey(slug))
}
