package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/hellopost/internal/cache"
	"github.com/dropDatabas3/hellopost/internal/domain/repository"
	"github.com/dropDatabas3/hellopost/internal/http/dto"
	"github.com/dropDatabas3/hellopost/internal/observability/logger"
)

// Post service errors.
var (
	ErrPostMissingFields = fmt.Errorf("owner_id, title and content are required")
)

// PostService exposes post operations to the HTTP surface.
type PostService interface {
	Create(ctx context.Context, req dto.PostCreateRequest) (string, error)
	GetAll(ctx context.Context) ([]repository.Post, error)
	GetByOwner(ctx context.Context, ownerID string) ([]repository.Post, error)
	Update(ctx context.Context, id string, input repository.UpdatePostInput) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PostDeps contains the post service dependencies.
type PostDeps struct {
	Posts    repository.PostRepository
	Cache    cache.Client
	CacheTTL time.Duration
}

type postService struct {
	deps PostDeps
}

// NewPostService creates a PostService.
func NewPostService(deps PostDeps) PostService {
	return &postService{deps: deps}
}

// Create validates the request and inserts the post. The owner id is not
// required to reference an existing account.
func (s *postService) Create(ctx context.Context, req dto.PostCreateRequest) (string, error) {
	if strings.TrimSpace(req.OwnerID) == "" || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return "", ErrPostMissingFields
	}

	id, err := s.deps.Posts.Create(ctx, repository.CreatePostInput{
		OwnerID: req.OwnerID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return "", err
	}

	if cerr := s.deps.Cache.Delete(ctx, ownerFeedCacheKey(req.OwnerID)); cerr != nil {
		logger.From(ctx).Warn("owner feed cache invalidation failed", logger.Err(cerr))
	}
	return id, nil
}

// GetAll lists every post straight from the repository.
func (s *postService) GetAll(ctx context.Context) ([]repository.Post, error) {
	return s.deps.Posts.GetAll(ctx)
}

// GetByOwner reads the owner's feed through the cache. Single-post edits
// do not invalidate the feed, so it may serve a stale title or content for
// up to the TTL; account-level cascades invalidate it explicitly.
func (s *postService) GetByOwner(ctx context.Context, ownerID string) ([]repository.Post, error) {
	ck := ownerFeedCacheKey(ownerID)

	if b, err := s.deps.Cache.Get(ctx, ck); err == nil {
		var posts []repository.Post
		if err := json.Unmarshal(b, &posts); err == nil {
			return posts, nil
		}
		_ = s.deps.Cache.Delete(ctx, ck)
	}

	posts, err := s.deps.Posts.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(posts); err == nil {
		if cerr := s.deps.Cache.Set(ctx, ck, b, s.deps.CacheTTL); cerr != nil {
			logger.From(ctx).Warn("owner feed cache set failed", logger.Err(cerr))
		}
	}
	return posts, nil
}

// Update applies a partial edit to a single post.
func (s *postService) Update(ctx context.Context, id string, input repository.UpdatePostInput) (bool, error) {
	return s.deps.Posts.Update(ctx, id, input)
}

// Delete removes a single post.
func (s *postService) Delete(ctx context.Context, id string) (bool, error) {
	return s.deps.Posts.Delete(ctx, id)
}
