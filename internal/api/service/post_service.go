package service

import (
	"context"
	"ctchen222/blog-api/internal/api/models"
	"ctchen222/blog-api/internal/api/repository"
	"ctchen222/blog-api/pkg/proto"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("post belongs to another user")
)

// PostService defines the interface for post-related business logic.
// actor is always the user id taken from a verified session token.
type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, actor models.UserID, req *proto.PostRequest) (*models.Post, error)
	Get(ctx context.Context, id models.PostID) (*models.Post, error)
	Update(ctx context.Context, actor models.UserID, id models.PostID, req *proto.PostRequest) (*models.Post, error)
	Delete(ctx context.Context, actor models.UserID, id models.PostID) error
}

type postService struct {
	postRepo repository.PostRepository
	denied   metric.Int64Counter
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) PostService {
	denied, err := meter.Int64Counter("posts.mutations.denied",
		metric.WithDescription("Update or delete attempts rejected by the ownership check"),
	)
	if err != nil {
		otel.Handle(err)
	}
	return &postService{postRepo: postRepo, denied: denied}
}

// List returns every post; reading is not restricted to owners.
func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	ctx, span := tracer.Start(ctx, "PostService.List")
	defer span.End()

	return s.postRepo.List(ctx)
}

// Create stores a new post owned by actor.
func (s *postService) Create(ctx context.Context, actor models.UserID, req *proto.PostRequest) (*models.Post, error) {
	ctx, span := tracer.Start(ctx, "PostService.Create", trace.WithAttributes(
		attribute.Int64("user.id", int64(actor)),
	))
	defer span.End()

	post, err := s.postRepo.Create(ctx, actor, models.Title(req.Title), models.Content(req.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// Get retrieves a single post.
func (s *postService) Get(ctx context.Context, id models.PostID) (*models.Post, error) {
	ctx, span := tracer.Start(ctx, "PostService.Get", trace.WithAttributes(
		attribute.String("post.id", id.String()),
	))
	defer span.End()

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Update changes title and content of a post owned by actor.
func (s *postService) Update(ctx context.Context, actor models.UserID, id models.PostID, req *proto.PostRequest) (*models.Post, error) {
	ctx, span := tracer.Start(ctx, "PostService.Update", trace.WithAttributes(
		attribute.Int64("user.id", int64(actor)),
		attribute.String("post.id", id.String()),
	))
	defer span.End()

	if err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}

	post, err := s.postRepo.Update(ctx, id, models.Title(req.Title), models.Content(req.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if post == nil {
		// deleted by its owner between the check and the update
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Delete removes a post owned by actor.
func (s *postService) Delete(ctx context.Context, actor models.UserID, id models.PostID) error {
	ctx, span := tracer.Start(ctx, "PostService.Delete", trace.WithAttributes(
		attribute.Int64("user.id", int64(actor)),
		attribute.String("post.id", id.String()),
	))
	defer span.End()

	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}

	deleted, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if !deleted {
		return ErrPostNotFound
	}
	return nil
}

// authorize loads the post and applies CanMutate.
func (s *postService) authorize(ctx context.Context, actor models.UserID, id models.PostID) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if !CanMutate(post, actor) {
		slog.WarnContext(ctx, "ownership check failed", "post_id", id.String(), "user_id", actor, "owner_id", post.UserID)
		if s.denied != nil {
			s.denied.Add(ctx, 1)
		}
		return ErrNotOwner
	}
	return nil
}
