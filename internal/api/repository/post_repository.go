package repository

import (
	"context"
	"ctchen222/blog-api/internal/api/models"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=post_repository.go -destination=mocks/post_repository_mock.go -package=mocks

// PostRepository defines the interface for post data operations.
// Lookups return a nil post, not an error, when the id is unknown.
type PostRepository interface {
	Create(ctx context.Context, userID models.UserID, title models.Title, content models.Content) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id models.PostID) (*models.Post, error)
	Update(ctx context.Context, id models.PostID, title models.Title, content models.Content) (*models.Post, error)
	Delete(ctx context.Context, id models.PostID) (bool, error)
}

type memoryPostRepository struct {
	mu    sync.Mutex
	posts []models.Post
}

// NewPostRepository creates a new in-memory PostRepository.
func NewPostRepository() PostRepository {
	return &memoryPostRepository{}
}

// Create stores a new post owned by userID under a fresh random id.
func (r *memoryPostRepository) Create(ctx context.Context, userID models.UserID, title models.Title, content models.Content) (*models.Post, error) {
	_, span := tracer.Start(ctx, "PostRepository.Create")
	defer span.End()

	post := models.Post{
		ID:      models.NewPostID(),
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	span.SetAttributes(attribute.String("post.id", post.ID.String()))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.posts = append(r.posts, post)
	return &post, nil
}

// List returns a snapshot of all posts in insertion order.
func (r *memoryPostRepository) List(ctx context.Context) ([]models.Post, error) {
	_, span := tracer.Start(ctx, "PostRepository.List")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.posts), nil
}

// FindByID retrieves a post by its id.
func (r *memoryPostRepository) FindByID(ctx context.Context, id models.PostID) (*models.Post, error) {
	_, span := tracer.Start(ctx, "PostRepository.FindByID", trace.WithAttributes(
		attribute.String("post.id", id.String()),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		post := r.posts[i]
		return &post, nil
	}
	return nil, nil
}

// Update replaces title and content of an existing post in place.
func (r *memoryPostRepository) Update(ctx context.Context, id models.PostID, title models.Title, content models.Content) (*models.Post, error) {
	_, span := tracer.Start(ctx, "PostRepository.Update", trace.WithAttributes(
		attribute.String("post.id", id.String()),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	r.posts[i].Title = title
	r.posts[i].Content = content
	post := r.posts[i]
	return &post, nil
}

// Delete removes a post and reports whether it existed.
func (r *memoryPostRepository) Delete(ctx context.Context, id models.PostID) (bool, error) {
	_, span := tracer.Start(ctx, "PostRepository.Delete", trace.WithAttributes(
		attribute.String("post.id", id.String()),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.posts = slices.Delete(r.posts, i, i+1)
	return true, nil
}

// indexOf must be called with r.mu held.
func (r *memoryPostRepository) indexOf(id models.PostID) int {
	return slices.IndexFunc(r.posts, func(p models.Post) bool {
		return p.ID == id
	})
}
