package repository

import (
	"context"
	"ctchen222/blog-api/internal/api/models"
	"sync"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api.repository")

//go:generate mockgen -source=user_repository.go -destination=mocks/user_repository_mock.go -package=mocks

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, name models.Name, email models.Email, hash models.HashedPassword) (*models.User, error)
	FindByEmail(ctx context.Context, email models.Email) (*models.User, error)
}

type memoryUserRepository struct {
	mu    sync.Mutex
	users []models.User
}

// NewUserRepository creates a new in-memory UserRepository.
func NewUserRepository() UserRepository {
	return &memoryUserRepository{}
}

// Create stores a new user. IDs are sequential and start at 1; since users are
// never removed, the next ID is the current count plus one, taken under the lock.
// Email uniqueness is not enforced.
func (r *memoryUserRepository) Create(ctx context.Context, name models.Name, email models.Email, hash models.HashedPassword) (*models.User, error) {
	_, span := tracer.Start(ctx, "UserRepository.Create")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	user := models.User{
		ID:           models.UserID(len(r.users) + 1),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	r.users = append(r.users, user)
	return &user, nil
}

// FindByEmail returns the earliest registered user with the given email, or nil
// if there is none.
func (r *memoryUserRepository) FindByEmail(ctx context.Context, email models.Email) (*models.User, error) {
	_, span := tracer.Start(ctx, "UserRepository.FindByEmail")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].Email == email {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, nil // No user found is not an application error
}
