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
)

var (
	tracer = otel.Tracer("api.service")
	meter  = otel.Meter("api.service")
)

// ErrInvalidCredentials is returned for an unknown email as well as for a wrong
// password; callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid email or password")

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password models.Password) (models.HashedPassword, error)
	Verify(password models.Password, hash models.HashedPassword) bool
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(userID models.UserID) (string, error)
}

// UserService defines the interface for user-related business logic.
type UserService interface {
	Register(ctx context.Context, req *proto.RegisterUserRequest) (*models.User, error)
	Authenticate(ctx context.Context, req *proto.AuthRequest) (string, error)
}

type userService struct {
	userRepo     repository.UserRepository
	hasher       PasswordHasher
	tokens       TokenIssuer
	authAttempts metric.Int64Counter
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) UserService {
	authAttempts, err := meter.Int64Counter("auth.attempts",
		metric.WithDescription("Authentication attempts by result"),
	)
	if err != nil {
		otel.Handle(err)
	}
	return &userService{
		userRepo:     userRepo,
		hasher:       hasher,
		tokens:       tokens,
		authAttempts: authAttempts,
	}
}

// Register hashes the password and stores a new user.
func (s *userService) Register(ctx context.Context, req *proto.RegisterUserRequest) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserService.Register")
	defer span.End()

	hash, err := s.hasher.Hash(models.Password(req.Password))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := s.userRepo.Create(ctx, models.Name(req.Name), models.Email(req.Email), hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	span.SetAttributes(attribute.Int64("user.id", int64(user.ID)))
	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate looks up the user by email, verifies the password and returns a session token.
func (s *userService) Authenticate(ctx context.Context, req *proto.AuthRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()

	user, err := s.userRepo.FindByEmail(ctx, models.Email(req.Email))
	if err != nil {
		return "", err
	}
	if user == nil || !s.hasher.Verify(models.Password(req.Password), user.PasswordHash) {
		s.recordAttempt(ctx, "rejected")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}

	s.recordAttempt(ctx, "accepted")
	return token, nil
}

func (s *userService) recordAttempt(ctx context.Context, result string) {
	if s.authAttempts == nil {
		return
	}
	s.authAttempts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
