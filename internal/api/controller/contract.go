package controller

import (
	"context"
	"ctchen222/blog-api/internal/api/models"
	"ctchen222/blog-api/internal/api/response"
	"ctchen222/blog-api/internal/api/service"
	"ctchen222/blog-api/internal/auth"
	"ctchen222/blog-api/internal/validator"
	"ctchen222/blog-api/pkg/proto"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
)

// TokenVerifier verifies session tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Contract implements the request phases shared by every endpoint:
// extraction, validation on the worker pool, and token authentication.
type Contract struct {
	pool    *validator.Pool
	timeout time.Duration
	tokens  TokenVerifier
}

// NewContract creates a Contract. A non-positive timeout lets validation wait
// as long as the request context allows.
func NewContract(pool *validator.Pool, timeout time.Duration, tokens TokenVerifier) *Contract {
	return &Contract{
		pool:    pool,
		timeout: timeout,
		tokens:  tokens,
	}
}

// authorization extracts the raw Authorization header. A missing header or one
// that is not printable ASCII is an extraction failure.
func (ct *Contract) authorization(c *gin.Context) (string, error) {
	values, ok := c.Request.Header[http.CanonicalHeaderKey(headerAuthorization)]
	if !ok || len(values) == 0 {
		return "", response.NewExtractionError("Missing required header Authorization")
	}

	raw := values[0]
	if err := validator.Var(headerAuthorization, raw, "printascii"); err != nil {
		return "", response.NewExtractionError("Invalid header Authorization - value must be printable ASCII")
	}
	return raw, nil
}

// bindJSON decodes the request body into dst.
func (ct *Contract) bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return response.NewExtractionError(fmt.Sprintf("Invalid request body - %v", err))
	}
	return nil
}

// validate runs fn on the validation pool and waits for it. fn must only touch
// values copied out of the request, never the gin context.
func (ct *Contract) validate(ctx context.Context, fn func() error) error {
	if ct.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ct.timeout)
		defer cancel()
	}

	err := ct.pool.Do(ctx, fn)
	if err == nil {
		return nil
	}

	var fields validator.Errors
	if errors.As(err, &fields) {
		return response.NewValidationError(fields)
	}
	return response.NewInternalError(fmt.Errorf("validation did not complete: %w", err))
}

// identify verifies the bearer token and returns its subject.
//
// Every occurrence of "Bearer " is removed from the header value, not only a
// leading one, and a value without it is verified as is.
func (ct *Contract) identify(raw string) (models.UserID, error) {
	token := strings.ReplaceAll(raw, bearerPrefix, "")

	claims, err := ct.tokens.Verify(token)
	if err != nil {
		return 0, response.NewAuthenticationError(err)
	}
	return claims.UserID, nil
}

// postID validates the {postId} path parameter.
func postID(raw string) (models.PostID, error) {
	if err := validator.Struct(proto.PostPath{PostID: raw}); err != nil {
		return models.PostID{}, err
	}

	id, err := models.ParsePostID(raw)
	if err != nil {
		return models.PostID{}, validator.Errors{{
			Field:   "postId",
			Tag:     "uuid",
			Message: "postId must be a UUID",
		}}
	}
	return id, nil
}

// classify turns a domain error into a request failure, logging internal ones.
func classify(ctx context.Context, err error) error {
	var e *response.Error
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		e = response.NewAuthenticationError(err)
	case errors.Is(err, service.ErrNotOwner):
		e = response.NewAuthorizationError(err)
	case errors.Is(err, service.ErrPostNotFound):
		e = response.NewNotFoundError(err)
	default:
		e = response.AsError(err)
	}

	if e.Kind == response.KindInternal {
		slog.ErrorContext(ctx, "request failed", "kind", e.Kind, "error", err)
	} else {
		slog.DebugContext(ctx, "request rejected", "kind", e.Kind, "status", e.Kind.Status())
	}
	return e
}
