package service

import (
	"context"
	"ctchen222/blog-api/internal/api/models"
	"ctchen222/blog-api/internal/api/repository/mocks"
	"ctchen222/blog-api/internal/auth"
	"ctchen222/blog-api/pkg/proto"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var cheapArgon2 = auth.Argon2Params{Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 16, SaltLength: 8}

type fakeHasher struct {
	hashErr error
}

func (f fakeHasher) Hash(models.Password) (models.HashedPassword, error) {
	return "", f.hashErr
}

func (f fakeHasher) Verify(models.Password, models.HashedPassword) bool { return false }

func TestUserService_RegisterStoresHashOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	hasher := auth.NewPasswordHasher(cheapArgon2)
	svc := NewUserService(repo, hasher, auth.NewTokenService([]byte("k"), time.Minute))

	repo.EXPECT().
		Create(gomock.Any(), models.Name("A"), models.Email("a@x.com"), gomock.Any()).
		DoAndReturn(func(_ context.Context, name models.Name, email models.Email, hash models.HashedPassword) (*models.User, error) {
			assert.NotEqual(t, models.HashedPassword("secret123"), hash)
			assert.True(t, hasher.Verify("secret123", hash))
			return &models.User{ID: 1, Name: name, Email: email, PasswordHash: hash}, nil
		})

	user, err := svc.Register(context.Background(), &proto.RegisterUserRequest{Name: "A", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.UserID(1), user.ID)
}

func TestUserService_RegisterHashFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	svc := NewUserService(repo, fakeHasher{hashErr: auth.ErrHashing}, auth.NewTokenService([]byte("k"), time.Minute))

	_, err := svc.Register(context.Background(), &proto.RegisterUserRequest{Name: "A", Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, auth.ErrHashing)
}

func TestUserService_Authenticate(t *testing.T) {
	hasher := auth.NewPasswordHasher(cheapArgon2)
	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	stored := &models.User{ID: 5, Name: "A", Email: "a@x.com", PasswordHash: hash}
	tokens := auth.NewTokenService([]byte("k"), time.Minute)
	lookupErr := errors.New("lookup failed")

	tests := []struct {
		name     string
		found    *models.User
		findErr  error
		password string
		wantErr  error
	}{
		{name: "valid credentials", found: stored, password: "secret123"},
		{name: "wrong password", found: stored, password: "secret124", wantErr: ErrInvalidCredentials},
		{name: "unknown email", found: nil, password: "secret123", wantErr: ErrInvalidCredentials},
		{name: "lookup failure", findErr: lookupErr, password: "secret123", wantErr: lookupErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockUserRepository(ctrl)
			repo.EXPECT().FindByEmail(gomock.Any(), models.Email("a@x.com")).Return(tt.found, tt.findErr)

			svc := NewUserService(repo, hasher, tokens)
			token, err := svc.Authenticate(context.Background(), &proto.AuthRequest{Email: "a@x.com", Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)

			claims, err := tokens.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, models.UserID(5), claims.UserID)
		})
	}
}
