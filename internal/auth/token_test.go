package auth

import (
	"ctchen222/blog-api/internal/api/models"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	s := NewTokenService([]byte("super-secret"), time.Hour)

	tok, err := s.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, models.UserID(42), claims.UserID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestTokenService_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewTokenService([]byte("secret"), DefaultTokenTTL, WithClock(clock.Now))

	tok, err := s.Issue(1)
	require.NoError(t, err)

	clock.now = clock.now.Add(DefaultTokenTTL - time.Second)
	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, models.UserID(1), claims.UserID)

	clock.now = clock.now.Add(2 * time.Second)
	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService([]byte("right-secret"), time.Hour).Issue(7)
	require.NoError(t, err)

	_, err = NewTokenService([]byte("wrong-secret"), time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	s := NewTokenService([]byte("k"), time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "abc", "Bearer x.y.z"} {
		_, err := s.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	s := NewTokenService(secret, time.Hour)
	for _, tok := range []string{hs512, none} {
		_, err := s.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenBadSignature)
	}
}

func TestTokenService_RequiresNumericSubjectAndExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	s := NewTokenService(secret, time.Hour)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "1",
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = s.Verify(badSubject)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = s.Verify(noExpiry)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	s := NewTokenService([]byte("k"), 0)
	assert.Equal(t, DefaultTokenTTL, s.ttl)
}
