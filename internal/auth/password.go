package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"ctchen222/blog-api/internal/api/models"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// ErrHashing is returned when a password hash could not be produced.
var ErrHashing = errors.New("failed to hash password")

const (
	algArgon2id = "argon2id"
	algArgon2i  = "argon2i"
)

// Argon2Params holds the parameters for Argon2 hashing.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
	SaltLength  uint32
}

// DefaultArgon2Params are the OWASP minimum recommendation for argon2id.
var DefaultArgon2Params = Argon2Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// PasswordHasher hashes and verifies passwords. Hashes are PHC-formatted
// strings that embed the algorithm, its parameters and the salt, so
// verification needs nothing besides the record itself.
type PasswordHasher struct {
	params Argon2Params
	rand   io.Reader
}

// NewPasswordHasher creates a PasswordHasher. Zero fields fall back to DefaultArgon2Params.
func NewPasswordHasher(params Argon2Params) *PasswordHasher {
	if params.Memory == 0 {
		params.Memory = DefaultArgon2Params.Memory
	}
	if params.Iterations == 0 {
		params.Iterations = DefaultArgon2Params.Iterations
	}
	if params.Parallelism == 0 {
		params.Parallelism = DefaultArgon2Params.Parallelism
	}
	if params.KeyLength == 0 {
		params.KeyLength = DefaultArgon2Params.KeyLength
	}
	if params.SaltLength == 0 {
		params.SaltLength = DefaultArgon2Params.SaltLength
	}
	return &PasswordHasher{params: params, rand: rand.Reader}
}

// Hash derives an argon2id hash of password using a fresh random salt.
func (h *PasswordHasher) Hash(password models.Password) (models.HashedPassword, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	encoded := fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algArgon2id,
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return models.HashedPassword(encoded), nil
}

// Verify reports whether password matches the hash record. A malformed record never matches.
func (h *PasswordHasher) Verify(password models.Password, hash models.HashedPassword) bool {
	record := string(hash)

	if isBcrypt(record) {
		return bcrypt.CompareHashAndPassword([]byte(record), []byte(password)) == nil
	}

	parsed, err := parseArgon2(record)
	if err != nil {
		return false
	}

	var key []byte
	switch parsed.alg {
	case algArgon2id:
		key = argon2.IDKey([]byte(password), parsed.salt, parsed.iterations, parsed.memory, parsed.parallelism, uint32(len(parsed.digest)))
	case algArgon2i:
		key = argon2.Key([]byte(password), parsed.salt, parsed.iterations, parsed.memory, parsed.parallelism, uint32(len(parsed.digest)))
	default:
		return false
	}

	return subtle.ConstantTimeCompare(key, parsed.digest) == 1
}

func isBcrypt(record string) bool {
	return strings.HasPrefix(record, "$2a$") ||
		strings.HasPrefix(record, "$2b$") ||
		strings.HasPrefix(record, "$2y$")
}

type argon2Record struct {
	alg         string
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	digest      []byte
}

var errMalformedHash = errors.New("malformed password hash")

// parseArgon2 parses "$<alg>$v=<n>$m=<n>,t=<n>,p=<n>$<salt>$<digest>".
func parseArgon2(record string) (*argon2Record, error) {
	parts := strings.Split(record, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errMalformedHash
	}

	r := &argon2Record{alg: parts[1]}
	if r.alg != algArgon2id && r.alg != algArgon2i {
		return nil, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, errMalformedHash
	}

	var parallelism uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &r.memory, &r.iterations, &parallelism); err != nil {
		return nil, errMalformedHash
	}
	if r.iterations < 1 || parallelism < 1 || parallelism > 255 {
		return nil, errMalformedHash
	}
	r.parallelism = uint8(parallelism)

	var err error
	if r.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(r.salt) == 0 {
		return nil, errMalformedHash
	}
	if r.digest, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(r.digest) == 0 {
		return nil, errMalformedHash
	}
	return r, nil
}
