package models

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
)

// UserID identifies a registered user. IDs are assigned sequentially starting at 1.
type UserID int64

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseUserID parses the decimal form produced by UserID.String.
func ParseUserID(s string) (UserID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return UserID(v), nil
}

// PostID is the random 128-bit identifier of a post.
type PostID uuid.UUID

// NewPostID returns a fresh random (version 4) post id.
func NewPostID() PostID {
	return PostID(uuid.New())
}

// canonicalPostIDLen is the length of xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
const canonicalPostIDLen = 36

// ParsePostID parses the canonical textual form of a post id. The braced,
// urn:uuid: and undashed spellings that uuid.Parse also accepts are rejected.
func ParsePostID(s string) (PostID, error) {
	if len(s) != canonicalPostIDLen {
		return PostID{}, fmt.Errorf("invalid post id %q: not in canonical form", s)
	}
	v, err := uuid.Parse(s)
	if err != nil {
		return PostID{}, err
	}
	return PostID(v), nil
}

func (id PostID) String() string {
	return uuid.UUID(id).String()
}

func (id PostID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *PostID) UnmarshalText(data []byte) error {
	v, err := ParsePostID(string(data))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

type (
	Name    string
	Email   string
	Title   string
	Content string
)

// Password is a plaintext password as received from a client. It is never stored.
type Password string

func (Password) String() string { return "[redacted]" }

func (Password) LogValue() slog.Value { return slog.StringValue("[redacted]") }

// HashedPassword is a self-describing password hash record.
type HashedPassword string

func (HashedPassword) String() string { return "[redacted]" }

func (HashedPassword) LogValue() slog.Value { return slog.StringValue("[redacted]") }
