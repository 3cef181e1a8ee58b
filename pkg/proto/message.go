package proto

import "ctchen222/blog-api/internal/api/models"

// RegisterUserRequest is the body of POST /users.
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthRequest is the body of POST /auth.
type AuthRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PostRequest is the body of POST /posts and PUT /posts/{postId}.
type PostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// PostPath carries the {postId} path parameter.
type PostPath struct {
	PostID string `json:"postId" validate:"required"`
}

// User is the public representation of a user. The password hash is never part of it.
type User struct {
	ID    models.UserID `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
}

// Post is the public representation of a post.
type Post struct {
	ID      models.PostID `json:"id"`
	UserID  models.UserID `json:"userId"`
	Title   string        `json:"title"`
	Content string        `json:"content"`
}

// Token is the body returned by a successful POST /auth.
type Token struct {
	Token string `json:"token"`
}

// NewUser converts a stored user into its public representation.
func NewUser(u *models.User) User {
	return User{
		ID:    u.ID,
		Name:  string(u.Name),
		Email: string(u.Email),
	}
}

// NewPost converts a stored post into its public representation.
func NewPost(p *models.Post) Post {
	return Post{
		ID:      p.ID,
		UserID:  p.UserID,
		Title:   string(p.Title),
		Content: string(p.Content),
	}
}

// NewPosts converts a snapshot of posts. The result is never nil so that an
// empty list encodes as [].
func NewPosts(posts []models.Post) []Post {
	out := make([]Post, 0, len(posts))
	for i := range posts {
		out = append(out, NewPost(&posts[i]))
	}
	return out
}
