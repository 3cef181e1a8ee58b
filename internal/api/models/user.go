package models

// User represents a registered user held by the user repository.
type User struct {
	ID           UserID
	Name         Name
	Email        Email
	PasswordHash HashedPassword
}

// Post represents a blog post. UserID is the owner and never changes.
type Post struct {
	ID      PostID
	UserID  UserID
	Title   Title
	Content Content
}
