package service

import "ctchen222/blog-api/internal/api/models"

// CanMutate reports whether actor may update or delete post. Only the owner may.
func CanMutate(post *models.Post, actor models.UserID) bool {
	return post.UserID == actor
}
