package services

import "github.com/pulseline-app/backend/internal/models"

// CanViewPost is the single capability query for post visibility: drafts
// are visible only to their author and to admins. Every read path (feed,
// single post, related, search) goes through this instead of re-deriving
// ownership rules.
func CanViewPost(viewer *models.User, post *models.Post) bool {
	if post.IsPublished() {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.ID == post.AuthorID || viewer.IsAdmin()
}
