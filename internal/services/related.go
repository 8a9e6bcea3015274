package services

import (
	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
)

// DefaultRelatedLimit is how many related posts a single-post fetch attaches.
const DefaultRelatedLimit = 3

// RelatedContentService finds published posts related to a source post by
// tag overlap.
type RelatedContentService struct {
	postRepository repositories.PostRepository
}

// NewRelatedContentService creates a new RelatedContentService
func NewRelatedContentService(postRepo repositories.PostRepository) *RelatedContentService {
	return &RelatedContentService{postRepository: postRepo}
}

// RelatedTo returns up to limit published posts sharing tags with post,
// most shared tags first, newest first on ties. A post without tags has no
// related posts; it never falls back to a generic recent-posts list.
func (s *RelatedContentService) RelatedTo(post *models.Post, limit int) ([]models.Post, error) {
	if len(post.Tags) == 0 {
		return []models.Post{}, nil
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	tagIDs := make([]uint, len(post.Tags))
	for i, t := range post.Tags {
		tagIDs[i] = t.ID
	}
	return s.postRepository.GetRelatedPosts(post.ID, tagIDs, limit)
}
