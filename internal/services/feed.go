package services

import (
	"log"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
)

// ListFilters are the caller-facing filters for a feed listing.
type ListFilters struct {
	Page           int
	Limit          int
	Status         string
	AuthorUsername string
	TagSlug        string
	Sort           string
	Query          string
	FollowingOnly  bool
}

// FeedPost is a post enriched with its author summary, live engagement
// counts and the viewer's like/save state.
type FeedPost struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	LikeCount    int64              `json:"like_count"`
	CommentCount int64              `json:"comment_count"`
	IsLiked      bool               `json:"is_liked"`
	IsSaved      bool               `json:"is_saved"`
}

// PostDetail is a single-post response: the enriched post plus related
// posts by tag overlap.
type PostDetail struct {
	FeedPost
	Related []FeedPost `json:"related_posts"`
}

// FeedService composes paginated post listings from the post store, the
// follow graph and the engagement rows. Counts are always recomputed from
// live rows; there is no cached counter state to drift.
type FeedService struct {
	postRepository      repositories.PostRepository
	userRepository      repositories.UserRepository
	followRepository    repositories.FollowRepository
	likeRepository      repositories.LikeRepository
	savedPostRepository repositories.SavedPostRepository
	relatedContent      *RelatedContentService
}

// NewFeedService creates a new FeedService
func NewFeedService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
	savedPostRepo repositories.SavedPostRepository,
	relatedContent *RelatedContentService,
) *FeedService {
	return &FeedService{
		postRepository:      postRepo,
		userRepository:      userRepo,
		followRepository:    followRepo,
		likeRepository:      likeRepo,
		savedPostRepository: savedPostRepo,
		relatedContent:      relatedContent,
	}
}

// List returns one page of enriched posts. viewer is nil for anonymous
// callers; FollowingOnly then yields a validation error since there is no
// follow set to restrict by.
func (s *FeedService) List(f ListFilters, viewer *models.User) ([]FeedPost, *Pagination, error) {
	f.Page, f.Limit = ClampPage(f.Page, f.Limit, 10)

	switch f.Sort {
	case "", models.SortLatest, models.SortPopular, models.SortTrending:
	default:
		return nil, nil, apperrors.Validation("invalid sort mode: " + f.Sort)
	}

	filters := repositories.PostFilters{
		Page:           f.Page,
		Limit:          f.Limit,
		Status:         f.Status,
		AuthorUsername: f.AuthorUsername,
		TagSlug:        f.TagSlug,
		Sort:           f.Sort,
		Query:          f.Query,
	}
	if viewer != nil {
		filters.ViewerID = viewer.ID
		filters.ViewerIsAdmin = viewer.IsAdmin()
	}

	if f.FollowingOnly {
		if viewer == nil {
			return nil, nil, apperrors.Validation("followingOnly requires an authenticated viewer")
		}
		ids, err := s.followRepository.GetFollowingIDs(viewer.ID)
		if err != nil {
			return nil, nil, err
		}
		// Following no one is an empty feed, not an error.
		if len(ids) == 0 {
			return []FeedPost{}, NewPagination(f.Page, f.Limit, 0), nil
		}
		filters.AuthorIDs = ids
	}

	posts, total, err := s.postRepository.ListPosts(filters)
	if err != nil {
		return nil, nil, err
	}

	enriched, err := s.enrich(posts, viewer)
	if err != nil {
		return nil, nil, err
	}
	return enriched, NewPagination(f.Page, f.Limit, total), nil
}

// GetByID returns one enriched post with related posts attached. A draft
// the viewer may not see reads as not-found, indistinguishable from a post
// that does not exist. Fetching a post counts as a view.
func (s *FeedService) GetByID(id uint, viewer *models.User) (*PostDetail, error) {
	post, err := s.postRepository.GetPostByID(id)
	if err != nil {
		return nil, err
	}
	if !CanViewPost(viewer, post) {
		return nil, apperrors.NotFound("post not found")
	}

	if err := s.postRepository.IncrementViewCount(id); err != nil {
		return nil, err
	}
	post.ViewCount++

	enriched, err := s.enrich([]models.Post{*post}, viewer)
	if err != nil {
		return nil, err
	}

	related, err := s.relatedContent.RelatedTo(post, DefaultRelatedLimit)
	if err != nil {
		return nil, err
	}
	enrichedRelated, err := s.enrich(related, viewer)
	if err != nil {
		return nil, err
	}

	return &PostDetail{FeedPost: enriched[0], Related: enrichedRelated}, nil
}

// enrich attaches author summaries, live counts and viewer flags to a page
// of posts using batched lookups.
func (s *FeedService) enrich(posts []models.Post, viewer *models.User) ([]FeedPost, error) {
	if len(posts) == 0 {
		return []FeedPost{}, nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	likeCounts, err := s.postRepository.GetLikeCounts(postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.postRepository.GetCommentCounts(postIDs)
	if err != nil {
		return nil, err
	}

	likedMap := make(map[uint]bool)
	savedMap := make(map[uint]bool)
	if viewer != nil {
		if likedMap, err = s.likeRepository.GetLikedPostIDs(viewer.ID, postIDs); err != nil {
			return nil, err
		}
		if savedMap, err = s.savedPostRepository.GetSavedPostIDs(viewer.ID, postIDs); err != nil {
			return nil, err
		}
	}

	userCache := make(map[uint]models.UserCompact)
	enriched := make([]FeedPost, len(posts))
	for i, p := range posts {
		author, ok := userCache[p.AuthorID]
		if !ok {
			user, err := s.userRepository.GetUserByID(p.AuthorID)
			if err != nil {
				// A dangling author degrades to an empty profile
				// rather than failing the whole page.
				log.Printf("feed: failed to resolve author %d for post %d: %v", p.AuthorID, p.ID, err)
			} else {
				author = user.ToCompact()
			}
			userCache[p.AuthorID] = author
		}
		enriched[i] = FeedPost{
			Post:         p,
			Author:       author,
			LikeCount:    likeCounts[p.ID],
			CommentCount: commentCounts[p.ID],
			IsLiked:      likedMap[p.ID],
			IsSaved:      savedMap[p.ID],
		}
	}
	return enriched, nil
}
