package services

import (
	"log"
	"strings"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
)

const (
	// MinQueryLength is the shortest query the search engine accepts;
	// anything shorter would match nearly everything.
	MinQueryLength = 2

	// DefaultSuggestionLimit is the per-category cap for autocomplete.
	DefaultSuggestionLimit = 5
)

// PostSuggestion is the compact post shape returned by autocomplete.
type PostSuggestion struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// Suggestions holds one autocomplete result set per category.
type Suggestions struct {
	Posts []PostSuggestion     `json:"posts"`
	Users []models.UserCompact `json:"users"`
}

// SearchResults is the merged result of a global search. Each side carries
// its own total; a failed side appears empty rather than failing the whole
// request.
type SearchResults struct {
	Posts      []models.Post        `json:"posts"`
	PostsTotal int64                `json:"posts_total"`
	Users      []models.UserCompact `json:"users"`
	UsersTotal int64                `json:"users_total"`
}

// SearchService matches posts by title and users by username/display name,
// case-insensitive substring in both cases.
type SearchService struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *SearchService {
	return &SearchService{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// Suggest returns autocomplete candidates for both categories. A query
// under the minimum length yields empty results without touching the
// store; autocomplete fires on every keystroke and that is not an error.
func (s *SearchService) Suggest(query string, limit int) (*Suggestions, error) {
	suggestions := &Suggestions{
		Posts: []PostSuggestion{},
		Users: []models.UserCompact{},
	}

	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		return suggestions, nil
	}
	if limit < 1 || limit > MaxPageLimit {
		limit = DefaultSuggestionLimit
	}

	posts, err := s.postRepository.SuggestPosts(query, limit)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		suggestions.Posts = append(suggestions.Posts, PostSuggestion{ID: p.ID, Title: p.Title})
	}

	users, _, err := s.userRepository.SearchUsers(query, 1, limit)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		suggestions.Users = append(suggestions.Users, u.ToCompact())
	}

	return suggestions, nil
}

// SearchPosts runs a paginated title search over published posts.
func (s *SearchService) SearchPosts(query string, page, limit int) ([]models.Post, int64, error) {
	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		return nil, 0, apperrors.Validation("search query must be at least 2 characters")
	}
	return s.postRepository.SearchPosts(query, page, limit)
}

// SearchUsers runs a paginated search over active users.
func (s *SearchService) SearchUsers(query string, page, limit int) ([]models.UserCompact, int64, error) {
	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		return nil, 0, apperrors.Validation("search query must be at least 2 characters")
	}

	users, total, err := s.userRepository.SearchUsers(query, page, limit)
	if err != nil {
		return nil, 0, err
	}

	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = u.ToCompact()
	}
	return compact, total, nil
}

// SearchAll runs the post and user searches independently and merges the
// results. One side failing degrades that category to empty rather than
// failing the request; the failure is logged.
func (s *SearchService) SearchAll(query string, page, limit int) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		return nil, apperrors.Validation("search query must be at least 2 characters")
	}

	results := &SearchResults{
		Posts: []models.Post{},
		Users: []models.UserCompact{},
	}

	posts, postsTotal, err := s.postRepository.SearchPosts(query, page, limit)
	if err != nil {
		log.Printf("search: post search failed for %q: %v", query, err)
	} else {
		results.Posts = posts
		results.PostsTotal = postsTotal
	}

	users, usersTotal, err := s.userRepository.SearchUsers(query, page, limit)
	if err != nil {
		log.Printf("search: user search failed for %q: %v", query, err)
	} else {
		for _, u := range users {
			results.Users = append(results.Users, u.ToCompact())
		}
		results.UsersTotal = usersTotal
	}

	return results, nil
}
