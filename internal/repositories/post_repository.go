package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
)

// trendingWindow bounds the trending sort to recently created posts.
const trendingWindow = 7 * 24 * time.Hour

// PostFilters narrows and orders a post listing.
type PostFilters struct {
	Page           int
	Limit          int
	Status         string
	AuthorUsername string
	TagSlug        string
	Sort           string // latest, popular, trending
	Query          string
	ViewerID       uint // 0 for anonymous
	ViewerIsAdmin  bool
	AuthorIDs      []uint // restrict authorship (following feed); nil = no restriction
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	UpdatePost(post *models.Post) error
	ReplaceTags(post *models.Post, tags []models.Tag) error
	DeletePost(id uint) error
	ListPosts(f PostFilters) ([]models.Post, int64, error)
	IncrementViewCount(id uint) error
	GetRelatedPosts(postID uint, tagIDs []uint, limit int) ([]models.Post, error)
	GetLikeCounts(postIDs []uint) (map[uint]int64, error)
	GetCommentCounts(postIDs []uint) (map[uint]int64, error)
	SearchPosts(query string, page, limit int) ([]models.Post, int64, error)
	SuggestPosts(query string, limit int) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post with its tags. Visibility is the caller's
// concern; drafts are returned here.
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Tags").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post not found")
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Omit("Tags").Save(post).Error
}

// ReplaceTags swaps the post's tag associations for the given set
func (r *PostgresPostRepository) ReplaceTags(post *models.Post, tags []models.Tag) error {
	if err := r.db.Model(post).Association("Tags").Replace(tags); err != nil {
		return err
	}
	post.Tags = tags
	return nil
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("post not found")
	}
	return nil
}

// applyFilters translates PostFilters into query conditions. Returned
// queries are single-use; call it once per statement.
func (r *PostgresPostRepository) applyFilters(f PostFilters) *gorm.DB {
	q := r.db.Model(&models.Post{}).Select("posts.*")

	// Visibility: drafts only ever surface for their author (or an admin
	// explicitly asking for drafts).
	switch {
	case f.Status == models.PostStatusDraft && f.ViewerIsAdmin:
		q = q.Where("posts.status = ?", models.PostStatusDraft)
	case f.Status == models.PostStatusDraft && f.ViewerID != 0:
		q = q.Where("posts.status = ? AND posts.author_id = ?", models.PostStatusDraft, f.ViewerID)
	default:
		q = q.Where("posts.status = ?", models.PostStatusPublished)
	}

	if f.AuthorUsername != "" {
		q = q.Joins("JOIN users ON users.id = posts.author_id").
			Where("users.username = ?", f.AuthorUsername)
	}

	if f.TagSlug != "" {
		q = q.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", f.TagSlug)
	}

	if f.Query != "" {
		q = q.Where("LOWER(posts.title) LIKE LOWER(?)", "%"+f.Query+"%")
	}

	if f.AuthorIDs != nil {
		q = q.Where("posts.author_id IN ?", f.AuthorIDs)
	}

	if f.Sort == models.SortTrending {
		q = q.Where("posts.created_at >= ?", time.Now().Add(-trendingWindow))
	}

	return q
}

// ListPosts returns one page of posts under the given filters plus the
// total match count.
func (r *PostgresPostRepository) ListPosts(f PostFilters) ([]models.Post, int64, error) {
	var total int64
	if err := r.applyFilters(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.applyFilters(f)
	switch f.Sort {
	case models.SortPopular:
		q = q.Order("posts.view_count DESC, posts.created_at DESC")
	case models.SortTrending:
		// Engagement is computed live from the like rows so the ordering
		// never drifts from the real counts.
		q = q.Order("posts.view_count + (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) DESC, posts.created_at DESC")
	default:
		q = q.Order("posts.created_at DESC")
	}

	var posts []models.Post
	offset := (f.Page - 1) * f.Limit
	err := q.Offset(offset).Limit(f.Limit).Preload("Tags").Find(&posts).Error
	return posts, total, err
}

// IncrementViewCount bumps the view counter atomically in the store
func (r *PostgresPostRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// GetRelatedPosts ranks published posts by how many tags they share with
// the source post, newest first on ties. The source post is excluded.
func (r *PostgresPostRepository) GetRelatedPosts(postID uint, tagIDs []uint, limit int) ([]models.Post, error) {
	if len(tagIDs) == 0 {
		return []models.Post{}, nil
	}

	var posts []models.Post
	err := r.db.Model(&models.Post{}).
		Select("posts.*, COUNT(post_tags.tag_id) AS shared_tags").
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id IN ?", tagIDs).
		Where("posts.id <> ?", postID).
		Where("posts.status = ?", models.PostStatusPublished).
		Group("posts.id").
		Order("shared_tags DESC, posts.created_at DESC").
		Limit(limit).
		Preload("Tags").
		Find(&posts).Error
	return posts, err
}

// GetLikeCounts returns live like counts for the given posts in one
// GROUP BY query
func (r *PostgresPostRepository) GetLikeCounts(postIDs []uint) (map[uint]int64, error) {
	return r.groupCounts(&models.Like{}, postIDs)
}

// GetCommentCounts returns live comment counts for the given posts in one
// GROUP BY query
func (r *PostgresPostRepository) GetCommentCounts(postIDs []uint) (map[uint]int64, error) {
	return r.groupCounts(&models.Comment{}, postIDs)
}

func (r *PostgresPostRepository) groupCounts(model interface{}, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint
		Total  int64
	}
	err := r.db.Model(model).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

// SearchPosts matches published posts by title substring
// (case-insensitive), paginated
func (r *PostgresPostRepository) SearchPosts(query string, page, limit int) ([]models.Post, int64, error) {
	pattern := "%" + query + "%"
	match := func() *gorm.DB {
		return r.db.Model(&models.Post{}).
			Where("status = ?", models.PostStatusPublished).
			Where("LOWER(title) LIKE LOWER(?)", pattern)
	}

	var total int64
	if err := match().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	offset := (page - 1) * limit
	err := match().Order("created_at DESC").Offset(offset).Limit(limit).Preload("Tags").Find(&posts).Error
	return posts, total, err
}

// SuggestPosts returns the top title matches for autocomplete
func (r *PostgresPostRepository) SuggestPosts(query string, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).
		Where("status = ?", models.PostStatusPublished).
		Where("LOWER(title) LIKE LOWER(?)", "%"+query+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
