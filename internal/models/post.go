package models

import "time"

// Post publication statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post sort modes accepted by the feed
const (
	SortLatest   = "latest"
	SortPopular  = "popular"
	SortTrending = "trending"
)

// Post represents a piece of published or draft content
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Title     string    `json:"title" gorm:"size:200"`
	Body      string    `json:"body"`
	Status    string    `json:"status" gorm:"size:12;default:draft;index"`
	ViewCount int64     `json:"view_count" gorm:"default:0"`
	Tags      []Tag     `json:"tags" gorm:"many2many:post_tags"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPublished reports whether the post is visible to readers other than
// its author.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title  string   `json:"title" validate:"required,min=1,max=200"`
	Body   string   `json:"body" validate:"required,min=1"`
	Status string   `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Tags   []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title  string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Body   string   `json:"body,omitempty" validate:"omitempty,min=1"`
	Status string   `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Tags   []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
}
