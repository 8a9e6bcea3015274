package models

import "time"

// Comment represents a comment on a post. A comment is either top-level
// (ParentCommentID nil) or a reply to a top-level comment; nesting does not
// go deeper than one level.
type Comment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	PostID          uint      `json:"post_id" gorm:"index"`
	UserID          uint      `json:"user_id" gorm:"index"`
	ParentCommentID *uint     `json:"parent_comment_id,omitempty" gorm:"index"`
	Content         string    `json:"content" gorm:"size:500"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=500"`
	ParentCommentID *uint  `json:"parent_comment_id,omitempty"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
