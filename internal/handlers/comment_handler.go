package handlers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
	"github.com/pulseline-app/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	notifier          *services.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifier *services.Notifier,
) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
		notifier:          notifier,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// visiblePost loads a post and hides drafts the caller may not see; an
// invisible draft reads as missing, same as the single-post fetch.
func (h *CommentHandler) visiblePost(c echo.Context, postID uint) (*models.Post, error) {
	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return nil, err
	}
	viewer, err := loadViewer(c, h.userRepository)
	if err != nil {
		return nil, err
	}
	if !services.CanViewPost(viewer, post) {
		return nil, apperrors.NotFound("post not found")
	}
	return post, nil
}

// CommentWithAuthor pairs a comment with its author's public profile
type CommentWithAuthor struct {
	models.Comment
	Author  models.UserCompact  `json:"author"`
	Replies []CommentWithAuthor `json:"replies,omitempty"`
}

// CreateComment creates a top-level comment or a one-level reply
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return apperrors.Validation("invalid post ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.visiblePost(c, postID)
	if err != nil {
		return err
	}

	var parent *models.Comment
	if req.ParentCommentID != nil {
		parent, err = h.commentRepository.GetCommentByID(*req.ParentCommentID)
		if err != nil {
			return err
		}
		if parent.PostID != postID {
			return apperrors.Validation("parent comment belongs to a different post")
		}
		// Threads are one level deep: a reply's parent must be top-level.
		if parent.IsReply() {
			return apperrors.Validation("cannot reply to a reply")
		}
	}

	comment := &models.Comment{
		PostID:          postID,
		UserID:          currentUserID,
		ParentCommentID: req.ParentCommentID,
		Content:         req.Content,
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return err
	}

	// Best-effort fan-out after the comment has committed. A reply
	// notifies the parent comment's author, a top-level comment the
	// post's author.
	if parent != nil {
		h.notifier.OnReply(parent.UserID, currentUserID, postID)
	} else {
		h.notifier.OnComment(post.AuthorID, currentUserID, postID)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"comment": comment}})
}

// GetCommentsByPostID retrieves a post's comments threaded one level deep
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return apperrors.Validation("invalid post ID")
	}

	if _, err := h.visiblePost(c, postID); err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"comments": h.thread(comments)},
	})
}

// thread enriches comments with author profiles and nests replies under
// their parents
func (h *CommentHandler) thread(comments []models.Comment) []CommentWithAuthor {
	userCache := make(map[uint]models.UserCompact)
	author := func(userID uint) models.UserCompact {
		if cached, ok := userCache[userID]; ok {
			return cached
		}
		compact := models.UserCompact{}
		if user, err := h.userRepository.GetUserByID(userID); err != nil {
			log.Printf("comments: failed to resolve author %d: %v", userID, err)
		} else {
			compact = user.ToCompact()
		}
		userCache[userID] = compact
		return compact
	}

	replies := make(map[uint][]CommentWithAuthor)
	topLevel := make([]CommentWithAuthor, 0, len(comments))
	for _, cm := range comments {
		entry := CommentWithAuthor{Comment: cm, Author: author(cm.UserID)}
		if cm.ParentCommentID != nil {
			replies[*cm.ParentCommentID] = append(replies[*cm.ParentCommentID], entry)
		} else {
			topLevel = append(topLevel, entry)
		}
	}
	for i := range topLevel {
		topLevel[i].Replies = replies[topLevel[i].ID]
	}
	return topLevel
}

// DeleteComment deletes a comment; owner or admin
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return apperrors.Validation("invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		return err
	}

	if comment.UserID != currentUserID {
		user, err := h.userRepository.GetUserByID(currentUserID)
		if err != nil {
			return err
		}
		if !user.IsAdmin() {
			return apperrors.Forbidden("you are not authorized to delete this comment")
		}
	}

	if err := h.commentRepository.DeleteComment(commentID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
