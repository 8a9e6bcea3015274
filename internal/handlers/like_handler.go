package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
	"github.com/pulseline-app/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	notifier       *services.Notifier
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifier *services.Notifier,
) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
		userRepository: userRepo,
		notifier:       notifier,
	}
}

// visiblePost loads a post and hides drafts the caller may not see; an
// invisible draft reads as missing, same as the single-post fetch.
func (h *LikeHandler) visiblePost(c echo.Context, postID uint) (*models.Post, error) {
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

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes", h.LikePost)
	g.DELETE("/posts/:post_id/likes", h.UnlikePost)
	g.GET("/posts/:post_id/likes/count", h.GetLikesCountForPost)
	g.GET("/posts/:post_id/likes/status", h.GetUserLikeStatusForPost)
}

// LikePost handles liking a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return apperrors.Validation("invalid post ID")
	}

	post, err := h.visiblePost(c, postID)
	if err != nil {
		return err
	}

	like := &models.Like{
		PostID: postID,
		UserID: currentUserID,
	}

	// Concurrent duplicate likes race on the unique index; the loser gets
	// a conflict from the repository.
	if err := h.likeRepository.CreateLike(like); err != nil {
		return err
	}

	// Best-effort; the like has committed regardless of the outcome here.
	h.notifier.OnLike(post.AuthorID, currentUserID, postID)

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"like": like}})
}

// UnlikePost handles unliking a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return apperrors.Validation("invalid post ID")
	}

	if err := h.likeRepository.DeleteLike(postID, currentUserID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// GetLikesCountForPost retrieves the live like count for a post
func (h *LikeHandler) GetLikesCountForPost(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return apperrors.Validation("invalid post ID")
	}

	if _, err := h.visiblePost(c, postID); err != nil {
		return err
	}

	count, err := h.likeRepository.GetLikesCountByPostID(postID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post_id": postID, "likes_count": count}})
}

// GetUserLikeStatusForPost checks if the caller has liked a post
func (h *LikeHandler) GetUserLikeStatusForPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return apperrors.Validation("invalid post ID")
	}

	hasLiked, err := h.likeRepository.HasUserLikedPost(postID, currentUserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post_id": postID, "has_liked": hasLiked}})
}
