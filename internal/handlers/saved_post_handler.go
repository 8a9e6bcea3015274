package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
	"github.com/pulseline-app/backend/internal/services"
)

// SavedPostHandler handles saved post HTTP requests
type SavedPostHandler struct {
	savedPostRepository repositories.SavedPostRepository
	postRepository      repositories.PostRepository
	userRepository      repositories.UserRepository
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(
	savedPostRepo repositories.SavedPostRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
) *SavedPostHandler {
	return &SavedPostHandler{
		savedPostRepository: savedPostRepo,
		postRepository:      postRepo,
		userRepository:      userRepo,
	}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/save", h.SavePost)
	g.DELETE("/posts/:post_id/save", h.UnsavePost)
	g.GET("/saved-posts", h.ListSavedPosts)
}

// SavePost saves/bookmarks a post
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return apperrors.Validation("invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return err
	}
	viewer, err := loadViewer(c, h.userRepository)
	if err != nil {
		return err
	}
	// A draft the caller may not see reads as missing.
	if !services.CanViewPost(viewer, post) {
		return apperrors.NotFound("post not found")
	}

	saved := &models.SavedPost{
		UserID: currentUserID,
		PostID: postID,
	}

	// Duplicate saves conflict on the unique index.
	if err := h.savedPostRepository.SavePost(saved); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"saved": saved}})
}

// UnsavePost removes a bookmark
func (h *SavedPostHandler) UnsavePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return apperrors.Validation("invalid post ID")
	}

	if err := h.savedPostRepository.UnsavePost(currentUserID, postID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListSavedPosts returns the caller's bookmarks, newest first
func (h *SavedPostHandler) ListSavedPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := parsePageParams(c)
	page, limit = services.ClampPage(page, limit, 20)

	saved, total, err := h.savedPostRepository.ListSaved(currentUserID, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"saved_posts": saved},
		"meta":    services.NewPagination(page, limit, total),
	})
}
