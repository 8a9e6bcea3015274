package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
	"github.com/pulseline-app/backend/internal/services"
)

// PostHandler handles post CRUD and the feed listing endpoints
type PostHandler struct {
	postRepository repositories.PostRepository
	tagRepository  repositories.TagRepository
	userRepository repositories.UserRepository
	feedService    *services.FeedService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	tagRepo repositories.TagRepository,
	userRepo repositories.UserRepository,
	feedService *services.FeedService,
) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		tagRepository:  tagRepo,
		userRepository: userRepo,
		feedService:    feedService,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// currentUser loads the authenticated user's row; nil for anonymous callers
func (h *PostHandler) currentUser(c echo.Context) (*models.User, error) {
	return loadViewer(c, h.userRepository)
}

// CreatePost creates a new post, attaching tags lazily by slug
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status := req.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	post := &models.Post{
		AuthorID: currentUserID,
		Title:    req.Title,
		Body:     req.Body,
		Status:   status,
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return err
	}

	if len(req.Tags) > 0 {
		tags, err := h.resolveTags(req.Tags)
		if err != nil {
			return err
		}
		if err := h.postRepository.ReplaceTags(post, tags); err != nil {
			return err
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"post": post}})
}

// ListPosts is the feed entry point
func (h *PostHandler) ListPosts(c echo.Context) error {
	viewer, err := h.currentUser(c)
	if err != nil {
		return err
	}

	page, limit := parsePageParams(c)
	filters := services.ListFilters{
		Page:           page,
		Limit:          limit,
		Status:         c.QueryParam("status"),
		AuthorUsername: c.QueryParam("author"),
		TagSlug:        c.QueryParam("tag"),
		Sort:           c.QueryParam("sort"),
		Query:          c.QueryParam("query"),
		FollowingOnly:  c.QueryParam("following") == "true",
	}

	posts, meta, err := h.feedService.List(filters, viewer)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"meta":    meta,
	})
}

// GetPost returns one post with related content; fetching counts as a view
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apperrors.Validation("invalid post ID")
	}

	viewer, err := h.currentUser(c)
	if err != nil {
		return err
	}

	detail, err := h.feedService.GetByID(id, viewer)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post": detail}})
}

// UpdatePost updates a post's content, status or tags; author only
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return apperrors.Validation("invalid post ID")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return err
	}
	if post.AuthorID != currentUserID {
		return apperrors.Forbidden("you are not authorized to update this post")
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Body != "" {
		post.Body = req.Body
	}
	if req.Status != "" {
		post.Status = req.Status
	}

	if err := h.postRepository.UpdatePost(post); err != nil {
		return err
	}

	if req.Tags != nil {
		tags, err := h.resolveTags(req.Tags)
		if err != nil {
			return err
		}
		if err := h.postRepository.ReplaceTags(post, tags); err != nil {
			return err
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post": post}})
}

// DeletePost deletes a post; author or admin
func (h *PostHandler) DeletePost(c echo.Context) error {
	viewer, err := h.currentUser(c)
	if err != nil {
		return err
	}
	if viewer == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return apperrors.Validation("invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return err
	}
	if post.AuthorID != viewer.ID && !viewer.IsAdmin() {
		return apperrors.Forbidden("you are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// resolveTags finds or creates each tag by its normalized slug
func (h *PostHandler) resolveTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[uint]bool, len(names))
	for _, name := range names {
		tag, err := h.tagRepository.FindOrCreate(name)
		if err != nil {
			return nil, err
		}
		if !seen[tag.ID] {
			seen[tag.ID] = true
			tags = append(tags, *tag)
		}
	}
	return tags, nil
}
