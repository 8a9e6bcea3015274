package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
	"github.com/pulseline-app/backend/internal/services"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	notifier         *services.Notifier
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifier *services.Notifier) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		notifier:         notifier,
	}
}

// RegisterFollowRoutes registers the authenticated follow routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// RegisterPublicFollowRoutes registers the public graph listings
func (h *FollowHandler) RegisterPublicFollowRoutes(g *echo.Group) {
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/follow-stats", h.GetFollowStats)
}

// RegisterOptionalAuthFollowRoutes registers routes that adapt to an
// anonymous caller
func (h *FollowHandler) RegisterOptionalAuthFollowRoutes(g *echo.Group) {
	g.GET("/users/:id/follow-status", h.GetFollowStatus)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return apperrors.Validation("invalid user ID")
	}

	if currentUserID == targetID {
		return apperrors.Validation("cannot follow yourself")
	}

	// Verify the followee exists
	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		return err
	}

	follow := &models.Follow{
		FollowerID:  currentUserID,
		FollowingID: targetID,
	}

	// The unique index on the edge pair resolves a concurrent duplicate
	// follow; the repository surfaces the loser's insert as a conflict.
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return err
	}

	// Best-effort; a notification failure never unwinds the follow.
	h.notifier.OnFollow(targetID, currentUserID)

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"follow": follow}})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return apperrors.Validation("invalid user ID")
	}

	if err := h.followRepository.DeleteFollow(currentUserID, targetID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}

// GetFollowers lists the users following the given user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	return h.listEdges(c, h.followRepository.GetFollowers, "followers")
}

// GetFollowing lists the users the given user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	return h.listEdges(c, h.followRepository.GetFollowing, "following")
}

func (h *FollowHandler) listEdges(c echo.Context, list func(uint, int, int) ([]models.FollowEntry, int64, error), key string) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return apperrors.Validation("invalid user ID")
	}

	page, limit := parsePageParams(c)
	page, limit = services.ClampPage(page, limit, 20)

	entries, total, err := list(userID, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{key: entries},
		"meta":    services.NewPagination(page, limit, total),
	})
}

// GetFollowStats returns follower/following counts for a user
func (h *FollowHandler) GetFollowStats(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return apperrors.Validation("invalid user ID")
	}

	stats, err := h.followRepository.GetStats(userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stats})
}

// GetFollowStatus reports whether the caller follows the given user;
// anonymous callers always read false
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return apperrors.Validation("invalid user ID")
	}

	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"isFollowing": false}})
	}

	isFollowing, err := h.followRepository.IsFollowing(currentUserID, targetID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"isFollowing": isFollowing}})
}
