package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
)

// getUserIDFromContext extracts the authenticated user ID from the JWT
// claims set by the auth middleware; 0 means unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// loadViewer resolves the authenticated caller's user row; nil for
// anonymous callers. Handlers that gate on post visibility need the full
// row, not just the claims.
func loadViewer(c echo.Context, users repositories.UserRepository) (*models.User, error) {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return nil, nil
	}
	return users.GetUserByID(currentUserID)
}

// parseIDParam parses the named path parameter as an entity ID
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parsePageParams reads page/limit query params; clamping happens in the
// service layer
func parsePageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
