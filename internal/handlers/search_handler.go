package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pulseline-app/backend/internal/services"
)

// SearchHandler handles search and autocomplete HTTP requests
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// RegisterSearchRoutes registers search routes
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
	g.GET("/search/posts", h.SearchPosts)
	g.GET("/search/users", h.SearchUsers)
	g.GET("/search/suggestions", h.Suggest)
}

// Search runs a global search over posts and users
func (h *SearchHandler) Search(c echo.Context) error {
	page, limit := parsePageParams(c)
	page, limit = services.ClampPage(page, limit, 10)

	results, err := h.searchService.SearchAll(c.QueryParam("q"), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": results})
}

// SearchPosts searches published posts by title
func (h *SearchHandler) SearchPosts(c echo.Context) error {
	page, limit := parsePageParams(c)
	page, limit = services.ClampPage(page, limit, 10)

	posts, total, err := h.searchService.SearchPosts(c.QueryParam("q"), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"meta":    services.NewPagination(page, limit, total),
	})
}

// SearchUsers searches active users by username or display name
func (h *SearchHandler) SearchUsers(c echo.Context) error {
	page, limit := parsePageParams(c)
	page, limit = services.ClampPage(page, limit, 10)

	users, total, err := h.searchService.SearchUsers(c.QueryParam("q"), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"users": users},
		"meta":    services.NewPagination(page, limit, total),
	})
}

// Suggest returns autocomplete candidates for posts and users
func (h *SearchHandler) Suggest(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	suggestions, err := h.searchService.Suggest(c.QueryParam("q"), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": suggestions})
}
