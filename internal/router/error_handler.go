package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulseline-app/backend/internal/apperrors"
)

// statusFor maps the application error taxonomy onto HTTP status codes.
func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// NewHTTPErrorHandler returns the echo error handler that maps typed
// application errors to status codes. Internal failure detail is only
// echoed back outside production.
func NewHTTPErrorHandler(env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var appErr *apperrors.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = statusFor(appErr.Kind)
			message = appErr.Message
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		default:
			if env != "production" {
				message = err.Error()
			}
		}

		if status == http.StatusInternalServerError {
			log.Printf("request failed: %v", err)
		}

		if jsonErr := c.JSON(status, echo.Map{
			"success": false,
			"error":   echo.Map{"message": message},
		}); jsonErr != nil {
			log.Printf("failed to write error response: %v", jsonErr)
		}
	}
}
