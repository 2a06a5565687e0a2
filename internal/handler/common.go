// Package handler exposes the HTTP endpoints of the rental service.
// Handlers bind and validate request DTOs, delegate to stores or the
// lifecycle controller, and translate sentinel errors into HTTP codes.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reelhub/media-rental/internal/lifecycle"
	"github.com/reelhub/media-rental/internal/repository"
)

// identityFrom rebuilds the verified caller from the context values set
// by the JWTAuth middleware.
func identityFrom(c echo.Context) (lifecycle.Identity, error) {
	var id lifecycle.Identity
	switch v := c.Get("user_id").(type) {
	case uint64:
		id.UserID = v
	case int:
		id.UserID = uint64(v)
	case float64:
		id.UserID = uint64(v)
	default:
		return id, errors.New("no authenticated user in context")
	}
	role, ok := c.Get("role").(string)
	if !ok || role == "" {
		return id, errors.New("no role in context")
	}
	id.Role = role
	return id, nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// writeError maps sentinel errors from stores and the lifecycle
// controller onto HTTP responses. Anything unrecognized is a 500 with a
// generic body; driver details never reach the client.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrUserExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already exists"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, repository.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
