package middleware // reusable HTTP middleware shared by all route groups

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reelhub/media-rental/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the verified identity into the request context.
// Handlers read it via c.Get("user_id") (uint64) and c.Get("role")
// (string). A missing credential is 401; a present but invalid or
// expired one is 403.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, utils.ErrTokenExpired) {
					msg = "token expired"
				}
				return c.JSON(http.StatusForbidden, echo.Map{"error": msg})
			}

			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
