package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelhub/media-rental/internal/config"
	"github.com/reelhub/media-rental/internal/lifecycle"
	"github.com/reelhub/media-rental/internal/model"
	"github.com/reelhub/media-rental/internal/repository"
	"github.com/reelhub/media-rental/internal/utils"
)

// UserHandler serves profile reads and updates. A user may only touch
// their own record; staff may touch any.
type UserHandler struct {
	Cfg   config.Config
	Users repository.UserStore
}

func NewUserHandler(cfg config.Config, users repository.UserStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

type profileResp struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type profileUpdateReq struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

func toProfile(u model.User) profileResp {
	return profileResp{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

// canAccess allows the record owner and staff.
func canAccess(actor lifecycle.Identity, id uint64) bool {
	return actor.IsStaff() || actor.UserID == id
}

// List returns every profile. Staff only (route-gated).
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]profileResp, 0, len(users))
	for _, u := range users {
		out = append(out, toProfile(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a user profile without the password hash.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	actor, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !canAccess(actor, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toProfile(u))
}

// Update changes email and/or password. Absent fields keep their stored
// value; the password is rehashed here so plaintext never leaves the
// handler.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	actor, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !canAccess(actor, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email or password"})
	}
	if req.Email == "" && req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}
	hash := ""
	if req.Password != "" {
		hash, err = utils.HashPassword(req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Users.UpdateProfile(ctx, id, req.Email, hash)
	if err != nil {
		return writeError(c, err)
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"changes": n})
}

// Delete removes a user. Staff only (route-gated).
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
