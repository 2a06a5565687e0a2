package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelhub/media-rental/internal/lifecycle"
	"github.com/reelhub/media-rental/internal/repository"
)

// VideoHandler serves the catalog: public browse plus staff-managed
// mutation and review transitions.
type VideoHandler struct {
	Videos    repository.VideoStore
	Lifecycle *lifecycle.Controller
}

func NewVideoHandler(videos repository.VideoStore, lc *lifecycle.Controller) *VideoHandler {
	return &VideoHandler{Videos: videos, Lifecycle: lc}
}

// Pagination policy: explicit defaults, no "unlimited" sentinel.
const (
	defaultPage     = 1
	defaultPageSize = 5
	maxPageSize     = 100
)

type videoCreateReq struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	MediaURL    string `json:"media_url" validate:"omitempty,max=512"`
}

type videoUpdateReq struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	MediaURL    string `json:"media_url" validate:"omitempty,max=512"`
}

type videoStatusReq struct {
	Status string `json:"status" validate:"required,oneof=new pending accepted rejected"`
}

type listQuery struct {
	Name     string `query:"name"`
	Status   string `query:"status" validate:"omitempty,oneof=new pending accepted rejected"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"pageSize" validate:"omitempty,min=1,max=100"`
}

// List returns one filtered page of the catalog as {data, total}. The
// total is computed with the same filter predicate, independent of the
// page window.
func (h *VideoHandler) List(c echo.Context) error {
	var q listQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paging or status filter"})
	}
	if q.Page == 0 {
		q.Page = defaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = defaultPageSize
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Videos.Search(ctx, repository.VideoQuery{
		Name:     q.Name,
		Status:   q.Status,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows, "total": total})
}

// Get returns a single catalog item.
func (h *VideoHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Videos.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Create adds a catalog item at status 'new'. Staff only (route-gated).
func (h *VideoHandler) Create(c echo.Context) error {
	var req videoCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and description are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Videos.Create(ctx, req.Name, req.Description, req.MediaURL)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"video_id": id})
}

// Update replaces the descriptive fields of a catalog item. Staff only.
func (h *VideoHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req videoUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and description are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Videos.Update(ctx, id, req.Name, req.Description, req.MediaURL)
	if err != nil {
		return writeError(c, err)
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"changes": n})
}

// Delete removes a catalog item. Staff only.
func (h *VideoHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Videos.Delete(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeStatus drives the review state machine. Staff only; the
// lifecycle controller re-checks the capability.
func (h *VideoHandler) ChangeStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	actor, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req videoStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Lifecycle.ChangeVideoStatus(ctx, actor, id, req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"changes": 1})
}
