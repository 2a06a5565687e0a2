package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelhub/media-rental/internal/lifecycle"
	"github.com/reelhub/media-rental/internal/repository"
)

// RentalHandler serves rental creation, owner-scoped reads and status
// transitions.
type RentalHandler struct {
	Rentals   repository.RentalStore
	Videos    repository.VideoStore
	Lifecycle *lifecycle.Controller
}

func NewRentalHandler(rentals repository.RentalStore, videos repository.VideoStore, lc *lifecycle.Controller) *RentalHandler {
	return &RentalHandler{Rentals: rentals, Videos: videos, Lifecycle: lc}
}

type rentalCreateReq struct {
	VideoID    uint64 `json:"video_id" validate:"required,gt=0"`
	RentalDate string `json:"rental_date" validate:"required,datetime=2006-01-02"`
}

type rentalStatusReq struct {
	Status string `json:"status" validate:"required,oneof=new pending returned cancelled"`
}

// Create opens a rental for the caller at status 'new'. The referenced
// video must exist; a missing one is a 404.
func (h *RentalHandler) Create(c echo.Context) error {
	actor, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req rentalCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "video_id and rental_date (YYYY-MM-DD) are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Check the reference up front for a clean 404; the foreign key
	// still backstops a concurrent delete.
	if _, err := h.Videos.GetByID(ctx, req.VideoID); err != nil {
		return writeError(c, err)
	}

	id, err := h.Rentals.Create(ctx, actor.UserID, req.VideoID, req.RentalDate)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"rental_id": id})
}

// ListAll returns every rental. Staff only (route-gated).
func (h *RentalHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Rentals.ListAll(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// ListMine returns the caller's own rentals. The user id comes from the
// verified token, never from the request, so enumeration is impossible.
func (h *RentalHandler) ListMine(c echo.Context) error {
	actor, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Rentals.ListByUser(ctx, actor.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Get returns one rental to its owner or to staff; everyone else gets a
// 403 even when the id exists.
func (h *RentalHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	actor, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r, err := h.Rentals.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if !actor.IsStaff() && r.UserID != actor.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, r)
}

// ChangeStatus drives the rental state machine. Role and ownership
// policy live in the lifecycle controller.
func (h *RentalHandler) ChangeStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	actor, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req rentalStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Lifecycle.ChangeRentalStatus(ctx, actor, id, req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"changes": 1})
}
