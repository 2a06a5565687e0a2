package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelhub/media-rental/internal/queue"
	"github.com/reelhub/media-rental/internal/repository"
)

// eventPublisher is the slice of the queue publisher the message
// handler needs. Nil disables event publishing.
type eventPublisher interface {
	Publish(ctx context.Context, queueName string, event any) error
}

// MessageHandler serves the single-reply support thread: users post and
// read their own messages, staff read everything and attach replies.
type MessageHandler struct {
	Messages repository.MessageStore
	Events   eventPublisher
}

func NewMessageHandler(messages repository.MessageStore, events eventPublisher) *MessageHandler {
	return &MessageHandler{Messages: messages, Events: events}
}

type messageCreateReq struct {
	Message string `json:"message"`
}

type messageReplyReq struct {
	AdminReply string `json:"admin_reply"`
}

// Create posts a support message for the caller. Blank text is a 400.
func (h *MessageHandler) Create(c echo.Context) error {
	actor, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req messageCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message must not be empty"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Messages.Create(ctx, actor.UserID, text)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message_id": id})
}

// Get returns one message to its author or to staff; everyone else gets
// a 403 even when the id exists.
func (h *MessageHandler) Get(c echo.Context) error {
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

	m, err := h.Messages.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if !actor.IsStaff() && m.UserID != actor.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, m)
}

// ListMine returns the caller's own messages, oldest first.
func (h *MessageHandler) ListMine(c echo.Context) error {
	actor, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Messages.ListByUser(ctx, actor.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Reply sets the staff reply on a message, overwriting any earlier one.
// Staff only (route-gated). Blank text is a 400, unknown id a 404.
func (h *MessageHandler) Reply(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req messageReplyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	text := strings.TrimSpace(req.AdminReply)
	if text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "admin_reply must not be empty"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Messages.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	n, err := h.Messages.SetReply(ctx, id, text)
	if err != nil {
		return writeError(c, err)
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	if h.Events != nil {
		_ = h.Events.Publish(ctx, queue.MessageRepliedQueue, queue.MessageRepliedEvent{
			MessageID: id,
			UserID:    m.UserID,
			RepliedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"changes": n})
}

// Delete removes a message. Staff only (route-gated).
func (h *MessageHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Messages.Delete(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAll returns every message with the author's username, newest
// first. Staff only (route-gated).
func (h *MessageHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Messages.ListAllWithUser(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
