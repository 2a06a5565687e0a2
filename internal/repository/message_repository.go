package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/reelhub/media-rental/internal/model"
)

// MessageStore is the contract consumed by the messaging handlers.
type MessageStore interface {
	Create(ctx context.Context, userID uint64, text string) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Message, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Message, error)
	ListAllWithUser(ctx context.Context) ([]model.MessageWithUser, error)
	SetReply(ctx context.Context, id uint64, text string) (int64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
}

type MessageRepo struct{ DB *sql.DB }

var _ MessageStore = (*MessageRepo)(nil)

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

// Create inserts a message with no reply yet.
func (r *MessageRepo) Create(ctx context.Context, userID uint64, text string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (user_id, message) VALUES (?,?)", userID, text)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a message by id.
func (r *MessageRepo) GetByID(ctx context.Context, id uint64) (model.Message, error) {
	var m model.Message
	var reply sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,message,admin_reply,created_at FROM messages WHERE id=? LIMIT 1", id).
		Scan(&m.ID, &m.UserID, &m.Message, &reply, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Message{}, ErrNotFound
	}
	if err != nil {
		return model.Message{}, err
	}
	if reply.Valid {
		m.AdminReply = &reply.String
	}
	return m, nil
}

// ListByUser returns the caller's own messages, oldest first, so the
// thread reads top-down.
func (r *MessageRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Message, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,message,admin_reply,created_at FROM messages WHERE user_id=? ORDER BY created_at, id",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Message{}
	for rows.Next() {
		var m model.Message
		var reply sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &m.Message, &reply, &m.CreatedAt); err != nil {
			return nil, err
		}
		if reply.Valid {
			v := reply.String
			m.AdminReply = &v
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListAllWithUser returns every message joined with the author's
// username, newest first. Staff inbox view.
func (r *MessageRepo) ListAllWithUser(ctx context.Context) ([]model.MessageWithUser, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT m.id, m.user_id, m.message, m.admin_reply, m.created_at, u.username
		 FROM messages m
		 JOIN users u ON u.id = m.user_id
		 ORDER BY m.created_at DESC, m.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MessageWithUser{}
	for rows.Next() {
		var m model.MessageWithUser
		var reply sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &m.Message.Message, &reply, &m.CreatedAt, &m.Username); err != nil {
			return nil, err
		}
		if reply.Valid {
			v := reply.String
			m.AdminReply = &v
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SetReply stores the staff reply on a message, overwriting any prior
// reply. Zero affected rows means the message does not exist.
func (r *MessageRepo) SetReply(ctx context.Context, id uint64, text string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE messages SET admin_reply=? WHERE id=?", text, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a message. Returns the number of affected rows.
func (r *MessageRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM messages WHERE id=?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
