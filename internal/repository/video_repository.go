package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/reelhub/media-rental/internal/model"
)

// VideoQuery defines filters and pagination for browsing the catalog.
// Filters combine with AND semantics: Name is a substring match, Status
// an equality match. Page is 1-indexed.
type VideoQuery struct {
	Name     string
	Status   string
	Page     int
	PageSize int
}

// VideoStore is the contract consumed by catalog handlers and the
// lifecycle controller.
type VideoStore interface {
	Create(ctx context.Context, name, description, mediaURL string) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Video, error)
	Update(ctx context.Context, id uint64, name, description, mediaURL string) (int64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
	Search(ctx context.Context, q VideoQuery) ([]model.Video, int64, error)
	UpdateStatus(ctx context.Context, id uint64, from, to string) (int64, error)
}

type VideoRepo struct{ DB *sql.DB }

var _ VideoStore = (*VideoRepo)(nil)

func NewVideoRepo(db *sql.DB) *VideoRepo { return &VideoRepo{DB: db} }

// Create inserts a catalog item. Status always starts at 'new'.
func (r *VideoRepo) Create(ctx context.Context, name, description, mediaURL string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO videos (name, status, description, media_url) VALUES (?,?,?,?)",
		strings.TrimSpace(name), model.VideoStatusNew, description, mediaURL)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a catalog item by id.
func (r *VideoRepo) GetByID(ctx context.Context, id uint64) (model.Video, error) {
	var v model.Video
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,status,description,media_url,created_at FROM videos WHERE id=? LIMIT 1",
		id).
		Scan(&v.ID, &v.Name, &v.Status, &v.Description, &v.MediaURL, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Video{}, ErrNotFound
	}
	return v, err
}

// Update replaces the descriptive fields of a catalog item. Status is
// deliberately untouched; transitions go through UpdateStatus only.
func (r *VideoRepo) Update(ctx context.Context, id uint64, name, description, mediaURL string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE videos SET name=?, description=?, media_url=? WHERE id=?",
		strings.TrimSpace(name), description, mediaURL, id)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a catalog item. Returns the number of affected rows.
func (r *VideoRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM videos WHERE id=?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Search returns one page of catalog items plus the total count under
// the same predicate. The count ignores the page window so clients can
// paginate against a stable total.
func (r *VideoRepo) Search(ctx context.Context, q VideoQuery) ([]model.Video, int64, error) {
	where := []string{}
	args := []any{}
	if q.Name != "" {
		where = append(where, "name LIKE ?")
		args = append(args, "%"+q.Name+"%")
	}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM videos WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize
	pagedArgs := append(append([]any{}, args...), limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,status,description,media_url,created_at FROM videos WHERE "+cond+
			" ORDER BY id LIMIT ? OFFSET ?", pagedArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []model.Video{}
	for rows.Next() {
		var v model.Video
		if err := rows.Scan(&v.ID, &v.Name, &v.Status, &v.Description, &v.MediaURL, &v.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateStatus moves a catalog item from one status to another in a
// single conditional write. Zero affected rows means the row was missing
// or no longer in the expected source state.
func (r *VideoRepo) UpdateStatus(ctx context.Context, id uint64, from, to string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE videos SET status=? WHERE id=? AND status=?", to, id, from)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
