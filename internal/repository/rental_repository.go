package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/reelhub/media-rental/internal/model"
)

// RentalStore is the contract consumed by rental handlers and the
// lifecycle controller.
type RentalStore interface {
	Create(ctx context.Context, userID, videoID uint64, rentalDate string) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Rental, error)
	ListAll(ctx context.Context) ([]model.Rental, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Rental, error)
	UpdateStatus(ctx context.Context, id uint64, from, to string, setReturnDate bool) (int64, error)
}

type RentalRepo struct{ DB *sql.DB }

var _ RentalStore = (*RentalRepo)(nil)

func NewRentalRepo(db *sql.DB) *RentalRepo { return &RentalRepo{DB: db} }

const rentalCols = "id,user_id,video_id,rental_date,return_date,status,created_at"

// Create inserts a rental at status 'new'. The video must exist; the
// existence check is its foreign key, surfaced as ErrNotFound.
func (r *RentalRepo) Create(ctx context.Context, userID, videoID uint64, rentalDate string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO rentals (user_id, video_id, rental_date, status) VALUES (?,?,?,?)",
		userID, videoID, rentalDate, model.RentalStatusNew)
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

// GetByID fetches a rental by id. Ownership checks belong to the caller;
// the row is returned regardless of user.
func (r *RentalRepo) GetByID(ctx context.Context, id uint64) (model.Rental, error) {
	var m model.Rental
	var ret sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+rentalCols+" FROM rentals WHERE id=? LIMIT 1", id).
		Scan(&m.ID, &m.UserID, &m.VideoID, &m.RentalDate, &ret, &m.Status, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Rental{}, ErrNotFound
	}
	if err != nil {
		return model.Rental{}, err
	}
	if ret.Valid {
		m.ReturnDate = &ret.String
	}
	return m, nil
}

// ListAll returns every rental, newest first. Staff inbox view.
func (r *RentalRepo) ListAll(ctx context.Context) ([]model.Rental, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+rentalCols+" FROM rentals ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRentals(rows)
}

// ListByUser returns rentals owned by userID, newest first. The WHERE
// clause is the ownership boundary; no other user's rows can appear.
func (r *RentalRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Rental, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+rentalCols+" FROM rentals WHERE user_id=? ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRentals(rows)
}

// UpdateStatus moves a rental between statuses in a single conditional
// write. return_date is stamped only on the transition into 'returned'.
// Zero affected rows means the row was missing or not in the expected
// source state anymore.
func (r *RentalRepo) UpdateStatus(ctx context.Context, id uint64, from, to string, setReturnDate bool) (int64, error) {
	var res sql.Result
	var err error
	if setReturnDate {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE rentals SET status=?, return_date=CURDATE() WHERE id=? AND status=?", to, id, from)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE rentals SET status=? WHERE id=? AND status=?", to, id, from)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanRentals(rows *sql.Rows) ([]model.Rental, error) {
	out := []model.Rental{}
	for rows.Next() {
		var m model.Rental
		var ret sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &m.VideoID, &m.RentalDate, &ret, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		if ret.Valid {
			v := ret.String
			m.ReturnDate = &v
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// isForeignKeyViolation spots MySQL errors 1452/1216 (missing referenced row).
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "1452") || strings.Contains(err.Error(), "1216")
}
