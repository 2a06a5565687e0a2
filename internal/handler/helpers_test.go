package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/reelhub/media-rental/internal/model"
	"github.com/reelhub/media-rental/internal/repository"
	"github.com/reelhub/media-rental/internal/validation"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	return e
}

// jsonCtx builds a context carrying a JSON body.
func jsonCtx(t *testing.T, e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asUser(c echo.Context, id uint64, role string) {
	c.Set("user_id", id)
	c.Set("role", role)
}

func withParamID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

// --- in-memory stores shared by the handler tests ---

type memVideoStore struct {
	videos map[uint64]model.Video
	nextID uint64
}

var _ repository.VideoStore = (*memVideoStore)(nil)

func newMemVideoStore() *memVideoStore {
	return &memVideoStore{videos: map[uint64]model.Video{}, nextID: 1}
}

func (s *memVideoStore) Create(ctx context.Context, name, description, mediaURL string) (uint64, error) {
	id := s.nextID
	s.nextID++
	s.videos[id] = model.Video{ID: id, Name: name, Status: model.VideoStatusNew, Description: description, MediaURL: mediaURL}
	return id, nil
}

func (s *memVideoStore) GetByID(ctx context.Context, id uint64) (model.Video, error) {
	v, ok := s.videos[id]
	if !ok {
		return model.Video{}, repository.ErrNotFound
	}
	return v, nil
}

func (s *memVideoStore) Update(ctx context.Context, id uint64, name, description, mediaURL string) (int64, error) {
	v, ok := s.videos[id]
	if !ok {
		return 0, nil
	}
	v.Name, v.Description, v.MediaURL = name, description, mediaURL
	s.videos[id] = v
	return 1, nil
}

func (s *memVideoStore) Delete(ctx context.Context, id uint64) (int64, error) {
	if _, ok := s.videos[id]; !ok {
		return 0, nil
	}
	delete(s.videos, id)
	return 1, nil
}

func (s *memVideoStore) Search(ctx context.Context, q repository.VideoQuery) ([]model.Video, int64, error) {
	matched := []model.Video{}
	for id := uint64(1); id < s.nextID; id++ {
		v, ok := s.videos[id]
		if !ok {
			continue
		}
		if q.Name != "" && !strings.Contains(v.Name, q.Name) {
			continue
		}
		if q.Status != "" && v.Status != q.Status {
			continue
		}
		matched = append(matched, v)
	}
	total := int64(len(matched))
	start := (q.Page - 1) * q.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *memVideoStore) UpdateStatus(ctx context.Context, id uint64, from, to string) (int64, error) {
	v, ok := s.videos[id]
	if !ok || v.Status != from {
		return 0, nil
	}
	v.Status = to
	s.videos[id] = v
	return 1, nil
}

type memRentalStore struct {
	rentals map[uint64]model.Rental
	nextID  uint64
}

var _ repository.RentalStore = (*memRentalStore)(nil)

func newMemRentalStore() *memRentalStore {
	return &memRentalStore{rentals: map[uint64]model.Rental{}, nextID: 1}
}

func (s *memRentalStore) Create(ctx context.Context, userID, videoID uint64, rentalDate string) (uint64, error) {
	id := s.nextID
	s.nextID++
	s.rentals[id] = model.Rental{ID: id, UserID: userID, VideoID: videoID, RentalDate: rentalDate, Status: model.RentalStatusNew}
	return id, nil
}

func (s *memRentalStore) GetByID(ctx context.Context, id uint64) (model.Rental, error) {
	r, ok := s.rentals[id]
	if !ok {
		return model.Rental{}, repository.ErrNotFound
	}
	return r, nil
}

func (s *memRentalStore) ListAll(ctx context.Context) ([]model.Rental, error) {
	out := []model.Rental{}
	for id := uint64(1); id < s.nextID; id++ {
		if r, ok := s.rentals[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memRentalStore) ListByUser(ctx context.Context, userID uint64) ([]model.Rental, error) {
	out := []model.Rental{}
	for id := uint64(1); id < s.nextID; id++ {
		if r, ok := s.rentals[id]; ok && r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memRentalStore) UpdateStatus(ctx context.Context, id uint64, from, to string, setReturnDate bool) (int64, error) {
	r, ok := s.rentals[id]
	if !ok || r.Status != from {
		return 0, nil
	}
	r.Status = to
	if setReturnDate {
		d := "2024-01-05"
		r.ReturnDate = &d
	}
	s.rentals[id] = r
	return 1, nil
}
