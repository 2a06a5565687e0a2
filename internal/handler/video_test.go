package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reelhub/media-rental/internal/lifecycle"
	"github.com/reelhub/media-rental/internal/model"
)

func videoFixture(t *testing.T) (*VideoHandler, *memVideoStore) {
	t.Helper()
	videos := newMemVideoStore()
	lc := lifecycle.NewController(newMemRentalStore(), videos, nil)
	return NewVideoHandler(videos, lc), videos
}

type listResp struct {
	Data  []model.Video `json:"data"`
	Total int64         `json:"total"`
}

func listVideos(t *testing.T, h *VideoHandler, query string) (int, listResp) {
	t.Helper()
	e := newEcho()
	c, rec := jsonCtx(t, e, http.MethodGet, "/v1/videos"+query, "")
	require.NoError(t, h.List(c))
	var out listResp
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func TestVideoList_DefaultsToFirstFive(t *testing.T) {
	h, videos := videoFixture(t)
	for i := 1; i <= 7; i++ {
		_, err := videos.Create(t.Context(), fmt.Sprintf("Movie %d", i), "d", "")
		require.NoError(t, err)
	}

	code, out := listVideos(t, h, "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, int64(7), out.Total)
	require.Len(t, out.Data, 5)
	require.Equal(t, "Movie 1", out.Data[0].Name)

	code, out = listVideos(t, h, "?page=2")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, int64(7), out.Total)
	require.Len(t, out.Data, 2)
	require.Equal(t, "Movie 6", out.Data[0].Name)
}

func TestVideoList_TotalIgnoresPageWindow(t *testing.T) {
	h, videos := videoFixture(t)
	for i := 1; i <= 3; i++ {
		_, err := videos.Create(t.Context(), fmt.Sprintf("Movie %d", i), "d", "")
		require.NoError(t, err)
	}

	code, out := listVideos(t, h, "?page=9&pageSize=2")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, int64(3), out.Total)
	require.Empty(t, out.Data)
}

func TestVideoList_Filters(t *testing.T) {
	h, videos := videoFixture(t)
	_, err := videos.Create(t.Context(), "Alien", "d", "")
	require.NoError(t, err)
	_, err = videos.Create(t.Context(), "Aliens", "d", "")
	require.NoError(t, err)
	_, err = videos.Create(t.Context(), "Heat", "d", "")
	require.NoError(t, err)
	_, err = videos.UpdateStatus(t.Context(), 3, model.VideoStatusNew, model.VideoStatusPending)
	require.NoError(t, err)

	code, out := listVideos(t, h, "?name=Alien")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, int64(2), out.Total)

	code, out = listVideos(t, h, "?status=pending")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, int64(1), out.Total)
	require.Equal(t, "Heat", out.Data[0].Name)
}

func TestVideoList_RejectsBadQuery(t *testing.T) {
	h, _ := videoFixture(t)
	for _, q := range []string{"?status=archived", "?page=-1", "?pageSize=-5", "?pageSize=101"} {
		code, _ := listVideos(t, h, q)
		require.Equal(t, http.StatusBadRequest, code, "query %s", q)
	}
}

func TestVideoGet_UnknownIs404(t *testing.T) {
	e := newEcho()
	h, _ := videoFixture(t)
	c, rec := jsonCtx(t, e, http.MethodGet, "/v1/videos/5", "")
	withParamID(c, "5")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVideoCreate_StartsNew(t *testing.T) {
	e := newEcho()
	h, videos := videoFixture(t)

	c, rec := jsonCtx(t, e, http.MethodPost, "/v1/videos",
		`{"name":"Heat","description":"bank heist"}`)
	asUser(c, 2, model.RoleStaff)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"video_id":1`)
	require.Equal(t, model.VideoStatusNew, videos.videos[1].Status)
}

func TestVideoCreate_MissingFieldsIs400(t *testing.T) {
	e := newEcho()
	h, _ := videoFixture(t)

	c, rec := jsonCtx(t, e, http.MethodPost, "/v1/videos", `{"name":"Heat"}`)
	asUser(c, 2, model.RoleStaff)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVideoUpdateDelete_ReportChanges(t *testing.T) {
	h, videos := videoFixture(t)
	_, err := videos.Create(t.Context(), "Heat", "d", "")
	require.NoError(t, err)

	e := newEcho()
	c, rec := jsonCtx(t, e, http.MethodPut, "/v1/videos/1",
		`{"name":"Heat (remastered)","description":"bank heist"}`)
	asUser(c, 2, model.RoleStaff)
	withParamID(c, "1")
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"changes":1`)
	require.Equal(t, "Heat (remastered)", videos.videos[1].Name)

	c, rec = jsonCtx(t, e, http.MethodPut, "/v1/videos/9",
		`{"name":"x","description":"y"}`)
	asUser(c, 2, model.RoleStaff)
	withParamID(c, "9")
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = jsonCtx(t, e, http.MethodDelete, "/v1/videos/1", "")
	asUser(c, 2, model.RoleStaff)
	withParamID(c, "1")
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = jsonCtx(t, e, http.MethodDelete, "/v1/videos/1", "")
	asUser(c, 2, model.RoleStaff)
	withParamID(c, "1")
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVideoChangeStatus_ReviewPath(t *testing.T) {
	h, videos := videoFixture(t)
	_, err := videos.Create(t.Context(), "Heat", "d", "")
	require.NoError(t, err)

	change := func(userID uint64, role, status string) int {
		e := newEcho()
		c, rec := jsonCtx(t, e, http.MethodPut, "/v1/videos/1/status", `{"status":"`+status+`"}`)
		asUser(c, userID, role)
		withParamID(c, "1")
		require.NoError(t, h.ChangeStatus(c))
		return rec.Code
	}

	// Review may not skip straight to a decision.
	require.Equal(t, http.StatusConflict, change(2, model.RoleStaff, "accepted"))
	require.Equal(t, http.StatusOK, change(2, model.RoleStaff, "pending"))

	// Only staff drive the review machine.
	require.Equal(t, http.StatusForbidden, change(7, model.RolePublic, "accepted"))

	require.Equal(t, http.StatusOK, change(2, model.RoleStaff, "accepted"))
	require.Equal(t, model.VideoStatusAccepted, videos.videos[1].Status)

	// Decisions are terminal.
	require.Equal(t, http.StatusConflict, change(2, model.RoleStaff, "rejected"))
}
