package handler

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// UploadHandler stores multipart uploads under a configured directory
// and hands back a URL path. The directory stands in for an external
// blob store; nothing else in the service reads it.
type UploadHandler struct {
	Dir string
}

func NewUploadHandler(dir string) *UploadHandler { return &UploadHandler{Dir: dir} }

// Upload accepts one file under the form key "file". The stored name is
// randomized; the original extension is kept for content-type sniffing
// on the way back out.
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	name := hex.EncodeToString(buf) + filepath.Ext(fh.Filename)

	dst, err := os.Create(filepath.Join(h.Dir, name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	defer func() { _ = dst.Close() }()
	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": "/uploads/" + name})
}
