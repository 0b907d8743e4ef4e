package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrframe/internal/media"
	"github.com/cristianadrielbraun/qrframe/internal/storage"
)

// Generate builds a framed code from form text or an uploaded image and
// stores it. Uploaded images are stored too; the code then points at them.
func (h *Handler) Generate(c *gin.Context) {
	data := strings.TrimSpace(c.PostForm("data"))
	style := h.parseStyle(c.DefaultPostForm("frame", "none"))

	var payload string
	if fh, err := c.FormFile("image"); err == nil && fh.Filename != "" {
		url, status, err := h.storeUpload(fh)
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		payload = url
	} else if data != "" {
		payload = data
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input provided"})
		return
	}

	framed, status, err := h.render(payload, style)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	name, err := h.Codes.SavePNG(framed)
	if err != nil {
		h.Log.Error().Err(err).Msg("store generated code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store QR code"})
		return
	}

	h.Log.Info().Str("file", name).Str("frame", style.String()).Msg("qr generated")
	c.JSON(http.StatusOK, gin.H{
		"qr_url":   h.PublicURL + "/qr/" + name,
		"filename": name,
	})
}

// storeUpload validates and stores an uploaded image and returns its
// public URL.
func (h *Handler) storeUpload(fh *multipart.FileHeader) (string, int, error) {
	f, err := fh.Open()
	if err != nil {
		return "", http.StatusBadRequest, fmt.Errorf("Failed to read upload: %v", err)
	}
	defer f.Close()

	up, err := media.Normalize(fh.Filename, f, h.MaxUploadBytes)
	switch {
	case errors.Is(err, media.ErrUnsupportedType):
		return "", http.StatusBadRequest, errors.New("Unsupported image type")
	case errors.Is(err, media.ErrCorrupt):
		return "", http.StatusBadRequest, errors.New("Uploaded file is not a valid image")
	case errors.Is(err, media.ErrTooLarge):
		return "", http.StatusRequestEntityTooLarge, errors.New("Uploaded file is too large")
	case err != nil:
		return "", http.StatusBadRequest, fmt.Errorf("Failed to read upload: %v", err)
	}

	name, err := h.Uploads.SaveUpload(bytes.NewReader(up.Data), up.Ext)
	if err != nil {
		h.Log.Error().Err(err).Msg("store upload")
		return "", http.StatusInternalServerError, errors.New("Failed to store upload")
	}
	h.Log.Info().Str("file", name).Int("width", up.Width).Int("height", up.Height).Msg("upload stored")
	return h.PublicURL + "/uploads/" + name, http.StatusOK, nil
}

// ServeUpload returns a stored upload.
func (h *Handler) ServeUpload(c *gin.Context) {
	h.serveFrom(c, h.Uploads)
}

// ServeCode returns a stored framed code.
func (h *Handler) ServeCode(c *gin.Context) {
	h.serveFrom(c, h.Codes)
}

func (h *Handler) serveFrom(c *gin.Context, store *storage.Store) {
	p, err := store.Path(c.Param("filename"))
	switch {
	case errors.Is(err, storage.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file name"})
		return
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	case err != nil:
		h.Log.Error().Err(err).Msg("resolve stored file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	c.File(p)
}
