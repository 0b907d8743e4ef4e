package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrframe/internal/frame"
	"github.com/cristianadrielbraun/qrframe/internal/qr"
)

const (
	maxPayloadLen  = 4096
	maxPreviewSize = 4096
)

// QRCodeHandler renders a framed code and streams it back without storing it.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	data := strings.TrimSpace(c.Query("data"))
	if data == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data parameter is required"})
		return
	}

	// Parse format parameter (default to PNG)
	format := strings.ToLower(c.DefaultQuery("format", "png"))
	if format == "jpeg" {
		format = "jpg"
	}
	if format != "png" && format != "jpg" {
		format = "png"
	}

	previewSize := 0
	if ps := c.Query("previewSize"); ps != "" {
		n, err := strconv.Atoi(ps)
		if err != nil || n <= 0 || n > maxPreviewSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("previewSize must be between 1 and %d", maxPreviewSize)})
			return
		}
		previewSize = n
	}

	style := h.parseStyle(c.Query("frame"))
	framed, status, err := h.render(data, style)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	var img image.Image = framed
	if previewSize > 0 {
		// Nearest neighbour keeps module edges sharp.
		img = imaging.Resize(framed, previewSize, previewSize, imaging.NearestNeighbor)
	}

	c.Header("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	c.Header("X-QR-Debug", fmt.Sprintf("format=%s;frame=%s", format, style))

	var buf bytes.Buffer
	if format == "jpg" {
		if err := jpeg.Encode(&buf, flatten(img, color.White), &jpeg.Options{Quality: 92}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to encode JPEG: %v", err)})
			return
		}
		c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
		return
	}

	if err := png.Encode(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to encode PNG: %v", err)})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// render encodes payload and frames it. On failure it returns the HTTP
// status the error maps to.
func (h *Handler) render(payload string, style frame.Style) (*image.RGBA, int, error) {
	if len(payload) > maxPayloadLen {
		return nil, http.StatusBadRequest, errors.New("payload is too long")
	}

	code, err := h.Encoder.Encode(payload)
	if errors.Is(err, qr.ErrEmptyPayload) {
		return nil, http.StatusBadRequest, errors.New("No input provided")
	}
	if err != nil {
		// The encoder only fails on payloads that exceed the symbol capacity.
		h.Log.Warn().Err(err).Int("payload_len", len(payload)).Msg("qr encode failed")
		return nil, http.StatusBadRequest, errors.New("payload cannot be encoded as a QR code")
	}

	framed, err := h.Framer.Compose(code, style)
	if err != nil {
		h.Log.Error().Err(err).Str("frame", style.String()).Msg("frame compose failed")
		return nil, http.StatusInternalServerError, errors.New("Failed to generate QR code image")
	}
	return framed, http.StatusOK, nil
}

func (h *Handler) parseStyle(s string) frame.Style {
	style, ok := frame.ParseStyle(s)
	if !ok {
		h.Log.Debug().Str("frame", s).Msg("unknown frame style, using none")
	}
	return style
}

// flatten composites img onto an opaque background, for formats without alpha.
func flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}
