// Package media validates uploaded images before they are stored.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedType = errors.New("media: unsupported file type")
	ErrCorrupt         = errors.New("media: file is not a readable image")
	ErrTooLarge        = errors.New("media: file is too large")
)

// MaxSVGSide bounds the longest edge of a rasterised SVG.
const MaxSVGSide = 2048

var rasterExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// Upload is an image ready to be written to storage.
type Upload struct {
	// Ext is the extension to store under, including the dot.
	Ext    string
	Data   []byte
	Width  int
	Height int
}

// Normalize reads an uploaded file. Raster images are kept as uploaded
// once they decode; SVG files are rasterised to PNG. maxBytes <= 0
// disables the size limit.
func Normalize(filename string, r io.Reader, maxBytes int64) (*Upload, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".svg" && !rasterExts[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	data, err := readLimited(r, maxBytes)
	if err != nil {
		return nil, err
	}

	if ext == ".svg" {
		return rasterizeSVG(data)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrCorrupt)
	}
	return &Upload{Ext: ext, Data: data, Width: cfg.Width, Height: cfg.Height}, nil
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("media: read upload: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("media: read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxBytes)
	}
	return data, nil
}

func rasterizeSVG(data []byte) (*Upload, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	w, h := fitSide(icon.ViewBox.W, icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: svg has no usable viewBox", ErrCorrupt)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("media: encode rasterised svg: %w", err)
	}
	return &Upload{Ext: ".png", Data: buf.Bytes(), Width: w, Height: h}, nil
}

// fitSide rounds the viewBox to pixels, scaling it down so neither edge
// exceeds MaxSVGSide.
func fitSide(vw, vh float64) (int, int) {
	if vw <= 0 || vh <= 0 || math.IsNaN(vw) || math.IsNaN(vh) {
		return 0, 0
	}
	if longest := math.Max(vw, vh); longest > MaxSVGSide {
		scale := MaxSVGSide / longest
		vw *= scale
		vh *= scale
	}
	return int(math.Max(1, math.Round(vw))), int(math.Max(1, math.Round(vh)))
}
