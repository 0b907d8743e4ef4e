// Package qr turns payloads into black-on-white QR code bitmaps.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// ErrEmptyPayload is returned when there is nothing to encode.
var ErrEmptyPayload = errors.New("qr: payload is empty")

// Options controls the rendered symbol.
type Options struct {
	// ModuleSize is the edge length of one module in pixels.
	ModuleSize int
	// QuietZone is the white border around the symbol, in modules.
	QuietZone int
}

// DefaultOptions returns 10px modules with a 4 module quiet zone.
func DefaultOptions() Options {
	return Options{ModuleSize: 10, QuietZone: 4}
}

// Encoder renders payloads at the highest error correction level.
type Encoder struct {
	opts Options
}

func NewEncoder(opts Options) (*Encoder, error) {
	if opts.ModuleSize < 1 || opts.ModuleSize > 255 {
		return nil, fmt.Errorf("qr: module size must be within [1,255], got %d", opts.ModuleSize)
	}
	if opts.QuietZone < 0 {
		return nil, fmt.Errorf("qr: quiet zone must not be negative, got %d", opts.QuietZone)
	}
	return &Encoder{opts: opts}, nil
}

// Encode renders payload as a QR code image.
func (e *Encoder) Encode(payload string) (image.Image, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, ErrEmptyPayload
	}

	qrc, err := qrcode.NewWith(payload,
		qrcode.WithEncodingMode(qrcode.EncModeByte),
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest),
	)
	if err != nil {
		return nil, fmt.Errorf("qr: create code: %w", err)
	}

	buf := &bufferCloser{}
	writer := standard.NewWithWriter(buf,
		standard.WithQRWidth(uint8(e.opts.ModuleSize)),
		standard.WithBorderWidth(e.opts.QuietZone*e.opts.ModuleSize),
		standard.WithBgColor(color.RGBA{255, 255, 255, 255}),
		standard.WithFgColor(color.RGBA{0, 0, 0, 255}),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	if err := qrc.Save(writer); err != nil {
		return nil, fmt.Errorf("qr: render code: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("qr: decode rendered code: %w", err)
	}
	return img, nil
}

// bufferCloser lets the standard writer render into memory.
type bufferCloser struct {
	bytes.Buffer
}

func (*bufferCloser) Close() error { return nil }
