package frame

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// layeredShadow casts a blurred drop shadow toward the bottom-right, adds
// a stepped gray bevel and embeds the source itself. Its canvas is larger
// than the other styles by cfg.Margin on the right and bottom edges.
type layeredShadow struct {
	background color.RGBA
	cfg        ShadowConfig
}

func (s layeredShadow) render(src image.Image, g geometry) (*image.RGBA, error) {
	if s.cfg.Margin < 0 {
		return nil, fmt.Errorf("shadow margin must not be negative, got %d", s.cfg.Margin)
	}
	if s.cfg.Blur < 0 {
		return nil, fmt.Errorf("shadow blur must not be negative, got %v", s.cfg.Blur)
	}
	if s.cfg.BevelRings < 0 || s.cfg.BevelRings > g.margin {
		return nil, fmt.Errorf("bevel of %d rings does not fit a %dpx margin", s.cfg.BevelRings, g.margin)
	}

	frameW, frameH := g.width(), g.height()
	e := s.cfg.Margin
	bounds := image.Rect(0, 0, frameW+e, frameH+e)

	layer := image.NewNRGBA(bounds)
	fillRect(layer, image.Rect(e, e, frameW+1, frameH+1), s.cfg.Color)
	shadow := imaging.Blur(layer, s.cfg.Blur)

	canvas := newCanvas(bounds.Dx(), bounds.Dy(), s.background)
	draw.Draw(canvas, bounds, shadow, image.Point{}, draw.Over)

	// Bevel outlines include the frame's far edge, so they are one pixel
	// wider than the frame itself.
	frame := image.Rect(0, 0, frameW+1, frameH+1)
	for i := 0; i < s.cfg.BevelRings; i++ {
		v := clampChannel(s.cfg.BevelStart - i*s.cfg.BevelStep)
		strokeRect(canvas, inset(frame, i), 1, color.RGBA{v, v, v, 255})
	}

	embed(canvas, src, g.offset())
	return canvas, nil
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
