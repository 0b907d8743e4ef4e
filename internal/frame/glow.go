package frame

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// neonGlow strokes bright outlines on black, blurs them into a halo and
// blends the result over the background.
type neonGlow struct {
	background color.RGBA
	cfg        GlowConfig
}

func (n neonGlow) paint(g geometry) (*image.RGBA, error) {
	if n.cfg.Stride <= 0 {
		return nil, fmt.Errorf("glow stride must be positive, got %d", n.cfg.Stride)
	}
	if n.cfg.Stroke <= 0 {
		return nil, fmt.Errorf("glow stroke must be positive, got %d", n.cfg.Stroke)
	}
	if n.cfg.Blur < 0 {
		return nil, fmt.Errorf("glow blur must not be negative, got %v", n.cfg.Blur)
	}
	if n.cfg.Mix < 0 || n.cfg.Mix > 1 {
		return nil, fmt.Errorf("glow mix must be within [0,1], got %v", n.cfg.Mix)
	}

	layer := newCanvas(g.width(), g.height(), color.Black)
	b := layer.Bounds()
	for i := 0; i < g.margin; i += n.cfg.Stride {
		strokeRect(layer, inset(b, i), n.cfg.Stroke, n.cfg.Color)
	}

	halo := imaging.Blur(layer, n.cfg.Blur)
	base := imaging.New(g.width(), g.height(), n.background)
	return toRGBA(imaging.Overlay(base, halo, image.Point{}, n.cfg.Mix)), nil
}
