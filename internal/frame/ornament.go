package frame

import (
	"fmt"
	"image"
	"image/color"
)

// ornamentBorder draws a thick outer outline, a thin inner outline and a
// filled square near each corner, in that order.
type ornamentBorder struct {
	background color.RGBA
	cfg        OrnamentConfig
}

func (o ornamentBorder) paint(g geometry) (*image.RGBA, error) {
	reach := o.cfg.CornerInset + o.cfg.CornerSize
	if reach >= g.margin {
		return nil, fmt.Errorf("corner ornaments reach %dpx into a %dpx margin", reach+1, g.margin)
	}
	if o.cfg.InnerInset+o.cfg.InnerWidth > g.margin {
		return nil, fmt.Errorf("inner outline at %dpx does not fit a %dpx margin", o.cfg.InnerInset, g.margin)
	}

	canvas := newCanvas(g.width(), g.height(), o.background)
	b := canvas.Bounds()

	strokeRect(canvas, b, o.cfg.OuterWidth, o.cfg.OuterColor)
	strokeRect(canvas, inset(b, o.cfg.InnerInset), o.cfg.InnerWidth, o.cfg.InnerColor)

	// Squares are inclusive of their far edge, hence the +1.
	side := o.cfg.CornerSize + 1
	near := o.cfg.CornerInset
	farX := b.Dx() - o.cfg.CornerInset - o.cfg.CornerSize
	farY := b.Dy() - o.cfg.CornerInset - o.cfg.CornerSize
	for _, p := range []image.Point{
		{near, near},
		{farX, near},
		{near, farY},
		{farX, farY},
	} {
		fillRect(canvas, image.Rect(p.X, p.Y, p.X+side, p.Y+side), o.cfg.CornerColor)
	}
	return canvas, nil
}
