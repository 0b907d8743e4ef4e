package frame

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ringColorFunc returns the color of ring i out of n, ring 0 outermost.
type ringColorFunc func(i, n int) color.RGBA

// gradientRings paints one 1px outline per margin pixel, each with its
// own color.
type gradientRings struct {
	background color.RGBA
	color      ringColorFunc
}

func (r gradientRings) paint(g geometry) (*image.RGBA, error) {
	canvas := newCanvas(g.width(), g.height(), r.background)
	b := canvas.Bounds()
	for i := 0; i < g.margin; i++ {
		strokeRect(canvas, inset(b, i), 1, r.color(i, g.margin))
	}
	return canvas, nil
}

// tintRing fades from cfg.Edge at the outer border to cfg.Base at the
// innermost ring.
func tintRing(cfg GradientConfig) ringColorFunc {
	return func(i, n int) color.RGBA {
		intensity := int(255 * (1 - float64(i)/float64(n)))
		return lerpColor(cfg.Base, cfg.Edge, float64(intensity)/255)
	}
}

// hueRing sweeps the hue from 0 to 360 degrees across the rings at full
// saturation and value.
func hueRing(i, n int) color.RGBA {
	hue := float64(i) * 360 / float64(n)
	c := colorful.Hsv(hue, 1, 1)
	return color.RGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: 255,
	}
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, 255*v)))
}
