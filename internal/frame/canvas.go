package frame

import (
	"image"
	"image/color"
	"image/draw"
)

// geometry is the frame layout for a single call.
type geometry struct {
	src    image.Rectangle
	margin int
}

func (g geometry) width() int  { return g.src.Dx() + 2*g.margin }
func (g geometry) height() int { return g.src.Dy() + 2*g.margin }

func (g geometry) bounds() image.Rectangle {
	return image.Rect(0, 0, g.width(), g.height())
}

func (g geometry) offset() image.Point {
	return image.Pt(g.margin, g.margin)
}

// newCanvas allocates a w x h canvas filled with bg.
func newCanvas(w, h int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return img
}

// inset shrinks r by n pixels on every side.
func inset(r image.Rectangle, n int) image.Rectangle {
	return image.Rect(r.Min.X+n, r.Min.Y+n, r.Max.X-n, r.Max.Y-n)
}

func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// strokeRect draws the outline of r, width pixels thick, growing inward.
func strokeRect(dst draw.Image, r image.Rectangle, width int, c color.Color) {
	if r.Empty() || width <= 0 {
		return
	}
	if 2*width >= r.Dx() || 2*width >= r.Dy() {
		fillRect(dst, r, c)
		return
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y+width, r.Min.X+width, r.Max.Y-width), c)
	fillRect(dst, image.Rect(r.Max.X-width, r.Min.Y+width, r.Max.X, r.Max.Y-width), c)
}

// embed copies src unchanged onto dst with its top-left corner at p.
func embed(dst *image.RGBA, src image.Image, p image.Point) {
	sb := src.Bounds()
	draw.Draw(dst, image.Rectangle{Min: p, Max: p.Add(sb.Size())}, src, sb.Min, draw.Src)
}

// toRGBA converts img to an *image.RGBA anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// lerpColor performs linear interpolation between two colors
func lerpColor(color1, color2 color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(color1.R) + t*(float64(color2.R)-float64(color1.R))),
		G: uint8(float64(color1.G) + t*(float64(color2.G)-float64(color1.G))),
		B: uint8(float64(color1.B) + t*(float64(color2.B)-float64(color1.B))),
		A: 255,
	}
}
