package frame

import "image/color"

// Config holds every constant the frame styles draw with.
type Config struct {
	// Margin is the border thickness added on each side of the code image.
	Margin     int
	Background color.RGBA

	Gradient GradientConfig
	Glow     GlowConfig
	Ornament OrnamentConfig
	Shadow   ShadowConfig
}

// GradientConfig parameterises the single-hue ring gradient. Rings move
// from Edge at the outer border toward Base next to the code image.
type GradientConfig struct {
	Base color.RGBA
	Edge color.RGBA
}

type GlowConfig struct {
	Color  color.RGBA
	Stride int
	Stroke int
	// Blur is the Gaussian sigma applied to the glow layer.
	Blur float64
	// Mix is the blend ratio toward the glow layer, in [0,1].
	Mix float64
}

type OrnamentConfig struct {
	OuterColor  color.RGBA
	OuterWidth  int
	InnerColor  color.RGBA
	InnerInset  int
	InnerWidth  int
	CornerColor color.RGBA
	CornerInset int
	CornerSize  int
}

type ShadowConfig struct {
	// Margin is the extra space added to the right and bottom edges.
	Margin int
	Color  color.RGBA
	Blur   float64

	BevelRings int
	BevelStart int
	BevelStep  int
}

// DefaultConfig returns the stock frame look with a 60px margin.
func DefaultConfig() Config {
	return Config{
		Margin:     60,
		Background: color.RGBA{255, 255, 255, 255},
		Gradient: GradientConfig{
			Base: color.RGBA{138, 43, 226, 255},
			Edge: color.RGBA{53, 1, 163, 255},
		},
		Glow: GlowConfig{
			Color:  color.RGBA{0, 255, 255, 255},
			Stride: 5,
			Stroke: 3,
			Blur:   3,
			Mix:    0.7,
		},
		Ornament: OrnamentConfig{
			OuterColor:  color.RGBA{40, 40, 40, 255},
			OuterWidth:  8,
			InnerColor:  color.RGBA{200, 200, 200, 255},
			InnerInset:  15,
			InnerWidth:  3,
			CornerColor: color.RGBA{100, 100, 100, 255},
			CornerInset: 10,
			CornerSize:  20,
		},
		Shadow: ShadowConfig{
			Margin:     20,
			Color:      color.RGBA{0, 0, 0, 80},
			Blur:       10,
			BevelRings: 5,
			BevelStart: 200,
			BevelStep:  20,
		},
	}
}
