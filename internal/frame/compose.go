// Package frame composites decorative borders around generated code images.
//
// A Compositor is immutable once built and safe for concurrent use. Compose
// never fails for a valid source image: a style that cannot be drawn falls
// back to the plain bordered canvas so the code stays usable.
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/rs/zerolog"
)

var (
	// ErrInvalidInput is returned for a nil or empty source image.
	ErrInvalidInput = errors.New("frame: source image is nil or empty")
	// ErrInvalidConfig is returned by New for an unusable Config.
	ErrInvalidConfig = errors.New("frame: invalid config")
)

// RenderError reports a failure inside a single style's drawing steps.
type RenderError struct {
	Style Style
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("frame: render %s: %v", e.Style, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// renderer produces the final framed image for one style.
type renderer interface {
	render(src image.Image, g geometry) (*image.RGBA, error)
}

// painter decorates an empty canvas; the source is embedded afterwards.
type painter interface {
	paint(g geometry) (*image.RGBA, error)
}

type embedAfter struct {
	painter
}

func (e embedAfter) render(src image.Image, g geometry) (*image.RGBA, error) {
	canvas, err := e.paint(g)
	if err != nil {
		return nil, err
	}
	embed(canvas, src, g.offset())
	return canvas, nil
}

// plainBorder is the undecorated canvas used by StyleNone and as the
// fallback for every failed style.
type plainBorder struct {
	background color.RGBA
}

func (p plainBorder) paint(g geometry) (*image.RGBA, error) {
	return newCanvas(g.width(), g.height(), p.background), nil
}

type Option func(*Compositor)

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Compositor) { c.log = l }
}

type Compositor struct {
	cfg Config
	log zerolog.Logger
}

// New builds a Compositor from cfg.
func New(cfg Config, opts ...Option) (*Compositor, error) {
	if cfg.Margin <= 0 {
		return nil, fmt.Errorf("%w: margin must be positive, got %d", ErrInvalidConfig, cfg.Margin)
	}
	c := &Compositor{cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns a copy of the compositor's configuration.
func (c *Compositor) Config() Config { return c.cfg }

// Size returns the output dimensions Compose produces for a w x h source.
func (c *Compositor) Size(w, h int, style Style) image.Point {
	p := image.Pt(w+2*c.cfg.Margin, h+2*c.cfg.Margin)
	if style == StyleModernShadow {
		p = p.Add(image.Pt(c.cfg.Shadow.Margin, c.cfg.Shadow.Margin))
	}
	return p
}

// Compose frames src with style. Unknown styles render as StyleNone and
// failing styles fall back to the plain bordered canvas; the only error
// is ErrInvalidInput.
func (c *Compositor) Compose(src image.Image, style Style) (*image.RGBA, error) {
	out, err := c.Render(src, style)
	if err == nil {
		return out, nil
	}
	var rerr *RenderError
	if !errors.As(err, &rerr) {
		return nil, err
	}
	c.log.Warn().Err(rerr.Err).Str("style", rerr.Style.String()).Msg("frame render failed, using plain border")
	return c.plain(src), nil
}

// Render frames src with style without the fallback. A failing style
// yields a *RenderError.
func (c *Compositor) Render(src image.Image, style Style) (*image.RGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrInvalidInput
	}
	if !style.Known() {
		c.log.Debug().Str("style", style.String()).Msg("unknown frame style, rendering without decoration")
		style = StyleNone
	}
	g := geometry{src: src.Bounds(), margin: c.cfg.Margin}
	out, err := c.renderer(style).render(src, g)
	if err != nil {
		return nil, &RenderError{Style: style, Err: err}
	}
	return out, nil
}

func (c *Compositor) plain(src image.Image) *image.RGBA {
	g := geometry{src: src.Bounds(), margin: c.cfg.Margin}
	out, _ := embedAfter{plainBorder{c.cfg.Background}}.render(src, g)
	return out
}

func (c *Compositor) renderer(style Style) renderer {
	bg := c.cfg.Background
	switch style {
	case StyleGradientPurple:
		return embedAfter{gradientRings{background: bg, color: tintRing(c.cfg.Gradient)}}
	case StyleGradientRainbow:
		return embedAfter{gradientRings{background: bg, color: hueRing}}
	case StyleNeonGlow:
		return embedAfter{neonGlow{background: bg, cfg: c.cfg.Glow}}
	case StyleElegantBorder:
		return embedAfter{ornamentBorder{background: bg, cfg: c.cfg.Ornament}}
	case StyleModernShadow:
		return layeredShadow{background: bg, cfg: c.cfg.Shadow}
	default:
		return embedAfter{plainBorder{c.cfg.Background}}
	}
}
