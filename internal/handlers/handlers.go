package handlers

import (
	"image"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cristianadrielbraun/qrframe/internal/frame"
	"github.com/cristianadrielbraun/qrframe/internal/storage"
	"github.com/cristianadrielbraun/qrframe/web/components"
	"github.com/cristianadrielbraun/qrframe/web/pages"
)

// Encoder renders a payload as a code image.
type Encoder interface {
	Encode(payload string) (image.Image, error)
}

// Framer wraps a code image in a decorative frame.
type Framer interface {
	Compose(src image.Image, style frame.Style) (*image.RGBA, error)
}

// Deps are the collaborators a Handler needs.
type Deps struct {
	Encoder Encoder
	Framer  Framer
	Uploads *storage.Store
	Codes   *storage.Store
	// PublicURL prefixes every link handed to clients and encoded into
	// codes for uploaded images.
	PublicURL      string
	MaxUploadBytes int64
	Log            zerolog.Logger
}

// Handler holds the dependencies for HTTP handlers.
type Handler struct {
	Deps
}

// New returns a new Handler instance.
func New(deps Deps) *Handler { return &Handler{Deps: deps} }

// Register mounts every route on r.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.HomePage)
	r.GET("/sitemap.xml", h.SitemapXML)
	r.GET("/healthz", h.Health)

	r.POST("/generate", h.Generate)
	r.GET("/uploads/:filename", h.ServeUpload)
	r.GET("/qr/:filename", h.ServeCode)

	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.GET("/styles", h.Styles)
	}
}

// HomePage renders the generation form.
func (h *Handler) HomePage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pages.HomePage(styleOptions()).Render(c.Request.Context(), c.Writer); err != nil {
		h.Log.Error().Err(err).Msg("render home page")
	}
}

// Styles lists the frame styles the service understands.
func (h *Handler) Styles(c *gin.Context) {
	c.JSON(http.StatusOK, styleOptions())
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().Unix()})
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + h.PublicURL + "/" + "</loc>\n" +
		"    <changefreq>weekly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(http.StatusOK, xml)
}

func styleOptions() []components.StyleOption {
	all := frame.Styles()
	opts := make([]components.StyleOption, 0, len(all))
	for _, s := range all {
		opts = append(opts, components.StyleOption{Value: s.String(), Label: s.Label()})
	}
	return opts
}
