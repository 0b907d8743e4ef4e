package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrframe/internal/frame"
	"github.com/cristianadrielbraun/qrframe/internal/qr"
	"github.com/cristianadrielbraun/qrframe/internal/storage"
)

const publicURL = "http://qr.test"

type testServer struct {
	router  *gin.Engine
	handler *Handler
	encoder *qr.Encoder
}

func newTestServer(t *testing.T, mutate ...func(*Deps)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	enc, err := qr.NewEncoder(qr.DefaultOptions())
	require.NoError(t, err)
	comp, err := frame.New(frame.DefaultConfig())
	require.NoError(t, err)
	uploads, err := storage.New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	codes, err := storage.New(filepath.Join(t.TempDir(), "qr"))
	require.NoError(t, err)

	deps := Deps{
		Encoder:        enc,
		Framer:         comp,
		Uploads:        uploads,
		Codes:          codes,
		PublicURL:      publicURL,
		MaxUploadBytes: 1 << 20,
		Log:            zerolog.Nop(),
	}
	for _, m := range mutate {
		m(&deps)
	}

	h := New(deps)
	r := gin.New()
	h.Register(r)
	return &testServer{router: r, handler: h, encoder: enc}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) postForm(values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *testServer) postUpload(t *testing.T, filename string, body []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/generate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req)
}

type generateResponse struct {
	QRURL    string `json:"qr_url"`
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

func decodeGenerate(t *testing.T, w *httptest.ResponseRecorder) generateResponse {
	t.Helper()
	var resp generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *testServer) storedCode(t *testing.T, name string) image.Image {
	t.Helper()
	p, err := s.handler.Codes.Path(name)
	require.NoError(t, err)
	f, err := os.Open(p)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func (s *testServer) codeSize(t *testing.T, payload string) image.Point {
	t.Helper()
	img, err := s.encoder.Encode(payload)
	require.NoError(t, err)
	return img.Bounds().Size()
}

func TestGenerateFromText(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		frame string
		extra int
	}{
		{"gradient_purple", 120},
		{"neon_glow", 120},
		{"modern_shadow", 140},
		{"", 120},
		{"confetti", 120},
	}
	for _, tt := range tests {
		t.Run(tt.frame, func(t *testing.T) {
			w := s.postForm(url.Values{"data": {"hello frames"}, "frame": {tt.frame}})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			resp := decodeGenerate(t, w)
			assert.Equal(t, publicURL+"/qr/"+resp.Filename, resp.QRURL)

			img := s.storedCode(t, resp.Filename)
			code := s.codeSize(t, "hello frames")
			assert.Equal(t, code.Add(image.Pt(tt.extra, tt.extra)), img.Bounds().Size())
		})
	}
}

func TestGenerateRequiresInput(t *testing.T) {
	s := newTestServer(t)

	w := s.postForm(url.Values{"data": {"   "}, "frame": {"neon_glow"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No input provided", decodeGenerate(t, w).Error)
}

func TestGenerateFromUpload(t *testing.T) {
	s := newTestServer(t)

	var logo bytes.Buffer
	require.NoError(t, png.Encode(&logo, image.NewRGBA(image.Rect(0, 0, 8, 8))))

	w := s.postUpload(t, "logo.png", logo.Bytes(), map[string]string{"frame": "elegant_border"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeGenerate(t, w)

	entries, err := os.ReadDir(s.handler.Uploads.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	uploaded := entries[0].Name()

	// The code points at the stored upload.
	uploadURL := publicURL + "/uploads/" + uploaded
	img := s.storedCode(t, resp.Filename)
	assert.Equal(t, s.codeSize(t, uploadURL).Add(image.Pt(120, 120)), img.Bounds().Size())

	got := s.do(httptest.NewRequest(http.MethodGet, "/uploads/"+uploaded, nil))
	assert.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, logo.Bytes(), got.Body.Bytes())
}

func TestGenerateRejectsBadUploads(t *testing.T) {
	s := newTestServer(t, func(d *Deps) { d.MaxUploadBytes = 64 })

	tests := []struct {
		name     string
		filename string
		body     []byte
		status   int
	}{
		{"unsupported", "run.exe", []byte("MZ"), http.StatusBadRequest},
		{"corrupt", "photo.jpg", []byte("not a jpeg"), http.StatusBadRequest},
		{"too large", "big.gif", bytes.Repeat([]byte("x"), 100), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.postUpload(t, tt.filename, tt.body, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, decodeGenerate(t, w).Error)
		})
	}

	entries, err := os.ReadDir(s.handler.Uploads.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestServeCode(t *testing.T) {
	s := newTestServer(t)

	w := s.postForm(url.Values{"data": {"served"}})
	require.Equal(t, http.StatusOK, w.Code)
	name := decodeGenerate(t, w).Filename

	got := s.do(httptest.NewRequest(http.MethodGet, "/qr/"+name, nil))
	assert.Equal(t, http.StatusOK, got.Code)
	_, err := png.Decode(got.Body)
	assert.NoError(t, err)

	missing := s.do(httptest.NewRequest(http.MethodGet, "/qr/0123.png", nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)

	hidden := s.do(httptest.NewRequest(http.MethodGet, "/qr/.env", nil))
	assert.Equal(t, http.StatusBadRequest, hidden.Code)
}

func TestQRCodeHandler(t *testing.T) {
	s := newTestServer(t)
	code := s.codeSize(t, "stream me")

	t.Run("png", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/api/qr?data=stream+me&frame=modern_shadow", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		img, err := png.Decode(w.Body)
		require.NoError(t, err)
		assert.Equal(t, code.Add(image.Pt(140, 140)), img.Bounds().Size())
	})

	t.Run("jpg", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/api/qr?data=stream+me&frame=gradient_rainbow&format=jpeg", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
		img, err := jpeg.Decode(w.Body)
		require.NoError(t, err)
		assert.Equal(t, code.Add(image.Pt(120, 120)), img.Bounds().Size())
	})

	t.Run("preview size", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/api/qr?data=stream+me&previewSize=200", nil))
		require.Equal(t, http.StatusOK, w.Code)
		img, err := png.Decode(w.Body)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(200, 200), img.Bounds().Size())
	})

	t.Run("missing data", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/api/qr", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad preview size", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/api/qr?data=x&previewSize=big", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

type failingEncoder struct{}

func (failingEncoder) Encode(string) (image.Image, error) {
	return nil, errors.New("content too long for any version")
}

type failingFramer struct{}

func (failingFramer) Compose(image.Image, frame.Style) (*image.RGBA, error) {
	return nil, frame.ErrInvalidInput
}

func TestGenerateCollaboratorFailures(t *testing.T) {
	enc := newTestServer(t, func(d *Deps) { d.Encoder = failingEncoder{} })
	w := enc.postForm(url.Values{"data": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	fr := newTestServer(t, func(d *Deps) { d.Framer = failingFramer{} })
	w = fr.postForm(url.Values{"data": {"x"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries, err := os.ReadDir(fr.handler.Codes.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStylesAndPages(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/styles", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var opts []struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	require.Len(t, opts, 6)
	assert.Equal(t, "none", opts[0].Value)
	assert.Equal(t, "Modern Shadow", opts[5].Label)

	home := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), `<option value="gradient_rainbow">Rainbow Gradient</option>`)

	sitemap := s.do(httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	assert.Contains(t, sitemap.Body.String(), "<loc>"+publicURL+"/</loc>")

	health := s.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}
