package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrframe/internal/frame"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.Server.PublicURL)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "static/uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "static/qr_code", cfg.Storage.QRDir)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, 10, cfg.QR.ModuleSize)
	assert.Equal(t, 4, cfg.QR.QuietZone)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.Equal(t, frame.DefaultConfig(), cfg.Frame.Compositor())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
  public_url: https://qr.example.com/
frame:
  margin: 40
  glow_mix: 0.5
logging:
  format: text
`), 0o644))

	t.Setenv("QRFRAME_FRAME_SHADOW_MARGIN", "32")
	t.Setenv("QRFRAME_STORAGE_QR_DIR", "/var/lib/qrframe/qr")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://qr.example.com", cfg.Server.PublicURL)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "/var/lib/qrframe/qr", cfg.Storage.QRDir)

	fc := cfg.Frame.Compositor()
	assert.Equal(t, 40, fc.Margin)
	assert.Equal(t, 32, fc.Shadow.Margin)
	assert.Equal(t, 0.5, fc.Glow.Mix)
	assert.Equal(t, 5, fc.Glow.Stride)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("QRFRAME_SERVER_PORT", "0")
	_, err := Load("")
	assert.Error(t, err)
}
