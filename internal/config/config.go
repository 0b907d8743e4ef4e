package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cristianadrielbraun/qrframe/internal/frame"
	"github.com/cristianadrielbraun/qrframe/internal/qr"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	QR      QRConfig      `mapstructure:"qr"`
	Frame   FrameConfig   `mapstructure:"frame"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	PublicURL    string        `mapstructure:"public_url"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type StorageConfig struct {
	UploadDir      string `mapstructure:"upload_dir"`
	QRDir          string `mapstructure:"qr_dir"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

type QRConfig struct {
	ModuleSize int `mapstructure:"module_size"`
	QuietZone  int `mapstructure:"quiet_zone"`
}

type FrameConfig struct {
	Margin       int     `mapstructure:"margin"`
	ShadowMargin int     `mapstructure:"shadow_margin"`
	GlowBlur     float64 `mapstructure:"glow_blur"`
	GlowStride   int     `mapstructure:"glow_stride"`
	GlowMix      float64 `mapstructure:"glow_mix"`
	ShadowBlur   float64 `mapstructure:"shadow_blur"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// Load reads the YAML file at path, if any, on top of the defaults.
// Every key can be overridden from the environment, e.g.
// QRFRAME_SERVER_PORT or QRFRAME_FRAME_MARGIN.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("qrframe")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.Server.Port <= 0 {
		return nil, errors.New("config: server.port must be positive")
	}
	config.Server.PublicURL = strings.TrimRight(config.Server.PublicURL, "/")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	fc := frame.DefaultConfig()
	qo := qr.DefaultOptions()

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.public_url", "http://localhost:8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("storage.upload_dir", "static/uploads")
	v.SetDefault("storage.qr_dir", "static/qr_code")
	v.SetDefault("storage.max_upload_bytes", 10<<20)

	v.SetDefault("qr.module_size", qo.ModuleSize)
	v.SetDefault("qr.quiet_zone", qo.QuietZone)

	v.SetDefault("frame.margin", fc.Margin)
	v.SetDefault("frame.shadow_margin", fc.Shadow.Margin)
	v.SetDefault("frame.glow_blur", fc.Glow.Blur)
	v.SetDefault("frame.glow_stride", fc.Glow.Stride)
	v.SetDefault("frame.glow_mix", fc.Glow.Mix)
	v.SetDefault("frame.shadow_blur", fc.Shadow.Blur)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file_path", "")
}

// Compositor returns the frame settings layered over frame.DefaultConfig.
func (c FrameConfig) Compositor() frame.Config {
	fc := frame.DefaultConfig()
	fc.Margin = c.Margin
	fc.Shadow.Margin = c.ShadowMargin
	fc.Shadow.Blur = c.ShadowBlur
	fc.Glow.Blur = c.GlowBlur
	fc.Glow.Stride = c.GlowStride
	fc.Glow.Mix = c.GlowMix
	return fc
}

// Encoder returns the QR rendering options.
func (c QRConfig) Encoder() qr.Options {
	return qr.Options{ModuleSize: c.ModuleSize, QuietZone: c.QuietZone}
}

// Addr is the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
