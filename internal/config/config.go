// Package config loads the deck server configuration.
//
// Configuration comes from a single YAML file named by the --config flag
// or the DECKAPP_CONFIG environment variable. Every field has a default, so
// running without a file is valid.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/youruser/artifactdeck/internal/sanitize"
)

// EnvPath names the environment variable holding the config path.
const EnvPath = "DECKAPP_CONFIG"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Cards    CardsConfig    `yaml:"cards"`
	Sanitize SanitizeConfig `yaml:"sanitize"`
	Image    ImageConfig    `yaml:"image"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	// Addr is the listen address. Default: :8080
	Addr string `yaml:"addr"`
}

type CardsConfig struct {
	// DataDir holds the card set JSON files. Default: data
	DataDir string `yaml:"data_dir"`

	// CachePath is where the CBOR card cache is written. Empty disables
	// the cache.
	CachePath string `yaml:"cache_path"`

	// Language is used when a request does not ask for one.
	// Default: english
	Language string `yaml:"language"`
}

type SanitizeConfig struct {
	// Policy is "ugc" or "strict". Default: ugc
	Policy string `yaml:"policy"`
}

type ImageConfig struct {
	// QRSize is the default QR code edge in pixels. Default: 400
	QRSize int `yaml:"qr_size"`

	// MaxQRSize bounds the size query parameter. Default: 2048
	MaxQRSize int `yaml:"max_qr_size"`

	// FetchTimeout bounds downloading all art for one deck image.
	// Default: 20s
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

type LogConfig struct {
	// Level is debug, info, warn or error. Default: info
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8080"},
		Cards:    CardsConfig{DataDir: "data", Language: "english"},
		Sanitize: SanitizeConfig{Policy: sanitize.PolicyUGC},
		Image:    ImageConfig{QRSize: 400, MaxQRSize: 2048, FetchTimeout: 20 * time.Second},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path falls back to
// DECKAPP_CONFIG; if that is empty too the defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if _, err := sanitize.New(c.Sanitize.Policy); err != nil {
		errs = append(errs, fmt.Errorf("sanitize.policy: %w", err))
	}
	if c.Image.QRSize <= 0 || c.Image.MaxQRSize < c.Image.QRSize {
		errs = append(errs, fmt.Errorf("image: qr_size %d must be positive and at most max_qr_size %d", c.Image.QRSize, c.Image.MaxQRSize))
	}
	if c.Image.FetchTimeout <= 0 {
		errs = append(errs, errors.New("image.fetch_timeout must be positive"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	return errors.Join(errs...)
}
