package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"

	"hovertrans/backend/internal/network"
)

const (
	AppName    = "hovertrans"
	AppVersion = "1.0.0"
	AppRepo    = "https://github.com/hovertrans/hovertrans"
)

// UserAgent identifies the backend to the translation endpoint.
var UserAgent = "Mozilla/5.0 (compatible; " + AppName + "/" + AppVersion + "; +" + AppRepo + ")"

// Chrome headers for TLS fingerprinting (must match azuretls Chrome profile version)
const (
	ChromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
	ChromeSecChUa   = `"Google Chrome";v="135", "Chromium";v="135", "Not-A.Brand";v="8"`
)

// Storage backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Translation backends. The LLM backends share their names with the llm
// package's providers.
const (
	TranslatorGoogle     = "google"
	TranslatorOpenAI     = "openai"
	TranslatorAnthropic  = "anthropic"
	TranslatorCompatible = "compatible"
)

// Translation transports.
const (
	TransportStandard = "standard"
	TransportBrowser  = "browser"
)

type Config struct {
	Addr      string `env:"HOVERTRANS_ADDR" envDefault:"127.0.0.1:8787"`
	DataDir   string `env:"HOVERTRANS_DATA_DIR"`
	DBPath    string `env:"HOVERTRANS_DB_PATH"`
	LogLevel  string `env:"HOVERTRANS_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"HOVERTRANS_LOG_FORMAT" envDefault:"text"`

	Store     string `env:"HOVERTRANS_STORE" envDefault:"sqlite"`
	RedisAddr string `env:"HOVERTRANS_REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisDB   int    `env:"HOVERTRANS_REDIS_DB" envDefault:"0"`

	TranslateEndpoint string        `env:"HOVERTRANS_TRANSLATE_ENDPOINT" envDefault:"https://translate.googleapis.com"`
	TranslateTimeout  time.Duration `env:"HOVERTRANS_TRANSLATE_TIMEOUT" envDefault:"15s"`
	TranslateQPS      int           `env:"HOVERTRANS_TRANSLATE_QPS" envDefault:"5"`
	Transport         string        `env:"HOVERTRANS_TRANSPORT" envDefault:"standard"`
	ProxyURL          string        `env:"HOVERTRANS_PROXY_URL"`

	Translator  string `env:"HOVERTRANS_TRANSLATOR" envDefault:"google"`
	AIAPIKey    string `env:"HOVERTRANS_AI_API_KEY"`
	AIBaseURL   string `env:"HOVERTRANS_AI_BASE_URL"`
	AIModel     string `env:"HOVERTRANS_AI_MODEL"`
	AIMaxTokens int64  `env:"HOVERTRANS_AI_MAX_TOKENS" envDefault:"1024"`

	Workers        int           `env:"HOVERTRANS_WORKERS" envDefault:"16"`
	Locale         string        `env:"HOVERTRANS_LOCALE" envDefault:"ko"`
	TabTTL         time.Duration `env:"HOVERTRANS_TAB_TTL" envDefault:"10m"`
	AllowedOrigins []string      `env:"HOVERTRANS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"chrome-extension://*,moz-extension://*"`
	NodeID         int64         `env:"HOVERTRANS_NODE_ID" envDefault:"1"`
	StaticDir      string        `env:"HOVERTRANS_STATIC_DIR"`
}

// Load reads the configuration from the environment and fills in path defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Finalize fills in derived path defaults and validates the result. Callers
// that override fields after Load call it again.
func (c *Config) Finalize() error {
	c.applyDefaults()
	return c.Validate()
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = XDGDataDir()
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, AppName+".db")
	}
	c.DataDir = filepath.Clean(c.DataDir)
	c.DBPath = filepath.Clean(c.DBPath)
	if c.StaticDir != "" {
		c.StaticDir = filepath.Clean(c.StaticDir)
	}
}

// Validate checks the settings that cannot be defaulted sensibly.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("unsupported store %q", c.Store)
	}
	switch c.Translator {
	case TranslatorGoogle, TranslatorOpenAI, TranslatorAnthropic, TranslatorCompatible:
	default:
		return fmt.Errorf("unsupported translator %q", c.Translator)
	}
	switch c.Transport {
	case TransportStandard, TransportBrowser:
	default:
		return fmt.Errorf("unsupported transport %q", c.Transport)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("node id must be in [0, 1023], got %d", c.NodeID)
	}
	if c.ProxyURL != "" {
		if _, err := network.ParseProxyURL(c.ProxyURL); err != nil {
			return fmt.Errorf("proxy: %w", err)
		}
	}
	return nil
}

// XDGDataDir returns the XDG data directory for hovertrans.
// On Linux: ~/.local/share/hovertrans
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
