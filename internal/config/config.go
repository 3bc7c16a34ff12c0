// Package config loads service settings from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file in the working directory. Variables already set in the
// environment win over the file.
package config

import (
	"io/fs"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config is the complete service configuration.
type Config struct {
	Server Server
	Cache  Cache
	OCR    OCR
	Log    Log
}

// Server configures the HTTP surface.
type Server struct {
	Host            string        `env:"RECOGNIZE_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"RECOGNIZE_PORT" envDefault:"5000"`
	RequestTimeout  time.Duration `env:"RECOGNIZE_REQUEST_TIMEOUT" envDefault:"30s"`
	DownloadTimeout time.Duration `env:"RECOGNIZE_DOWNLOAD_TIMEOUT" envDefault:"10s"`
	BodyLimit       int           `env:"RECOGNIZE_BODY_LIMIT" envDefault:"52428800"`
}

// Addr returns host:port.
func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Cache configures the two-tier result cache.
type Cache struct {
	Dir           string        `env:"RECOGNIZE_CACHE_DIR" envDefault:"cache"`
	MaxEntries    int           `env:"RECOGNIZE_CACHE_ENTRIES" envDefault:"2000"`
	TTL           time.Duration `env:"RECOGNIZE_CACHE_TTL" envDefault:"1h"`
	SweepInterval time.Duration `env:"RECOGNIZE_SWEEP_INTERVAL" envDefault:"1h"`
	MaxAgeDays    int           `env:"RECOGNIZE_SWEEP_MAX_AGE_DAYS" envDefault:"7"`
	MaxFiles      int           `env:"RECOGNIZE_SWEEP_MAX_FILES" envDefault:"1000"`
	KeepImages    bool          `env:"RECOGNIZE_KEEP_IMAGES" envDefault:"false"`
	SingleFlight  bool          `env:"RECOGNIZE_SINGLE_FLIGHT" envDefault:"true"`
}

// OCR configures text recognition and image preparation.
type OCR struct {
	Languages      []string `env:"RECOGNIZE_OCR_LANGUAGES" envSeparator:"," envDefault:"chi_sim,eng"`
	TessdataPrefix string   `env:"RECOGNIZE_TESSDATA_PREFIX"`
	MinConfidence  float64  `env:"RECOGNIZE_OCR_MIN_CONFIDENCE" envDefault:"0.5"`
	MaxEdge        int      `env:"RECOGNIZE_MAX_EDGE" envDefault:"1024"`
	ColorFilter    bool     `env:"RECOGNIZE_COLOR_FILTER" envDefault:"false"`
	ColorTarget    string   `env:"RECOGNIZE_COLOR_TARGET" envDefault:"#1E1E1E"`
	ColorTolerance float64  `env:"RECOGNIZE_COLOR_TOLERANCE" envDefault:"0.2"`
}

// Log configures logging.
type Log struct {
	Dir     string `env:"RECOGNIZE_LOG_DIR" envDefault:"logs"`
	Level   string `env:"RECOGNIZE_LOG_LEVEL" envDefault:"info"`
	Console bool   `env:"RECOGNIZE_LOG_CONSOLE" envDefault:"true"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to read .env")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return errors.Errorf("invalid port %d", c.Server.Port)
	case c.Server.RequestTimeout <= 0:
		return errors.New("request timeout must be positive")
	case c.Cache.Dir == "":
		return errors.New("cache directory is required")
	case c.Cache.MaxEntries <= 0:
		return errors.New("cache entries must be positive")
	case c.OCR.MinConfidence < 0 || c.OCR.MinConfidence >= 1:
		return errors.Errorf("ocr confidence %v out of range [0, 1)", c.OCR.MinConfidence)
	case len(c.OCR.Languages) == 0:
		return errors.New("at least one ocr language is required")
	}
	return nil
}
