package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sa6mwa/scanlaunch"
	"gopkg.in/yaml.v3"
)

type MetricsCfg struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

type CORSCfg struct {
	AllowOrigins []string `yaml:"allow_origins" json:"allow_origins"`
}

type Config struct {
	Listen         string     `yaml:"listen" json:"listen"`
	ScannerUtility string     `yaml:"scanner_utility" json:"scanner_utility"`
	Platform       string     `yaml:"platform" json:"platform"` // Can only disable the commands, never enable them
	Debug          bool       `yaml:"debug" json:"debug"`
	Metrics        MetricsCfg `yaml:"metrics" json:"metrics"`
	CORS           CORSCfg    `yaml:"cors" json:"cors"`
}

const (
	DefaultListen = "127.0.0.1:1430"
	// DefaultOrigin is the vite dev server serving the front-end.
	DefaultOrigin = "http://localhost:3000"
)

var (
	errNilConfig     = errors.New("nil config")
	errInvalidListen = errors.New("listen address must be host:port")
	errMetricsPath   = errors.New("metrics.path must start with /")
	errEmptyOrigin   = errors.New("cors.allow_origins must not contain empty entries")
	errWildcard      = errors.New("cors.allow_origins must list origins explicitly, \"*\" is not accepted")
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Metrics: MetricsCfg{Enabled: true}}
	_ = cfg.validateAndDefault()
	return cfg
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{Metrics: MetricsCfg{Enabled: true}}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	c.Listen = strings.TrimSpace(c.Listen)
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if !strings.Contains(c.Listen, ":") {
		return errInvalidListen
	}

	if c.ScannerUtility == "" {
		c.ScannerUtility = scanlaunch.DefaultScannerUtility
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errMetricsPath
	}

	if len(c.CORS.AllowOrigins) == 0 {
		c.CORS.AllowOrigins = []string{DefaultOrigin}
	}
	for _, o := range c.CORS.AllowOrigins {
		switch strings.TrimSpace(o) {
		case "":
			return errEmptyOrigin
		case "*":
			return errWildcard
		}
	}
	return nil
}

// Validate re-applies defaults and validation, e.g. after flag overrides.
func (c *Config) Validate() error {
	if c == nil {
		return errNilConfig
	}
	return c.validateAndDefault()
}
