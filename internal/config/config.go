package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultBufferSize     = 1 << 20
	DefaultMaxSectionSize = 1 << 28
	DefaultFileSuffix     = "grib2.bin"

	minBufferSize = 64
)

// Config holds the decoder and tool settings.
type Config struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	BufferSize     int    `yaml:"buffer_size"`
	MaxSectionSize int    `yaml:"max_section_size"`
	SyntaxCheck    bool   `yaml:"syntax_check"`
	FileSuffix     string `yaml:"file_suffix"`
	MetricsAddr    string `yaml:"metrics_addr"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	bufferSize, err := envInt("WGPV_BUFFER_SIZE", DefaultBufferSize)
	if err != nil {
		return nil, err
	}
	maxSectionSize, err := envInt("WGPV_MAX_SECTION_SIZE", DefaultMaxSectionSize)
	if err != nil {
		return nil, err
	}
	syntaxCheck, err := envBool("WGPV_SYNTAX_CHECK", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "text"),
		BufferSize:     bufferSize,
		MaxSectionSize: maxSectionSize,
		SyntaxCheck:    syntaxCheck,
		FileSuffix:     envOrDefault("WGPV_FILE_SUFFIX", DefaultFileSuffix),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the environment like Load and then overlays the YAML
// document at path. Keys absent from the document keep their values.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	if c.BufferSize < minBufferSize {
		return fmt.Errorf("WGPV_BUFFER_SIZE must be at least %d", minBufferSize)
	}
	if c.MaxSectionSize < minBufferSize {
		return fmt.Errorf("WGPV_MAX_SECTION_SIZE must be at least %d", minBufferSize)
	}
	if c.FileSuffix == "" {
		return errors.New("WGPV_FILE_SUFFIX is required")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
