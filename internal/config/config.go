package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Upload   UploadConfig   `yaml:"upload" envconfig:"UPLOAD"`
	Render   RenderConfig   `yaml:"render" envconfig:"RENDER"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"20"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"10"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// UploadConfig bounds what the analyze endpoints accept.
type UploadConfig struct {
	// MaxSizeBytes caps the uploaded report size.
	MaxSizeBytes int64 `yaml:"max_size_bytes" envconfig:"MAX_SIZE_BYTES" default:"10485760"`
}

// RenderConfig controls the chart report layout.
type RenderConfig struct {
	// ChartsPerPage is the number of parameter charts stacked on one page.
	ChartsPerPage int `yaml:"charts_per_page" envconfig:"CHARTS_PER_PAGE" default:"3"`
	// ChartWidth and ChartHeight are the pixel dimensions of each chart.
	ChartWidth  int `yaml:"chart_width" envconfig:"CHART_WIDTH" default:"1100"`
	ChartHeight int `yaml:"chart_height" envconfig:"CHART_HEIGHT" default:"420"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("CTREPORT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Upload.MaxSizeBytes == 0 {
		envConfig.Upload.MaxSizeBytes = fileConfig.Upload.MaxSizeBytes
	}
	if envConfig.Render.ChartsPerPage == 0 {
		envConfig.Render.ChartsPerPage = fileConfig.Render.ChartsPerPage
	}

	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload max size must be positive")
	}
	if c.Upload.MaxSizeBytes > MaxUploadBytes {
		return fmt.Errorf("upload max size %d exceeds the hard cap of %d", c.Upload.MaxSizeBytes, MaxUploadBytes)
	}

	if c.Render.ChartsPerPage <= 0 || c.Render.ChartsPerPage > 6 {
		return fmt.Errorf("charts per page must be between 1 and 6, got %d", c.Render.ChartsPerPage)
	}

	// Logging output is always JSON; normalize lenient inputs.
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "stdout" {
		c.Logging.Output = "both"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     20,
				Burst:   10,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Upload: UploadConfig{
			MaxSizeBytes: 10 << 20, // 10MB
		},
		Render: RenderConfig{
			ChartsPerPage: 3,
			ChartWidth:    1100,
			ChartHeight:   420,
		},
	}
}
