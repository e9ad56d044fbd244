package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultMaxUploadBytes = 10 << 20

// Config represents the application configuration
type Config struct {
	Server        ServerConfig        `json:"server"`
	Logging       LoggingConfig       `json:"logging"`
	Import        ImportConfig        `json:"import"`
	Notifications NotificationsConfig `json:"notifications"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// LoggingConfig
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// ImportConfig bounds boundary uploads
type ImportConfig struct {
	MaxUploadBytes int64 `json:"max_upload_bytes"`
}

// NotificationsConfig
type NotificationsConfig struct {
	WebSocketEnabled bool `json:"websocket_enabled"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Import: ImportConfig{
			MaxUploadBytes: defaultMaxUploadBytes,
		},
		Notifications: NotificationsConfig{
			WebSocketEnabled: true,
		},
	}
}

// LoadConfig loads configuration from file and environment variables.
// A missing config file or .env file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	config := Default()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := overrideWithEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func overrideWithEnv(config *Config) error {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", port, err)
		}
		config.Server.Port = p
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if size := os.Getenv("IMPORT_MAX_UPLOAD_BYTES"); size != "" {
		n, err := strconv.ParseInt(size, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid IMPORT_MAX_UPLOAD_BYTES %q: %w", size, err)
		}
		config.Import.MaxUploadBytes = n
	}
	if ws := os.Getenv("NOTIFICATIONS_WEBSOCKET_ENABLED"); ws != "" {
		enabled, err := strconv.ParseBool(ws)
		if err != nil {
			return fmt.Errorf("invalid NOTIFICATIONS_WEBSOCKET_ENABLED %q: %w", ws, err)
		}
		config.Notifications.WebSocketEnabled = enabled
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Import.MaxUploadBytes <= 0 {
		return fmt.Errorf("import max_upload_bytes must be positive")
	}
	return nil
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
