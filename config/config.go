package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the neonlink server.
type Config struct {
	// Listen is the address the server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// ServerURL is the base URL of the neonlink server.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// RegistrationEnabled indicates whether new users may register themselves.
	RegistrationEnabled bool `yaml:"registration_enabled" mapstructure:"registration_enabled"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Session holds the session and cookie configuration.
	Session *SessionConfig `yaml:"session" mapstructure:"session"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the directory where the sqlite database file is stored.
	Path string `yaml:"path" mapstructure:"path"`
}

// SessionConfig holds the session and cookie configuration.
type SessionConfig struct {
	// Key is the key used to authenticate the session cookie.
	Key string `yaml:"key" mapstructure:"key"`
	// MaxAge is the maximum age of a session in seconds.
	MaxAge int `yaml:"max_age" mapstructure:"max_age"`
	// CookieName is the name of the session cookie.
	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`
	// ReapInterval is how often stale sessions are purged.
	ReapInterval time.Duration `yaml:"reap_interval" mapstructure:"reap_interval"`
}

// TTL returns the session max age as a duration.
func (s *SessionConfig) TTL() time.Duration {
	return time.Duration(s.MaxAge) * time.Second
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("NEONLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		// Use specific config file
		v.SetConfigFile(path)
	} else {
		// Search for config in common locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.neonlink")
		v.AddConfigPath("/etc/neonlink")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with NEONLINK_ prefix will override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3000")
	v.SetDefault("server_url", "http://localhost:3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("registration_enabled", true)

	v.SetDefault("database.path", "./data")

	v.SetDefault("session.max_age", 172800) // 48 hours
	v.SetDefault("session.cookie_name", "neonlink_session")
	v.SetDefault("session.reap_interval", "10m")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing neonlink config")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Session == nil {
		return fmt.Errorf("missing session config")
	}
	if c.Session.Key == "" {
		return fmt.Errorf("session key is required")
	}
	if len(c.Session.Key) < 32 {
		return fmt.Errorf("session key must be at least 32 characters")
	}
	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("session max age must be positive")
	}
	if c.Session.ReapInterval <= 0 {
		return fmt.Errorf("session reap interval must be positive")
	}

	return nil
}
