// Package config loads runtime settings from the environment (optionally via
// a .env file).
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Hardcoded fallbacks for the admin credential. Running with any of them is
// reported by InsecureDefaults.
const (
	DefaultAdminUser     = "admin"
	DefaultAdminPassword = "admin123"
	DefaultSecretKey     = "change-this-secret-key"
)

// Config holds every setting the server and migrate binaries read.
type Config struct {
	Port        string
	SiteDir     string
	DBPath      string
	RuntimeDir  string
	ServeStatic bool

	AdminUser         string
	AdminPassword     string
	AdminPasswordHash string
	SecretKey         string
	SessionTTL        time.Duration
	SecureCookie      bool

	CORSOrigin string
	LogLevel   string
	LogFormat  string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:              v.GetString("PORT"),
		SiteDir:           v.GetString("SITE_DIR"),
		DBPath:            v.GetString("DB_PATH"),
		RuntimeDir:        v.GetString("RUNTIME_DIR"),
		ServeStatic:       v.GetBool("SERVE_STATIC"),
		AdminUser:         v.GetString("ADMIN_USER"),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		SecretKey:         v.GetString("SECRET_KEY"),
		SessionTTL:        v.GetDuration("SESSION_TTL"),
		SecureCookie:      v.GetBool("SECURE_COOKIE"),
		CORSOrigin:        v.GetString("CORS_ORIGIN"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("SITE_DIR", ".")
	v.SetDefault("DB_PATH", "")
	v.SetDefault("RUNTIME_DIR", "/tmp")
	v.SetDefault("SERVE_STATIC", true)
	v.SetDefault("ADMIN_USER", DefaultAdminUser)
	v.SetDefault("ADMIN_PASSWORD", DefaultAdminPassword)
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("SECRET_KEY", DefaultSecretKey)
	v.SetDefault("SESSION_TTL", "336h")
	v.SetDefault("SECURE_COOKIE", false)
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("LOG_FORMAT", "json")
}

// Validate checks settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return &ConfigError{Field: "PORT", Message: "must not be empty"}
	}
	if c.AdminUser == "" {
		return &ConfigError{Field: "ADMIN_USER", Message: "must not be empty"}
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return &ConfigError{Field: "ADMIN_PASSWORD", Message: "password or hash required"}
	}
	if c.SecretKey == "" {
		return &ConfigError{Field: "SECRET_KEY", Message: "must not be empty"}
	}
	if c.SessionTTL <= 0 {
		return &ConfigError{Field: "SESSION_TTL", Message: "must be a positive duration"}
	}
	return nil
}

// InsecureDefaults lists the credential settings still at their hardcoded
// fallback.
func (c *Config) InsecureDefaults() []string {
	var keys []string
	if c.AdminUser == DefaultAdminUser {
		keys = append(keys, "ADMIN_USER")
	}
	if c.AdminPasswordHash == "" && c.AdminPassword == DefaultAdminPassword {
		keys = append(keys, "ADMIN_PASSWORD")
	}
	if c.SecretKey == DefaultSecretKey {
		keys = append(keys, "SECRET_KEY")
	}
	return keys
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
