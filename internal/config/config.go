package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host               string        `mapstructure:"host"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	Version            string        `mapstructure:"version"`
}

type DatabaseConfig struct {
	URL            string `mapstructure:"url"`
	MaxOpenConns   int    `mapstructure:"max_open_conns"`
	MaxIdleConns   int    `mapstructure:"max_idle_conns"`
	MigrationsDir  string `mapstructure:"migrations_dir"`
	MigrateOnStart bool   `mapstructure:"migrate_on_start"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type ReliefConfig struct {
	RequestRateLimit  int           `mapstructure:"request_rate_limit"`
	RequestRateWindow time.Duration `mapstructure:"request_rate_window"`
	ExpiringSoonDays  int           `mapstructure:"expiring_soon_days"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Relief   ReliefConfig   `mapstructure:"relief"`
}

var envBindings = map[string]string{
	"server.host":                 "APP_HOST",
	"server.cors_allowed_origins": "CORS_ALLOWED_ORIGINS",
	"server.request_timeout":      "REQUEST_TIMEOUT",
	"server.version":              "APP_VERSION",
	"database.url":                "DATABASE_URL",
	"database.max_open_conns":     "DB_MAX_OPEN_CONNS",
	"database.max_idle_conns":     "DB_MAX_IDLE_CONNS",
	"database.migrations_dir":     "MIGRATIONS_DIR",
	"database.migrate_on_start":   "MIGRATE_ON_START",
	"jwt.secret":                  "JWT_SECRET",
	"log.level":                   "LOG_LEVEL",
	"log.development":             "LOG_DEVELOPMENT",
	"relief.request_rate_limit":   "REQUEST_RATE_LIMIT",
	"relief.request_rate_window":  "REQUEST_RATE_WINDOW",
	"relief.expiring_soon_days":   "SUPPLY_EXPIRING_SOON_DAYS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", ":8080")
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.version", "dev")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.migrations_dir", "migrations")
	v.SetDefault("database.migrate_on_start", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", true)
	v.SetDefault("relief.request_rate_limit", 30)
	v.SetDefault("relief.request_rate_window", time.Minute)
	v.SetDefault("relief.expiring_soon_days", 7)
}

// Load reads .env files (never overriding variables already set) and binds
// the environment into Config.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}
	if c.Relief.RequestRateLimit <= 0 {
		return errors.New("REQUEST_RATE_LIMIT must be positive")
	}
	if c.Relief.ExpiringSoonDays < 0 {
		return errors.New("SUPPLY_EXPIRING_SOON_DAYS cannot be negative")
	}
	return nil
}
