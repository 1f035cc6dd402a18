package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	RepositoryMemory   = "memory"
	RepositoryDatabase = "database"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	Env      string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	Repository     string `mapstructure:"REPOSITORY"`
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DataPath       string `mapstructure:"DATA_PATH"`
	Repopulate     bool   `mapstructure:"REPOPULATE"`

	JWTSecret    string        `mapstructure:"JWT_SECRET"`
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`
	CookieSecure bool          `mapstructure:"COOKIE_SECURE"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("REPOSITORY", RepositoryDatabase)
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_URL", "games.db")
	v.SetDefault("DATA_PATH", "data/games.csv")
	v.SetDefault("REPOPULATE", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("COOKIE_SECURE", false)
}

// Load reads the configuration from a .env file in dir (if any) and the environment.
// Environment variables win over the file.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Unmarshal only sees keys with a default, so every field needs one in setDefaults.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enum-like settings.
func (c *Config) Validate() error {
	switch c.Repository {
	case RepositoryMemory, RepositoryDatabase:
	default:
		return fmt.Errorf("REPOSITORY must be %q or %q, got %q", RepositoryMemory, RepositoryDatabase, c.Repository)
	}
	if c.Repository == RepositoryDatabase {
		switch c.DatabaseDriver {
		case DriverSQLite, DriverPostgres:
		default:
			return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DatabaseDriver)
		}
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the database repository")
		}
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "prod")
}
