// Package config loads application configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DB holds database connection settings.
type DB struct {
	Url string `envconfig:"URL"`
}

// Jwt holds the settings for validating bearer tokens issued by the identity
// provider. This service only verifies and reads tokens, it never issues
// them.
type Jwt struct {
	Secret string `envconfig:"SECRET_KEY" required:"true"`
}

// Log holds logger settings.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	Prefix     string `envconfig:"PREFIX" default:"arthamitra"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
}

// Nav holds price-lookup collaborator settings. An empty ApiUrl switches the
// service to the built-in mock provider, for local development.
type Nav struct {
	ApiUrl      string        `envconfig:"API_URL"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL" default:"15m"`
}

// SchemeMaster holds the scheme-name-to-ISIN lookup settings. An empty path
// falls back to the embedded master list.
type SchemeMaster struct {
	Path string `envconfig:"PATH"`
}

// App is the root application configuration.
type App struct {
	Env          string       `envconfig:"APP_ENV" default:"development"`
	Host         string       `envconfig:"APP_HOST" default:"localhost"`
	Port         int          `envconfig:"APP_PORT" default:"3000"`
	DB           DB           `envconfig:"DATABASE"`
	Jwt          Jwt          `envconfig:"JWT"`
	Log          Log          `envconfig:"LOG"`
	Nav          Nav          `envconfig:"NAV"`
	SchemeMaster SchemeMaster `envconfig:"SCHEME_MASTER"`
}

// Load reads .env files (when present) and then the environment.
func Load(envFiles ...string) (*App, error) {
	// Missing .env files are fine; the environment wins either way.
	_ = godotenv.Load(envFiles...)

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	return &cfg, nil
}
