package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"*"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	OMDB struct {
		APIKey  string        `envconfig:"OMDB_API_KEY"`
		BaseURL string        `envconfig:"OMDB_BASE_URL" default:"http://www.omdbapi.com/"`
		Timeout time.Duration `envconfig:"OMDB_TIMEOUT" default:"10s"`
	}
	Import struct {
		Keyword     string        `envconfig:"IMPORT_KEYWORD" default:"space"`
		Year        string        `envconfig:"IMPORT_YEAR" default:"2020"`
		Type        string        `envconfig:"IMPORT_TYPE" default:"movie"`
		OnStartup   bool          `envconfig:"IMPORT_ON_STARTUP" default:"true"`
		Interval    time.Duration `envconfig:"IMPORT_INTERVAL" default:"0"`
		Concurrency int           `envconfig:"IMPORT_CONCURRENCY" default:"0"`
	}
	Cache struct {
		TTL        time.Duration `envconfig:"CACHE_TTL" default:"30s"`
		MaxEntries int           `envconfig:"CACHE_MAX_ENTRIES" default:"100"`
	}
	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
