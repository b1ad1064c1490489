// Package config loads service configuration from the environment, with an
// optional .env file layered underneath.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env  string `env:"APP_ENV" env-default:"development"`
	Port string `env:"PORT" env-default:"8080"`

	DatabaseURL string `env:"DATABASE_URL"`

	Foodoscope FoodoscopeConfig
	Nutrition  NutritionConfig
	Identity   IdentityConfig
	CORS       CORSConfig
	Cache      CacheConfig
	Tracing    TracingConfig
}

// FoodoscopeConfig points at the external recipe catalog.
type FoodoscopeConfig struct {
	APIKey  string        `env:"FOODOSCOPE_API_KEY"`
	BaseURL string        `env:"FOODOSCOPE_BASE_URL" env-default:"http://cosylab.iiitd.edu.in:6969/recipe2-api"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"15s"`
}

// NutritionConfig points at the nutrition-scoring backend.
type NutritionConfig struct {
	URL     string        `env:"NUTRITION_API_URL" env-default:"http://127.0.0.1:8000/recommend"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"15s"`
}

// IdentityConfig holds the key used to verify identity-provider tokens.
type IdentityConfig struct {
	JWTSecret string `env:"IDENTITY_JWT_SECRET"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://127.0.0.1:3000"`
}

// CacheConfig enables the Redis recipe cache when RedisURL is set.
type CacheConfig struct {
	RedisURL string        `env:"REDIS_URL"`
	TTL      time.Duration `env:"CACHE_TTL" env-default:"6h"`
}

type TracingConfig struct {
	Enabled     bool    `env:"OTEL_ENABLED" env-default:"false"`
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" env-default:"false"`
	SampleRatio float64 `env:"OTEL_SAMPLER_RATIO" env-default:"0.1"`
	ServiceName string  `env:"OTEL_SERVICE_NAME" env-default:"flavourfit-api"`
}

// Load reads envFile when it exists and then the process environment.
// A missing required variable is reported by name.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// UsesMongo reports whether DatabaseURL selects the MongoDB profile store.
func (c *Config) UsesMongo() bool {
	u := strings.ToLower(strings.TrimSpace(c.DatabaseURL))
	return strings.HasPrefix(u, "mongodb://") || strings.HasPrefix(u, "mongodb+srv://")
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod")
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.Foodoscope.APIKey) == "" {
		return errors.New("FOODOSCOPE_API_KEY is required")
	}
	if strings.TrimSpace(c.Identity.JWTSecret) == "" {
		return errors.New("IDENTITY_JWT_SECRET is required")
	}
	if c.Foodoscope.Timeout <= 0 || c.Nutrition.Timeout <= 0 {
		return errors.New("UPSTREAM_TIMEOUT must be > 0")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("CACHE_TTL must be > 0")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return errors.New("OTEL_SAMPLER_RATIO must be within [0,1]")
	}
	c.Foodoscope.BaseURL = strings.TrimRight(c.Foodoscope.BaseURL, "/")
	return nil
}
