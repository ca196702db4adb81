// Package config loads application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	Port         string
	IsProduction bool

	SessionCookieName string
	SessionTTL        time.Duration

	// BcryptCost is the bcrypt work factor; 0 selects the library default.
	BcryptCost int

	FrontendBaseURL string
}

// LoadConfig loads configuration from environment variables and a .env
// file if present. Environment variables win over .env values.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SESSION_COOKIE_NAME", "tally_session")
	viper.SetDefault("SESSION_TTL", "720h")
	viper.SetDefault("BCRYPT_COST", 0)
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.SessionCookieName = viper.GetString("SESSION_COOKIE_NAME")

	ttlStr := viper.GetString("SESSION_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 30 * 24 * time.Hour
		log.Printf("Warning: Invalid value for SESSION_TTL (%q). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.SessionTTL = ttl

	cfg.BcryptCost = viper.GetInt("BCRYPT_COST")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}
