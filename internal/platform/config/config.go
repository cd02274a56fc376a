package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string
	RateLimit     string // ulule/limiter format, e.g. "100-M"

	// Reference numbering prefixes for journal entries.
	ManualRefPrefix string
	AutoRefPrefix   string

	// Balance sheet classification thresholds. Accounts with a numeric code
	// at or below the threshold are reported as current; above as
	// non-current. These are presentation configuration, not business logic.
	CurrentAssetMaxCode     int
	CurrentLiabilityMaxCode int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "quarry-books-app")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("MANUAL_REF_PREFIX", "JE")
	viper.SetDefault("AUTO_REF_PREFIX", "AJE")
	viper.SetDefault("BS_CURRENT_ASSET_MAX_CODE", 1499)
	viper.SetDefault("BS_CURRENT_LIABILITY_MAX_CODE", 2499)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.ManualRefPrefix = viper.GetString("MANUAL_REF_PREFIX")
	cfg.AutoRefPrefix = viper.GetString("AUTO_REF_PREFIX")
	cfg.CurrentAssetMaxCode = viper.GetInt("BS_CURRENT_ASSET_MAX_CODE")
	cfg.CurrentLiabilityMaxCode = viper.GetInt("BS_CURRENT_LIABILITY_MAX_CODE")

	return cfg, nil
}
