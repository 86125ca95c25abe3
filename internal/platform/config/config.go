package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Session policy
	SessionSecret         string
	SessionIssuer         string
	SessionExpiryDuration time.Duration

	// Transfer policy
	TransferCeiling    decimal.Decimal
	TransferMaxRetries int

	// Provisioning policy
	AccountNumberMaxAttempts int
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SESSION_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("SESSION_ISSUER", "banking-backend")
	viper.SetDefault("SESSION_EXPIRY_DURATION", "24h")
	viper.SetDefault("TRANSFER_CEILING", "1000000")
	viper.SetDefault("TRANSFER_MAX_RETRIES", 3)
	viper.SetDefault("ACCOUNT_NUMBER_MAX_ATTEMPTS", 5)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.SessionSecret = viper.GetString("SESSION_SECRET")
	if cfg.SessionSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: SESSION_SECRET not set. Using default insecure key.")
	}
	cfg.SessionIssuer = viper.GetString("SESSION_ISSUER")

	expiryStr := viper.GetString("SESSION_EXPIRY_DURATION")
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil {
		expiry = 24 * time.Hour
		log.Printf("Warning: Invalid value for SESSION_EXPIRY_DURATION (%q). Defaulting to %s.\n", expiryStr, expiry)
	}
	cfg.SessionExpiryDuration = expiry

	ceilingStr := viper.GetString("TRANSFER_CEILING")
	ceiling, err := decimal.NewFromString(ceilingStr)
	if err != nil || !ceiling.IsPositive() {
		ceiling = decimal.NewFromInt(1_000_000)
		log.Printf("Warning: Invalid value for TRANSFER_CEILING (%q). Defaulting to %s.\n", ceilingStr, ceiling)
	}
	cfg.TransferCeiling = ceiling

	cfg.TransferMaxRetries = viper.GetInt("TRANSFER_MAX_RETRIES")
	if cfg.TransferMaxRetries < 1 {
		cfg.TransferMaxRetries = 3
	}
	cfg.AccountNumberMaxAttempts = viper.GetInt("ACCOUNT_NUMBER_MAX_ATTEMPTS")
	if cfg.AccountNumberMaxAttempts < 1 {
		cfg.AccountNumberMaxAttempts = 5
	}

	return cfg, nil
}
