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
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// ReferenceCurrency is the user-facing display currency; it forms the
	// primary side of every entry session.
	ReferenceCurrency string

	// CrossCurrencyFee is the fixed friction fee, denominated in the
	// reference currency, charged when instrument and reference differ.
	CrossCurrencyFee decimal.Decimal

	// Per-operation ceilings denominated in LimitCurrency. Zero disables
	// the ceiling for that operation.
	LimitCurrency     string
	DepositCeiling    decimal.Decimal
	WithdrawalCeiling decimal.Decimal

	RateProviderURL string
	RateStaleAfter  time.Duration

	// RateLimitPerMinute caps requests per client IP per minute.
	RateLimitPerMinute int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("REFERENCE_CURRENCY", "USD")
	viper.SetDefault("CROSS_CURRENCY_FEE", "0.50")
	viper.SetDefault("LIMIT_CURRENCY", "USD")
	viper.SetDefault("DEPOSIT_CEILING", "7000")
	viper.SetDefault("WITHDRAWAL_CEILING", "7000")
	viper.SetDefault("RATE_PROVIDER_URL", "")
	viper.SetDefault("RATE_STALE_AFTER", "5m")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.ReferenceCurrency = viper.GetString("REFERENCE_CURRENCY")
	cfg.LimitCurrency = viper.GetString("LIMIT_CURRENCY")
	cfg.RateProviderURL = viper.GetString("RATE_PROVIDER_URL")
	cfg.RateLimitPerMinute = viper.GetInt64("RATE_LIMIT_PER_MINUTE")

	fee, err := decimal.NewFromString(viper.GetString("CROSS_CURRENCY_FEE"))
	if err != nil {
		fee = decimal.NewFromFloat(0.50)
		log.Printf("Warning: Invalid value for CROSS_CURRENCY_FEE. Defaulting to %s.\n", fee.String())
	}
	cfg.CrossCurrencyFee = fee

	depositCeiling, err := decimal.NewFromString(viper.GetString("DEPOSIT_CEILING"))
	if err != nil {
		depositCeiling = decimal.NewFromInt(7000)
		log.Printf("Warning: Invalid value for DEPOSIT_CEILING. Defaulting to %s.\n", depositCeiling.String())
	}
	cfg.DepositCeiling = depositCeiling

	withdrawalCeiling, err := decimal.NewFromString(viper.GetString("WITHDRAWAL_CEILING"))
	if err != nil {
		withdrawalCeiling = decimal.NewFromInt(7000)
		log.Printf("Warning: Invalid value for WITHDRAWAL_CEILING. Defaulting to %s.\n", withdrawalCeiling.String())
	}
	cfg.WithdrawalCeiling = withdrawalCeiling

	staleAfterStr := viper.GetString("RATE_STALE_AFTER")
	staleAfter, err := time.ParseDuration(staleAfterStr)
	if err != nil {
		staleAfter = 5 * time.Minute
		if staleAfterStr != "" {
			log.Printf("Warning: Invalid value for RATE_STALE_AFTER ('%s'). Defaulting to %s.\n", staleAfterStr, staleAfter.String())
		}
	}
	cfg.RateStaleAfter = staleAfter

	if cfg.RateProviderURL == "" {
		log.Println("Warning: RATE_PROVIDER_URL not set. Live rates unavailable; conversions will use fallback rates.")
	}

	return cfg, nil
}
