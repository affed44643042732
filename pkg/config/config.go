// Package config loads service settings from the environment with Viper.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chris/polyfunds-ledger/pkg/ledger"
	"github.com/chris/polyfunds-ledger/pkg/units"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"
)

var (
	ErrMissing = errors.New("is required")
	ErrInvalid = errors.New("is invalid")
)

// Config holds all settings of the service binaries.
type Config struct {
	HTTPPort             string `mapstructure:"HTTP_PORT"`
	AdminAddress         string `mapstructure:"ADMIN_ADDRESS"`
	FeeRecipientAddress  string `mapstructure:"FEE_RECIPIENT_ADDRESS"`
	MinTokenPriceEth     string `mapstructure:"MIN_TOKEN_PRICE_ETH"`
	StorageDriver        string `mapstructure:"STORAGE_DRIVER"`
	JournalTable         string `mapstructure:"DYNAMODB_JOURNAL_TABLE_NAME"`
	LedgerTable          string `mapstructure:"DYNAMODB_LEDGER_TABLE_NAME"`
	WalletsTable         string `mapstructure:"DYNAMODB_WALLETS_TABLE_NAME"`
	ConnectionsTable     string `mapstructure:"DYNAMODB_CONNECTIONS_TABLE_NAME"`
	SQSQueueURL          string `mapstructure:"SQS_QUEUE_URL"`
	RabbitMQURL          string `mapstructure:"RABBITMQ_URL"`
	RabbitMQExchange     string `mapstructure:"RABBITMQ_EXCHANGE"`
	WebSocketAPIEndpoint string `mapstructure:"WEBSOCKET_API_ENDPOINT"`
	RedisURL             string `mapstructure:"REDIS_URL"`
	RateLimitPerMinute   int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	ReconcileSchedule    string `mapstructure:"RECONCILE_SCHEDULE"`
	LogLevel             string `mapstructure:"LOG_LEVEL"`
	CORSAllowedOrigins   string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var keys = []string{
	"HTTP_PORT",
	"ADMIN_ADDRESS",
	"FEE_RECIPIENT_ADDRESS",
	"MIN_TOKEN_PRICE_ETH",
	"STORAGE_DRIVER",
	"DYNAMODB_JOURNAL_TABLE_NAME",
	"DYNAMODB_LEDGER_TABLE_NAME",
	"DYNAMODB_WALLETS_TABLE_NAME",
	"DYNAMODB_CONNECTIONS_TABLE_NAME",
	"SQS_QUEUE_URL",
	"RABBITMQ_URL",
	"RABBITMQ_EXCHANGE",
	"WEBSOCKET_API_ENDPOINT",
	"REDIS_URL",
	"RATE_LIMIT_PER_MINUTE",
	"JWT_SECRET",
	"RECONCILE_SCHEDULE",
	"LOG_LEVEL",
	"CORS_ALLOWED_ORIGINS",
}

// LoadConfig reads the configuration from environment variables and checks
// the format of every value that is set.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("MIN_TOKEN_PRICE_ETH", "0.001")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("RABBITMQ_EXCHANGE", "ledger_events")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("RECONCILE_SCHEDULE", "@every 5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.AdminAddress = strings.TrimSpace(c.AdminAddress)
	c.FeeRecipientAddress = strings.TrimSpace(c.FeeRecipientAddress)
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	c.RedisURL = strings.TrimSpace(c.RedisURL)
	c.RabbitMQURL = strings.TrimSpace(c.RabbitMQURL)
}

func (c Config) validate() error {
	if c.AdminAddress != "" && !common.IsHexAddress(c.AdminAddress) {
		return fmt.Errorf("ADMIN_ADDRESS %w: %q", ErrInvalid, c.AdminAddress)
	}
	if c.FeeRecipientAddress != "" && !common.IsHexAddress(c.FeeRecipientAddress) {
		return fmt.Errorf("FEE_RECIPIENT_ADDRESS %w: %q", ErrInvalid, c.FeeRecipientAddress)
	}
	if _, err := units.ParseEther(c.MinTokenPriceEth); err != nil {
		return fmt.Errorf("MIN_TOKEN_PRICE_ETH %w: %v", ErrInvalid, err)
	}
	switch c.StorageDriver {
	case StorageMemory:
	case StorageDynamoDB:
		for _, key := range []string{"DYNAMODB_JOURNAL_TABLE_NAME", "DYNAMODB_LEDGER_TABLE_NAME", "DYNAMODB_WALLETS_TABLE_NAME"} {
			if c.value(key) == "" {
				return fmt.Errorf("%s %w when STORAGE_DRIVER is %s", key, ErrMissing, StorageDynamoDB)
			}
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER %w: %q", ErrInvalid, c.StorageDriver)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE %w: %d", ErrInvalid, c.RateLimitPerMinute)
	}
	for _, o := range c.CORSOrigins() {
		if o == "*" || strings.HasSuffix(o, "://*") {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS %w: wildcard origin %q", ErrInvalid, o)
		}
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("LOG_LEVEL %w: %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// Require checks that the named keys have a value.
func (c Config) Require(names ...string) error {
	for _, name := range names {
		if strings.TrimSpace(c.value(name)) == "" {
			return fmt.Errorf("%s %w", name, ErrMissing)
		}
	}
	return nil
}

func (c Config) value(key string) string {
	switch key {
	case "ADMIN_ADDRESS":
		return c.AdminAddress
	case "JWT_SECRET":
		return c.JWTSecret
	case "SQS_QUEUE_URL":
		return c.SQSQueueURL
	case "WEBSOCKET_API_ENDPOINT":
		return c.WebSocketAPIEndpoint
	case "DYNAMODB_JOURNAL_TABLE_NAME":
		return c.JournalTable
	case "DYNAMODB_LEDGER_TABLE_NAME":
		return c.LedgerTable
	case "DYNAMODB_WALLETS_TABLE_NAME":
		return c.WalletsTable
	case "DYNAMODB_CONNECTIONS_TABLE_NAME":
		return c.ConnectionsTable
	case "REDIS_URL":
		return c.RedisURL
	case "RABBITMQ_URL":
		return c.RabbitMQURL
	}
	return ""
}

// LedgerConfig returns the engine settings.
func (c Config) LedgerConfig() (ledger.Config, error) {
	if c.AdminAddress == "" {
		return ledger.Config{}, fmt.Errorf("ADMIN_ADDRESS %w", ErrMissing)
	}
	minPrice, err := units.ParseEther(c.MinTokenPriceEth)
	if err != nil {
		return ledger.Config{}, fmt.Errorf("MIN_TOKEN_PRICE_ETH %w: %v", ErrInvalid, err)
	}
	return ledger.Config{
		Admin:         common.HexToAddress(c.AdminAddress),
		MinTokenPrice: minPrice,
	}, nil
}

// FeeRecipient is the recipient to seed on an empty journal, or the zero
// address when FEE_RECIPIENT_ADDRESS is unset.
func (c Config) FeeRecipient() common.Address {
	if c.FeeRecipientAddress == "" {
		return common.Address{}
	}
	return common.HexToAddress(c.FeeRecipientAddress)
}

// CORSOrigins returns the allowed origins for browser requests.
func (c Config) CORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// SlogLevel parses LOG_LEVEL.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}
