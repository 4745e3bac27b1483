package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	DatabaseURI           string
	PaymentGatewayAddress string
	TreasuryAccount       string
	OwnerAccount          string
	OperatorKeyHash       string
	TokenSecret           string
	AMQPURL               string
	StaleOrderAge         time.Duration
	StalePollInterval     time.Duration
	WorkerPoolSize        int
	StaleOrdersBatch      int
	EscrowReportSpec      string
	ShutdownTimeout       time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultTreasuryAccount   = "treasury.laundromat"
	defaultTokenSecret       = "change-me-in-production"
	defaultStaleOrderAge     = 24 * time.Hour
	defaultStalePollInterval = 5 * time.Minute
	defaultWorkerPoolSize    = 4
	defaultStaleOrdersBatch  = 32
	defaultEscrowReportSpec  = "0 6 * * *"
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from .env, environment variables, and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		PaymentGatewayAddress: getString(lookup, "PAYMENT_GATEWAY_ADDRESS", ""),
		TreasuryAccount:       getString(lookup, "TREASURY_ACCOUNT", defaultTreasuryAccount),
		OwnerAccount:          getString(lookup, "OWNER_ACCOUNT", ""),
		OperatorKeyHash:       getString(lookup, "OPERATOR_KEY_HASH", ""),
		TokenSecret:           getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		AMQPURL:               getString(lookup, "AMQP_URL", ""),
		StaleOrderAge:         getDuration(lookup, "STALE_ORDER_AGE", defaultStaleOrderAge),
		StalePollInterval:     getDuration(lookup, "STALE_POLL_INTERVAL", defaultStalePollInterval),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		StaleOrdersBatch:      getInt(lookup, "STALE_ORDERS_BATCH", defaultStaleOrdersBatch),
		EscrowReportSpec:      getString(lookup, "ESCROW_REPORT_SPEC", defaultEscrowReportSpec),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("laundromat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		staleAgeStr        = cfg.StaleOrderAge.String()
		pollIntervalStr    = cfg.StalePollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PaymentGatewayAddress, "p", cfg.PaymentGatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.TreasuryAccount, "treasury", cfg.TreasuryAccount, "Escrow holding account")
	fs.StringVar(&cfg.OwnerAccount, "owner", cfg.OwnerAccount, "Ledger owner account allowed to register admins")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret shared with the wallet gateway for identity tokens")
	fs.StringVar(&cfg.AMQPURL, "amqp", cfg.AMQPURL, "RabbitMQ URL for order events (empty disables publishing)")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reminder workers")
	fs.StringVar(&staleAgeStr, "stale-age", staleAgeStr, "Age after which a pending order counts as stale")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between stale order sweeps")
	fs.IntVar(&cfg.StaleOrdersBatch, "stale-batch", cfg.StaleOrdersBatch, "Maximum stale orders per sweep")
	fs.StringVar(&cfg.EscrowReportSpec, "escrow-report", cfg.EscrowReportSpec, "Cron spec for the escrow reconciliation report")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StaleOrderAge, err = time.ParseDuration(staleAgeStr); err != nil {
		return nil, fmt.Errorf("invalid stale age: %w", err)
	}

	if cfg.StalePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.StaleOrdersBatch <= 0 {
		cfg.StaleOrdersBatch = defaultStaleOrdersBatch
	}

	if cfg.StaleOrderAge <= 0 {
		cfg.StaleOrderAge = defaultStaleOrderAge
	}

	if cfg.StalePollInterval <= 0 {
		cfg.StalePollInterval = defaultStalePollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaymentGatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	if cfg.OwnerAccount == "" {
		return nil, fmt.Errorf("owner account must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
