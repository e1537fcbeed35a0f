package cmd

import (
	"time"

	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/jobs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string

	// PublicBaseURL is the customer-facing site that hosts confirmation links.
	PublicBaseURL   string
	ConfirmationTTL time.Duration

	Backfill jobs.BackfillConfig

	DHL      carrier.DHLConfig
	PostNord carrier.PostNordConfig
	Shipper  carrier.Shipper
}
