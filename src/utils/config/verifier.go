package config

import (
	"time"

	"github.com/spf13/viper"
)

type Verifier struct {
	// Base URL of the web4 gateway used for liveness probes
	GatewayBaseURL string

	// Max time for a single probe round trip
	RequestTimeout time.Duration

	// Worker pool for in-flight verifications
	NumWorkers int

	// Maximum pending verifications waiting for a worker
	WorkerQueueSize int

	// Requests per second towards the probe gateway
	RateLimit float64

	// Burst allowed on top of the rate limit
	RateLimitBurst int
}

func setVerifierDefaults() {
	viper.SetDefault("Verifier.GatewayBaseURL", "https://rpc.web4.testnet")
	viper.SetDefault("Verifier.RequestTimeout", "30s")
	viper.SetDefault("Verifier.NumWorkers", "10")
	viper.SetDefault("Verifier.WorkerQueueSize", "100")
	viper.SetDefault("Verifier.RateLimit", "10")
	viper.SetDefault("Verifier.RateLimitBurst", "5")
}
