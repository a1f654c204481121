package config

import (
	"time"

	"github.com/spf13/viper"
)

type Gateway struct {
	// REST API address serving the directory
	ServerListenAddress string

	// Max time for handling a single request
	ServerRequestTimeout time.Duration

	// Secret used to verify caller identity tokens (HS256)
	TokenSecret string

	// Default page size for paginated queries
	DefaultLimit int

	// TTL of cached read results
	CacheTTL time.Duration

	// How often expired cache entries are purged
	CacheCleanupInterval time.Duration
}

func setGatewayDefaults() {
	viper.SetDefault("Gateway.ServerListenAddress", ":8080")
	viper.SetDefault("Gateway.ServerRequestTimeout", "30s")
	viper.SetDefault("Gateway.TokenSecret", "")
	viper.SetDefault("Gateway.DefaultLimit", "50")
	viper.SetDefault("Gateway.CacheTTL", "10s")
	viper.SetDefault("Gateway.CacheCleanupInterval", "1m")
}
