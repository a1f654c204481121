package config

import (
	"time"

	"github.com/spf13/viper"
)

type Escrow struct {
	// Base URL of the payment service handling deposit returns
	BaseURL string

	// Authentication token attached to transfer requests
	APIToken string

	// Max time for a single transfer call
	RequestTimeout time.Duration
}

func setEscrowDefaults() {
	viper.SetDefault("Escrow.BaseURL", "http://localhost:8090")
	viper.SetDefault("Escrow.APIToken", "")
	viper.SetDefault("Escrow.RequestTimeout", "30s")
}
