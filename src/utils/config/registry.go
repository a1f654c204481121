package config

import (
	"time"

	"github.com/spf13/viper"
)

type Registry struct {
	// Fee attached to non-guardian create and update requests, in base units
	ListingFee string

	// Accounts that form the initial guardian set
	BootstrapGuardians []string

	// Max length of a listing slug
	MaxSlugLen int

	// Max length of a listing title
	MaxTitleLen int

	// Max length of the one-liner field
	MaxOnelinerLen int

	// Max length of the description field
	MaxDescriptionLen int

	// How many committed listings are saved in one transaction
	StoreBatchSize int

	// How often is an insert triggered
	StoreInterval time.Duration

	// Cron spec for the index consistency audit. Empty disables the audit.
	AuditSchedule string
}

func setRegistryDefaults() {
	// 0.1 unit expressed in base (24 decimal places) units
	viper.SetDefault("Registry.ListingFee", "100000000000000000000000")
	viper.SetDefault("Registry.BootstrapGuardians", []string{})
	viper.SetDefault("Registry.MaxSlugLen", "50")
	viper.SetDefault("Registry.MaxTitleLen", "50")
	viper.SetDefault("Registry.MaxOnelinerLen", "200")
	viper.SetDefault("Registry.MaxDescriptionLen", "5000")
	viper.SetDefault("Registry.StoreBatchSize", "10")
	viper.SetDefault("Registry.StoreInterval", "1s")
	viper.SetDefault("Registry.AuditSchedule", "@every 5m")
}
