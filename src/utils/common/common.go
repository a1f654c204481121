package common

import (
	"context"

	"github.com/dapplist/registry/src/utils/config"
)

type contextKey int

const (
	configKey contextKey = iota
)

func SetConfig(ctx context.Context, v *config.Config) context.Context {
	return context.WithValue(ctx, configKey, v)
}

func GetConfig(ctx context.Context) *config.Config {
	return ctx.Value(configKey).(*config.Config)
}
