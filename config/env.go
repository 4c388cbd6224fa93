package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// EnvPrefix is prepended to every environment override, e.g. FEEDR_DEBUG.
const EnvPrefix = "FEEDR_"

// ApplyEnv overlays FEEDR_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	return applyEnvWith(cfg, envconfig.OsLookuper())
}

func applyEnvWith(cfg *Config, l envconfig.Lookuper) error {
	return envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, l),
	})
}
