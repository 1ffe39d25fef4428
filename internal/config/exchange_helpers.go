package config

import (
	"fmt"
	"path/filepath"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// MustLoadExchange loads etc/exchange.yaml from the project root and panics
// on error. It isolates the exchange section so tests that only need venue
// providers do not have to assemble a full service config.
func MustLoadExchange() *exchange.Config {
	root := MustProjectRoot()
	path := filepath.Join(root, "etc", "exchange.yaml")
	cfg, err := exchange.LoadConfig(path)
	if err != nil {
		panic(fmt.Errorf("load exchange config %s: %w", path, err))
	}
	return cfg
}

// MustBuildExchangeProviders loads exchange config from the default path
// and builds provider instances; returns the map and default provider name.
func MustBuildExchangeProviders() (map[string]exchange.Provider, string) {
	cfg := MustLoadExchange()
	providers, err := cfg.BuildProviders()
	if err != nil {
		panic(err)
	}
	return providers, cfg.Default
}
