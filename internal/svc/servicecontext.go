package svc

import (
	"log"

	"github.com/goodvill0413/piona-auto-trade-bot/internal/config"
	exchangepkg "github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
	_ "github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange/okx"
	_ "github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange/sim"
)

type ServiceContext struct {
	Config config.Config

	ExchangeConfig    *exchangepkg.Config
	ExchangeProviders map[string]exchangepkg.Provider
	DefaultExchange   exchangepkg.Provider
	// DefaultProviderConfig backs the status endpoint's market/simulated
	// readout.
	DefaultProviderConfig *exchangepkg.ProviderConfig
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{Config: c}

	if c.Exchange.Value == nil {
		log.Fatal("exchange config section is required")
	}
	exchangeCfg := c.Exchange.Value

	// Test environments always trade against the paper environment.
	if c.IsTestEnv() {
		for _, provider := range exchangeCfg.Providers {
			provider.Simulated = true
		}
	}

	providers, err := exchangeCfg.BuildProviders()
	if err != nil {
		log.Fatalf("failed to build exchange providers: %v", err)
	}
	svc.ExchangeConfig = exchangeCfg
	svc.ExchangeProviders = providers
	if exchangeCfg.Default != "" {
		svc.DefaultExchange = providers[exchangeCfg.Default]
		svc.DefaultProviderConfig = exchangeCfg.Providers[exchangeCfg.Default]
	}
	if svc.DefaultExchange == nil {
		log.Fatal("exchange config must name a default provider")
	}
	return svc
}
