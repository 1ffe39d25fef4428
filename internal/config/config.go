package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/confkit"
	exchangepkg "github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// WebhookConf holds the inbound signal settings.
type WebhookConf struct {
	// Token authenticates inbound signals. The documented sample value is
	// always rejected at request time, so a forgotten default cannot
	// authorize live orders.
	Token string `json:",optional"`
}

type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod.
	Env     string      `json:",default=dev"`
	Webhook WebhookConf `json:",optional"`

	Exchange confkit.Section[exchangepkg.Config] `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test"
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "dev"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	return nil
}

func (c *Config) hydrateSections() error {
	if err := c.Exchange.Hydrate(c.baseDir, exchangepkg.LoadConfig); err != nil {
		return fmt.Errorf("load exchange config: %w", err)
	}
	return nil
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
