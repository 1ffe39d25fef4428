// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package main

import (
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/rest"

	"github.com/goodvill0413/piona-auto-trade-bot/internal/config"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/handler"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/svc"
)

var configFile = flag.String("f", "etc/piona.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(*cfg)
	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
