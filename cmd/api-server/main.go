package main

import (
	"Storefront/config"
	"Storefront/middleware"
	"Storefront/models"
	"Storefront/pkg/log"
	"Storefront/pkg/nacos"
	"Storefront/pkg/server"
	"Storefront/pkg/snowflake"
	"Storefront/pkg/tracer"
	"Storefront/pkg/validate"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	if cfg.App.Env == "" {
		cfg.App.Env = env
	}
	if cfg.Nacos.Enabled() {
		content, err := nacos.FetchConfig(cfg.Nacos)
		if err != nil {
			log.L.Fatal("load remote config", zap.Error(err))
		}
		if cfg, err = cfg.Overlay([]byte(content)); err != nil {
			log.L.Fatal("parse remote config", zap.Error(err))
		}
	}

	appProvider, err := InitServer(cfg)
	if err != nil {
		log.L.Fatal("init server", zap.Error(err))
	}
	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "storefront api",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					validate.Register()
					if cfg.App.NodeID > 0 {
						if err := snowflake.Init(cfg.App.NodeID); err != nil {
							return err
						}
					}
					if err := middleware.InitSentinel(cfg.RateLimit.CheckoutQPS); err != nil {
						return err
					}
					shutdown, err := tracer.Init(cfg)
					if err != nil {
						return err
					}
					defer func() {
						sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
						defer cancel()
						if err := shutdown(sctx); err != nil {
							log.L.Warn("tracer shutdown", zap.Error(err))
						}
					}()
					return server.Run(ctx, appProvider)
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update tables and seed roles",
				Action: func(ctx *cli.Context) error {
					if err := appProvider.DB.WithContext(ctx.Context).AutoMigrate(models.All()...); err != nil {
						return err
					}
					log.L.Info("migrate done")
					return appProvider.Auth.Seed(ctx.Context)
				},
			},
			{
				Name:  "seed",
				Usage: "create roles and the configured admin/customer accounts",
				Action: func(ctx *cli.Context) error {
					return appProvider.Auth.Seed(ctx.Context)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to run command", zap.Error(err))
	}
}
