//go:build wireinject
// +build wireinject

package main

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/handler"
	"Storefront/pkg/client"
	"Storefront/pkg/database"
	"Storefront/pkg/hashid"
	"Storefront/pkg/oss"
	"Storefront/pkg/rocketmq"
	"Storefront/pkg/server"
	"Storefront/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(

		client.NewRedisClient,
		config.ProvideOssConfig,
		config.ProvideRocketMQConfig,
		rocketmq.NewRocketmq,
		oss.NewClient,
		hashid.NewFromConfig,
		server.NewGinEngine,
		cache.ProviderSet,
		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Store), "*"),
		wire.Struct(new(handler.Cart), "*"),
		wire.Struct(new(handler.Checkout), "*"),
		wire.Struct(new(handler.Order), "*"),
		wire.Struct(new(handler.AdminOrder), "*"),
		wire.Struct(new(handler.Report), "*"),
		wire.Struct(new(handler.Category), "*"),
		wire.Struct(new(handler.ProductHandler), "*"),
		wire.Struct(new(handler.User), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		database.NewDB,
	)
	return nil, nil
}
