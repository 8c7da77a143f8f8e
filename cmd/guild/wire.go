//go:build wireinject
// +build wireinject

package main

import (
	"github.com/go-arcade/guild/internal/bootstrap"
	"github.com/go-arcade/guild/internal/engine/config"
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/internal/engine/router"
	"github.com/go-arcade/guild/internal/engine/service"
	"github.com/go-arcade/guild/pkg/cache"
	"github.com/go-arcade/guild/pkg/database"
	"github.com/go-arcade/guild/pkg/log"
	"github.com/go-arcade/guild/pkg/trace"
	"github.com/google/wire"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		config.ProviderSet,
		// 日志
		log.ProviderSet,
		// 链路追踪
		trace.ProviderSet,
		// 存储层
		database.ProviderSet,
		cache.ProviderSet,
		// 仓储层
		repo.ProviderSet,
		// 服务层
		service.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}
