package router

import (
	"github.com/go-arcade/guild/internal/engine/service"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/google/wire"
)

// ProviderSet 提供路由相关的依赖
var ProviderSet = wire.NewSet(ProvideRouter)

func ProvideRouter(httpConf *http.Http, services *service.Services) *Router {
	return NewRouter(httpConf, services)
}
