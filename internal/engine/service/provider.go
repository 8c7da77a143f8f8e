package service

import (
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/pkg/cache"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	ProvideSessionStore,
	ProvideServices,
)

func ProvideSessionStore(c cache.ICache, httpConf *http.Http) *cache.SessionStore {
	return cache.NewSessionStore(c, httpConf.Auth.RedisKeyPrefix)
}

func ProvideServices(httpConf *http.Http, repos *repo.Repositories, sessions *cache.SessionStore) *Services {
	return NewServices(httpConf.Auth, repos, sessions)
}
