package repo

import (
	"github.com/go-arcade/guild/pkg/database"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(ProvideRepositories)

func ProvideRepositories(db database.IDatabase) *Repositories {
	return NewRepositories(db)
}
