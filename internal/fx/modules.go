package fx

import (
	"database/sql"
	"roboscout/internal/api"
	"roboscout/internal/cache"
	"roboscout/internal/config"
	"roboscout/internal/database"
	"roboscout/internal/db"
	"roboscout/internal/logger"
	"roboscout/internal/repository"
	"roboscout/internal/server"
	"roboscout/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// Core wires everything below the RPC layer. It expects a zerolog.Logger to be
// provided alongside it.
var Core = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(repository.NewStore),
	// repos
	fx.Provide(repository.NewTeamRepository),
	fx.Provide(repository.NewFormRepository),
	fx.Provide(repository.NewRankingRepository),
	// api client
	fx.Provide(api.NewTBAClient),
	// cache
	fx.Provide(cache.NewFromConfig),
	// svc
	fx.Provide(service.NewRankingService),
	fx.Provide(service.NewTeamService),
	fx.Provide(service.NewFormService),
)

var Module = fx.Options(
	fx.Provide(logger.New),
	Core,
	// server
	fx.Provide(server.NewScoutingServer),
)
