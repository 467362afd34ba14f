package app

import (
	"context"

	"github.com/saradorri/fairplay/internal/config"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/database"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/saradorri/fairplay/internal/infrastructure/repository"
	"github.com/saradorri/fairplay/internal/infrastructure/repository/memory"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// InitStore returns the in-memory store or a Postgres store, migrating it first when configured
func (a *application) InitStore(lc fx.Lifecycle, log *logger.Logger) (domain.Store, error) {
	if a.config.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory store, data will not survive a restart")
		return memory.NewStore(), nil
	}

	dbConfig := DatabaseConfig(a.config)
	if a.config.Database.AutoMigrate {
		if err := database.RunMigrationsWithURL(dbConfig.URL()); err != nil {
			return nil, err
		}
		log.Info("Database migrations applied")
	}

	db, err := database.NewDatabase(dbConfig)
	if err != nil {
		return nil, err
	}
	log.Info("Connected to database",
		zap.String("host", dbConfig.Host),
		zap.String("name", dbConfig.Name))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})
	return repository.NewStore(db.GetDB()), nil
}

// DatabaseConfig maps the database section onto the connection settings
func DatabaseConfig(cfg *config.Config) *database.Config {
	return &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogQueries:      cfg.Database.LogQueries,
	}
}
