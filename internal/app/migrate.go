package app

import (
	"context"

	"github.com/KarpovAlexandrGo/todo-service/internal/config"
	"github.com/KarpovAlexandrGo/todo-service/internal/repo/postgres"
	"github.com/KarpovAlexandrGo/todo-service/internal/repo/sqlite"
	"github.com/KarpovAlexandrGo/todo-service/pkg/logger"
)

// Migrate применяет миграции выбранного хранилища и завершает работу.
// Для SQLite миграции выполняются при открытии базы.
func Migrate(ctx context.Context, cfg *config.Config) error {
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	if cfg.StorageDriver == config.DriverSQLite {
		b, err := sqlite.Open(ctx, cfg.SQLitePath, cfg.QueryTimeout)
		if err != nil {
			return err
		}
		return b.Close()
	}

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	return postgres.Migrate(ctx, pool)
}
