package storage

import (
	"context"
	"fmt"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"gitlite-api/internal/repository"
	"gitlite-api/migrations"
	"gitlite-api/pkg/config"
	"gitlite-api/pkg/jsonfile"
	pgrepository "gitlite-api/pkg/postgres/repository"
)

const connectTimeout = 5 * time.Second

type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendJsonFile Backend = "jsonfile"
)

// Open picks the backend once at startup. Postgres is used when it is
// configured, reachable and migrated; otherwise the JSON file at
// storage.fallbackPath takes over and a single warning is logged.
func Open(
	ctx context.Context,
	cfg *config.Config,
	traceProvider *sdktrace.TracerProvider,
) (repository.Storage, Backend, error) {
	if cfg.PostgresConfig.IsConfigured() {
		pgStorage, err := openPostgres(ctx, cfg, traceProvider)
		if err == nil {
			zap.L().Info("using postgres storage")
			return pgStorage, BackendPostgres, nil
		}

		zap.L().Warn("postgres storage unavailable, falling back to json file",
			zap.String("path", cfg.Storage.FallbackPath),
			zap.Error(err),
		)
	}

	fileStorage, err := jsonfile.NewStorage(cfg.Storage.FallbackPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open json file storage: %w", err)
	}

	return fileStorage, BackendJsonFile, nil
}

func openPostgres(
	ctx context.Context,
	cfg *config.Config,
	traceProvider *sdktrace.TracerProvider,
) (*pgrepository.PgStorage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pgStorage, err := pgrepository.NewPgStorage(connectCtx, cfg, traceProvider)
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(cfg.PostgresConfig.GetPostgresUrl()); err != nil {
		_ = pgStorage.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return pgStorage, nil
}
