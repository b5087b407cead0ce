package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"gitlite-api/internal/repository"
	"gitlite-api/pkg/config"
)

var (
	ErrFailedAcquireConnection = connect.NewError(connect.CodeInternal, errors.New("failed to acquire connection"))
	ErrFailedEncodeRepository  = connect.NewError(connect.CodeInternal, errors.New("failed to encode repository"))
	ErrFailedDecodeRepository  = connect.NewError(connect.CodeInternal, errors.New("failed to decode repository"))
)

// PgStorage keeps each repository as one JSONB document keyed by id.
type PgStorage struct {
	connectionPool *pgxpool.Pool
	tracer         trace.Tracer
}

func NewPgStorage(
	ctx context.Context,
	cfg *config.Config,
	traceProvider *sdktrace.TracerProvider,
) (*PgStorage, error) {
	pgConfig, err := pgxpool.ParseConfig(cfg.PostgresConfig.GetPostgresDsn())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if traceProvider != nil {
		pgConfig.ConnConfig.Tracer = otelpgx.NewTracer(
			otelpgx.WithTracerProvider(traceProvider),
			otelpgx.WithDisableConnectionDetailsInAttributes(),
		)
	}

	pgConnectionPool, err := pgxpool.NewWithConfig(ctx, pgConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if traceProvider != nil {
		if err := otelpgx.RecordStats(pgConnectionPool); err != nil {
			pgConnectionPool.Close()
			return nil, fmt.Errorf("unable to record database stats: %w", err)
		}
	}

	connection, err := pgConnectionPool.Acquire(ctx)
	if err != nil {
		pgConnectionPool.Close()
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer connection.Release()

	if err := connection.Ping(ctx); err != nil {
		pgConnectionPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var tracer trace.Tracer
	if traceProvider != nil {
		tracer = traceProvider.Tracer("RepositoryPostgreSQLStorage")
	} else {
		tracer = noop.NewTracerProvider().Tracer("RepositoryPostgreSQLStorage")
	}

	return &PgStorage{
		connectionPool: pgConnectionPool,
		tracer:         tracer,
	}, nil
}

func (s *PgStorage) GetConnectionPool() *pgxpool.Pool {
	return s.connectionPool
}

func (s *PgStorage) List(ctx context.Context) ([]*repository.Repository, error) {
	var span trace.Span
	ctx, span = s.tracer.Start(ctx, "List")
	defer span.End()

	connection, err := s.connectionPool.Acquire(ctx)
	if err != nil {
		return nil, ErrFailedAcquireConnection
	}
	defer connection.Release()

	sql := `SELECT document FROM repositories ORDER BY created_at ASC, id ASC`
	rows, err := connection.Query(ctx, sql)
	if err != nil {
		span.RecordError(err)
		return nil, connect.NewError(connect.CodeInternal, errors.New("failed to query repositories"))
	}
	defer rows.Close()

	repos := []*repository.Repository{}
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			span.RecordError(err)
			return nil, connect.NewError(connect.CodeInternal, errors.New("failed to scan repository row"))
		}

		repo, err := decodeRepository(document)
		if err != nil {
			span.RecordError(err)
			return nil, ErrFailedDecodeRepository
		}
		repos = append(repos, repo)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, connect.NewError(connect.CodeInternal, errors.New("failed to iterate repositories"))
	}

	span.SetAttributes(attribute.Int("count", len(repos)))
	return repos, nil
}

func (s *PgStorage) Get(ctx context.Context, id string) (*repository.Repository, error) {
	var span trace.Span
	ctx, span = s.tracer.Start(ctx, "Get", trace.WithAttributes(
		attribute.String("id", id),
	))
	defer span.End()

	connection, err := s.connectionPool.Acquire(ctx)
	if err != nil {
		return nil, ErrFailedAcquireConnection
	}
	defer connection.Release()

	var document []byte
	sql := `SELECT document FROM repositories WHERE id = $1`
	if err := connection.QueryRow(ctx, sql, id).Scan(&document); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrRepositoryNotFound
		}

		span.RecordError(err)
		return nil, connect.NewError(connect.CodeInternal, errors.New("failed to get repository"))
	}

	repo, err := decodeRepository(document)
	if err != nil {
		span.RecordError(err)
		return nil, ErrFailedDecodeRepository
	}

	return repo, nil
}

func (s *PgStorage) Insert(ctx context.Context, repo *repository.Repository) error {
	var span trace.Span
	ctx, span = s.tracer.Start(ctx, "Insert", trace.WithAttributes(
		attribute.String("id", repo.Id),
		attribute.String("name", repo.Name),
	))
	defer span.End()

	document, err := json.Marshal(repo)
	if err != nil {
		span.RecordError(err)
		return ErrFailedEncodeRepository
	}

	connection, err := s.connectionPool.Acquire(ctx)
	if err != nil {
		return ErrFailedAcquireConnection
	}
	defer connection.Release()

	sql := `INSERT INTO repositories (id, name, document, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)`
	if _, err := connection.Exec(ctx, sql,
		repo.Id,
		repo.Name,
		document,
		repo.CreatedAt.UTC(),
	); err != nil {
		span.RecordError(err)
		return connect.NewError(connect.CodeInternal, errors.New("failed to execute insert repository query"))
	}

	return nil
}

// Replace overwrites the stored document, inserting it when the id is new.
func (s *PgStorage) Replace(ctx context.Context, repo *repository.Repository) error {
	var span trace.Span
	ctx, span = s.tracer.Start(ctx, "Replace", trace.WithAttributes(
		attribute.String("id", repo.Id),
		attribute.Int("commits", len(repo.Commits)),
	))
	defer span.End()

	document, err := json.Marshal(repo)
	if err != nil {
		span.RecordError(err)
		return ErrFailedEncodeRepository
	}

	connection, err := s.connectionPool.Acquire(ctx)
	if err != nil {
		return ErrFailedAcquireConnection
	}
	defer connection.Release()

	sql := `INSERT INTO repositories (id, name, document, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, document = EXCLUDED.document, updated_at = NOW()`
	if _, err := connection.Exec(ctx, sql,
		repo.Id,
		repo.Name,
		document,
		repo.CreatedAt.UTC(),
	); err != nil {
		span.RecordError(err)
		return connect.NewError(connect.CodeInternal, errors.New("failed to execute replace repository query"))
	}

	return nil
}

func (s *PgStorage) Delete(ctx context.Context, id string) error {
	var span trace.Span
	ctx, span = s.tracer.Start(ctx, "Delete", trace.WithAttributes(
		attribute.String("id", id),
	))
	defer span.End()

	connection, err := s.connectionPool.Acquire(ctx)
	if err != nil {
		return ErrFailedAcquireConnection
	}
	defer connection.Release()

	sql := `DELETE FROM repositories WHERE id = $1`
	result, err := connection.Exec(ctx, sql, id)
	if err != nil {
		span.RecordError(err)
		return connect.NewError(connect.CodeInternal, errors.New("failed to execute delete repository query"))
	}

	if result.RowsAffected() == 0 {
		return repository.ErrRepositoryNotFound
	}

	return nil
}

func (s *PgStorage) Close() error {
	s.connectionPool.Close()
	zap.L().Info("postgres storage closed")
	return nil
}

func decodeRepository(document []byte) (*repository.Repository, error) {
	var repo repository.Repository
	if err := json.Unmarshal(document, &repo); err != nil {
		return nil, err
	}

	return &repo, nil
}
