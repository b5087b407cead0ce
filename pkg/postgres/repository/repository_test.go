package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.opentelemetry.io/otel/trace/noop"

	"gitlite-api/internal/repository"
	"gitlite-api/migrations"
)

const (
	pgDb       = "test"
	pgUsername = "test"
	pgPassword = "test"
)

func setupPgContainer(t *testing.T) *postgres.PostgresContainer {
	t.Helper()

	postgresContainer, err := postgres.Run(t.Context(),
		"postgres:16-alpine",
		postgres.WithDatabase(pgDb),
		postgres.WithUsername(pgUsername),
		postgres.WithPassword(pgPassword),
		postgres.BasicWaitStrategies(),
		postgres.WithSQLDriver("pgx"),
	)
	require.NoError(t, err)

	return postgresContainer
}

func setupTestStorage(t *testing.T) *PgStorage {
	t.Helper()

	container := setupPgContainer(t)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	connString, err := container.ConnectionString(t.Context(), "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, migrations.Up(connString))

	pool, err := pgxpool.New(t.Context(), connString)
	require.NoError(t, err)

	return &PgStorage{
		connectionPool: pool,
		tracer:         noop.NewTracerProvider().Tracer("test"),
	}
}

func createTestRepository(id, name string, createdAt time.Time) *repository.Repository {
	return &repository.Repository{
		Id:            id,
		Name:          name,
		Collaborators: []repository.Collaborator{},
		Files:         []repository.File{},
		Commits:       []repository.Commit{},
		CreatedAt:     createdAt,
	}
}

func TestPgStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	s := setupTestStorage(t)
	defer func() {
		_ = s.Close()
	}()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("insert and get", func(t *testing.T) {
		repo := createTestRepository("r1", "first", base)
		repo.Files = append(repo.Files, repository.File{Id: "f1", Path: "a.txt", Content: "hello"})
		repo.Commits = append(repo.Commits, repository.Commit{
			Id:       "c1",
			Message:  "Added a.txt",
			Snapshot: []repository.File{{Id: "f1", Path: "a.txt", Content: "hello"}},
			Author:   "anon",
			Time:     base,
		})

		require.NoError(t, s.Insert(t.Context(), repo))

		got, err := s.Get(t.Context(), "r1")
		require.NoError(t, err)
		assert.Equal(t, "first", got.Name)
		require.Len(t, got.Commits, 1)
		assert.Equal(t, "hello", got.Commits[0].Snapshot[0].Content)
		assert.True(t, base.Equal(got.Commits[0].Time))
	})

	t.Run("get unknown id", func(t *testing.T) {
		_, err := s.Get(t.Context(), "missing")
		assert.ErrorIs(t, err, repository.ErrRepositoryNotFound)
	})

	t.Run("list in creation order", func(t *testing.T) {
		require.NoError(t, s.Insert(t.Context(), createTestRepository("r3", "third", base.Add(2*time.Hour))))
		require.NoError(t, s.Insert(t.Context(), createTestRepository("r2", "second", base.Add(time.Hour))))

		repos, err := s.List(t.Context())
		require.NoError(t, err)
		require.Len(t, repos, 3)
		assert.Equal(t, "r1", repos[0].Id)
		assert.Equal(t, "r2", repos[1].Id)
		assert.Equal(t, "r3", repos[2].Id)
	})

	t.Run("replace overwrites document", func(t *testing.T) {
		repo, err := s.Get(t.Context(), "r2")
		require.NoError(t, err)
		repo.Stars = 7
		repo.Description = "updated"

		require.NoError(t, s.Replace(t.Context(), repo))

		got, err := s.Get(t.Context(), "r2")
		require.NoError(t, err)
		assert.Equal(t, 7, got.Stars)
		assert.Equal(t, "updated", got.Description)
	})

	t.Run("replace inserts unknown id", func(t *testing.T) {
		require.NoError(t, s.Replace(t.Context(), createTestRepository("r4", "fourth", base.Add(3*time.Hour))))

		_, err := s.Get(t.Context(), "r4")
		assert.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(t.Context(), "r4"))
		assert.ErrorIs(t, s.Delete(t.Context(), "r4"), repository.ErrRepositoryNotFound)
	})

	t.Run("works behind the store", func(t *testing.T) {
		store := repository.NewStore(s)

		created, err := store.Create(t.Context(), repository.CreateRepositoryInput{Name: "via store"})
		require.NoError(t, err)

		_, err = store.Mutate(t.Context(), created.Id, func(r *repository.Repository) error {
			_, _, err := r.AddFile(repository.AddFileInput{Path: "main.go", Content: "package main"})
			return err
		})
		require.NoError(t, err)

		got, err := s.Get(t.Context(), created.Id)
		require.NoError(t, err)
		assert.Len(t, got.Files, 1)
		assert.Len(t, got.Commits, 1)
	})
}
