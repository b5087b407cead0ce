package main

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"gitlite-api/migrations"
)

const (
	testDB       = "test"
	testUsername = "test"
	testPassword = "test"
)

func TestMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	t.Run("apply all migrations successfully", func(t *testing.T) {
		connString := setupPostgresContainer(t)

		m := setupMigration(t, connString)
		defer func() {
			_, _ = m.Close()
		}()

		err := m.Up()
		assert.NoError(t, err)

		version, dirty, err := m.Version()
		assert.NoError(t, err)
		assert.False(t, dirty)
		assert.Equal(t, uint(1), version, "Expected migration version to be 1")
	})

	t.Run("idempotent - running migrations twice should not fail", func(t *testing.T) {
		connString := setupPostgresContainer(t)

		m := setupMigration(t, connString)
		err := m.Up()
		assert.NoError(t, err)
		_, _ = m.Close()

		m = setupMigration(t, connString)
		defer func() {
			_, _ = m.Close()
		}()

		err = m.Up()
		assert.Error(t, err)
		assert.True(t, errors.Is(err, migrate.ErrNoChange))

		assert.NoError(t, migrations.Up(connString))
	})

	t.Run("verify repositories table schema", func(t *testing.T) {
		connString := setupPostgresContainer(t)
		require.NoError(t, migrations.Up(connString))

		conn, err := pgx.Connect(context.Background(), connString)
		require.NoError(t, err)
		defer func() {
			_ = conn.Close(context.Background())
		}()

		expectedColumns := map[string]string{
			"id":         "character varying",
			"name":       "character varying",
			"document":   "jsonb",
			"created_at": "timestamp with time zone",
			"updated_at": "timestamp with time zone",
		}

		for columnName, expectedType := range expectedColumns {
			var dataType string
			err = conn.QueryRow(context.Background(),
				`SELECT data_type
				FROM information_schema.columns
				WHERE table_name = 'repositories'
				AND column_name = $1`, columnName).Scan(&dataType)
			require.NoError(t, err, "Column %s should exist", columnName)
			assert.Equal(t, expectedType, dataType, "Column %s should have type %s", columnName, expectedType)
		}

		var indexExists bool
		err = conn.QueryRow(context.Background(),
			`SELECT EXISTS (
				SELECT 1
				FROM pg_indexes
				WHERE tablename = 'repositories'
				AND indexname = 'idx_repositories_created_at'
			)`).Scan(&indexExists)
		require.NoError(t, err)
		assert.True(t, indexExists, "Index idx_repositories_created_at should exist")
	})

	t.Run("down removes the repositories table", func(t *testing.T) {
		connString := setupPostgresContainer(t)
		require.NoError(t, migrations.Up(connString))
		require.NoError(t, migrations.Down(connString))

		conn, err := pgx.Connect(context.Background(), connString)
		require.NoError(t, err)
		defer func() {
			_ = conn.Close(context.Background())
		}()

		var exists bool
		err = conn.QueryRow(context.Background(),
			`SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public'
				AND table_name = 'repositories'
			)`).Scan(&exists)
		require.NoError(t, err)
		assert.False(t, exists, "Table repositories should be dropped")
	})
}

// setupPostgresContainer starts a throwaway postgres and returns a
// connection url usable by both pgx and golang-migrate.
func setupPostgresContainer(t *testing.T) string {
	t.Helper()

	container, err := postgres.Run(
		context.Background(),
		"postgres:16-alpine",
		postgres.WithDatabase(testDB),
		postgres.WithUsername(testUsername),
		postgres.WithPassword(testPassword),
		postgres.BasicWaitStrategies(),
		postgres.WithSQLDriver("pgx"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		err := container.Terminate(context.Background())
		require.NoError(t, err)
	})

	connString, err := container.ConnectionString(context.Background(), "sslmode=disable")
	require.NoError(t, err)

	return connString
}

func setupMigration(t *testing.T, connString string) *migrate.Migrate {
	t.Helper()

	m, err := migrations.New(connString)
	require.NoError(t, err)

	return m
}
