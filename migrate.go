package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"gitlite-api/migrations"
	"gitlite-api/pkg/config"
)

var errPostgresNotConfigured = errors.New("postgresql is not configured, nothing to migrate")

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			databaseUrl, err := postgresUrl()
			if err != nil {
				return err
			}
			if err := migrations.Up(databaseUrl); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s migrations applied\n", color.New(color.FgGreen).Sprint("OK"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			databaseUrl, err := postgresUrl()
			if err != nil {
				return err
			}
			if err := migrations.Down(databaseUrl); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s migrations rolled back\n", color.New(color.FgYellow).Sprint("OK"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			databaseUrl, err := postgresUrl()
			if err != nil {
				return err
			}

			m, err := migrations.New(databaseUrl)
			if err != nil {
				return err
			}
			defer func() {
				_, _ = m.Close()
			}()

			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Fprintf(cmd.OutOrStdout(), "version: %s\n", color.New(color.FgYellow).Sprint("none"))
				return nil
			}
			if err != nil {
				return err
			}

			state := color.New(color.FgGreen).Sprint("clean")
			if dirty {
				state = color.New(color.FgRed).Sprint("dirty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %d (%s)\n", version, state)
			return nil
		},
	})

	return cmd
}

func postgresUrl() (string, error) {
	cfg := config.NewConfigReader().Read()
	if !cfg.PostgresConfig.IsConfigured() {
		return "", errPostgresNotConfigured
	}

	return cfg.PostgresConfig.GetPostgresUrl(), nil
}
